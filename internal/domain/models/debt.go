package models

// DebtRecord is the ledger's denormalized projection of one trip, keyed 1:1
// by trip code. Descriptive fields and base freight follow the trip on every
// sync while the record is unlocked; the supplemental fee columns, note and
// highlight belong to the ledger screen and are never overwritten by sync.
type DebtRecord struct {
	ID               int64   `json:"id"`
	TripCode         string  `json:"trip_code"`
	CustomerCode     string  `json:"customer_code"`
	CustomerName     string  `json:"customer_name"`
	Description      string  `json:"description"`
	LoadDate         string  `json:"load_date"`
	DeliveryDate     string  `json:"delivery_date"`
	OriginPoint      string  `json:"origin_point"`
	DestinationPoint string  `json:"destination_point"`
	PointCount       int     `json:"point_count"`
	Weight           float64 `json:"weight"`
	PlateNumber      string  `json:"plate_number"`
	DriverName       string  `json:"driver_name"`

	BaseFreight     int64 `json:"base_freight"`
	LoadingFee      int64 `json:"loading_fee"`
	TicketFee       int64 `json:"ticket_fee"`
	ReturnCargoFee  int64 `json:"return_cargo_fee"`
	ShiftHoldingFee int64 `json:"shift_holding_fee"`
	ExtraPointFee   int64 `json:"extra_point_fee"`
	OtherFee        int64 `json:"other_fee"`

	TotalAmount int64 `json:"total_amount"`
	IsLocked    bool  `json:"is_locked"`

	HighlightTag string `json:"highlight_tag"`
	Note         string `json:"note"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// SupplementalTotal sums the six odd-fee columns, excluding base freight.
func (d DebtRecord) SupplementalTotal() int64 {
	return d.LoadingFee + d.TicketFee + d.ReturnCargoFee + d.ShiftHoldingFee + d.ExtraPointFee + d.OtherFee
}
