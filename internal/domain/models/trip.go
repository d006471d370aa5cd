package models

// Trip is the authoritative operational record of one haul, owned by
// dispatch. The debt ledger only reads it, except for the odd-fee total
// written back by the back-projection bulk job.
type Trip struct {
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

	// OddFeeTotal is overwritten by back-projection with the aggregate of
	// the debt record's supplemental fees.
	OddFeeTotal int64 `json:"odd_fee_total"`
}
