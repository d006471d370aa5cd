package services

import (
	"truckledger/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var tripCols = []string{
	"id", "trip_code", "customer_code", "customer_name", "description",
	"load_date", "delivery_date", "origin_point", "destination_point",
	"point_count", "weight", "plate_number", "driver_name",
	"base_freight", "loading_fee", "ticket_fee", "return_cargo_fee",
	"shift_holding_fee", "extra_point_fee", "other_fee", "odd_fee_total",
}

var debtCols = []string{
	"id", "trip_code", "customer_code", "customer_name", "description",
	"load_date", "delivery_date", "origin_point", "destination_point",
	"point_count", "weight", "plate_number", "driver_name",
	"base_freight", "loading_fee", "ticket_fee", "return_cargo_fee",
	"shift_holding_fee", "extra_point_fee", "other_fee",
	"total_amount", "is_locked", "highlight_tag", "note",
}

func tripRows(trips ...models.Trip) *sqlmock.Rows {
	rows := sqlmock.NewRows(tripCols)
	for _, t := range trips {
		rows.AddRow(t.ID, t.TripCode, t.CustomerCode, t.CustomerName, t.Description,
			t.LoadDate, t.DeliveryDate, t.OriginPoint, t.DestinationPoint,
			t.PointCount, t.Weight, t.PlateNumber, t.DriverName,
			t.BaseFreight, t.LoadingFee, t.TicketFee, t.ReturnCargoFee,
			t.ShiftHoldingFee, t.ExtraPointFee, t.OtherFee, t.OddFeeTotal)
	}
	return rows
}

func debtRows(debts ...models.DebtRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(debtCols)
	for _, d := range debts {
		locked := 0
		if d.IsLocked {
			locked = 1
		}
		rows.AddRow(d.ID, d.TripCode, d.CustomerCode, d.CustomerName, d.Description,
			d.LoadDate, d.DeliveryDate, d.OriginPoint, d.DestinationPoint,
			d.PointCount, d.Weight, d.PlateNumber, d.DriverName,
			d.BaseFreight, d.LoadingFee, d.TicketFee, d.ReturnCargoFee,
			d.ShiftHoldingFee, d.ExtraPointFee, d.OtherFee,
			d.TotalAmount, locked, d.HighlightTag, d.Note)
	}
	return rows
}

func sampleTrip() models.Trip {
	return models.Trip{
		ID:               1,
		TripCode:         "T001",
		CustomerCode:     "CUST01",
		CustomerName:     "PT Maju Jaya",
		Description:      "muatan semen",
		LoadDate:         "2025-01-09",
		DeliveryDate:     "2025-01-10",
		OriginPoint:      "Surabaya",
		DestinationPoint: "Malang",
		PointCount:       1,
		Weight:           12.5,
		PlateNumber:      "L 9001 UT",
		DriverName:       "Pak Slamet",
		BaseFreight:      5_000_000,
		LoadingFee:       200_000,
		TicketFee:        100_000,
	}
}
