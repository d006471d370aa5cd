package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "truckledger/internal/config"
	"truckledger/internal/domain"
	"truckledger/internal/domain/models"
)

// TripsRepository reads and (rarely) writes the trip source table. Trips are
// owned by dispatch; the ledger treats them as an external collaborator, so
// every failure here is reported as a source error.
type TripsRepository struct {
	DB *sql.DB
}

func (r TripsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id,
       COALESCE(trip_code,''),
       COALESCE(customer_code,''),
       COALESCE(customer_name,''),
       COALESCE(description,''),
       COALESCE(load_date,''),
       COALESCE(delivery_date,''),
       COALESCE(origin_point,''),
       COALESCE(destination_point,''),
       COALESCE(point_count,0),
       COALESCE(weight,0),
       COALESCE(plate_number,''),
       COALESCE(driver_name,''),
       COALESCE(base_freight,0),
       COALESCE(loading_fee,0),
       COALESCE(ticket_fee,0),
       COALESCE(return_cargo_fee,0),
       COALESCE(shift_holding_fee,0),
       COALESCE(extra_point_fee,0),
       COALESCE(other_fee,0),
       COALESCE(odd_fee_total,0)`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID,
		&t.TripCode,
		&t.CustomerCode,
		&t.CustomerName,
		&t.Description,
		&t.LoadDate,
		&t.DeliveryDate,
		&t.OriginPoint,
		&t.DestinationPoint,
		&t.PointCount,
		&t.Weight,
		&t.PlateNumber,
		&t.DriverName,
		&t.BaseFreight,
		&t.LoadingFee,
		&t.TicketFee,
		&t.ReturnCargoFee,
		&t.ShiftHoldingFee,
		&t.ExtraPointFee,
		&t.OtherFee,
		&t.OddFeeTotal,
	)
	return t, err
}

// ListByDeliveryDateRange returns trips whose delivery date falls in the
// inclusive range. Blank bounds leave that side open.
func (r TripsRepository) ListByDeliveryDateRange(startDate, endDate string) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(startDate); s != "" {
		where = append(where, "delivery_date>=?")
		args = append(args, s)
	}
	if e := strings.TrimSpace(endDate); e != "" {
		where = append(where, "delivery_date<=?")
		args = append(args, e)
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE ` + strings.Join(where, " AND ") + ` ORDER BY delivery_date ASC, id ASC`
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.SourceError{Op: "list trips", Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, domain.SourceError{Op: "scan trip", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return out, domain.SourceError{Op: "list trips", Err: err}
	}
	return out, nil
}

// GetByCode fetches one trip by its code. The bool reports existence.
func (r TripsRepository) GetByCode(tripCode string) (models.Trip, bool, error) {
	code := strings.TrimSpace(tripCode)
	if code == "" {
		return models.Trip{}, false, domain.ValidationError{Field: "trip_code", Msg: "kode trip kosong"}
	}

	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE trip_code=? LIMIT 1`, code)
	t, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, false, nil
		}
		return models.Trip{}, false, domain.SourceError{Op: "get trip", Err: err}
	}
	return t, true, nil
}

// Create inserts a new trip record.
func (r TripsRepository) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips
		  (trip_code, customer_code, customer_name, description, load_date, delivery_date,
		   origin_point, destination_point, point_count, weight, plate_number, driver_name,
		   base_freight, loading_fee, ticket_fee, return_cargo_fee, shift_holding_fee,
		   extra_point_fee, other_fee, odd_fee_total)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.TripCode, t.CustomerCode, t.CustomerName, t.Description, t.LoadDate, t.DeliveryDate,
		t.OriginPoint, t.DestinationPoint, t.PointCount, t.Weight, t.PlateNumber, t.DriverName,
		t.BaseFreight, t.LoadingFee, t.TicketFee, t.ReturnCargoFee, t.ShiftHoldingFee,
		t.ExtraPointFee, t.OtherFee, t.OddFeeTotal,
	)
	if err != nil {
		return 0, domain.SourceError{Op: "create trip", Err: err}
	}
	return res.LastInsertId()
}

// Update overwrites a trip by id.
func (r TripsRepository) Update(id int64, t models.Trip) error {
	res, err := r.db().Exec(`
		UPDATE trips SET
		  customer_code=?, customer_name=?, description=?, load_date=?, delivery_date=?,
		  origin_point=?, destination_point=?, point_count=?, weight=?, plate_number=?, driver_name=?,
		  base_freight=?, loading_fee=?, ticket_fee=?, return_cargo_fee=?, shift_holding_fee=?,
		  extra_point_fee=?, other_fee=?
		WHERE id=?`,
		t.CustomerCode, t.CustomerName, t.Description, t.LoadDate, t.DeliveryDate,
		t.OriginPoint, t.DestinationPoint, t.PointCount, t.Weight, t.PlateNumber, t.DriverName,
		t.BaseFreight, t.LoadingFee, t.TicketFee, t.ReturnCargoFee, t.ShiftHoldingFee,
		t.ExtraPointFee, t.OtherFee, id,
	)
	if err != nil {
		return domain.SourceError{Op: "update trip", Err: err}
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// Delete removes one trip by id. The matching debt record, if any, stays.
func (r TripsRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return domain.SourceError{Op: "delete trip", Err: err}
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// DeleteByDateRange bulk-deletes trips by delivery date. Debt records are
// never cascade-deleted; orphans remain until cleaned up explicitly.
func (r TripsRepository) DeleteByDateRange(startDate, endDate string) (int64, error) {
	res, err := r.db().Exec(`DELETE FROM trips WHERE delivery_date>=? AND delivery_date<=?`,
		strings.TrimSpace(startDate), strings.TrimSpace(endDate))
	if err != nil {
		return 0, domain.SourceError{Op: "delete trips", Err: err}
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

// UpdateOddFeeTotal overwrites the designated odd-fee field on one trip.
// Returns false when no trip carries the code; back-projection never creates
// trip rows.
func (r TripsRepository) UpdateOddFeeTotal(tripCode string, total int64) (bool, error) {
	res, err := r.db().Exec(`UPDATE trips SET odd_fee_total=? WHERE trip_code=?`, total, strings.TrimSpace(tripCode))
	if err != nil {
		return false, domain.SourceError{Op: "write odd fee total", Err: err}
	}
	aff, _ := res.RowsAffected()
	if aff > 0 {
		return true, nil
	}
	// MySQL reports zero affected rows for a no-change update, so distinguish
	// a missing trip from an idempotent rewrite.
	var id int64
	err = r.db().QueryRow(`SELECT id FROM trips WHERE trip_code=? LIMIT 1`, strings.TrimSpace(tripCode)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.SourceError{Op: "check trip", Err: err}
	}
	return true, nil
}
