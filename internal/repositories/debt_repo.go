package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "truckledger/internal/config"
	"truckledger/internal/domain"
	"truckledger/internal/domain/models"
)

// DebtRepository owns the odd_debts table.
type DebtRepository struct {
	DB *sql.DB
}

func (r DebtRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Money-bearing columns addressable by updateCostFields and the fee filter
// predicates. Keys are the wire names, values the real columns.
var costColumns = map[string]string{
	"base_freight":      "base_freight",
	"loading_fee":       "loading_fee",
	"ticket_fee":        "ticket_fee",
	"return_cargo_fee":  "return_cargo_fee",
	"shift_holding_fee": "shift_holding_fee",
	"extra_point_fee":   "extra_point_fee",
	"other_fee":         "other_fee",
}

// CostColumn resolves a wire field name ("loadingFee" or "loading_fee") to
// its column. ok is false for anything outside the whitelist.
func CostColumn(field string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(field))
	if col, ok := costColumns[key]; ok {
		return col, true
	}
	// accept camelCase by comparing with underscores stripped
	flat := strings.ReplaceAll(key, "_", "")
	for k, col := range costColumns {
		if strings.ReplaceAll(k, "_", "") == flat {
			return col, true
		}
	}
	return "", false
}

const debtColumns = `id,
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
       COALESCE(total_amount,0),
       COALESCE(is_locked,0),
       COALESCE(highlight_tag,''),
       COALESCE(note,'')`

func scanDebt(row interface{ Scan(...any) error }) (models.DebtRecord, error) {
	var d models.DebtRecord
	err := row.Scan(
		&d.ID,
		&d.TripCode,
		&d.CustomerCode,
		&d.CustomerName,
		&d.Description,
		&d.LoadDate,
		&d.DeliveryDate,
		&d.OriginPoint,
		&d.DestinationPoint,
		&d.PointCount,
		&d.Weight,
		&d.PlateNumber,
		&d.DriverName,
		&d.BaseFreight,
		&d.LoadingFee,
		&d.TicketFee,
		&d.ReturnCargoFee,
		&d.ShiftHoldingFee,
		&d.ExtraPointFee,
		&d.OtherFee,
		&d.TotalAmount,
		&d.IsLocked,
		&d.HighlightTag,
		&d.Note,
	)
	return d, err
}

// GetByTripCode fetches one debt record. The bool reports existence.
func (r DebtRepository) GetByTripCode(tripCode string) (models.DebtRecord, bool, error) {
	code := strings.TrimSpace(tripCode)
	if code == "" {
		return models.DebtRecord{}, false, domain.ValidationError{Field: "trip_code", Msg: "kode trip kosong"}
	}

	row := r.db().QueryRow(`SELECT `+debtColumns+` FROM odd_debts WHERE trip_code=? LIMIT 1`, code)
	d, err := scanDebt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DebtRecord{}, false, nil
		}
		return models.DebtRecord{}, false, err
	}
	return d, true, nil
}

// Insert creates a new debt record for a never-before-seen trip code.
func (r DebtRepository) Insert(d models.DebtRecord) error {
	_, err := r.db().Exec(`
		INSERT INTO odd_debts
		  (trip_code, customer_code, customer_name, description, load_date, delivery_date,
		   origin_point, destination_point, point_count, weight, plate_number, driver_name,
		   base_freight, loading_fee, ticket_fee, return_cargo_fee, shift_holding_fee,
		   extra_point_fee, other_fee, total_amount, is_locked, highlight_tag, note,
		   created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		d.TripCode, d.CustomerCode, d.CustomerName, d.Description, d.LoadDate, d.DeliveryDate,
		d.OriginPoint, d.DestinationPoint, d.PointCount, d.Weight, d.PlateNumber, d.DriverName,
		d.BaseFreight, d.LoadingFee, d.TicketFee, d.ReturnCargoFee, d.ShiftHoldingFee,
		d.ExtraPointFee, d.OtherFee, d.TotalAmount, d.IsLocked, d.HighlightTag, d.Note,
	)
	return err
}

// UpdateFromTrip overwrites the trip-owned fields of an unlocked record:
// descriptive columns plus base freight, with the recomputed total. The
// supplemental fee columns, note and highlight are left alone.
func (r DebtRepository) UpdateFromTrip(d models.DebtRecord) error {
	res, err := r.db().Exec(`
		UPDATE odd_debts SET
		  customer_code=?, customer_name=?, description=?, load_date=?, delivery_date=?,
		  origin_point=?, destination_point=?, point_count=?, weight=?, plate_number=?, driver_name=?,
		  base_freight=?, total_amount=?, updated_at=NOW()
		WHERE trip_code=? AND is_locked=0`,
		d.CustomerCode, d.CustomerName, d.Description, d.LoadDate, d.DeliveryDate,
		d.OriginPoint, d.DestinationPoint, d.PointCount, d.Weight, d.PlateNumber, d.DriverName,
		d.BaseFreight, d.TotalAmount, d.TripCode,
	)
	if err != nil {
		return err
	}
	// zero affected rows is fine: an identical re-sync changes nothing
	_, _ = res.RowsAffected()
	return nil
}

// UpdateCostFields writes the given cost columns and the recomputed total.
// The is_locked guard in the WHERE clause backs up the service-level check;
// the affected-row count lets the caller notice a record that got locked in
// between.
func (r DebtRepository) UpdateCostFields(tripCode string, fields map[string]int64, totalAmount int64) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	setParts := []string{}
	args := []any{}
	for col, val := range fields {
		if _, ok := costColumns[col]; !ok {
			return 0, domain.ValidationError{Field: col, Msg: "bukan kolom biaya"}
		}
		setParts = append(setParts, col+"=?")
		args = append(args, val)
	}
	setParts = append(setParts, "total_amount=?", "updated_at=NOW()")
	args = append(args, totalAmount, strings.TrimSpace(tripCode))

	res, err := r.db().Exec(`UPDATE odd_debts SET `+strings.Join(setParts, ", ")+` WHERE trip_code=? AND is_locked=0`, args...)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

// UpdateAnnotations writes note/highlight; allowed regardless of lock state.
func (r DebtRepository) UpdateAnnotations(tripCode string, note, highlightTag *string) error {
	setParts := []string{}
	args := []any{}
	if note != nil {
		setParts = append(setParts, "note=?")
		args = append(args, *note)
	}
	if highlightTag != nil {
		setParts = append(setParts, "highlight_tag=?")
		args = append(args, *highlightTag)
	}
	if len(setParts) == 0 {
		return nil
	}
	setParts = append(setParts, "updated_at=NOW()")
	args = append(args, strings.TrimSpace(tripCode))

	res, err := r.db().Exec(`UPDATE odd_debts SET `+strings.Join(setParts, ", ")+` WHERE trip_code=?`, args...)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		// annotation writes are rare enough that a missing row should surface
		if _, found, err := r.GetByTripCode(tripCode); err != nil {
			return err
		} else if !found {
			return domain.NotFoundError{Resource: "debt record"}
		}
	}
	return nil
}

// SetLocked flips the lock flag for one record.
func (r DebtRepository) SetLocked(tripCode string, locked bool) error {
	res, err := r.db().Exec(`UPDATE odd_debts SET is_locked=?, updated_at=NOW() WHERE trip_code=?`,
		locked, strings.TrimSpace(tripCode))
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		if _, found, err := r.GetByTripCode(tripCode); err != nil {
			return err
		} else if !found {
			return domain.NotFoundError{Resource: "debt record"}
		}
	}
	return nil
}

// LockRange sets is_locked for every record in the inclusive delivery-date
// range. Locking an already-locked record is a no-op.
func (r DebtRepository) LockRange(startDate, endDate string) (int64, error) {
	res, err := r.db().Exec(`UPDATE odd_debts SET is_locked=1, updated_at=NOW() WHERE delivery_date>=? AND delivery_date<=? AND is_locked=0`,
		strings.TrimSpace(startDate), strings.TrimSpace(endDate))
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

// ListInRange returns debt records by inclusive delivery-date range.
func (r DebtRepository) ListInRange(startDate, endDate string) ([]models.DebtRecord, error) {
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

	query := `SELECT ` + debtColumns + ` FROM odd_debts WHERE ` + strings.Join(where, " AND ") + ` ORDER BY delivery_date ASC, id ASC`
	return r.queryDebts(query, args)
}

// DebtFilter carries the list-screen predicates.
type DebtFilter struct {
	CustomerCode string
	CustomerName string
	PlateNumber  string
	DriverName   string
	StartDate    string
	EndDate      string
	RouteText    string // matched against origin, destination and description
	FeeField     string // cost column for the filled/empty predicate
	FeeFilled    *bool  // true: field > 0, false: field = 0
	Locked       *bool
}

var debtSortColumns = map[string]string{
	"delivery_date": "delivery_date",
	"load_date":     "load_date",
	"trip_code":     "trip_code",
	"customer_code": "customer_code",
	"total_amount":  "total_amount",
	"created_at":    "created_at",
}

// buildDebtListQuery assembles WHERE/ORDER BY for List. Split out so the
// predicate logic is testable without a database.
func buildDebtListQuery(f DebtFilter, sort string) (string, []any, error) {
	where := []string{"1=1"}
	args := []any{}

	if v := strings.TrimSpace(f.CustomerCode); v != "" {
		where = append(where, "customer_code=?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.CustomerName); v != "" {
		where = append(where, "customer_name LIKE ?")
		args = append(args, "%"+v+"%")
	}
	if v := strings.TrimSpace(f.PlateNumber); v != "" {
		where = append(where, "plate_number LIKE ?")
		args = append(args, "%"+v+"%")
	}
	if v := strings.TrimSpace(f.DriverName); v != "" {
		where = append(where, "driver_name LIKE ?")
		args = append(args, "%"+v+"%")
	}
	if v := strings.TrimSpace(f.StartDate); v != "" {
		where = append(where, "delivery_date>=?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.EndDate); v != "" {
		where = append(where, "delivery_date<=?")
		args = append(args, v)
	}
	if v := strings.TrimSpace(f.RouteText); v != "" {
		where = append(where, "(origin_point LIKE ? OR destination_point LIKE ? OR description LIKE ?)")
		like := "%" + v + "%"
		args = append(args, like, like, like)
	}
	if v := strings.TrimSpace(f.FeeField); v != "" {
		col, ok := CostColumn(v)
		if !ok {
			return "", nil, domain.ValidationError{Field: "fee_field", Msg: "kolom biaya tidak dikenal"}
		}
		if f.FeeFilled == nil || *f.FeeFilled {
			where = append(where, "COALESCE("+col+",0)>0")
		} else {
			where = append(where, "COALESCE("+col+",0)=0")
		}
	}
	if f.Locked != nil {
		if *f.Locked {
			where = append(where, "is_locked=1")
		} else {
			where = append(where, "is_locked=0")
		}
	}

	orderBy := "delivery_date ASC, id ASC"
	if s := strings.TrimSpace(sort); s != "" {
		dir := "ASC"
		col := s
		if strings.HasPrefix(s, "-") {
			dir = "DESC"
			col = s[1:]
		}
		real, ok := debtSortColumns[strings.ToLower(col)]
		if !ok {
			return "", nil, domain.ValidationError{Field: "sort", Msg: "kolom sort tidak dikenal"}
		}
		orderBy = fmt.Sprintf("%s %s, id ASC", real, dir)
	}

	return strings.Join(where, " AND ") + ` ORDER BY ` + orderBy, args, nil
}

// List returns one page of debt records plus the total match count.
func (r DebtRepository) List(f DebtFilter, page, limit int, sort string) ([]models.DebtRecord, int64, error) {
	tail, args, err := buildDebtListQuery(f, sort)
	if err != nil {
		return nil, 0, err
	}

	whereOnly := tail[:strings.Index(tail, " ORDER BY ")]
	var total int64
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM odd_debts WHERE `+whereOnly, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := `SELECT ` + debtColumns + ` FROM odd_debts WHERE ` + tail + ` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), limit, offset)

	out, err := r.queryDebts(query, pageArgs)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByCustomer returns every debt record for one customer code.
func (r DebtRepository) ListByCustomer(customerCode string) ([]models.DebtRecord, error) {
	query := `SELECT ` + debtColumns + ` FROM odd_debts WHERE customer_code=? ORDER BY delivery_date ASC, id ASC`
	return r.queryDebts(query, []any{strings.TrimSpace(customerCode)})
}

// DeleteByDateRange removes debt records by inclusive delivery-date range.
// The only deletion path; sync never deletes.
func (r DebtRepository) DeleteByDateRange(startDate, endDate string) (int64, error) {
	res, err := r.db().Exec(`DELETE FROM odd_debts WHERE delivery_date>=? AND delivery_date<=?`,
		strings.TrimSpace(startDate), strings.TrimSpace(endDate))
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}

func (r DebtRepository) queryDebts(query string, args []any) ([]models.DebtRecord, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.DebtRecord{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
