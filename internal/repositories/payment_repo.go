package repositories

import (
	"database/sql"
	"strings"

	intconfig "truckledger/internal/config"
	"truckledger/internal/domain/models"
)

// PaymentRepository owns the append-only odd_payments ledger. Rows are never
// updated or deleted, so concurrent appends need no locking.
type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id,
       COALESCE(alloc_mode,''),
       COALESCE(customer_code,''),
       COALESCE(trip_code,''),
       COALESCE(amount,0),
       COALESCE(method,''),
       COALESCE(note,''),
       COALESCE(created_at,'')`

func scanPayment(row interface{ Scan(...any) error }) (models.PaymentEntry, error) {
	var p models.PaymentEntry
	err := row.Scan(
		&p.ID,
		&p.AllocMode,
		&p.CustomerCode,
		&p.TripCode,
		&p.Amount,
		&p.Method,
		&p.Note,
		&p.CreatedAt,
	)
	return p, err
}

// Insert appends one ledger entry and returns its id.
func (r PaymentRepository) Insert(p models.PaymentEntry) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO odd_payments (alloc_mode, customer_code, trip_code, amount, method, note, created_at)
		VALUES (?,?,?,?,?,?,NOW())`,
		p.AllocMode, p.CustomerCode, p.TripCode, p.Amount, p.Method, p.Note,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByTripCode returns the trip-mode payment history of one trip.
func (r PaymentRepository) ListByTripCode(tripCode string) ([]models.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + ` FROM odd_payments WHERE alloc_mode=? AND trip_code=? ORDER BY created_at ASC, id ASC`
	return r.queryPayments(query, []any{models.AllocTrip, strings.TrimSpace(tripCode)})
}

// ListByCustomerCode returns the customer-mode entries for one customer.
func (r PaymentRepository) ListByCustomerCode(customerCode string) ([]models.PaymentEntry, error) {
	query := `SELECT ` + paymentColumns + ` FROM odd_payments WHERE alloc_mode=? AND customer_code=? ORDER BY created_at ASC, id ASC`
	return r.queryPayments(query, []any{models.AllocCustomer, strings.TrimSpace(customerCode)})
}

// SumTripPayments totals trip-mode payments for one trip code.
func (r PaymentRepository) SumTripPayments(tripCode string) (int64, error) {
	var sum int64
	err := r.db().QueryRow(`SELECT COALESCE(SUM(amount),0) FROM odd_payments WHERE alloc_mode=? AND trip_code=?`,
		models.AllocTrip, strings.TrimSpace(tripCode)).Scan(&sum)
	return sum, err
}

// SumTripPaymentsIn returns paid totals keyed by trip code for a page of
// debt records in one query.
func (r PaymentRepository) SumTripPaymentsIn(tripCodes []string) (map[string]int64, error) {
	out := map[string]int64{}
	if len(tripCodes) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(tripCodes))
	args := make([]any, 0, len(tripCodes)+1)
	args = append(args, models.AllocTrip)
	for i, code := range tripCodes {
		placeholders[i] = "?"
		args = append(args, strings.TrimSpace(code))
	}

	query := `SELECT trip_code, COALESCE(SUM(amount),0)
		FROM odd_payments
		WHERE alloc_mode=? AND trip_code IN (` + strings.Join(placeholders, ",") + `)
		GROUP BY trip_code`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var sum int64
		if err := rows.Scan(&code, &sum); err != nil {
			return out, err
		}
		out[code] = sum
	}
	return out, rows.Err()
}

// SumCustomerPaymentsGrouped returns customer-mode paid totals keyed by
// customer code, for the debt summary report.
func (r PaymentRepository) SumCustomerPaymentsGrouped() (map[string]int64, error) {
	rows, err := r.db().Query(`SELECT customer_code, COALESCE(SUM(amount),0)
		FROM odd_payments
		WHERE alloc_mode=?
		GROUP BY customer_code`, models.AllocCustomer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var code string
		var sum int64
		if err := rows.Scan(&code, &sum); err != nil {
			return out, err
		}
		out[code] = sum
	}
	return out, rows.Err()
}

func (r PaymentRepository) queryPayments(query string, args []any) ([]models.PaymentEntry, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PaymentEntry{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
