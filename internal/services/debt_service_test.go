package services

import (
	"testing"

	intconfig "truckledger/internal/config"
	"truckledger/internal/domain"
	"truckledger/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateCostFieldsRejectsLockedRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	locked := NewDebtFromTrip(sampleTrip())
	locked.IsLocked = true

	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(locked))
	// no exec expected: the lock check happens before any write

	svc := DebtService{}
	_, err = svc.UpdateCostFields("T001", map[string]any{"return_cargo_fee": 150_000})
	if !domain.IsLocked(err) {
		t.Fatalf("expected locked error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCostFieldsRecomputesTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	rec := NewDebtFromTrip(sampleTrip())

	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(rec))
	mock.ExpectExec("UPDATE odd_debts").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := DebtService{}
	updated, err := svc.UpdateCostFields("T001", map[string]any{"return_cargo_fee": 150_000})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.ReturnCargoFee != 150_000 {
		t.Fatalf("fee not applied: %+v", updated)
	}
	if want := int64(5_300_000 + 150_000); updated.TotalAmount != want {
		t.Fatalf("total = %d, want %d", updated.TotalAmount, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCostFieldsAcceptsCamelCaseAndStrings(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	rec := NewDebtFromTrip(sampleTrip())

	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(rec))
	mock.ExpectExec("UPDATE odd_debts").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := DebtService{}
	updated, err := svc.UpdateCostFields("T001", map[string]any{"otherFee": "1.250.000"})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.OtherFee != 1_250_000 {
		t.Fatalf("string cost not parsed: %+v", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCostFieldsDetectsLockDuringWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	rec := NewDebtFromTrip(sampleTrip())
	nowLocked := rec
	nowLocked.IsLocked = true

	// the record gets locked between the pre-check and the guarded UPDATE:
	// zero affected rows, and the re-read sees the lock
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(rec))
	mock.ExpectExec("UPDATE odd_debts").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(nowLocked))

	svc := DebtService{}
	if _, err := svc.UpdateCostFields("T001", map[string]any{"other_fee": 50_000}); !domain.IsLocked(err) {
		t.Fatalf("expected locked error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateCostFieldsRejectsUnknownColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	rec := NewDebtFromTrip(sampleTrip())
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(rec))

	svc := DebtService{}
	if _, err := svc.UpdateCostFields("T001", map[string]any{"customer_name": "X"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateAnnotationsAllowedWhileLocked(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// annotations bypass the lock: the repo update carries no is_locked guard
	mock.ExpectExec("UPDATE odd_debts").WillReturnResult(sqlmock.NewResult(0, 1))

	note := "pembayaran dijanjikan minggu depan"
	svc := DebtService{}
	if err := svc.UpdateAnnotations("T001", &note, nil); err != nil {
		t.Fatalf("annotation update error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateAnnotationsRequiresAChange(t *testing.T) {
	svc := DebtService{}
	if err := svc.UpdateAnnotations("T001", nil, nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListJoinsPerTripPayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	rec := NewDebtFromTrip(sampleTrip())

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(rec))
	mock.ExpectQuery("FROM odd_payments").
		WillReturnRows(sqlmock.NewRows([]string{"trip_code", "sum"}).AddRow("T001", 5_300_000))

	svc := DebtService{}
	out, err := svc.List(repositories.DebtFilter{}, 1, 50, "")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if out.Total != 1 || len(out.Items) != 1 {
		t.Fatalf("unexpected page: %+v", out)
	}
	if got := out.Items[0].Balance; got.Status != domain.StatusComplete || got.Remaining != 0 {
		t.Fatalf("unexpected balance: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
