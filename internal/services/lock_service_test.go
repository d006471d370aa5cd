package services

import (
	"testing"

	intconfig "truckledger/internal/config"
	"truckledger/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestToggleLockFlipsFlag(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	rec := NewDebtFromTrip(sampleTrip())

	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(rec))
	mock.ExpectExec("UPDATE odd_debts SET is_locked").
		WithArgs(true, "T001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := LockService{}
	out, err := svc.ToggleLock("T001")
	if err != nil {
		t.Fatalf("toggle error: %v", err)
	}
	if !out.IsLocked {
		t.Fatalf("expected record locked after toggle: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestToggleLockUnknownRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows())

	svc := LockService{}
	if _, err := svc.ToggleLock("T404"); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLockRangeIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// the is_locked=0 guard makes a second run a no-op
	mock.ExpectExec("UPDATE odd_debts SET is_locked=1").
		WithArgs("2025-01-01", "2025-01-31").
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := LockService{}
	locked, err := svc.LockRange("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("lock range error: %v", err)
	}
	if locked != 0 {
		t.Fatalf("locked = %d, want 0", locked)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLockRangeRejectsBadRange(t *testing.T) {
	svc := LockService{}
	if _, err := svc.LockRange("2025-03-01", "2025-02-01"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
