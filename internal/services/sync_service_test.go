package services

import (
	"errors"
	"testing"

	intconfig "truckledger/internal/config"
	"truckledger/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var errSQLDown = errors.New("koneksi database terputus")

func TestNewDebtFromTripComputesTotal(t *testing.T) {
	d := NewDebtFromTrip(sampleTrip())
	if d.TotalAmount != 5_300_000 {
		t.Fatalf("total = %d, want 5300000", d.TotalAmount)
	}
	if d.IsLocked {
		t.Fatalf("new debt must start unlocked")
	}
	if d.TripCode != "T001" {
		t.Fatalf("trip code not copied, got %q", d.TripCode)
	}
}

func TestMergeTripIntoDebtPreservesLedgerFields(t *testing.T) {
	trip := sampleTrip()
	existing := NewDebtFromTrip(trip)
	existing.Note = "sisa tagihan dicek ulang"
	existing.HighlightTag = "yellow"
	existing.ReturnCargoFee = 150_000

	trip.CustomerName = "PT Maju Jaya Abadi"
	trip.BaseFreight = 5_500_000

	merged := MergeTripIntoDebt(existing, trip)

	if merged.Note != existing.Note || merged.HighlightTag != existing.HighlightTag {
		t.Fatalf("annotations must survive sync: %+v", merged)
	}
	if merged.ReturnCargoFee != 150_000 {
		t.Fatalf("ledger-entered fee overwritten: %d", merged.ReturnCargoFee)
	}
	if merged.CustomerName != "PT Maju Jaya Abadi" {
		t.Fatalf("descriptive field not refreshed from trip")
	}
	if want := int64(5_500_000 + 200_000 + 100_000 + 150_000); merged.TotalAmount != want {
		t.Fatalf("total = %d, want %d", merged.TotalAmount, want)
	}
}

func TestMergeTripIntoDebtIdempotent(t *testing.T) {
	trip := sampleTrip()
	once := MergeTripIntoDebt(NewDebtFromTrip(trip), trip)
	twice := MergeTripIntoDebt(once, trip)
	if once != twice {
		t.Fatalf("second merge changed fields:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestSyncCreatesMissingDebt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	trip := sampleTrip()
	mock.ExpectQuery("FROM trips").WillReturnRows(tripRows(trip))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows())
	mock.ExpectExec("INSERT INTO odd_debts").WillReturnResult(sqlmock.NewResult(1, 1))

	svc := SyncService{}
	res, err := svc.SyncOddDebts("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("sync error: %v", err)
	}
	if res.Created != 1 || res.Updated != 0 || res.SkippedLocked != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSyncUpdatesUnlockedDebt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	trip := sampleTrip()
	existing := NewDebtFromTrip(trip)
	existing.ID = 7

	mock.ExpectQuery("FROM trips").WillReturnRows(tripRows(trip))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(existing))
	mock.ExpectExec("UPDATE odd_debts").WillReturnResult(sqlmock.NewResult(0, 0))

	svc := SyncService{}
	res, err := svc.SyncOddDebts("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("sync error: %v", err)
	}
	if res.Created != 0 || res.Updated != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSyncSkipsLockedDebtEntirely(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	trip := sampleTrip()
	existing := NewDebtFromTrip(trip)
	existing.IsLocked = true

	mock.ExpectQuery("FROM trips").WillReturnRows(tripRows(trip))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(existing))
	// no exec expected: a locked record is never touched, not even
	// descriptive fields

	svc := SyncService{}
	res, err := svc.SyncOddDebts("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("sync error: %v", err)
	}
	if res.SkippedLocked != 1 || res.Created != 0 || res.Updated != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSyncSkipsTripWithoutCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	bad := sampleTrip()
	bad.TripCode = "  "
	good := sampleTrip()
	good.ID = 2
	good.TripCode = "T002"

	mock.ExpectQuery("FROM trips").WillReturnRows(tripRows(bad, good))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows())
	mock.ExpectExec("INSERT INTO odd_debts").WillReturnResult(sqlmock.NewResult(1, 1))

	svc := SyncService{}
	res, err := svc.SyncOddDebts("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("sync error: %v", err)
	}
	if res.SkippedInvalid != 1 || res.Created != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSyncCollectsFailuresAndContinues(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	first := sampleTrip()
	second := sampleTrip()
	second.ID = 2
	second.TripCode = "T002"

	// first insert blows up; the batch must carry on to the second trip
	mock.ExpectQuery("FROM trips").WillReturnRows(tripRows(first, second))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows())
	mock.ExpectExec("INSERT INTO odd_debts").WillReturnError(errSQLDown)
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows())
	mock.ExpectExec("INSERT INTO odd_debts").WillReturnResult(sqlmock.NewResult(2, 1))

	svc := SyncService{}
	res, err := svc.SyncOddDebts("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("sync error: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("second trip not created: %+v", res)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "T001" {
		t.Fatalf("failed codes = %v, want [T001]", res.Failed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateOnlyLeavesExistingAlone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	trip := sampleTrip()
	existing := NewDebtFromTrip(trip)

	mock.ExpectQuery("FROM trips").WillReturnRows(tripRows(trip))
	mock.ExpectQuery("FROM odd_debts").WillReturnRows(debtRows(existing))
	// creation path: no update exec for an existing record

	svc := SyncService{}
	res, err := svc.CreateOddDebts("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if res.Created != 0 || res.Updated != 0 || res.Existing != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSyncRejectsBadDateRange(t *testing.T) {
	svc := SyncService{}
	if _, err := svc.SyncOddDebts("2025-02-01", "2025-01-01"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.SyncOddDebts("banana", "2025-01-01"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}
