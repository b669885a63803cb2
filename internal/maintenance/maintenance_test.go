package maintenance

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestSweepDeletesRowsOlderThanRetention(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM request_history").
		WithArgs(90).
		WillReturnResult(sqlmock.NewResult(0, 3))

	s := New(db, func() int { return 90 })
	s.sweep()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSweepSkipsWhenRetentionNonPositive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, func() int { return 0 })
	s.sweep()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected no queries issued, got: %v", err)
	}
}
