package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func TestRunInTxCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL lock_timeout = '3000ms'").WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectExec("SET LOCAL statement_timeout = '10000ms'").WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectExec("UPDATE bookings").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	opts := TxOptions{LockTimeout: 3 * time.Second, StatementTimeout: 10 * time.Second}
	err = RunInTx(context.Background(), mock, opts, func(q Querier) error {
		_, err := q.Exec(context.Background(), "UPDATE bookings SET status = 'matched'")
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = RunInTx(context.Background(), mock, TxOptions{}, func(q Querier) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock: %v", err)
	}
	defer mock.Close()

	if !strings.Contains(Schema(), "bookings_no_committed_overlap") {
		t.Fatal("schema is missing the overlap constraint")
	}

	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS btree_gist").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	if err := EnsureSchema(context.Background(), mock); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
