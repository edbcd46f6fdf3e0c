package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}) {
		t.Fatalf("1062 must be a duplicate key")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("1452 is a foreign key error")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Fatalf("plain errors are not duplicates")
	}
}

func TestLikeEscapesWildcards(t *testing.T) {
	if got := Like(" 50%_off "); got != `%50\%\_off%` {
		t.Fatalf("unexpected pattern %q", got)
	}
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE cabs").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE cabs SET status = 2 WHERE id = 1")
		return err
	})
	if err != nil {
		t.Fatalf("commit path: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	sentinel := errors.New("conflict")
	if err := WithTx(context.Background(), conn, func(tx *sql.Tx) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
