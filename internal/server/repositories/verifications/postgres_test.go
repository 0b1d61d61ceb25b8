package verifications

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/phoneauth/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	issueQ   = `(?s)^\s*INSERT\s+INTO\s+verification_codes\s*\(phone_number,\s*code,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*now\(\)\)\s*ON\s+CONFLICT\s*\(phone_number\)\s*DO\s+UPDATE\s+SET\s+code\s*=\s*EXCLUDED\.code,\s*created_at\s*=\s*EXCLUDED\.created_at\s*$`
	consumeQ = `(?s)^\s*DELETE\s+FROM\s+verification_codes\s+WHERE\s+phone_number\s*=\s*\$1\s+AND\s+code\s*=\s*\$2\s+RETURNING\s+created_at\s*$`
)

func TestIssue_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(issueQ).
		WithArgs("+15550001", "4821").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Issue(context.Background(), "+15550001", "4821"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIssue_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(issueQ).
		WithArgs("+15550001", "4821").
		WillReturnError(errors.New("db down"))

	err := repo.Issue(context.Background(), "+15550001", "4821")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestConsume_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(consumeQ).
		WithArgs("+15550001", "4821").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(issued))

	got, err := repo.Consume(context.Background(), "+15550001", "4821")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PhoneNumber != "+15550001" || got.Code != "4821" || !got.IssuedAt.Equal(issued) {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestConsume_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(consumeQ).
		WithArgs("+15550002", "0000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Consume(context.Background(), "+15550002", "0000")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestConsume_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(consumeQ).
		WithArgs("+15550001", "4821").
		WillReturnError(errors.New("db err"))

	_, err := repo.Consume(context.Background(), "+15550001", "4821")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
