package verifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/dbx"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

// PostgresRepository relies on phone_number being the primary key, so
// concurrent issues for one phone serialize on the row.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Issue(ctx context.Context, phone string, code string) error {
	query := `
		INSERT INTO verification_codes (phone_number, code, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (phone_number) DO UPDATE
		SET code = EXCLUDED.code, created_at = EXCLUDED.created_at
	`
	if _, err := r.db.ExecContext(ctx, query, phone, code); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Consume(ctx context.Context, phone string, code string) (*models.VerificationRequest, error) {
	query := `
		DELETE FROM verification_codes
		WHERE phone_number = $1 AND code = $2
		RETURNING created_at
	`
	req := &models.VerificationRequest{PhoneNumber: phone, Code: code}
	if err := r.db.QueryRowContext(ctx, query, phone, code).Scan(&req.IssuedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return req, nil
}
