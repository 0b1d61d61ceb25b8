package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/dbx"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

const (
	userColumns              = `id, phone_number, invite_code, activated_invite_code, is_active, is_staff, date_joined`
	constraintNoSelfReferral = "users_no_self_referral"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var activated sql.NullString
	if err := row.Scan(&user.ID, &user.PhoneNumber, &user.InviteCode, &activated,
		&user.IsActive, &user.IsStaff, &user.DateJoined); err != nil {
		return nil, err
	}
	if activated.Valid {
		user.ActivatedInviteCode = &activated.String
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, phone_number, invite_code, is_active, is_staff)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT DO NOTHING
		 RETURNING date_joined
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.PhoneNumber, user.InviteCode, user.IsActive, user.IsStaff).Scan(&user.DateJoined)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.getOne(ctx, `phone_number = $1`, phone)
}

func (r *PostgresRepository) GetByInviteCode(ctx context.Context, code string) (*models.User, error) {
	return r.getOne(ctx, `invite_code = $1`, code)
}

func (r *PostgresRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE invite_code = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) SetActivatedInviteCode(ctx context.Context, userID string, code string) (bool, error) {
	query :=
		`UPDATE users SET activated_invite_code = $2
		 WHERE id = $1 AND activated_invite_code IS NULL
		 `

	res, err := r.db.ExecContext(ctx, query, userID, code)
	if err != nil {
		if dbx.IsCheckViolation(err, constraintNoSelfReferral) {
			return false, common.ErrSelfReferral
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) ListByActivatedInviteCode(ctx context.Context, code string, excludeUserID string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE activated_invite_code = $1 AND id <> $2
		 ORDER BY date_joined, phone_number
		 `

	rows, err := r.db.QueryContext(ctx, query, code, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
