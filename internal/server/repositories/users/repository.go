// Package users declares the storage contract for phone-authenticated
// accounts and provides PostgreSQL and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

type Repository interface {
	// Create inserts user. It returns common.ErrorAlreadyExists when the phone
	// number or the invite code is already taken; nothing is written then.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByInviteCode(ctx context.Context, code string) (*models.User, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)

	// SetActivatedInviteCode records code on the user only if none is recorded
	// yet. It reports false when the user already had one (or does not exist).
	SetActivatedInviteCode(ctx context.Context, userID string, code string) (bool, error)

	// ListByActivatedInviteCode returns users that activated code, except excludeUserID.
	ListByActivatedInviteCode(ctx context.Context, code string, excludeUserID string) ([]*models.User, error)
}
