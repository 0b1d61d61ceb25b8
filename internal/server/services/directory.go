package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/users"
	"github.com/google/uuid"
)

// maxCreateAttempts bounds retries when a freshly generated invite code loses
// a race against another insert.
const maxCreateAttempts = 5

// Directory owns user lookup, creation and the referral rules.
type Directory struct {
	users  users.Repository
	codes  CodeGenerator
	logger logging.Logger
}

func NewDirectory(repo users.Repository, codes CodeGenerator, l logging.Logger) *Directory {
	return &Directory{users: repo, codes: codes, logger: l.With("module", "directory")}
}

// withRepo returns a copy of d bound to repo, typically a transactional one.
func (d *Directory) withRepo(repo users.Repository) *Directory {
	return &Directory{users: repo, codes: d.codes, logger: d.logger}
}

func (d *Directory) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return d.users.GetByPhone(ctx, phone)
}

func (d *Directory) FindByInviteCode(ctx context.Context, code string) (*models.User, error) {
	return d.users.GetByInviteCode(ctx, code)
}

func (d *Directory) FindByID(ctx context.Context, id string) (*models.User, error) {
	return d.users.GetByID(ctx, id)
}

// CreateUser creates a user for phone with a fresh invite code. It returns
// common.ErrorAlreadyExists if the phone number is already registered.
func (d *Directory) CreateUser(ctx context.Context, phone string) (*models.User, error) {
	exists := func(code string) (bool, error) {
		return d.users.InviteCodeExists(ctx, code)
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		code, err := d.codes.InviteCode(common.InviteCodeLength, exists)
		if err != nil {
			return nil, fmt.Errorf("error generating invite code: %w", err)
		}

		user, err := d.users.Create(ctx, &models.User{
			ID:          uuid.NewString(),
			PhoneNumber: phone,
			InviteCode:  code,
			IsActive:    true,
		})
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("error creating user: %w", err)
		}

		// Either the phone or the invite code is taken.
		_, err = d.users.GetByPhone(ctx, phone)
		if err == nil {
			return nil, common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("error searching user: %w", err)
		}

		d.logger.Warn(ctx, "invite code taken, retrying", "attempt", attempt)
	}

	return nil, fmt.Errorf("%w: no free invite code after %d attempts", common.ErrorInternal, maxCreateAttempts)
}

// GetOrCreate returns the user registered for phone, creating it when absent.
// created reports whether this call created the user.
func (d *Directory) GetOrCreate(ctx context.Context, phone string) (user *models.User, created bool, err error) {
	user, err = d.users.GetByPhone(ctx, phone)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, false, fmt.Errorf("error searching user: %w", err)
	}

	user, err = d.CreateUser(ctx, phone)
	if errors.Is(err, common.ErrorAlreadyExists) {
		// a concurrent request registered the phone first
		user, err = d.users.GetByPhone(ctx, phone)
		if err != nil {
			return nil, false, fmt.Errorf("error searching user: %w", err)
		}
		return user, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return user, true, nil
}

// ActivateInvite records that user was invited with code and returns the
// inviter. It fails with common.ErrAlreadyActivated, common.ErrInvalidInviteCode
// or common.ErrSelfReferral without changing anything.
func (d *Directory) ActivateInvite(ctx context.Context, user *models.User, code string) (*models.User, error) {
	if user.HasActivatedInvite() {
		return nil, common.ErrAlreadyActivated
	}

	inviter, err := d.users.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("error searching invite code: %w", err)
	}

	if inviter.ID == user.ID {
		return nil, common.ErrSelfReferral
	}

	applied, err := d.users.SetActivatedInviteCode(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, common.ErrSelfReferral) {
			return nil, err
		}
		return nil, fmt.Errorf("error activating invite code: %w", err)
	}
	if !applied {
		return nil, common.ErrAlreadyActivated
	}

	user.ActivatedInviteCode = &code
	return inviter, nil
}

// ListInvitedUsers returns the users that activated inviterCode, except excludeUserID.
func (d *Directory) ListInvitedUsers(ctx context.Context, inviterCode string, excludeUserID string) ([]*models.User, error) {
	list, err := d.users.ListByActivatedInviteCode(ctx, inviterCode, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing invited users: %w", err)
	}
	return list, nil
}
