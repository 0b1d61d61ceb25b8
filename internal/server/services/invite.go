package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/events"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

// Profile is what an authenticated user sees about themselves.
type Profile struct {
	User          *models.User
	InvitedPhones []string
}

// InviteService is the entry point for referral operations.
type InviteService struct {
	directory *Directory
	publisher events.Publisher
	logger    logging.Logger
}

func NewInviteService(d *Directory, p events.Publisher, l logging.Logger) *InviteService {
	return &InviteService{directory: d, publisher: p, logger: l.With("module", "invite")}
}

// Activate applies code as the invite code of userID. Besides the directory
// errors it returns common.ErrorUnauthorized when the user no longer exists.
func (s *InviteService) Activate(ctx context.Context, userID string, code string) (err error) {
	ctx, span := tracer.Start(ctx, "InviteService.Activate")
	defer func() { endSpan(span, err) }()

	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}

	inviter, err := s.directory.ActivateInvite(ctx, user, code)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "invite code activated", "user_id", user.ID, "inviter_id", inviter.ID)
	ev := events.InviteActivated{UserID: user.ID, InviterID: inviter.ID, InviteCode: code, At: time.Now()}
	if err := s.publisher.Publish(ctx, events.KeyInviteActivated, ev); err != nil {
		s.logger.Warn(ctx, "event publish failed", "key", events.KeyInviteActivated, "error", err)
	}

	return nil
}

// Profile returns the user with the phone numbers of everyone they invited.
func (s *InviteService) Profile(ctx context.Context, userID string) (p *Profile, err error) {
	ctx, span := tracer.Start(ctx, "InviteService.Profile")
	defer func() { endSpan(span, err) }()

	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	invited, err := s.directory.ListInvitedUsers(ctx, user.InviteCode, user.ID)
	if err != nil {
		return nil, err
	}

	phones := make([]string, 0, len(invited))
	for _, u := range invited {
		phones = append(phones, u.PhoneNumber)
	}

	return &Profile{User: user, InvitedPhones: phones}, nil
}

func (s *InviteService) user(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.directory.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}
