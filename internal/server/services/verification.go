package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/auth"
	"github.com/dmitrijs2005/phoneauth/internal/server/config"
	"github.com/dmitrijs2005/phoneauth/internal/server/events"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
	"github.com/dmitrijs2005/phoneauth/internal/server/notify"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/repomanager"
)

// IssueResult is returned by IssueCode. Code is empty unless codes are
// exposed to clients (development mode).
type IssueResult struct {
	Code         string
	SessionToken string
}

// ConfirmResult describes a successful confirmation.
type ConfirmResult struct {
	User    *models.User
	Created bool
	Tokens  *TokenPair
}

// VerificationService runs the phone verification flow: a code is issued for
// a phone number and confirming it signs the owner in, registering them on
// first use.
type VerificationService struct {
	repos           repomanager.RepositoryManager
	directory       *Directory
	tokens          *TokenService
	codes           CodeGenerator
	sender          notify.Sender
	publisher       events.Publisher
	logger          logging.Logger
	jwtSecret       []byte
	sessionValidity time.Duration
	codeTTL         time.Duration
	exposeCodes     bool
	now             func() time.Time
}

func NewVerificationService(m repomanager.RepositoryManager, d *Directory, ts *TokenService, codes CodeGenerator,
	sender notify.Sender, p events.Publisher, l logging.Logger, cfg *config.Config) *VerificationService {
	return &VerificationService{
		repos:           m,
		directory:       d,
		tokens:          ts,
		codes:           codes,
		sender:          sender,
		publisher:       p,
		logger:          l.With("module", "verification"),
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.VerificationSessionValidity,
		codeTTL:         cfg.VerificationCodeTTL,
		exposeCodes:     cfg.ExposeCodes,
		now:             time.Now,
	}
}

// IssueCode generates a code for phone, replacing any pending one, and hands
// it to the sender. A code the sender fails to deliver is withdrawn.
func (s *VerificationService) IssueCode(ctx context.Context, phone string) (res *IssueResult, err error) {
	ctx, span := tracer.Start(ctx, "VerificationService.IssueCode")
	defer func() { endSpan(span, err) }()

	code := s.codes.NumericCode(common.VerificationCodeLength)

	if err := s.repos.Verifications().Issue(ctx, phone, code); err != nil {
		return nil, fmt.Errorf("error storing verification code: %w", err)
	}

	if err := s.sender.SendCode(ctx, phone, code); err != nil {
		// withdraw the undelivered code unless a newer one replaced it
		if _, werr := s.repos.Verifications().Consume(ctx, phone, code); werr != nil && !errors.Is(werr, common.ErrorNotFound) {
			s.logger.Warn(ctx, "undelivered code not withdrawn", "error", werr)
		}
		return nil, fmt.Errorf("error sending verification code: %w", err)
	}

	session, err := auth.GenerateVerificationToken(phone, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	res = &IssueResult{SessionToken: session}
	if s.exposeCodes {
		res.Code = code
	}
	return res, nil
}

// ConfirmCode consumes the pending code for phone and signs the owner in,
// creating the user on first confirmation. A missing, mismatching or expired
// code yields common.ErrInvalidCode.
func (s *VerificationService) ConfirmCode(ctx context.Context, phone string, code string) (res *ConfirmResult, err error) {
	ctx, span := tracer.Start(ctx, "VerificationService.ConfirmCode")
	defer func() { endSpan(span, err) }()

	var expired bool
	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		req, err := repos.Verifications().Consume(ctx, phone, code)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidCode
			}
			return fmt.Errorf("error consuming verification code: %w", err)
		}
		if s.codeTTL > 0 && s.now().Sub(req.IssuedAt) > s.codeTTL {
			// commit so the expired code is gone
			expired = true
			return nil
		}

		user, created, err := s.directory.withRepo(repos.Users()).GetOrCreate(ctx, phone)
		if err != nil {
			return err
		}

		pair, err := s.tokens.issuePair(ctx, repos.RefreshTokens(), user.ID)
		if err != nil {
			return err
		}

		res = &ConfirmResult{User: user, Created: created, Tokens: pair}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, common.ErrInvalidCode
	}

	if res.Created {
		s.logger.Info(ctx, "user registered", "user_id", res.User.ID)
		s.publish(ctx, events.KeyUserCreated, events.UserCreated{
			UserID:      res.User.ID,
			PhoneNumber: res.User.PhoneNumber,
			InviteCode:  res.User.InviteCode,
			At:          res.User.DateJoined,
		})
	}

	return res, nil
}

// ConfirmBySession confirms code for the phone bound to a session token
// returned by IssueCode.
func (s *VerificationService) ConfirmBySession(ctx context.Context, sessionToken string, code string) (*ConfirmResult, error) {
	phone, err := auth.GetPhoneFromVerificationToken(sessionToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidCode, err)
	}
	return s.ConfirmCode(ctx, phone, code)
}

func (s *VerificationService) publish(ctx context.Context, key string, payload any) {
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.logger.Warn(ctx, "event publish failed", "key", key, "error", err)
	}
}
