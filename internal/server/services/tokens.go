package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/server/auth"
	"github.com/dmitrijs2005/phoneauth/internal/server/config"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService mints JWT access tokens plus server-stored refresh tokens,
// rotates refresh tokens and revokes them on logout.
type TokenService struct {
	repos                        repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewTokenService constructs a TokenService using repositories and server config.
func NewTokenService(m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		repos:                        m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Refresh validates a refresh token, rotates it transactionally and returns a
// fresh TokenPair. Unknown tokens yield common.ErrInvalidToken, expired ones
// common.ErrRefreshTokenExpired.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (pair *TokenPair, err error) {
	ctx, span := tracer.Start(ctx, "TokenService.Refresh")
	defer func() { endSpan(span, err) }()

	hash := auth.HashRefreshToken(refreshToken)

	token, err := s.repos.RefreshTokens().Find(ctx, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		repo := repos.RefreshTokens()
		deleted, err := repo.Delete(ctx, hash)
		if err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		if !deleted {
			// rotated by a concurrent request
			return common.ErrInvalidToken
		}
		pair, err = s.issuePair(ctx, repo, token.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Revoke deletes the refresh token. Unknown tokens are ignored.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	if _, err := s.repos.RefreshTokens().Delete(ctx, auth.HashRefreshToken(refreshToken)); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// UserID returns the user an access token was issued to.
func (s *TokenService) UserID(accessToken string) (string, error) {
	return auth.GetUserIDFromToken(accessToken, s.jwtSecret)
}

func (s *TokenService) issuePair(ctx context.Context, repo refreshtokens.Repository, userID string) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, hash, err := auth.NewRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := repo.Create(ctx, userID, hash, s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
