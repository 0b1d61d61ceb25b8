// Package common defines shared constants and sentinel errors used across
// the phoneauth server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Verification errors.
	ErrInvalidCode = errors.New("invalid verification code")

	// Referral errors.
	ErrAlreadyActivated  = errors.New("invite code already activated")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrSelfReferral      = errors.New("cannot activate own invite code")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
