// Package verifications stores pending one-time phone verification codes.
package verifications

import (
	"context"

	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

// Repository keeps at most one pending code per phone number.
type Repository interface {
	// Issue stores code for phone, replacing any pending one.
	Issue(ctx context.Context, phone string, code string) error

	// Consume atomically removes the pending request matching phone and code
	// and returns it. It returns common.ErrorNotFound when there is no match;
	// a mismatching code leaves the stored request untouched.
	Consume(ctx context.Context, phone string, code string) (*models.VerificationRequest, error)
}
