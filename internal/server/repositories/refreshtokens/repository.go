// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage. Tokens are addressed by
// their hash; the plaintext token never reaches storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token hash for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error

	// Find looks up a refresh token by hash. It returns common.ErrorNotFound
	// when the token is absent.
	Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Delete removes a refresh token and reports whether it existed. Deleting
	// a non-existent token is not an error.
	Delete(ctx context.Context, tokenHash string) (bool, error)
}
