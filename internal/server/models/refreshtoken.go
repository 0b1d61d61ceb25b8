package models

import "time"

// RefreshToken is the stored form of an issued refresh token. Only the hash
// of the token is kept; the token itself is shown to the client once.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the token can no longer be exchanged at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}
