package auth

import (
	"encoding/hex"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"golang.org/x/crypto/blake2b"
)

// refreshTokenBytes is the entropy of a refresh token before hex encoding.
const refreshTokenBytes = 32

// NewRefreshToken returns an opaque refresh token and the hash to persist.
func NewRefreshToken() (token string, hash string, err error) {
	token, err = common.MakeRandHexString(refreshTokenBytes)
	if err != nil {
		return "", "", err
	}
	return token, HashRefreshToken(token), nil
}

// HashRefreshToken returns the storage form of a refresh token. Only hashes
// are persisted so a database leak does not hand out live sessions.
func HashRefreshToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
