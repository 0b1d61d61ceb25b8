// Package auth issues and parses the HS256 tokens used by the server:
// access tokens carrying a user id and verification-session tokens carrying
// the phone number a code was sent to.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	audienceAccess       = "access"
	audienceVerification = "verification"
)

// Claims is the access token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// VerificationClaims binds a pending verification to a phone number.
type VerificationClaims struct {
	jwt.RegisteredClaims
	PhoneNumber string `json:"phone_number"`
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceAccess},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}
	if err := parse(tokenString, claims, audienceAccess, secretKey); err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}

// GenerateVerificationToken returns a short-lived token naming the phone a
// verification code was issued for.
func GenerateVerificationToken(phoneNumber string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, VerificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceVerification},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		PhoneNumber: phoneNumber,
	})

	return token.SignedString(secretKey)
}

func GetPhoneFromVerificationToken(tokenString string, secretKey []byte) (string, error) {
	claims := &VerificationClaims{}
	if err := parse(tokenString, claims, audienceVerification, secretKey); err != nil {
		return "", err
	}
	if claims.PhoneNumber == "" {
		return "", common.ErrInvalidToken
	}
	return claims.PhoneNumber, nil
}

func parse(tokenString string, claims jwt.Claims, audience string, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}
