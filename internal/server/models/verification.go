package models

import "time"

// VerificationRequest is a pending one-time code for a phone number.
type VerificationRequest struct {
	PhoneNumber string
	Code        string
	IssuedAt    time.Time
}
