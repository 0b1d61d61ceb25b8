package models

import "time"

// User is an account identified by phone number. InviteCode is assigned once
// at creation; ActivatedInviteCode is write-once and holds another user's code.
type User struct {
	ID                  string
	PhoneNumber         string
	InviteCode          string
	ActivatedInviteCode *string
	IsActive            bool
	IsStaff             bool
	DateJoined          time.Time
}

// HasActivatedInvite reports whether the user has already consumed an invite code.
func (u *User) HasActivatedInvite() bool {
	return u.ActivatedInviteCode != nil && *u.ActivatedInviteCode != ""
}
