// Package events publishes domain events about users and referrals.
package events

import (
	"context"
	"time"
)

// Routing keys.
const (
	KeyUserCreated     = "user.created"
	KeyInviteActivated = "invite.activated"
)

type UserCreated struct {
	UserID      string    `json:"user_id"`
	PhoneNumber string    `json:"phone_number"`
	InviteCode  string    `json:"invite_code"`
	At          time.Time `json:"at"`
}

type InviteActivated struct {
	UserID     string    `json:"user_id"`
	InviterID  string    `json:"inviter_id"`
	InviteCode string    `json:"invite_code"`
	At         time.Time `json:"at"`
}

// Publisher delivers an event payload under a routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                              { return nil }
