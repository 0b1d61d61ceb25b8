package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_invite_code_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "any constraint", err: unique, want: true},
		{name: "matching constraint", err: unique, constraint: "users_invite_code_key", want: true},
		{name: "other constraint", err: unique, constraint: "users_phone_number_key", want: false},
		{name: "wrapped", err: fmt.Errorf("db error: %w", unique), want: true},
		{name: "different code", err: &pgconn.PgError{Code: "23514"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}

func TestIsCheckViolation(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23514", ConstraintName: "users_no_self_referral"})

	assert.True(t, IsCheckViolation(err, ""))
	assert.True(t, IsCheckViolation(err, "users_no_self_referral"))
	assert.False(t, IsCheckViolation(err, "other"))
	assert.False(t, IsUniqueViolation(err, ""))
}
