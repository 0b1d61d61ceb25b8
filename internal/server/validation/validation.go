// Package validation declares the inbound request shapes shared by the HTTP
// and gRPC transports and validates them with go-playground/validator.
package validation

import (
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/go-playground/validator/v10"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

type IssueCodeRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,max=15,phone"`
}

// ConfirmCodeRequest identifies the phone either directly or through the
// session token returned when the code was issued.
type ConfirmCodeRequest struct {
	PhoneNumber  string `json:"phone_number" validate:"omitempty,max=15,phone"`
	SessionToken string `json:"session_token" validate:"required_without=PhoneNumber"`
	Code         string `json:"code" validate:"required,len=4,number"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type ActivateInviteRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=6,alphanum"`
}

// Struct validates req. Failures wrap common.ErrorValidation.
func Struct(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	return nil
}
