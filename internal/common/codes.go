package common

import "errors"

// API error codes reported by the HTTP and gRPC transports.
const (
	CodeInvalidFields       = "INVALID_FIELDS"
	CodeInvalidCode         = "INVALID_CODE"
	CodeAlreadyActivated    = "ALREADY_ACTIVATED"
	CodeInvalidInviteCode   = "INVALID_INVITE_CODE"
	CodeSelfReferral        = "SELF_REFERRAL"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeRefreshTokenExpired = "REFRESH_TOKEN_EXPIRED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeServerError         = "SERVER_ERROR"
)

// ErrorCode classifies err. Errors of no known kind are CodeServerError.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrorValidation):
		return CodeInvalidFields
	case errors.Is(err, ErrInvalidCode):
		return CodeInvalidCode
	case errors.Is(err, ErrAlreadyActivated):
		return CodeAlreadyActivated
	case errors.Is(err, ErrInvalidInviteCode):
		return CodeInvalidInviteCode
	case errors.Is(err, ErrSelfReferral):
		return CodeSelfReferral
	case errors.Is(err, ErrRefreshTokenExpired):
		return CodeRefreshTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return CodeInvalidRefreshToken
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrorUnauthorized):
		return CodeUnauthorized
	}
	return CodeServerError
}

var codeMessages = map[string]string{
	CodeInvalidFields:       "invalid request fields",
	CodeInvalidCode:         "invalid verification code",
	CodeAlreadyActivated:    "invite code already activated",
	CodeInvalidInviteCode:   "invite code does not exist",
	CodeSelfReferral:        "cannot activate your own invite code",
	CodeInvalidRefreshToken: "invalid refresh token",
	CodeRefreshTokenExpired: "refresh token expired",
	CodeUnauthorized:        "unauthorized",
	CodeServerError:         "internal server error",
}

// ErrorMessage returns the client-facing message for an API error code.
func ErrorMessage(code string) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return codeMessages[CodeServerError]
}
