package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on inbound requests.
const AccessTokenHeaderName = "access_token"

const (
	// VerificationCodeLength is the number of digits in a phone verification code.
	VerificationCodeLength = 4
	// InviteCodeLength is the number of characters in a user's invite code.
	InviteCodeLength = 6
	// MaxPhoneNumberLength bounds the stored phone number.
	MaxPhoneNumberLength = 15
)
