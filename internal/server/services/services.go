// Package services contains server-side business logic: phone verification,
// the user directory with its referral rules, invite activation and session
// token issuance.
package services

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/dmitrijs2005/phoneauth/internal/server/services")

// CodeGenerator produces verification and invite codes.
type CodeGenerator interface {
	NumericCode(length int) string
	InviteCode(length int, exists func(code string) (bool, error)) (string, error)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
