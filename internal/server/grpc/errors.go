package grpc

import (
	"context"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "phoneauth"

var grpcCodes = map[string]codes.Code{
	common.CodeInvalidFields:       codes.InvalidArgument,
	common.CodeInvalidCode:         codes.InvalidArgument,
	common.CodeAlreadyActivated:    codes.InvalidArgument,
	common.CodeInvalidInviteCode:   codes.InvalidArgument,
	common.CodeSelfReferral:        codes.InvalidArgument,
	common.CodeInvalidRefreshToken: codes.Unauthenticated,
	common.CodeRefreshTokenExpired: codes.Unauthenticated,
	common.CodeUnauthorized:        codes.Unauthenticated,
}

// toStatus converts a service error into a gRPC status carrying the API
// error code as ErrorInfo reason.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	reason := common.ErrorCode(err)

	code, ok := grpcCodes[reason]
	if !ok {
		s.logger.Error(ctx, "request failed", "error", err)
		code = codes.Internal
	} else {
		s.logger.Debug(ctx, "request rejected", "error", err)
	}

	st := status.New(code, common.ErrorMessage(reason))
	if detailed, derr := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: errorDomain}); derr == nil {
		st = detailed
	}
	return st.Err()
}

// errorReason extracts the API error code attached by toStatus.
func errorReason(err error) string {
	for _, d := range status.Convert(err).Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
