package grpc

import (
	"context"

	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// ---- fakes ----

type fakeVerifier struct {
	issueResp *services.IssueResult
	issueErr  error

	confirmResp *services.ConfirmResult
	confirmErr  error

	gotPhone   string
	gotSession string
	gotCode    string
}

func (f *fakeVerifier) IssueCode(ctx context.Context, phone string) (*services.IssueResult, error) {
	f.gotPhone = phone
	return f.issueResp, f.issueErr
}

func (f *fakeVerifier) ConfirmCode(ctx context.Context, phone string, code string) (*services.ConfirmResult, error) {
	f.gotPhone, f.gotCode = phone, code
	return f.confirmResp, f.confirmErr
}

func (f *fakeVerifier) ConfirmBySession(ctx context.Context, sessionToken string, code string) (*services.ConfirmResult, error) {
	f.gotSession, f.gotCode = sessionToken, code
	return f.confirmResp, f.confirmErr
}

type fakeTokens struct {
	refreshResp *services.TokenPair
	refreshErr  error

	userID    string
	userIDErr error

	revokeErr  error
	gotRevoked string
}

func (f *fakeTokens) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeTokens) Revoke(ctx context.Context, refreshToken string) error {
	f.gotRevoked = refreshToken
	return f.revokeErr
}

func (f *fakeTokens) UserID(accessToken string) (string, error) {
	return f.userID, f.userIDErr
}

type fakeInvites struct {
	profileResp *services.Profile
	profileErr  error
	activateErr error

	gotUserID string
	gotCode   string
}

func (f *fakeInvites) Activate(ctx context.Context, userID string, code string) error {
	f.gotUserID, f.gotCode = userID, code
	return f.activateErr
}

func (f *fakeInvites) Profile(ctx context.Context, userID string) (*services.Profile, error) {
	f.gotUserID = userID
	return f.profileResp, f.profileErr
}

func newTestServer(v Verifier, t Tokens, i Invites) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", nopLogger{}, v, t, i, 0)
}
