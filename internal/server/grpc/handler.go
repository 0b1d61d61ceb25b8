package grpc

import (
	"context"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/server/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func field(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

func reply(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, common.ErrorMessage(common.CodeServerError))
	}
	return out, nil
}

func (s *GRPCServer) IssueCode(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {

	req := validation.IssueCodeRequest{PhoneNumber: field(in, "phone_number")}
	if err := validation.Struct(&req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	res, err := s.verification.IssueCode(ctx, req.PhoneNumber)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := map[string]any{
		"message":       "verification code sent",
		"session_token": res.SessionToken,
	}
	if res.Code != "" {
		out["code"] = res.Code
	}
	return reply(out)
}

func (s *GRPCServer) ConfirmCode(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {

	req := validation.ConfirmCodeRequest{
		PhoneNumber:  field(in, "phone_number"),
		SessionToken: field(in, "session_token"),
		Code:         field(in, "code"),
	}
	if err := validation.Struct(&req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	confirm := s.verification.ConfirmCode
	subject := req.PhoneNumber
	if subject == "" {
		confirm, subject = s.verification.ConfirmBySession, req.SessionToken
	}

	res, err := confirm(ctx, subject, req.Code)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Signed in", "user_id", res.User.ID, "new_user", res.Created)

	return reply(map[string]any{
		"access":      res.Tokens.AccessToken,
		"refresh":     res.Tokens.RefreshToken,
		"is_new_user": res.Created,
	})
}

func (s *GRPCServer) RefreshToken(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {

	req := validation.RefreshRequest{Refresh: field(in, "refresh")}
	if err := validation.Struct(&req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	pair, err := s.tokens.Refresh(ctx, req.Refresh)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return reply(map[string]any{"access": pair.AccessToken, "refresh": pair.RefreshToken})
}

func (s *GRPCServer) Logout(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {

	req := validation.RefreshRequest{Refresh: field(in, "refresh")}
	if err := validation.Struct(&req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.tokens.Revoke(ctx, req.Refresh); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return reply(map[string]any{"message": "logged out"})
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing user")
	}

	p, err := s.invites.Profile(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	var activated any
	if p.User.HasActivatedInvite() {
		activated = *p.User.ActivatedInviteCode
	}

	invited := make([]any, 0, len(p.InvitedPhones))
	for _, phone := range p.InvitedPhones {
		invited = append(invited, phone)
	}

	return reply(map[string]any{
		"phone_number":          p.User.PhoneNumber,
		"invite_code":           p.User.InviteCode,
		"activated_invite_code": activated,
		"invited_users":         invited,
	})
}

func (s *GRPCServer) ActivateInvite(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing user")
	}

	req := validation.ActivateInviteRequest{InviteCode: field(in, "invite_code")}
	if err := validation.Struct(&req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.invites.Activate(ctx, userID, req.InviteCode); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return reply(map[string]any{"message": "invite code activated"})
}
