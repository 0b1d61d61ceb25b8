package rest

import (
	"fmt"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/server/services"
	"github.com/dmitrijs2005/phoneauth/internal/server/validation"
	"github.com/gofiber/fiber/v2"
)

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	return validation.Struct(req)
}

func (s *HTTPServer) issueCode(c *fiber.Ctx) error {
	var req validation.IssueCodeRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	res, err := s.verification.IssueCode(c.UserContext(), req.PhoneNumber)
	if err != nil {
		return s.fail(c, err)
	}

	body := fiber.Map{
		"message":       "verification code sent",
		"session_token": res.SessionToken,
	}
	if res.Code != "" {
		body["code"] = res.Code
	}
	return c.JSON(body)
}

func (s *HTTPServer) confirmCode(c *fiber.Ctx) error {
	var req validation.ConfirmCodeRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	ctx := c.UserContext()

	var (
		res *services.ConfirmResult
		err error
	)
	if req.PhoneNumber != "" {
		res, err = s.verification.ConfirmCode(ctx, req.PhoneNumber, req.Code)
	} else {
		res, err = s.verification.ConfirmBySession(ctx, req.SessionToken, req.Code)
	}
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"access":      res.Tokens.AccessToken,
		"refresh":     res.Tokens.RefreshToken,
		"is_new_user": res.Created,
	})
}

func (s *HTTPServer) refreshToken(c *fiber.Ctx) error {
	var req validation.RefreshRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	pair, err := s.tokens.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"access": pair.AccessToken, "refresh": pair.RefreshToken})
}

func (s *HTTPServer) logout(c *fiber.Ctx) error {
	var req validation.RefreshRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	if err := s.tokens.Revoke(c.UserContext(), req.Refresh); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "logged out"})
}

func (s *HTTPServer) profile(c *fiber.Ctx) error {
	p, err := s.invites.Profile(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.fail(c, err)
	}

	var activated any
	if p.User.HasActivatedInvite() {
		activated = *p.User.ActivatedInviteCode
	}

	return c.JSON(fiber.Map{
		"phone_number":          p.User.PhoneNumber,
		"invite_code":           p.User.InviteCode,
		"activated_invite_code": activated,
		"invited_users":         p.InvitedPhones,
	})
}

func (s *HTTPServer) activateInvite(c *fiber.Ctx) error {
	var req validation.ActivateInviteRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	if err := s.invites.Activate(c.UserContext(), currentUserID(c), req.InviteCode); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "invite code activated"})
}
