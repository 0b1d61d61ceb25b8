package rest

import (
	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/gofiber/fiber/v2"
)

var statusByCode = map[string]int{
	common.CodeInvalidFields:       fiber.StatusBadRequest,
	common.CodeInvalidCode:         fiber.StatusBadRequest,
	common.CodeAlreadyActivated:    fiber.StatusBadRequest,
	common.CodeInvalidInviteCode:   fiber.StatusBadRequest,
	common.CodeSelfReferral:        fiber.StatusBadRequest,
	common.CodeInvalidRefreshToken: fiber.StatusUnauthorized,
	common.CodeRefreshTokenExpired: fiber.StatusUnauthorized,
	common.CodeUnauthorized:        fiber.StatusUnauthorized,
}

func errorResponse(c *fiber.Ctx, status int, code string, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error_code": code, "message": msg})
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return errorResponse(c, fiber.StatusUnauthorized, common.CodeUnauthorized, msg)
}

// fail translates a service error into an API error response. Anything not
// recognised is logged and reported as a server error.
func (s *HTTPServer) fail(c *fiber.Ctx, err error) error {
	code := common.ErrorCode(err)
	if status, ok := statusByCode[code]; ok {
		s.logger.Debug(c.UserContext(), "request rejected", "path", c.Path(), "error", err)
		return errorResponse(c, status, code, common.ErrorMessage(code))
	}

	s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
	return errorResponse(c, fiber.StatusInternalServerError, common.CodeServerError, common.ErrorMessage(common.CodeServerError))
}
