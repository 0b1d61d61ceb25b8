package rest

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDLocal = "user_id"

func (s *HTTPServer) withTimeout(c *fiber.Ctx) error {
	if s.timeout <= 0 {
		return c.Next()
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), s.timeout)
	defer cancel()
	c.SetUserContext(ctx)
	return c.Next()
}

func (s *HTTPServer) logRequests(c *fiber.Ctx) error {
	start := time.Now()

	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(fiber.HeaderXRequestID, id)

	err := c.Next()

	s.logger.Info(c.UserContext(), "http request",
		"request_id", id,
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}

// bearerAuth resolves the access token in the Authorization header and stores
// the user id in the request locals.
func (s *HTTPServer) bearerAuth(c *fiber.Ctx) error {
	h := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(h, "Bearer ") {
		return unauthorized(c, "missing bearer token")
	}

	userID, err := s.tokens.UserID(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return unauthorized(c, "invalid or expired token")
	}

	c.Locals(userIDLocal, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}
