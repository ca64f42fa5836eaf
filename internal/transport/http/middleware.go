package http

import (
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

const localUserID = "user_id"

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// requireAuth extracts and verifies the Authorization bearer token and
// stashes the user id in the request locals.
func requireAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return domain.ErrUnauthorized
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return domain.ErrUnauthorized
		}

		userID, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) int64 {
	if id, ok := c.Locals(localUserID).(int64); ok {
		return id
	}
	return 0
}
