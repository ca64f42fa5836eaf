package http

import (
	"strings"

	"github.com/gofiber/contrib/websocket"
	fiber "github.com/gofiber/fiber/v2"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// wsAuth accepts the token either as a bearer header or as a "token" query
// parameter, since browser websocket clients cannot set headers.
func wsAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}
		}
		if token == "" {
			return domain.ErrUnauthorized
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			return err
		}

		c.Locals(localUserID, userID)
		return c.Next()
	}
}

func upgradeRequired(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// attachNotificationSocket hands the upgraded connection to the hub and
// blocks for the lifetime of the session.
func (r *Router) attachNotificationSocket(conn *websocket.Conn) {
	userID, ok := conn.Locals(localUserID).(int64)
	if !ok || userID == 0 {
		_ = conn.Close()
		return
	}
	r.hub.Attach(userID, conn)
}
