package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront/internal/logging"
	"github.com/marketsquare/storefront/internal/service"
	"github.com/marketsquare/storefront/internal/transport"
	"github.com/marketsquare/storefront/internal/webhook"
)

type WebhookHTTP struct {
	Verifier *webhook.Verifier // nil when WEBHOOK_SECRET is unset
	Users    *service.UserService
}

// HandleIdentity receives identity-provider lifecycle events. Anything that
// fails verification is a 400; a missing server-side secret is a 500.
func (h *WebhookHTTP) HandleIdentity(c echo.Context) error {
	l := logging.FromContext(c.Request().Context())

	if h.Verifier == nil {
		l.Error("webhook received but WEBHOOK_SECRET is not configured")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "webhook secret not configured"})
	}

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}

	if err := h.Verifier.Verify(c.Request().Header, payload); err != nil {
		l.Warn("webhook rejected", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid webhook"})
	}

	var event transport.IdentityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	ctx := c.Request().Context()
	switch event.Type {
	case "user.created", "user.updated":
		user, err := h.Users.SyncUser(ctx, service.IdentityUser{
			ID:    event.Data.ID,
			Email: event.Data.Email,
			Name:  event.Data.Name,
			Role:  event.Data.Role,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	case "user.deleted":
		if err := h.Users.DeleteUser(ctx, event.Data.ID); err != nil {
			return respondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	default:
		l.Info("ignoring webhook event", "type", event.Type)
		return c.NoContent(http.StatusNoContent)
	}
}
