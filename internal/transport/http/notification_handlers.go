package http

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// listNotifications godoc
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page (max 100)"
// @Param unread_only query bool false "Only unread notifications"
// @Success 200 {object} domain.Page[domain.Notification]
// @Failure 401 {object} ErrorResponse
// @Router /notifications [get]
func (r *Router) listNotifications(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	page, err := r.notifications.List(ctx, currentUserID(c), listQuery(c), c.QueryBool("unread_only"))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// getNotification godoc
// @Summary Get one notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} domain.Notification
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id} [get]
func (r *Router) getNotification(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 5*time.Second)
	defer cancel()

	n, err := r.notifications.Get(ctx, currentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// markNotificationRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} domain.Notification
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id} [put]
func (r *Router) markNotificationRead(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	n, err := r.notifications.MarkRead(ctx, currentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(n)
}

// markAllNotificationsRead godoc
// @Summary Mark every notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 401 {object} ErrorResponse
// @Router /notifications/read-all [post]
func (r *Router) markAllNotificationsRead(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	updated, err := r.notifications.MarkAllRead(ctx, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// unreadNotificationCount godoc
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 401 {object} ErrorResponse
// @Router /notifications/unread-count [get]
func (r *Router) unreadNotificationCount(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 5*time.Second)
	defer cancel()

	count, err := r.notifications.UnreadCount(ctx, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// deleteNotification godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id} [delete]
func (r *Router) deleteNotification(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	if err := r.notifications.Delete(ctx, currentUserID(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "notification deleted"})
}

// savePushSubscription godoc
// @Summary Store the browser push subscription
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /notifications/push-subscription [post]
func (r *Router) savePushSubscription(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return domain.Validationf("subscription payload required")
	}

	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	// The blob is stored verbatim; copy it out of fiber's reusable buffer.
	subscription := make([]byte, len(body))
	copy(subscription, body)

	if err := r.notifications.SavePushSubscription(ctx, currentUserID(c), subscription); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "subscription saved"})
}

// clearPushSubscription godoc
// @Summary Remove the stored push subscription
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /notifications/push-subscription [delete]
func (r *Router) clearPushSubscription(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	if err := r.notifications.ClearPushSubscription(ctx, currentUserID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "subscription removed"})
}

// sendTestNotification godoc
// @Summary Send a test notification to the caller
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.Notification
// @Failure 401 {object} ErrorResponse
// @Router /notifications/test [post]
func (r *Router) sendTestNotification(c *fiber.Ctx) error {
	ctx, cancel := contextWithTimeout(c, 10*time.Second)
	defer cancel()

	n, err := r.notifications.SendTest(ctx, currentUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}
