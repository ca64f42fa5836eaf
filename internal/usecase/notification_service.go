package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

const eventNewNotification = "new_notification"

// NotificationService persists notifications and pushes them to the owner's
// live sessions. Everything downstream of the persisted row is best-effort.
type NotificationService struct {
	notifications domain.NotificationRepository
	users         domain.UserRepository
	publisher     domain.EventPublisher
	logger        zerolog.Logger
}

func NewNotificationService(notifications domain.NotificationRepository, users domain.UserRepository, publisher domain.EventPublisher, logger zerolog.Logger) (*NotificationService, error) {
	if notifications == nil {
		return nil, errors.New("notification repository required")
	}
	if users == nil {
		return nil, errors.New("user repository required")
	}
	if publisher == nil {
		return nil, errors.New("event publisher required")
	}
	return &NotificationService{
		notifications: notifications,
		users:         users,
		publisher:     publisher,
		logger:        logger.With().Str("component", "notifications").Logger(),
	}, nil
}

// Create stores the notification and emits it to the owner's channel. The
// emit happens after the row is committed.
func (s *NotificationService) Create(ctx context.Context, n *domain.Notification) error {
	if n.UserID == 0 {
		return domain.Validationf("user id required")
	}
	if n.Title == "" || n.Message == "" {
		return domain.Validationf("title and message are required")
	}

	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}

	s.publisher.Publish(n.UserID, eventNewNotification, n)
	return nil
}

// NotifyCreated writes the post-create notification for a journal entity.
// It never fails the originating request; errors are logged and swallowed.
func (s *NotificationService) NotifyCreated(ctx context.Context, userID int64, entity, name string, id int64) {
	n := domain.Notification{
		UserID:  userID,
		Title:   fmt.Sprintf("New %s added", entity),
		Message: fmt.Sprintf("Your %s %q was created.", entity, name),
		Type:    "entity_created",
		Data: map[string]any{
			"entity": entity,
			"id":     id,
		},
	}
	if err := s.Create(ctx, &n); err != nil {
		s.logger.Warn().Err(err).
			Int64("user_id", userID).
			Str("entity", entity).
			Msg("post-create notification failed")
	}
}

func (s *NotificationService) List(ctx context.Context, userID int64, q domain.ListQuery, unreadOnly bool) (domain.Page[domain.Notification], error) {
	return s.notifications.List(ctx, userID, q, unreadOnly)
}

func (s *NotificationService) Get(ctx context.Context, userID, id int64) (domain.Notification, error) {
	return s.notifications.GetByID(ctx, userID, id)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) (domain.Notification, error) {
	return s.notifications.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.UnreadCount(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id int64) error {
	return s.notifications.Delete(ctx, userID, id)
}

// SavePushSubscription stores the browser push subscription blob verbatim.
func (s *NotificationService) SavePushSubscription(ctx context.Context, userID int64, subscription []byte) error {
	if len(subscription) == 0 {
		return domain.Validationf("subscription payload required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.PushSubscription = subscription
	return s.users.Update(ctx, &user)
}

func (s *NotificationService) ClearPushSubscription(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.PushSubscription = nil
	return s.users.Update(ctx, &user)
}

// SendTest emits a throwaway notification so a client can verify its push
// wiring end to end.
func (s *NotificationService) SendTest(ctx context.Context, userID int64) (domain.Notification, error) {
	n := domain.Notification{
		UserID:  userID,
		Title:   "Test notification",
		Message: "Push delivery is working.",
		Type:    "test",
	}
	if err := s.Create(ctx, &n); err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}
