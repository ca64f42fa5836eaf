package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *fakeNotificationRepo, *fakeUserRepo, *fakePublisher) {
	t.Helper()
	repo := newFakeNotificationRepo()
	users := newFakeUserRepo()
	publisher := &fakePublisher{}
	svc, err := NewNotificationService(repo, users, publisher, zerolog.Nop())
	require.NoError(t, err)
	return svc, repo, users, publisher
}

func TestNotificationCreatePublishes(t *testing.T) {
	svc, repo, _, publisher := newNotificationFixture(t)

	n := domain.Notification{UserID: 1, Title: "hello", Message: "world", Type: "test"}
	require.NoError(t, svc.Create(context.Background(), &n))
	require.Equal(t, int64(1), n.ID)
	require.Len(t, repo.notifications, 1)

	require.Len(t, publisher.events, 1)
	require.Equal(t, int64(1), publisher.events[0].UserID)
	require.Equal(t, "new_notification", publisher.events[0].Event)
}

func TestNotificationCreateValidation(t *testing.T) {
	svc, _, _, _ := newNotificationFixture(t)

	err := svc.Create(context.Background(), &domain.Notification{UserID: 1, Title: "no message"})
	require.ErrorIs(t, err, domain.ErrValidation)

	err = svc.Create(context.Background(), &domain.Notification{Title: "t", Message: "m"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	svc, _, _, _ := newNotificationFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n := domain.Notification{UserID: 1, Title: "t", Message: "m"}
		require.NoError(t, svc.Create(ctx, &n))
	}

	count, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	n, err := svc.MarkRead(ctx, 1, 1)
	require.NoError(t, err)
	require.True(t, n.IsRead)

	updated, err := svc.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), updated)

	count, err = svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestListUnreadOnly(t *testing.T) {
	svc, _, _, _ := newNotificationFixture(t)
	ctx := context.Background()

	first := domain.Notification{UserID: 1, Title: "t", Message: "m"}
	require.NoError(t, svc.Create(ctx, &first))
	second := domain.Notification{UserID: 1, Title: "t", Message: "m"}
	require.NoError(t, svc.Create(ctx, &second))

	_, err := svc.MarkRead(ctx, 1, first.ID)
	require.NoError(t, err)

	page, err := svc.List(ctx, 1, domain.ListQuery{}, true)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, second.ID, page.Items[0].ID)
}

func TestPushSubscriptionLifecycle(t *testing.T) {
	svc, _, users, _ := newNotificationFixture(t)
	ctx := context.Background()

	user := domain.User{Email: "jo@example.com", PasswordHash: "x", FirstName: "Jo", LastName: "Doe"}
	require.NoError(t, users.Create(ctx, &user))

	err := svc.SavePushSubscription(ctx, user.ID, nil)
	require.ErrorIs(t, err, domain.ErrValidation)

	blob := []byte(`{"endpoint":"https://push.example/abc"}`)
	require.NoError(t, svc.SavePushSubscription(ctx, user.ID, blob))
	require.Equal(t, blob, users.users[user.ID].PushSubscription)

	require.NoError(t, svc.ClearPushSubscription(ctx, user.ID))
	require.Nil(t, users.users[user.ID].PushSubscription)
}

func TestSendTest(t *testing.T) {
	svc, _, _, publisher := newNotificationFixture(t)

	n, err := svc.SendTest(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "test", n.Type)
	require.Len(t, publisher.events, 1)
	require.Equal(t, int64(7), publisher.events[0].UserID)
}
