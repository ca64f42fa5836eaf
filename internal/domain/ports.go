package domain

import (
	"context"
	"io"
)

// UserRepository persists accounts. Create and Update return ErrConflict on
// a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
	CountOwned(ctx context.Context, userID int64) (ProfileCounts, error)
}

// Entity repositories scope every read and write by the owning user; a row
// owned by someone else is indistinguishable from a missing one (ErrNotFound).
type StrategyRepository interface {
	Create(ctx context.Context, strategy *Strategy) error
	GetByID(ctx context.Context, userID, id int64) (Strategy, error)
	List(ctx context.Context, userID int64, q ListQuery) (Page[Strategy], error)
	Update(ctx context.Context, strategy *Strategy) error
	Delete(ctx context.Context, userID, id int64) error
}

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *Analysis) error
	GetByID(ctx context.Context, userID, id int64) (Analysis, error)
	List(ctx context.Context, userID int64, q ListQuery) (Page[Analysis], error)
	Update(ctx context.Context, analysis *Analysis) error
	Delete(ctx context.Context, userID, id int64) error
}

type TradeRepository interface {
	Create(ctx context.Context, trade *Trade) error
	GetByID(ctx context.Context, userID, id int64) (Trade, error)
	List(ctx context.Context, userID int64, q ListQuery) (Page[Trade], error)
	Update(ctx context.Context, trade *Trade) error
	Delete(ctx context.Context, userID, id int64) error
}

type TradeLogRepository interface {
	Create(ctx context.Context, log *TradeLog) error
	GetByID(ctx context.Context, userID, id int64) (TradeLog, error)
	List(ctx context.Context, userID int64, q ListQuery) (Page[TradeLog], error)
	// ListFiltered returns every matching log without pagination; the
	// strategy-wise aggregation paginates over buckets, not rows.
	ListFiltered(ctx context.Context, userID int64, search string) ([]TradeLog, error)
	Update(ctx context.Context, log *TradeLog) error
	Delete(ctx context.Context, userID, id int64) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, userID, id int64) (Notification, error)
	List(ctx context.Context, userID int64, q ListQuery, unreadOnly bool) (Page[Notification], error)
	MarkRead(ctx context.Context, userID, id int64) (Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
}

// MediaUploader pushes an image to the external media host and returns the
// durable HTTPS URL. The core never interprets image bytes.
type MediaUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error)
}

// EventPublisher delivers a named event to a user's connected sessions.
// Delivery is strictly best-effort: implementations log failures and never
// surface them.
type EventPublisher interface {
	Publish(userID int64, event string, payload any)
}

// TokenIssuer mints an access token whose subject is the user identity.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}
