package http

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	fiber "github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"github.com/rs/zerolog"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
	"github.com/gkishore1002/TradeFlow-BE/internal/usecase"
)

type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Profile(ctx context.Context, userID int64) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, payload map[string]any) (domain.UserProfile, error)
	UploadAvatar(ctx context.Context, userID int64, file usecase.ImageFile) (domain.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

type JournalService interface {
	CreateStrategy(ctx context.Context, userID int64, payload map[string]any, images []usecase.ImageFile) (domain.Strategy, error)
	GetStrategy(ctx context.Context, userID, id int64) (domain.Strategy, error)
	ListStrategies(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Strategy], error)
	UpdateStrategy(ctx context.Context, userID, id int64, payload map[string]any, images []usecase.ImageFile) (domain.Strategy, error)
	DeleteStrategy(ctx context.Context, userID, id int64) error

	CreateAnalysis(ctx context.Context, userID int64, payload map[string]any, images []usecase.ImageFile) (domain.Analysis, error)
	GetAnalysis(ctx context.Context, userID, id int64) (domain.Analysis, error)
	ListAnalyses(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Analysis], error)
	UpdateAnalysis(ctx context.Context, userID, id int64, payload map[string]any, images []usecase.ImageFile) (domain.Analysis, error)
	DeleteAnalysis(ctx context.Context, userID, id int64) error

	CreateTrade(ctx context.Context, userID int64, payload map[string]any, images []usecase.ImageFile) (domain.Trade, error)
	GetTrade(ctx context.Context, userID, id int64) (domain.Trade, error)
	ListTrades(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Trade], error)
	UpdateTrade(ctx context.Context, userID, id int64, payload map[string]any, images []usecase.ImageFile) (domain.Trade, error)
	DeleteTrade(ctx context.Context, userID, id int64) error

	CreateTradeLog(ctx context.Context, userID int64, payload map[string]any, images []usecase.ImageFile) (domain.TradeLog, error)
	GetTradeLog(ctx context.Context, userID, id int64) (domain.TradeLog, error)
	ListTradeLogs(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.TradeLog], error)
	UpdateTradeLog(ctx context.Context, userID, id int64, payload map[string]any, images []usecase.ImageFile) (domain.TradeLog, error)
	DeleteTradeLog(ctx context.Context, userID, id int64) error
}

type StatsService interface {
	StrategyWiseTrades(ctx context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.StrategyBucket], error)
	TradeLogStats(ctx context.Context, userID int64) (domain.TradeLogStats, error)
}

type NotificationService interface {
	List(ctx context.Context, userID int64, q domain.ListQuery, unreadOnly bool) (domain.Page[domain.Notification], error)
	Get(ctx context.Context, userID, id int64) (domain.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) (domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
	SavePushSubscription(ctx context.Context, userID int64, subscription []byte) error
	ClearPushSubscription(ctx context.Context, userID int64) error
	SendTest(ctx context.Context, userID int64) (domain.Notification, error)
}

// SessionHub registers a websocket connection on a user's push channel and
// blocks until the peer disconnects.
type SessionHub interface {
	Attach(userID int64, conn *websocket.Conn)
}

type Config struct {
	BodyLimit     int
	Auth          AuthService
	Journal       JournalService
	Stats         StatsService
	Notifications NotificationService
	Tokens        TokenVerifier
	Hub           SessionHub
	Logger        zerolog.Logger
}

type Router struct {
	app           *fiber.App
	auth          AuthService
	journal       JournalService
	stats         StatsService
	notifications NotificationService
	hub           SessionHub
	logger        zerolog.Logger
}

func New(cfg Config) (*Router, error) {
	if cfg.Auth == nil {
		return nil, errors.New("auth service required")
	}
	if cfg.Journal == nil {
		return nil, errors.New("journal service required")
	}
	if cfg.Stats == nil {
		return nil, errors.New("stats service required")
	}
	if cfg.Notifications == nil {
		return nil, errors.New("notification service required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("token verifier required")
	}
	if cfg.Hub == nil {
		return nil, errors.New("session hub required")
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: newErrorHandler(cfg.Logger),
	})

	r := &Router{
		app:           app,
		auth:          cfg.Auth,
		journal:       cfg.Journal,
		stats:         cfg.Stats,
		notifications: cfg.Notifications,
		hub:           cfg.Hub,
		logger:        cfg.Logger.With().Str("component", "http").Logger(),
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", r.register)
	authGroup.Post("/login", r.login)

	protected := requireAuth(cfg.Tokens)

	authGroup.Get("/profile", protected, r.getProfile)
	authGroup.Put("/profile", protected, r.updateProfile)
	authGroup.Delete("/profile", protected, r.deleteProfile)
	authGroup.Post("/profile/avatar", protected, r.uploadAvatar)

	strategies := v1.Group("/strategies", protected)
	strategies.Get("/", r.listStrategies)
	strategies.Post("/", r.createStrategy)
	strategies.Get("/:id", r.getStrategy)
	strategies.Put("/:id", r.updateStrategy)
	strategies.Delete("/:id", r.deleteStrategy)

	analyses := v1.Group("/analyses", protected)
	analyses.Get("/", r.listAnalyses)
	analyses.Post("/", r.createAnalysis)
	analyses.Get("/:id", r.getAnalysis)
	analyses.Put("/:id", r.updateAnalysis)
	analyses.Delete("/:id", r.deleteAnalysis)

	trades := v1.Group("/trades", protected)
	trades.Get("/", r.listTrades)
	trades.Post("/", r.createTrade)
	trades.Get("/:id", r.getTrade)
	trades.Put("/:id", r.updateTrade)
	trades.Delete("/:id", r.deleteTrade)

	tradeLogs := v1.Group("/trade-logs", protected)
	tradeLogs.Get("/", r.listTradeLogs)
	tradeLogs.Post("/", r.createTradeLog)
	tradeLogs.Get("/stats", r.tradeLogStats)
	tradeLogs.Get("/:id", r.getTradeLog)
	tradeLogs.Put("/:id", r.updateTradeLog)
	tradeLogs.Delete("/:id", r.deleteTradeLog)

	v1.Get("/strategy-wise-trades", protected, r.strategyWiseTrades)

	notifications := v1.Group("/notifications", protected)
	notifications.Get("/", r.listNotifications)
	notifications.Post("/read-all", r.markAllNotificationsRead)
	notifications.Get("/unread-count", r.unreadNotificationCount)
	notifications.Post("/push-subscription", r.savePushSubscription)
	notifications.Delete("/push-subscription", r.clearPushSubscription)
	notifications.Post("/test", r.sendTestNotification)
	notifications.Get("/:id", r.getNotification)
	notifications.Put("/:id", r.markNotificationRead)
	notifications.Delete("/:id", r.deleteNotification)

	app.Use("/ws/notifications", wsAuth(cfg.Tokens), upgradeRequired)
	app.Get("/ws/notifications", websocket.New(r.attachNotificationSocket))

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return r, nil
}

func (r *Router) App() *fiber.App {
	return r.app
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func contextWithTimeout(c *fiber.Ctx, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(userContext(c), d)
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, domain.Validationf("invalid id")
	}
	return int64(id), nil
}

func listQuery(c *fiber.Ctx) domain.ListQuery {
	q := domain.ListQuery{
		Page:      c.QueryInt("page", 1),
		PerPage:   c.QueryInt("per_page", domain.DefaultPerPage),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	// an explicit below-range per_page clamps to 1; only absence means default
	if q.PerPage < 1 {
		q.PerPage = 1
	}
	return q
}

// extractPayload reads the request as either JSON or a multipart form with
// optional "images" files. The returned cleanup closes any opened files and
// must always be called.
func extractPayload(c *fiber.Ctx) (map[string]any, []usecase.ImageFile, func(), error) {
	noop := func() {}

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		payload := map[string]any{}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&payload); err != nil {
				return nil, nil, noop, domain.Validationf("invalid payload")
			}
		}
		return payload, nil, noop, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, noop, domain.Validationf("invalid multipart form")
	}

	payload := make(map[string]any, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	files, cleanup, err := openFormFiles(form.File["images"])
	if err != nil {
		return nil, nil, noop, err
	}
	return payload, files, cleanup, nil
}

func openFormFiles(headers []*multipart.FileHeader) ([]usecase.ImageFile, func(), error) {
	var opened []io.Closer
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]usecase.ImageFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, domain.Validationf("cannot read uploaded file %q", header.Filename)
		}
		opened = append(opened, f)
		files = append(files, usecase.ImageFile{Filename: header.Filename, Reader: f})
	}
	return files, cleanup, nil
}
