package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// In-memory fakes for the repository ports. They implement just enough
// behavior for the service tests: id assignment, ownership scoping, and the
// duplicate-email conflict.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *fakeUserRepo) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountOwned(_ context.Context, _ int64) (domain.ProfileCounts, error) {
	return domain.ProfileCounts{Strategies: 1, Trades: 2, Analyses: 3}, nil
}

type fakeStrategyRepo struct {
	nextID     int64
	strategies map[int64]domain.Strategy
}

func newFakeStrategyRepo() *fakeStrategyRepo {
	return &fakeStrategyRepo{strategies: map[int64]domain.Strategy{}}
}

func (r *fakeStrategyRepo) Create(_ context.Context, s *domain.Strategy) error {
	r.nextID++
	s.ID = r.nextID
	r.strategies[s.ID] = *s
	return nil
}

func (r *fakeStrategyRepo) GetByID(_ context.Context, userID, id int64) (domain.Strategy, error) {
	s, ok := r.strategies[id]
	if !ok || s.UserID != userID {
		return domain.Strategy{}, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeStrategyRepo) List(_ context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Strategy], error) {
	q = q.Normalize()
	items := []domain.Strategy{}
	for _, s := range r.strategies {
		if s.UserID == userID {
			items = append(items, s)
		}
	}
	return domain.Page[domain.Strategy]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, int64(len(items))),
	}, nil
}

func (r *fakeStrategyRepo) Update(_ context.Context, s *domain.Strategy) error {
	existing, ok := r.strategies[s.ID]
	if !ok || existing.UserID != s.UserID {
		return domain.ErrNotFound
	}
	r.strategies[s.ID] = *s
	return nil
}

func (r *fakeStrategyRepo) Delete(_ context.Context, userID, id int64) error {
	s, ok := r.strategies[id]
	if !ok || s.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.strategies, id)
	return nil
}

type fakeAnalysisRepo struct {
	nextID   int64
	analyses map[int64]domain.Analysis
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{analyses: map[int64]domain.Analysis{}}
}

func (r *fakeAnalysisRepo) Create(_ context.Context, a *domain.Analysis) error {
	r.nextID++
	a.ID = r.nextID
	r.analyses[a.ID] = *a
	return nil
}

func (r *fakeAnalysisRepo) GetByID(_ context.Context, userID, id int64) (domain.Analysis, error) {
	a, ok := r.analyses[id]
	if !ok || a.UserID != userID {
		return domain.Analysis{}, domain.ErrNotFound
	}
	return a, nil
}

func (r *fakeAnalysisRepo) List(_ context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Analysis], error) {
	q = q.Normalize()
	items := []domain.Analysis{}
	for _, a := range r.analyses {
		if a.UserID == userID {
			items = append(items, a)
		}
	}
	return domain.Page[domain.Analysis]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, int64(len(items))),
	}, nil
}

func (r *fakeAnalysisRepo) Update(_ context.Context, a *domain.Analysis) error {
	existing, ok := r.analyses[a.ID]
	if !ok || existing.UserID != a.UserID {
		return domain.ErrNotFound
	}
	r.analyses[a.ID] = *a
	return nil
}

func (r *fakeAnalysisRepo) Delete(_ context.Context, userID, id int64) error {
	a, ok := r.analyses[id]
	if !ok || a.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.analyses, id)
	return nil
}

type fakeTradeRepo struct {
	nextID int64
	trades map[int64]domain.Trade
}

func newFakeTradeRepo() *fakeTradeRepo {
	return &fakeTradeRepo{trades: map[int64]domain.Trade{}}
}

func (r *fakeTradeRepo) Create(_ context.Context, t *domain.Trade) error {
	r.nextID++
	t.ID = r.nextID
	r.trades[t.ID] = *t
	return nil
}

func (r *fakeTradeRepo) GetByID(_ context.Context, userID, id int64) (domain.Trade, error) {
	t, ok := r.trades[id]
	if !ok || t.UserID != userID {
		return domain.Trade{}, domain.ErrNotFound
	}
	return t, nil
}

func (r *fakeTradeRepo) List(_ context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.Trade], error) {
	q = q.Normalize()
	items := []domain.Trade{}
	for _, t := range r.trades {
		if t.UserID == userID {
			items = append(items, t)
		}
	}
	return domain.Page[domain.Trade]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, int64(len(items))),
	}, nil
}

func (r *fakeTradeRepo) Update(_ context.Context, t *domain.Trade) error {
	existing, ok := r.trades[t.ID]
	if !ok || existing.UserID != t.UserID {
		return domain.ErrNotFound
	}
	r.trades[t.ID] = *t
	return nil
}

func (r *fakeTradeRepo) Delete(_ context.Context, userID, id int64) error {
	t, ok := r.trades[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.trades, id)
	return nil
}

type fakeTradeLogRepo struct {
	nextID int64
	logs   map[int64]domain.TradeLog
}

func newFakeTradeLogRepo() *fakeTradeLogRepo {
	return &fakeTradeLogRepo{logs: map[int64]domain.TradeLog{}}
}

func (r *fakeTradeLogRepo) Create(_ context.Context, l *domain.TradeLog) error {
	r.nextID++
	l.ID = r.nextID
	r.logs[l.ID] = *l
	return nil
}

func (r *fakeTradeLogRepo) GetByID(_ context.Context, userID, id int64) (domain.TradeLog, error) {
	l, ok := r.logs[id]
	if !ok || l.UserID != userID {
		return domain.TradeLog{}, domain.ErrNotFound
	}
	return l, nil
}

func (r *fakeTradeLogRepo) List(_ context.Context, userID int64, q domain.ListQuery) (domain.Page[domain.TradeLog], error) {
	q = q.Normalize()
	items := []domain.TradeLog{}
	for _, l := range r.logs {
		if l.UserID == userID {
			items = append(items, l)
		}
	}
	return domain.Page[domain.TradeLog]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, int64(len(items))),
	}, nil
}

func (r *fakeTradeLogRepo) ListFiltered(_ context.Context, userID int64, search string) ([]domain.TradeLog, error) {
	needle := strings.ToLower(search)
	out := []domain.TradeLog{}
	for id := int64(1); id <= r.nextID; id++ {
		l, ok := r.logs[id]
		if !ok || l.UserID != userID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(l.Symbol), needle) &&
			!strings.Contains(strings.ToLower(l.TradingStrategy), needle) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeTradeLogRepo) Update(_ context.Context, l *domain.TradeLog) error {
	existing, ok := r.logs[l.ID]
	if !ok || existing.UserID != l.UserID {
		return domain.ErrNotFound
	}
	r.logs[l.ID] = *l
	return nil
}

func (r *fakeTradeLogRepo) Delete(_ context.Context, userID, id int64) error {
	l, ok := r.logs[id]
	if !ok || l.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

type fakeNotificationRepo struct {
	nextID        int64
	notifications map[int64]domain.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[int64]domain.Notification{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.nextID++
	n.ID = r.nextID
	r.notifications[n.ID] = *n
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, userID, id int64) (domain.Notification, error) {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return domain.Notification{}, domain.ErrNotFound
	}
	return n, nil
}

func (r *fakeNotificationRepo) List(_ context.Context, userID int64, q domain.ListQuery, unreadOnly bool) (domain.Page[domain.Notification], error) {
	q = q.Normalize()
	items := []domain.Notification{}
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		items = append(items, n)
	}
	return domain.Page[domain.Notification]{
		Items:      items,
		Pagination: domain.NewPagination(q.Page, q.PerPage, int64(len(items))),
	}, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID, id int64) (domain.Notification, error) {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return domain.Notification{}, domain.ErrNotFound
	}
	n.IsRead = true
	r.notifications[id] = n
	return n, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	var updated int64
	for id, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) UnreadCount(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, userID, id int64) error {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.notifications, id)
	return nil
}

type fakeMedia struct {
	uploads []string
	fail    bool
}

func (m *fakeMedia) UploadImage(_ context.Context, _ io.Reader, filename, folder string) (string, error) {
	if m.fail {
		return "", fmt.Errorf("media host unavailable")
	}
	url := "https://media.test/" + folder + "/" + filename
	m.uploads = append(m.uploads, url)
	return url, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID int64) (string, error) {
	return fmt.Sprintf("token-%d", userID), nil
}

type publishedEvent struct {
	UserID  int64
	Event   string
	Payload any
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(userID int64, event string, payload any) {
	p.events = append(p.events, publishedEvent{UserID: userID, Event: event, Payload: payload})
}
