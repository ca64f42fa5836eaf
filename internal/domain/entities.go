package domain

import "time"

type TradeDirection string

const (
	DirectionLong  TradeDirection = "Long"
	DirectionShort TradeDirection = "Short"
)

func (d TradeDirection) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

type StrategyCategory string

const (
	CategoryMomentum      StrategyCategory = "Momentum Trading"
	CategorySwing         StrategyCategory = "Swing Trading"
	CategoryScalping      StrategyCategory = "Scalping"
	CategoryMeanReversion StrategyCategory = "Mean Reversion"
	CategoryBreakout      StrategyCategory = "Breakout"
)

func (c StrategyCategory) Valid() bool {
	switch c {
	case CategoryMomentum, CategorySwing, CategoryScalping, CategoryMeanReversion, CategoryBreakout:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low Risk"
	RiskMedium RiskLevel = "Medium Risk"
	RiskHigh   RiskLevel = "High Risk"
)

func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

type StrategyTimeframe string

const (
	TimeframeIntraday StrategyTimeframe = "Intraday (1 day)"
	TimeframeSwing    StrategyTimeframe = "Swing (days-weeks)"
	TimeframePosition StrategyTimeframe = "Position (weeks-months)"
	TimeframeLongTerm StrategyTimeframe = "Long Term (months-years)"
)

func (t StrategyTimeframe) Valid() bool {
	switch t {
	case TimeframeIntraday, TimeframeSwing, TimeframePosition, TimeframeLongTerm:
		return true
	}
	return false
}

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "Low"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceHigh   ConfidenceLevel = "High"
)

func (c ConfidenceLevel) Valid() bool {
	return c == ConfidenceLow || c == ConfidenceMedium || c == ConfidenceHigh
}

type AnalysisTimeframe string

const (
	AnalysisIntraday AnalysisTimeframe = "Intraday"
	AnalysisSwing    AnalysisTimeframe = "Swing"
	AnalysisPosition AnalysisTimeframe = "Position"
	AnalysisLongTerm AnalysisTimeframe = "Long Term"
)

func (t AnalysisTimeframe) Valid() bool {
	switch t {
	case AnalysisIntraday, AnalysisSwing, AnalysisPosition, AnalysisLongTerm:
		return true
	}
	return false
}

type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Bio              string    `json:"bio,omitempty"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	Location         string    `json:"location,omitempty"`
	PushSubscription []byte    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProfileCounts holds the read-only counters attached to a serialized profile.
type ProfileCounts struct {
	Strategies int64 `json:"strategies_count"`
	Trades     int64 `json:"trades_count"`
	Analyses   int64 `json:"analyses_count"`
}

type UserProfile struct {
	User
	ProfileCounts
}

type Strategy struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	Name            string            `json:"name"`
	Category        StrategyCategory  `json:"category"`
	RiskLevel       RiskLevel         `json:"risk_level"`
	Timeframe       StrategyTimeframe `json:"timeframe"`
	Description     string            `json:"description,omitempty"`
	TradingRules    string            `json:"trading_rules,omitempty"`
	AdditionalNotes string            `json:"additional_notes,omitempty"`
	Images          []string          `json:"images"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type Analysis struct {
	ID                  int64             `json:"id"`
	UserID              int64             `json:"user_id"`
	StrategyID          *int64            `json:"strategy_id"`
	Symbol              string            `json:"symbol"`
	CurrentPrice        float64           `json:"current_price"`
	EntryPrice          float64           `json:"entry_price"`
	TargetPrice         float64           `json:"target_price"`
	StopLoss            float64           `json:"stop_loss"`
	Quantity            int               `json:"quantity"`
	TradeType           TradeDirection    `json:"trade_type"`
	ConfidenceLevel     ConfidenceLevel   `json:"confidence_level"`
	Timeframe           AnalysisTimeframe `json:"timeframe"`
	StrategyName        string            `json:"strategy_name,omitempty"`
	TechnicalAnalysis   string            `json:"technical_analysis"`
	FundamentalAnalysis string            `json:"fundamental_analysis,omitempty"`
	AdditionalNotes     string            `json:"additional_notes,omitempty"`
	Images              []string          `json:"images"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

type Trade struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	StrategyID     *int64         `json:"strategy_id"`
	Symbol         string         `json:"symbol"`
	EntryPrice     float64        `json:"entry_price"`
	ExitPrice      float64        `json:"exit_price"`
	Quantity       int            `json:"quantity"`
	TradeType      TradeDirection `json:"trade_type"`
	StrategyUsed   string         `json:"strategy_used,omitempty"`
	EntryReason    string         `json:"entry_reason"`
	ExitReason     string         `json:"exit_reason"`
	Emotions       string         `json:"emotions,omitempty"`
	LessonsLearned string         `json:"lessons_learned,omitempty"`
	Tags           string         `json:"tags,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	ProfitLoss     *float64       `json:"profit_loss"`
	Images         []string       `json:"images"`
	EntryTime      *time.Time     `json:"entry_time"`
	ExitTime       *time.Time     `json:"exit_time"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// RecomputePnL refreshes the derived profit_loss field. It is the only way
// the field ever changes.
func (t *Trade) RecomputePnL() {
	t.ProfitLoss = ComputePnL(&t.EntryPrice, &t.ExitPrice, &t.Quantity, t.TradeType)
}

// TradeLog is a standalone journal entry. TradeID and StrategyID are
// optional caller-set references; neither is ever synthesized.
type TradeLog struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	TradeID         *int64         `json:"trade_id"`
	StrategyID      *int64         `json:"strategy_id"`
	Symbol          string         `json:"symbol"`
	EntryPrice      float64        `json:"entry_price"`
	ExitPrice       float64        `json:"exit_price"`
	Quantity        int            `json:"quantity"`
	EntryDate       time.Time      `json:"entry_date"`
	ExitDate        *time.Time     `json:"exit_date"`
	TradeType       TradeDirection `json:"trade_type,omitempty"`
	TradingStrategy string         `json:"trading_strategy,omitempty"`
	TradeNotes      string         `json:"trade_notes,omitempty"`
	ProfitLoss      *float64       `json:"profit_loss"`
	Images          []string       `json:"images"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (l *TradeLog) RecomputePnL() {
	l.ProfitLoss = ComputePnL(&l.EntryPrice, &l.ExitPrice, &l.Quantity, l.TradeType)
}

type Notification struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	Link      string         `json:"link,omitempty"`
	IsRead    bool           `json:"is_read"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
