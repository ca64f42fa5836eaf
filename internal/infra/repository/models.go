package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

type UserModel struct {
	ID               int64          `gorm:"column:id;primaryKey"`
	Email            string         `gorm:"column:email;size:120;not null;uniqueIndex"`
	PasswordHash     string         `gorm:"column:password_hash;size:256;not null"`
	FirstName        string         `gorm:"column:first_name;size:80;not null"`
	LastName         string         `gorm:"column:last_name;size:80;not null"`
	Bio              *string        `gorm:"column:bio"`
	AvatarURL        *string        `gorm:"column:avatar_url;size:512"`
	Location         *string        `gorm:"column:location;size:120"`
	PushSubscription datatypes.JSON `gorm:"column:push_subscription"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

func toUserModel(user domain.User) UserModel {
	return UserModel{
		ID:               user.ID,
		Email:            user.Email,
		PasswordHash:     user.PasswordHash,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Bio:              stringPointerOrNil(user.Bio),
		AvatarURL:        stringPointerOrNil(user.AvatarURL),
		Location:         stringPointerOrNil(user.Location),
		PushSubscription: jsonOrNil(user.PushSubscription),
	}
}

func (m UserModel) toDomain() domain.User {
	return domain.User{
		ID:               m.ID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Bio:              stringValueOrEmpty(m.Bio),
		AvatarURL:        stringValueOrEmpty(m.AvatarURL),
		Location:         stringValueOrEmpty(m.Location),
		PushSubscription: copyJSON(m.PushSubscription),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type StrategyModel struct {
	ID              int64          `gorm:"column:id;primaryKey"`
	UserID          int64          `gorm:"column:user_id;not null;index"`
	Name            string         `gorm:"column:name;size:128;not null"`
	Category        string         `gorm:"column:category;size:64;not null"`
	RiskLevel       string         `gorm:"column:risk_level;size:32;not null"`
	Timeframe       string         `gorm:"column:timeframe;size:64;not null"`
	Description     *string        `gorm:"column:description"`
	TradingRules    *string        `gorm:"column:trading_rules"`
	AdditionalNotes *string        `gorm:"column:additional_notes"`
	Images          datatypes.JSON `gorm:"column:images"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (StrategyModel) TableName() string {
	return "strategies"
}

func toStrategyModel(s domain.Strategy) StrategyModel {
	return StrategyModel{
		ID:              s.ID,
		UserID:          s.UserID,
		Name:            s.Name,
		Category:        string(s.Category),
		RiskLevel:       string(s.RiskLevel),
		Timeframe:       string(s.Timeframe),
		Description:     stringPointerOrNil(s.Description),
		TradingRules:    stringPointerOrNil(s.TradingRules),
		AdditionalNotes: stringPointerOrNil(s.AdditionalNotes),
		Images:          imagesToJSON(s.Images),
	}
}

func (m StrategyModel) toDomain() domain.Strategy {
	return domain.Strategy{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Category:        domain.StrategyCategory(m.Category),
		RiskLevel:       domain.RiskLevel(m.RiskLevel),
		Timeframe:       domain.StrategyTimeframe(m.Timeframe),
		Description:     stringValueOrEmpty(m.Description),
		TradingRules:    stringValueOrEmpty(m.TradingRules),
		AdditionalNotes: stringValueOrEmpty(m.AdditionalNotes),
		Images:          imagesFromJSON(m.Images),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type AnalysisModel struct {
	ID                  int64          `gorm:"column:id;primaryKey"`
	UserID              int64          `gorm:"column:user_id;not null;index"`
	StrategyID          *int64         `gorm:"column:strategy_id;index"`
	Symbol              string         `gorm:"column:symbol;size:64;not null"`
	CurrentPrice        float64        `gorm:"column:current_price;not null"`
	EntryPrice          float64        `gorm:"column:entry_price;not null"`
	TargetPrice         float64        `gorm:"column:target_price;not null"`
	StopLoss            float64        `gorm:"column:stop_loss;not null"`
	Quantity            int            `gorm:"column:quantity;not null;default:0"`
	TradeType           string         `gorm:"column:trade_type;size:16;not null"`
	ConfidenceLevel     string         `gorm:"column:confidence_level;size:16;not null"`
	Timeframe           string         `gorm:"column:timeframe;size:32;not null"`
	StrategyName        *string        `gorm:"column:strategy_name;size:128"`
	TechnicalAnalysis   string         `gorm:"column:technical_analysis;not null"`
	FundamentalAnalysis *string        `gorm:"column:fundamental_analysis"`
	AdditionalNotes     *string        `gorm:"column:additional_notes"`
	Images              datatypes.JSON `gorm:"column:images"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (AnalysisModel) TableName() string {
	return "analyses"
}

func toAnalysisModel(a domain.Analysis) AnalysisModel {
	return AnalysisModel{
		ID:                  a.ID,
		UserID:              a.UserID,
		StrategyID:          a.StrategyID,
		Symbol:              a.Symbol,
		CurrentPrice:        a.CurrentPrice,
		EntryPrice:          a.EntryPrice,
		TargetPrice:         a.TargetPrice,
		StopLoss:            a.StopLoss,
		Quantity:            a.Quantity,
		TradeType:           string(a.TradeType),
		ConfidenceLevel:     string(a.ConfidenceLevel),
		Timeframe:           string(a.Timeframe),
		StrategyName:        stringPointerOrNil(a.StrategyName),
		TechnicalAnalysis:   a.TechnicalAnalysis,
		FundamentalAnalysis: stringPointerOrNil(a.FundamentalAnalysis),
		AdditionalNotes:     stringPointerOrNil(a.AdditionalNotes),
		Images:              imagesToJSON(a.Images),
	}
}

func (m AnalysisModel) toDomain() domain.Analysis {
	return domain.Analysis{
		ID:                  m.ID,
		UserID:              m.UserID,
		StrategyID:          m.StrategyID,
		Symbol:              m.Symbol,
		CurrentPrice:        m.CurrentPrice,
		EntryPrice:          m.EntryPrice,
		TargetPrice:         m.TargetPrice,
		StopLoss:            m.StopLoss,
		Quantity:            m.Quantity,
		TradeType:           domain.TradeDirection(m.TradeType),
		ConfidenceLevel:     domain.ConfidenceLevel(m.ConfidenceLevel),
		Timeframe:           domain.AnalysisTimeframe(m.Timeframe),
		StrategyName:        stringValueOrEmpty(m.StrategyName),
		TechnicalAnalysis:   m.TechnicalAnalysis,
		FundamentalAnalysis: stringValueOrEmpty(m.FundamentalAnalysis),
		AdditionalNotes:     stringValueOrEmpty(m.AdditionalNotes),
		Images:              imagesFromJSON(m.Images),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

type TradeModel struct {
	ID             int64          `gorm:"column:id;primaryKey"`
	UserID         int64          `gorm:"column:user_id;not null;index"`
	StrategyID     *int64         `gorm:"column:strategy_id;index"`
	Symbol         string         `gorm:"column:symbol;size:64;not null"`
	EntryPrice     float64        `gorm:"column:entry_price;not null"`
	ExitPrice      float64        `gorm:"column:exit_price;not null"`
	Quantity       int            `gorm:"column:quantity;not null;default:0"`
	TradeType      string         `gorm:"column:trade_type;size:16;not null"`
	StrategyUsed   *string        `gorm:"column:strategy_used;size:128"`
	EntryReason    string         `gorm:"column:entry_reason;not null"`
	ExitReason     string         `gorm:"column:exit_reason;not null"`
	Emotions       *string        `gorm:"column:emotions"`
	LessonsLearned *string        `gorm:"column:lessons_learned"`
	Tags           *string        `gorm:"column:tags"`
	Notes          *string        `gorm:"column:notes"`
	ProfitLoss     *float64       `gorm:"column:profit_loss"`
	Images         datatypes.JSON `gorm:"column:images"`
	EntryTime      *time.Time     `gorm:"column:entry_time"`
	ExitTime       *time.Time     `gorm:"column:exit_time"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (TradeModel) TableName() string {
	return "trades"
}

func toTradeModel(t domain.Trade) TradeModel {
	return TradeModel{
		ID:             t.ID,
		UserID:         t.UserID,
		StrategyID:     t.StrategyID,
		Symbol:         t.Symbol,
		EntryPrice:     t.EntryPrice,
		ExitPrice:      t.ExitPrice,
		Quantity:       t.Quantity,
		TradeType:      string(t.TradeType),
		StrategyUsed:   stringPointerOrNil(t.StrategyUsed),
		EntryReason:    t.EntryReason,
		ExitReason:     t.ExitReason,
		Emotions:       stringPointerOrNil(t.Emotions),
		LessonsLearned: stringPointerOrNil(t.LessonsLearned),
		Tags:           stringPointerOrNil(t.Tags),
		Notes:          stringPointerOrNil(t.Notes),
		ProfitLoss:     t.ProfitLoss,
		Images:         imagesToJSON(t.Images),
		EntryTime:      t.EntryTime,
		ExitTime:       t.ExitTime,
	}
}

func (m TradeModel) toDomain() domain.Trade {
	return domain.Trade{
		ID:             m.ID,
		UserID:         m.UserID,
		StrategyID:     m.StrategyID,
		Symbol:         m.Symbol,
		EntryPrice:     m.EntryPrice,
		ExitPrice:      m.ExitPrice,
		Quantity:       m.Quantity,
		TradeType:      domain.TradeDirection(m.TradeType),
		StrategyUsed:   stringValueOrEmpty(m.StrategyUsed),
		EntryReason:    m.EntryReason,
		ExitReason:     m.ExitReason,
		Emotions:       stringValueOrEmpty(m.Emotions),
		LessonsLearned: stringValueOrEmpty(m.LessonsLearned),
		Tags:           stringValueOrEmpty(m.Tags),
		Notes:          stringValueOrEmpty(m.Notes),
		ProfitLoss:     m.ProfitLoss,
		Images:         imagesFromJSON(m.Images),
		EntryTime:      m.EntryTime,
		ExitTime:       m.ExitTime,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type TradeLogModel struct {
	ID              int64          `gorm:"column:id;primaryKey"`
	UserID          int64          `gorm:"column:user_id;not null;index"`
	TradeID         *int64         `gorm:"column:trade_id;index"`
	StrategyID      *int64         `gorm:"column:strategy_id;index"`
	Symbol          string         `gorm:"column:symbol;size:64;not null"`
	EntryPrice      float64        `gorm:"column:entry_price;not null"`
	ExitPrice       float64        `gorm:"column:exit_price;not null"`
	Quantity        int            `gorm:"column:quantity;not null"`
	EntryDate       time.Time      `gorm:"column:entry_date;not null"`
	ExitDate        *time.Time     `gorm:"column:exit_date"`
	TradeType       *string        `gorm:"column:trade_type;size:16"`
	TradingStrategy *string        `gorm:"column:trading_strategy;size:128"`
	TradeNotes      *string        `gorm:"column:trade_notes"`
	ProfitLoss      *float64       `gorm:"column:profit_loss"`
	Images          datatypes.JSON `gorm:"column:images"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (TradeLogModel) TableName() string {
	return "trade_logs"
}

func toTradeLogModel(l domain.TradeLog) TradeLogModel {
	return TradeLogModel{
		ID:              l.ID,
		UserID:          l.UserID,
		TradeID:         l.TradeID,
		StrategyID:      l.StrategyID,
		Symbol:          l.Symbol,
		EntryPrice:      l.EntryPrice,
		ExitPrice:       l.ExitPrice,
		Quantity:        l.Quantity,
		EntryDate:       l.EntryDate,
		ExitDate:        l.ExitDate,
		TradeType:       stringPointerOrNil(string(l.TradeType)),
		TradingStrategy: stringPointerOrNil(l.TradingStrategy),
		TradeNotes:      stringPointerOrNil(l.TradeNotes),
		ProfitLoss:      l.ProfitLoss,
		Images:          imagesToJSON(l.Images),
	}
}

func (m TradeLogModel) toDomain() domain.TradeLog {
	return domain.TradeLog{
		ID:              m.ID,
		UserID:          m.UserID,
		TradeID:         m.TradeID,
		StrategyID:      m.StrategyID,
		Symbol:          m.Symbol,
		EntryPrice:      m.EntryPrice,
		ExitPrice:       m.ExitPrice,
		Quantity:        m.Quantity,
		EntryDate:       m.EntryDate,
		ExitDate:        m.ExitDate,
		TradeType:       domain.TradeDirection(stringValueOrEmpty(m.TradeType)),
		TradingStrategy: stringValueOrEmpty(m.TradingStrategy),
		TradeNotes:      stringValueOrEmpty(m.TradeNotes),
		ProfitLoss:      m.ProfitLoss,
		Images:          imagesFromJSON(m.Images),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type NotificationModel struct {
	ID        int64          `gorm:"column:id;primaryKey"`
	UserID    int64          `gorm:"column:user_id;not null;index"`
	Title     string         `gorm:"column:title;size:256;not null"`
	Message   string         `gorm:"column:message;not null"`
	Type      string         `gorm:"column:type;size:32;not null"`
	Link      *string        `gorm:"column:link;size:512"`
	IsRead    bool           `gorm:"column:is_read;not null;default:false"`
	Data      datatypes.JSON `gorm:"column:data"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func toNotificationModel(n domain.Notification) NotificationModel {
	return NotificationModel{
		ID:      n.ID,
		UserID:  n.UserID,
		Title:   n.Title,
		Message: n.Message,
		Type:    n.Type,
		Link:    stringPointerOrNil(n.Link),
		IsRead:  n.IsRead,
		Data:    mapToJSON(n.Data),
	}
}

func (m NotificationModel) toDomain() domain.Notification {
	return domain.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Message:   m.Message,
		Type:      m.Type,
		Link:      stringValueOrEmpty(m.Link),
		IsRead:    m.IsRead,
		Data:      mapFromJSON(m.Data),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func stringPointerOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func imagesToJSON(images []string) datatypes.JSON {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func imagesFromJSON(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return []string{}
	}
	return out
}

func mapToJSON(data map[string]any) datatypes.JSON {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func mapFromJSON(data datatypes.JSON) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func jsonOrNil(data []byte) datatypes.JSON {
	if len(data) == 0 {
		return nil
	}
	return datatypes.JSON(append([]byte(nil), data...))
}

func copyJSON(data datatypes.JSON) []byte {
	if len(data) == 0 {
		return nil
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy
}
