package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Money цена плана. API отдаёт DecimalField строкой ("49.99"),
// агрегаты статистики числом, поэтому принимаются оба варианта.
type Money string

// UnmarshalJSON принимает строку или число.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("models.Money: %w", err)
		}
		*m = Money(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("models.Money: %w", err)
	}
	*m = Money(n.String())
	return nil
}

// String возвращает цену, "0" для пустой.
func (m Money) String() string {
	if m == "" {
		return "0"
	}
	return string(m)
}

// Plan план тренировок тренера. Для неавторизованных запросов API отдаёт
// сокращённое представление без description и is_subscribed.
type Plan struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description,omitempty"`
	PreviewDescription string `json:"preview_description"`
	Price              Money  `json:"price"`
	DurationDays       int    `json:"duration_days"`
	Trainer            *User  `json:"trainer,omitempty"`
	IsSubscribed       bool   `json:"is_subscribed"`
}

// TrainerName имя автора плана или пустая строка.
func (p Plan) TrainerName() string {
	if p.Trainer == nil {
		return ""
	}
	return p.Trainer.Username
}

// Matches проверяет вхождение term (без учёта регистра) в текстовые поля плана.
func (p Plan) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range []string{p.Title, p.Description, p.PreviewDescription, p.TrainerName()} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Subscription активная подписка пользователя на план.
type Subscription struct {
	ID           int       `json:"id"`
	Plan         Plan      `json:"plan"`
	PurchaseDate time.Time `json:"purchase_date"`
	IsActive     bool      `json:"is_active"`
}

// PopularPlan самый популярный план тренера.
type PopularPlan struct {
	Title       string `json:"title"`
	Subscribers int    `json:"subscribers"`
}

// TrainerStats счётчики панели тренера.
type TrainerStats struct {
	TotalPlans        int         `json:"total_plans"`
	TotalSubscribers  int         `json:"total_subscribers"`
	TotalEarnings     Money       `json:"total_earnings"`
	TotalFollowers    int         `json:"total_followers"`
	RecentSubscribers int         `json:"recent_subscribers"`
	PopularPlan       PopularPlan `json:"popular_plan"`
}
