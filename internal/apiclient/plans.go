package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// ListPlans выполняет GET /api/plans/. Токен необязателен: без него API отдаёт превью.
func (c *Client) ListPlans(ctx context.Context, token string) ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.do(ctx, "ListPlans", http.MethodGet, "/api/plans/", token, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Feed выполняет GET /api/plans/feed/.
func (c *Client) Feed(ctx context.Context, token string) ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.do(ctx, "Feed", http.MethodGet, "/api/plans/feed/", token, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Subscriptions выполняет GET /api/plans/subscriptions/.
func (c *Client) Subscriptions(ctx context.Context, token string) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := c.do(ctx, "Subscriptions", http.MethodGet, "/api/plans/subscriptions/", token, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Subscribe выполняет POST /api/plans/{id}/subscribe/ с пустым телом.
// Тело успешного ответа не разбирается.
func (c *Client) Subscribe(ctx context.Context, token string, planID int) error {
	return c.do(ctx, "Subscribe", http.MethodPost, fmt.Sprintf("/api/plans/%d/subscribe/", planID), token, struct{}{}, nil)
}

// Unsubscribe выполняет POST /api/plans/{id}/unsubscribe/.
func (c *Client) Unsubscribe(ctx context.Context, token string, planID int) error {
	return c.do(ctx, "Unsubscribe", http.MethodPost, fmt.Sprintf("/api/plans/%d/unsubscribe/", planID), token, struct{}{}, nil)
}

// TrainerStats выполняет GET /api/plans/trainer/stats/.
func (c *Client) TrainerStats(ctx context.Context, token string) (*models.TrainerStats, error) {
	var stats models.TrainerStats
	if err := c.do(ctx, "TrainerStats", http.MethodGet, "/api/plans/trainer/stats/", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// TrainerPlans выполняет GET /api/plans/trainer/plans/.
func (c *Client) TrainerPlans(ctx context.Context, token string) ([]models.Plan, error) {
	var plans []models.Plan
	if err := c.do(ctx, "TrainerPlans", http.MethodGet, "/api/plans/trainer/plans/", token, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreatePlan выполняет POST /api/plans/trainer/plans/.
func (c *Client) CreatePlan(ctx context.Context, token string, draft models.PlanDraft) (*models.Plan, error) {
	var plan models.Plan
	if err := c.do(ctx, "CreatePlan", http.MethodPost, "/api/plans/trainer/plans/", token, draft, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
