package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Login выполняет POST /api/accounts/login/.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "Login", http.MethodPost, "/api/accounts/login/", "", req, &resp); err != nil {
		return nil, err
	}
	if err := checkAuth(&resp); err != nil {
		return nil, fmt.Errorf("apiclient.Login: %w", err)
	}
	return &resp, nil
}

// Register выполняет POST /api/accounts/register/.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "Register", http.MethodPost, "/api/accounts/register/", "", req, &resp); err != nil {
		return nil, err
	}
	if err := checkAuth(&resp); err != nil {
		return nil, fmt.Errorf("apiclient.Register: %w", err)
	}
	return &resp, nil
}

// checkAuth отсекает ответы без токена или пользователя: сессия без одного из них невалидна.
func checkAuth(resp *models.AuthResponse) error {
	if resp.Access == "" || resp.User == nil {
		return fmt.Errorf("%w: access token or user missing", ErrMalformed)
	}
	return nil
}

// UpdateProfile выполняет PUT /api/accounts/profile/ и возвращает профиль в версии сервера.
func (c *Client) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "UpdateProfile", http.MethodPut, "/api/accounts/profile/", token, upd, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FollowTrainer выполняет POST /api/accounts/follow/{id}/.
func (c *Client) FollowTrainer(ctx context.Context, token string, trainerID int) error {
	return c.do(ctx, "FollowTrainer", http.MethodPost, fmt.Sprintf("/api/accounts/follow/%d/", trainerID), token, struct{}{}, nil)
}

// UnfollowTrainer выполняет DELETE /api/accounts/follow/{id}/.
func (c *Client) UnfollowTrainer(ctx context.Context, token string, trainerID int) error {
	return c.do(ctx, "UnfollowTrainer", http.MethodDelete, fmt.Sprintf("/api/accounts/follow/%d/", trainerID), token, nil, nil)
}
