package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/fitplanhub/internal/events"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/session"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

// Authenticate выполняет вход или регистрацию.
//
// При успехе сессия сохраняется, окно входа закрывается и открывается лента.
// При отказе сессия и страница не меняются, пользователь видит одно уведомление.
func (c *Controller) Authenticate(ctx context.Context, mode models.AuthMode, creds models.Credentials) error {
	const op = "controller.Authenticate"
	log := c.log.With(slog.String("op", op), slog.String("mode", string(mode)), slog.String("username", creds.Username))

	var (
		resp *models.AuthResponse
		err  error
	)
	switch mode {
	case models.AuthRegister:
		if creds.Password != creds.PasswordConfirmation {
			c.notifier.Show(notifyError, msgPasswordsMismatch)
			return fmt.Errorf("%s: %w: passwords do not match", op, ErrInvalidInput)
		}
		req := models.RegisterRequest{
			Username: strings.TrimSpace(creds.Username),
			Email:    strings.TrimSpace(creds.Email),
			Password: creds.Password,
			Role:     creds.Role,
		}
		if req.Role == "" {
			req.Role = models.RoleUser
		}
		if err := c.validate.Struct(req); err != nil {
			return c.invalid(op, err)
		}
		resp, err = c.api.Register(ctx, req)
		if err != nil {
			log.Error("registration failed", sl.Err(err))
			c.notifier.Show(notifyError, fieldRejection(err, msgRegistrationFailed))
			return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
		}
	default:
		mode = models.AuthLogin
		req := models.LoginRequest{Username: strings.TrimSpace(creds.Username), Password: creds.Password}
		if err := c.validate.Struct(req); err != nil {
			return c.invalid(op, err)
		}
		resp, err = c.api.Login(ctx, req)
		if err != nil {
			log.Error("login failed", sl.Err(err))
			c.notifier.Show(notifyError, rejection(err, msgLoginFailed))
			return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
		}
	}

	if err := c.sessions.Start(ctx, resp.User, resp.Access); err != nil {
		if errors.Is(err, session.ErrIncomplete) {
			log.Error("auth response without session", sl.Err(err))
			c.notifier.Show(notifyError, msgNetworkError)
			return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
		}
		// сессия в памяти уже действует, не сохранилась только копия в хранилище
		log.Error("failed to persist session", sl.Err(err))
	}
	s := c.sessions.Current()

	c.mu.Lock()
	c.screen.ClosePrompt(view.PromptLogin)
	c.screen.ClosePrompt(view.PromptRegister)
	jobs, _ := c.navigateLocked(view.PageFeed, s)
	c.mu.Unlock()

	event, msg := events.SessionLogin, msgLoggedIn
	if mode == models.AuthRegister {
		event, msg = events.SessionRegister, msgRegistered
	}
	c.notifier.Show(notifySuccess, msg)
	c.publish(events.Event{Type: event, Username: s.User.Username})
	log.Info("authenticated", slog.String("role", string(s.User.Role)))

	c.run(ctx, jobs)
	return nil
}

// Logout завершает сессию без обращения к сети. Главная заполняется
// последними загруженными планами или остаётся без данных.
func (c *Controller) Logout(ctx context.Context) {
	const op = "controller.Logout"
	prev := c.sessions.Current()
	c.sessions.Clear(ctx)

	c.mu.Lock()
	c.screen.ClosePrompt(view.PromptNone)
	c.observeNavigation(view.PageHome, "ok")
	page := view.Build(view.PageHome, nil)
	if r := page.Region(view.RegionHomePlans); r != nil {
		if c.hasFeatured {
			r.SetPlans(append([]models.Plan(nil), c.featured...))
		} else {
			r.Idle()
		}
	}
	c.screen.Install(page)
	c.mu.Unlock()

	c.notifier.Show(notifyInfo, msgLoggedOut)
	if prev.Authenticated() {
		c.publish(events.Event{Type: events.SessionLogout, Username: prev.User.Username})
	}
	c.log.Info("logged out", slog.String("op", op))
}

// UpdateProfile меняет bio и email. Ответ API заменяет пользователя сессии целиком.
func (c *Controller) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	const op = "controller.UpdateProfile"
	s, err := c.requireSession(op)
	if err != nil {
		return err
	}
	upd.Email = strings.TrimSpace(upd.Email)
	if err := c.validate.Struct(upd); err != nil {
		return c.invalid(op, err)
	}

	user, err := c.api.UpdateProfile(ctx, s.Token, upd)
	if err != nil {
		c.log.Error("failed to update profile", slog.String("op", op), sl.Err(err))
		c.notifier.Show(notifyError, rejection(err, msgProfileFailed))
		return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
	}
	if err := c.sessions.ReplaceUser(ctx, user); err != nil {
		c.log.Error("failed to replace session user", slog.String("op", op), sl.Err(err))
	}

	c.mu.Lock()
	c.screen.ClosePrompt(view.PromptEditProfile)
	c.mu.Unlock()

	c.notifier.Show(notifySuccess, msgProfileUpdated)
	_ = c.Navigate(ctx, view.PageProfile)
	return nil
}

// SubscribeToPlan подписывает пользователя на план. Флаги is_subscribed
// меняются только перезагрузкой страницы после успеха.
func (c *Controller) SubscribeToPlan(ctx context.Context, planID int) error {
	const op = "controller.SubscribeToPlan"
	s, err := c.requireSession(op)
	if err != nil {
		return err
	}
	if err := c.api.Subscribe(ctx, s.Token, planID); err != nil {
		c.log.Error("subscribe failed", slog.String("op", op), slog.Int("plan_id", planID), sl.Err(err))
		c.notifier.Show(notifyError, rejection(err, msgSubscribeFailed))
		return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
	}

	c.notifier.Show(notifySuccess, msgSubscribed)
	c.publish(events.Event{Type: events.PlanSubscribed, Username: s.User.Username, PlanID: planID})
	c.reloadIf(ctx, view.PagePlans, view.PageFeed)
	return nil
}

// UnsubscribeFromPlan отменяет подписку на план.
func (c *Controller) UnsubscribeFromPlan(ctx context.Context, planID int) error {
	const op = "controller.UnsubscribeFromPlan"
	s, err := c.requireSession(op)
	if err != nil {
		return err
	}
	if err := c.api.Unsubscribe(ctx, s.Token, planID); err != nil {
		c.log.Error("unsubscribe failed", slog.String("op", op), slog.Int("plan_id", planID), sl.Err(err))
		c.notifier.Show(notifyError, rejection(err, msgUnsubscribeFailed))
		return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
	}

	c.notifier.Show(notifySuccess, msgUnsubscribed)
	c.publish(events.Event{Type: events.PlanUnsubscribed, Username: s.User.Username, PlanID: planID})
	c.reloadIf(ctx, view.PagePlans, view.PageFeed, view.PageSubscriptions)
	return nil
}

// FollowTrainer подписывает на обновления тренера.
func (c *Controller) FollowTrainer(ctx context.Context, trainerID int) error {
	const op = "controller.FollowTrainer"
	return c.follow(ctx, op, trainerID, true)
}

// UnfollowTrainer отписывает от тренера.
func (c *Controller) UnfollowTrainer(ctx context.Context, trainerID int) error {
	const op = "controller.UnfollowTrainer"
	return c.follow(ctx, op, trainerID, false)
}

func (c *Controller) follow(ctx context.Context, op string, trainerID int, follow bool) error {
	s, err := c.requireSession(op)
	if err != nil {
		return err
	}

	call, event, success, fallback := c.api.FollowTrainer, events.TrainerFollowed, msgTrainerFollowed, msgFollowFailed
	if !follow {
		call, event, success, fallback = c.api.UnfollowTrainer, events.TrainerUnfollowed, msgTrainerUnfollow, msgUnfollowFailed
	}
	if err := call(ctx, s.Token, trainerID); err != nil {
		c.log.Error("follow request failed", slog.String("op", op), slog.Int("trainer_id", trainerID), sl.Err(err))
		c.notifier.Show(notifyError, rejection(err, fallback))
		return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
	}

	c.notifier.Show(notifySuccess, success)
	c.publish(events.Event{Type: event, Username: s.User.Username, TrainerID: trainerID})
	c.reloadIf(ctx, view.PageFeed)
	return nil
}

// CreatePlan публикует новый план тренера. Роль проверяется повторно,
// даже если окно было открыто законно.
func (c *Controller) CreatePlan(ctx context.Context, draft models.PlanDraft) error {
	const op = "controller.CreatePlan"
	s, err := c.requireTrainer(op)
	if err != nil {
		return err
	}
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Price = strings.TrimSpace(draft.Price)
	if err := c.validate.Struct(draft); err != nil {
		return c.invalid(op, err)
	}

	plan, err := c.api.CreatePlan(ctx, s.Token, draft)
	if err != nil {
		c.log.Error("create plan failed", slog.String("op", op), sl.Err(err))
		c.notifier.Show(notifyError, rejection(err, msgCreatePlanFailed))
		return fmt.Errorf("%s: %w: %w", op, ErrRejected, err)
	}

	c.mu.Lock()
	c.screen.ClosePrompt(view.PromptCreatePlan)
	c.mu.Unlock()

	c.notifier.Show(notifySuccess, msgPlanCreated)
	e := events.Event{Type: events.PlanCreated, Username: s.User.Username}
	if plan != nil {
		e.PlanID = plan.ID
	}
	c.publish(e)
	c.reloadIf(ctx, view.PageTrainerDashboard, view.PagePlans)
	return nil
}

// requireSession возвращает сессию или открывает окно входа.
func (c *Controller) requireSession(op string) (session.Session, error) {
	s := c.sessions.Current()
	if s.Authenticated() {
		return s, nil
	}
	c.mu.Lock()
	c.screen.OpenPrompt(view.AuthPrompt(models.AuthLogin))
	c.mu.Unlock()
	return s, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
}

// requireTrainer возвращает сессию тренера или показывает ошибку.
func (c *Controller) requireTrainer(op string) (session.Session, error) {
	s := c.sessions.Current()
	if s.IsTrainer() {
		return s, nil
	}
	c.notifier.Show(notifyError, msgCreateTrainersOnly)
	return s, fmt.Errorf("%s: %w", op, ErrForbidden)
}

func (c *Controller) invalid(op string, err error) error {
	c.notifier.Show(notifyError, validationMessage(err))
	return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
}
