// Package controller владеет сессией пользователя и текущей страницей клиента.
//
// Контроллер восстанавливает сессию из долговременного хранилища, выполняет
// переходы между страницами с проверкой доступа, запускает загрузки данных и
// превращает результат каждого действия пользователя в одно уведомление.
// Состояние защищено мьютексом, сетевые вызовы выполняются без блокировки.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitplanhub/internal/events"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/notify"
	"github.com/magabrotheeeer/fitplanhub/internal/session"
	"github.com/magabrotheeeer/fitplanhub/internal/view"
)

var (
	// ErrUnauthenticated действие требует входа, открыто окно входа.
	ErrUnauthenticated = errors.New("login required")
	// ErrForbidden действие недоступно роли пользователя.
	ErrForbidden = errors.New("forbidden for role")
	// ErrInvalidInput форма не прошла локальную проверку, запрос не отправлялся.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRejected действие не удалось: API отказал или недоступен.
	ErrRejected = errors.New("action failed")
)

// API методы REST API маркетплейса, которые вызывает контроллер.
type API interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error)
	FollowTrainer(ctx context.Context, token string, trainerID int) error
	UnfollowTrainer(ctx context.Context, token string, trainerID int) error

	ListPlans(ctx context.Context, token string) ([]models.Plan, error)
	Feed(ctx context.Context, token string) ([]models.Plan, error)
	Subscriptions(ctx context.Context, token string) ([]models.Subscription, error)
	Subscribe(ctx context.Context, token string, planID int) error
	Unsubscribe(ctx context.Context, token string, planID int) error
	TrainerStats(ctx context.Context, token string) (*models.TrainerStats, error)
	TrainerPlans(ctx context.Context, token string) ([]models.Plan, error)
	CreatePlan(ctx context.Context, token string, draft models.PlanDraft) (*models.Plan, error)
}

// Notifier показывает уведомления.
type Notifier interface {
	Show(severity notify.Severity, message string) notify.Notification
	Current() (notify.Notification, bool)
}

// Publisher публикует события клиента.
type Publisher interface {
	Publish(e events.Event)
}

// NavigationObserver считает переходы по страницам.
type NavigationObserver interface {
	ObserveNavigation(page, outcome string)
}

// Options зависимости контроллера. Events и Metrics необязательны.
type Options struct {
	API      API
	Sessions *session.Manager
	Notifier Notifier
	Events   Publisher
	Metrics  NavigationObserver
	Logger   *slog.Logger
}

// Controller контроллер сессии и навигации. Один на процесс.
type Controller struct {
	api      API
	sessions *session.Manager
	notifier Notifier
	events   Publisher
	metrics  NavigationObserver
	log      *slog.Logger
	validate *validator.Validate

	mu     sync.Mutex
	screen *view.Screen
	// featured последние загруженные планы главной, ими главная заполняется
	// после выхода без обращения к сети.
	featured    []models.Plan
	hasFeatured bool
}

// New создаёт контроллер и восстанавливает сессию из хранилища.
// Экран пуст до первого Navigate.
func New(ctx context.Context, opts Options) *Controller {
	c := &Controller{
		api:      opts.API,
		sessions: opts.Sessions,
		notifier: opts.Notifier,
		events:   opts.Events,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		validate: validator.New(),
		screen:   view.NewScreen(),
	}
	s := c.sessions.Restore(ctx)
	if s.Authenticated() {
		c.log.Info("session restored", slog.String("username", s.User.Username))
	}
	return c
}

// Session текущая сессия (копия).
func (c *Controller) Session() session.Session {
	return c.sessions.Current()
}

// CurrentPage текущая страница.
func (c *Controller) CurrentPage() view.PageID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen.Current()
}

// Snapshot состояние экрана для отрисовки.
func (c *Controller) Snapshot() view.Snapshot {
	s := c.sessions.Current()

	c.mu.Lock()
	page := c.screen.Current()
	snap := view.Snapshot{
		Page:    page,
		Nav:     view.BuildNav(page, s.User),
		Content: c.screen.Snapshot(),
		Prompt:  c.screen.Prompt(),
	}
	c.mu.Unlock()

	if n, ok := c.notifier.Current(); ok {
		snap.Notification = &n
	}
	return snap
}

func (c *Controller) publish(e events.Event) {
	if c.events != nil {
		c.events.Publish(e)
	}
}

func (c *Controller) observeNavigation(page view.PageID, outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveNavigation(string(page), outcome)
	}
}
