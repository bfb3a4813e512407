package controller

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitplanhub/internal/apiclient"
	"github.com/magabrotheeeer/fitplanhub/internal/events"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/notify"
	"github.com/magabrotheeeer/fitplanhub/internal/session"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/memstore"
)

// MockAPI реализует API через testify/mock
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAPI) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, token, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAPI) FollowTrainer(ctx context.Context, token string, trainerID int) error {
	return m.Called(ctx, token, trainerID).Error(0)
}

func (m *MockAPI) UnfollowTrainer(ctx context.Context, token string, trainerID int) error {
	return m.Called(ctx, token, trainerID).Error(0)
}

func (m *MockAPI) ListPlans(ctx context.Context, token string) ([]models.Plan, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plan), args.Error(1)
}

func (m *MockAPI) Feed(ctx context.Context, token string) ([]models.Plan, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plan), args.Error(1)
}

func (m *MockAPI) Subscriptions(ctx context.Context, token string) ([]models.Subscription, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *MockAPI) Subscribe(ctx context.Context, token string, planID int) error {
	return m.Called(ctx, token, planID).Error(0)
}

func (m *MockAPI) Unsubscribe(ctx context.Context, token string, planID int) error {
	return m.Called(ctx, token, planID).Error(0)
}

func (m *MockAPI) TrainerStats(ctx context.Context, token string) (*models.TrainerStats, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainerStats), args.Error(1)
}

func (m *MockAPI) TrainerPlans(ctx context.Context, token string) ([]models.Plan, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plan), args.Error(1)
}

func (m *MockAPI) CreatePlan(ctx context.Context, token string, draft models.PlanDraft) (*models.Plan, error) {
	args := m.Called(ctx, token, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

// recordingNotifier запоминает все показанные уведомления.
type recordingNotifier struct {
	mu    sync.Mutex
	shown []notify.Notification
}

func (r *recordingNotifier) Show(severity notify.Severity, message string) notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := notify.Notification{ID: uint64(len(r.shown) + 1), Severity: severity, Message: message, ShownAt: time.Now()}
	r.shown = append(r.shown, n)
	return n
}

func (r *recordingNotifier) Current() (notify.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.shown) == 0 {
		return notify.Notification{}, false
	}
	return r.shown[len(r.shown)-1], true
}

func (r *recordingNotifier) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.shown...)
}

func (r *recordingNotifier) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type navRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (n *navRecorder) ObserveNavigation(page, outcome string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outcomes = append(n.outcomes, page+":"+outcome)
}

type fixture struct {
	c        *Controller
	api      *MockAPI
	notes    *recordingNotifier
	store    *memstore.Store
	events   *recordingPublisher
	navStats *navRecorder
}

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T, seed map[string]string) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	for k, v := range seed {
		require.NoError(t, store.Set(ctx, k, v))
	}
	f := &fixture{
		api:      new(MockAPI),
		notes:    &recordingNotifier{},
		store:    store,
		events:   &recordingPublisher{},
		navStats: &navRecorder{},
	}
	f.c = New(ctx, Options{
		API:      f.api,
		Sessions: session.NewManager(store, makeLogger()),
		Notifier: f.notes,
		Events:   f.events,
		Metrics:  f.navStats,
		Logger:   makeLogger(),
	})
	return f
}

func userSeed() map[string]string {
	return map[string]string{
		session.KeyToken: "T",
		session.KeyUser:  `{"id":1,"username":"alice","email":"a@x.io","role":"user"}`,
	}
}

func trainerSeed() map[string]string {
	return map[string]string{
		session.KeyToken: "TT",
		session.KeyUser:  `{"id":2,"username":"coach","email":"c@x.io","role":"trainer"}`,
	}
}

func alice() *models.User {
	return &models.User{ID: 1, Username: "alice", Email: "a@x.io", Role: models.RoleUser}
}

func plans(ids ...int) []models.Plan {
	out := make([]models.Plan, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Plan{ID: id, Title: "Plan", Price: "10.00", DurationDays: 7})
	}
	return out
}

func transportErr() error {
	return apiclient.ErrTransport
}

func apiErr(status int, message string) error {
	return &apiclient.APIError{StatusCode: status, Message: message, Fields: []apiclient.FieldError{{Field: "error", Messages: []string{message}}}}
}

// assertPaired проверяет, что user и token присутствуют только вместе,
// в памяти и в хранилище.
func assertPaired(t *testing.T, f *fixture) {
	t.Helper()
	s := f.c.Session()
	assert.Equal(t, s.User != nil, s.Token != "")

	ctx := context.Background()
	_, hasToken, _ := f.store.Get(ctx, session.KeyToken)
	_, hasUser, _ := f.store.Get(ctx, session.KeyUser)
	assert.Equal(t, hasToken, hasUser)
}
