// Package session хранит сессию клиента: пользователя и bearer-токен.
//
// Сессия живёт в памяти и дублируется в долговременное хранилище двумя
// независимыми ключами: token и user (JSON пользователя). Пользователь
// и токен присутствуют только вместе: Manager не допускает состояния,
// в котором есть одно без другого.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

const (
	// KeyToken ключ токена в хранилище.
	KeyToken = "token"
	// KeyUser ключ пользователя в хранилище.
	KeyUser = "user"
)

var (
	// ErrIncomplete попытка создать сессию без пользователя или без токена.
	ErrIncomplete = errors.New("session requires both user and token")
	// ErrNoSession операция требует активной сессии.
	ErrNoSession = errors.New("no active session")
)

// Store долговременное key-value хранилище.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Session снимок сессии. Нулевое значение означает отсутствие сессии.
type Session struct {
	User  *models.User
	Token string
}

// Authenticated сообщает, есть ли активная сессия.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// IsTrainer сообщает, что сессия принадлежит тренеру.
func (s Session) IsTrainer() bool {
	return s.Authenticated() && s.User.IsTrainer()
}

// Manager владеет единственной сессией процесса.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	log     *slog.Logger
	current Session
}

// NewManager создаёт менеджер с пустой сессией.
func NewManager(store Store, log *slog.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Current возвращает копию текущей сессии.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.current)
}

// Restore восстанавливает сессию из хранилища. Сессия поднимается, только если
// оба ключа есть и пользователь читается; половинчатое состояние удаляется.
func (m *Manager) Restore(ctx context.Context) Session {
	const op = "session.Restore"
	log := m.log.With(slog.String("op", op))

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = Session{}

	token, hasToken, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		log.Error("failed to read token", sl.Err(err))
		return Session{}
	}
	rawUser, hasUser, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		return Session{}
	}
	if !hasToken && !hasUser {
		log.Debug("no stored session")
		return Session{}
	}

	var user models.User
	if !hasToken || !hasUser || token == "" || json.Unmarshal([]byte(rawUser), &user) != nil || user.Username == "" {
		log.Warn("stored session is incomplete, dropping it",
			slog.Bool("has_token", hasToken), slog.Bool("has_user", hasUser))
		m.deleteAll(ctx, log)
		return Session{}
	}

	m.current = Session{User: &user, Token: token}
	log.Info("session restored", append([]any{slog.String("username", user.Username)}, tokenAttrs(token)...)...)
	return clone(m.current)
}

// Start создаёт сессию после входа или регистрации и сохраняет оба ключа.
// Ошибка записи в хранилище не отменяет сессию в памяти.
func (m *Manager) Start(ctx context.Context, user *models.User, token string) error {
	const op = "session.Start"
	if user == nil || token == "" {
		return fmt.Errorf("%s: %w", op, ErrIncomplete)
	}
	log := m.log.With(slog.String("op", op))

	m.mu.Lock()
	defer m.mu.Unlock()

	u := *user
	m.current = Session{User: &u, Token: token}

	var errs []error
	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		errs = append(errs, err)
	}
	if err := m.persistUser(ctx, &u); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		log.Error("failed to persist session", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("session started", append([]any{slog.String("username", u.Username)}, tokenAttrs(token)...)...)
	return nil
}

// ReplaceUser заменяет пользователя целиком (ответ сервера авторитетен) и
// перезаписывает ключ user.
func (m *Manager) ReplaceUser(ctx context.Context, user *models.User) error {
	const op = "session.ReplaceUser"
	if user == nil {
		return fmt.Errorf("%s: %w", op, ErrIncomplete)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.current.Authenticated() {
		return fmt.Errorf("%s: %w", op, ErrNoSession)
	}
	u := *user
	m.current.User = &u
	if err := m.persistUser(ctx, &u); err != nil {
		m.log.Error("failed to persist user", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear очищает сессию и безусловно удаляет оба ключа.
func (m *Manager) Clear(ctx context.Context) {
	const op = "session.Clear"
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = Session{}
	m.deleteAll(ctx, m.log.With(slog.String("op", op)))
}

func (m *Manager) persistUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, KeyUser, string(data))
}

func (m *Manager) deleteAll(ctx context.Context, log *slog.Logger) {
	for _, key := range []string{KeyToken, KeyUser} {
		if err := m.store.Delete(ctx, key); err != nil {
			log.Error("failed to delete session key", slog.String("key", key), sl.Err(err))
		}
	}
}

func clone(s Session) Session {
	if s.User == nil {
		return Session{}
	}
	u := *s.User
	return Session{User: &u, Token: s.Token}
}

// tokenAttrs атрибуты токена для логов. Непрозрачные (не JWT) токены дают
// пустой набор атрибутов.
func tokenAttrs(token string) []any {
	claims, err := jwt.Inspect(token)
	if err != nil {
		return nil
	}
	var attrs []any
	if claims.ExpiresAt != nil {
		attrs = append(attrs, slog.Time("token_exp", claims.ExpiresAt.Time), slog.Bool("token_expired", claims.Expired(time.Now())))
	}
	if claims.UserID != 0 {
		attrs = append(attrs, slog.Int("token_user_id", claims.UserID))
	}
	return attrs
}
