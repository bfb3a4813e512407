package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/memstore"
)

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockStore реализует Store через testify/mock
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func alice() *models.User {
	return &models.User{ID: 1, Username: "alice", Email: "a@x.io", Role: models.RoleUser}
}

func TestManager_StartPersistsBothKeys(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	m := NewManager(store, makeLogger())

	require.NoError(t, m.Start(ctx, alice(), "T"))

	s := m.Current()
	assert.True(t, s.Authenticated())
	assert.Equal(t, "T", s.Token)
	assert.Equal(t, "alice", s.User.Username)

	token, ok, _ := store.Get(ctx, KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "T", token)
	user, ok, _ := store.Get(ctx, KeyUser)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":1,"username":"alice","email":"a@x.io","role":"user"}`, user)
}

func TestManager_StartRejectsIncomplete(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	m := NewManager(store, makeLogger())

	assert.ErrorIs(t, m.Start(ctx, nil, "T"), ErrIncomplete)
	assert.ErrorIs(t, m.Start(ctx, alice(), ""), ErrIncomplete)
	assert.False(t, m.Current().Authenticated())
	assert.Zero(t, store.Len())
}

func TestManager_CurrentIsACopy(t *testing.T) {
	m := NewManager(memstore.New(), makeLogger())
	require.NoError(t, m.Start(context.Background(), alice(), "T"))

	s := m.Current()
	s.User.Username = "mallory"
	assert.Equal(t, "alice", m.Current().User.Username)
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		entries  map[string]string
		wantAuth bool
		wantLeft int
	}{
		{
			name:     "оба ключа",
			entries:  map[string]string{KeyToken: "T", KeyUser: `{"username":"alice","role":"trainer"}`},
			wantAuth: true,
			wantLeft: 2,
		},
		{name: "пусто", entries: map[string]string{}, wantLeft: 0},
		{name: "только токен", entries: map[string]string{KeyToken: "T"}, wantLeft: 0},
		{name: "только пользователь", entries: map[string]string{KeyUser: `{"username":"alice"}`}, wantLeft: 0},
		{name: "битый пользователь", entries: map[string]string{KeyToken: "T", KeyUser: `{oops`}, wantLeft: 0},
		{name: "пустой токен", entries: map[string]string{KeyToken: "", KeyUser: `{"username":"alice"}`}, wantLeft: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			for k, v := range tt.entries {
				require.NoError(t, store.Set(ctx, k, v))
			}
			m := NewManager(store, makeLogger())

			s := m.Restore(ctx)
			assert.Equal(t, tt.wantAuth, s.Authenticated())
			assert.Equal(t, tt.wantAuth, m.Current().Authenticated())
			assert.Equal(t, s.User != nil, s.Token != "")
			assert.Equal(t, tt.wantLeft, store.Len())
		})
	}
}

func TestManager_RestoreReadError(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, KeyToken).Return("", false, errors.New("disk gone"))

	m := NewManager(store, makeLogger())
	s := m.Restore(context.Background())

	assert.False(t, s.Authenticated())
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestManager_ReplaceUser(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	m := NewManager(store, makeLogger())

	bio := "lifting"
	assert.ErrorIs(t, m.ReplaceUser(ctx, &models.User{Username: "x"}), ErrNoSession)

	require.NoError(t, m.Start(ctx, alice(), "T"))
	require.NoError(t, m.ReplaceUser(ctx, &models.User{ID: 1, Username: "alice", Email: "new@x.io", Role: models.RoleUser, Bio: &bio}))

	s := m.Current()
	assert.Equal(t, "new@x.io", s.User.Email)
	assert.Equal(t, "lifting", s.User.BioText())
	assert.Equal(t, "T", s.Token)

	raw, _, _ := store.Get(ctx, KeyUser)
	assert.Contains(t, raw, "new@x.io")
}

func TestManager_ClearIsUnconditional(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	m := NewManager(store, makeLogger())

	m.Clear(ctx)
	assert.Zero(t, store.Len())

	require.NoError(t, m.Start(ctx, alice(), "T"))
	m.Clear(ctx)
	assert.False(t, m.Current().Authenticated())
	assert.Zero(t, store.Len())
}

func TestManager_StartPersistFailureKeepsMemorySession(t *testing.T) {
	store := new(MockStore)
	store.On("Set", mock.Anything, KeyToken, "T").Return(errors.New("read-only"))
	store.On("Set", mock.Anything, KeyUser, mock.Anything).Return(nil)

	m := NewManager(store, makeLogger())
	err := m.Start(context.Background(), alice(), "T")

	assert.Error(t, err)
	assert.True(t, m.Current().Authenticated())
	store.AssertExpectations(t)
}

func TestTokenAttrs(t *testing.T) {
	assert.Nil(t, tokenAttrs("opaque-token"))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	attrs := tokenAttrs(signed)
	require.Len(t, attrs, 3)
	assert.Equal(t, "token_exp", attrs[0].(slog.Attr).Key)
	assert.False(t, attrs[1].(slog.Attr).Value.Bool())
	assert.Equal(t, "token_user_id", attrs[2].(slog.Attr).Key)
}
