package trainers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс trainers.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) FollowTrainer(ctx context.Context, trainerID int) error {
	return m.Called(ctx, trainerID).Error(0)
}

func (m *MockService) UnfollowTrainer(ctx context.Context, trainerID int) error {
	return m.Called(ctx, trainerID).Error(0)
}

func TestTrainersHandler(t *testing.T) {
	svc := new(MockService)
	svc.On("FollowTrainer", mock.Anything, 2).Return(nil).Once()
	svc.On("UnfollowTrainer", mock.Anything, 2).Return(nil).Once()

	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Post("/trainers/{id}/follow", h.Follow)
	r.Post("/trainers/{id}/unfollow", h.Unfollow)

	for _, path := range []string{"/trainers/2/follow", "/trainers/2/unfollow"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/trainers/0/follow", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"Error","error":"invalid trainer id"}`, w.Body.String())

	svc.AssertExpectations(t)
}
