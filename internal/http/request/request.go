// Package request разбирает параметры запросов локального фронтенда.
package request

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

// ErrBadID параметр пути не является положительным числом.
var ErrBadID = errors.New("invalid id")

// ID читает числовой параметр пути {id}.
func ID(r *http.Request) (int, error) {
	const op = "request.ID"
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: %w: %q", op, ErrBadID, raw)
	}
	return id, nil
}

// Form разбирает тело формы.
func Form(r *http.Request) error {
	const op = "request.Form"
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
