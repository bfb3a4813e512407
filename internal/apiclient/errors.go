package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport API недоступен: соединение, таймаут, обрыв.
	ErrTransport = errors.New("api unreachable")
	// ErrMalformed ответ API не удалось разобрать.
	ErrMalformed = errors.New("malformed api response")
)

// FieldError сообщение об ошибке одного поля (или общего ключа вроде "error").
type FieldError struct {
	Field    string
	Messages []string
}

// APIError ответ API со статусом не 2xx и JSON-телом.
type APIError struct {
	StatusCode int
	// Message значение ключа "error", если он есть.
	Message string
	// Fields все ключи тела в порядке следования.
	Fields []FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	if d := e.Detail(); d != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, d)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Detail склеивает все сообщения тела через ", " в порядке ключей.
func (e *APIError) Detail() string {
	var msgs []string
	for _, f := range e.Fields {
		msgs = append(msgs, f.Messages...)
	}
	return strings.Join(msgs, ", ")
}

// parseAPIError разбирает тело ошибки, сохраняя порядок ключей верхнего уровня.
// Значение ключа может быть строкой, массивом строк или чем угодно ещё,
// в последнем случае берётся исходный JSON.
func parseAPIError(status int, body []byte) (*APIError, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("error body is not an object")
	}

	apiErr := &APIError{StatusCode: status}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		msgs := rawMessages(raw)
		apiErr.Fields = append(apiErr.Fields, FieldError{Field: key, Messages: msgs})
		if key == "error" && len(msgs) > 0 {
			apiErr.Message = msgs[0]
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return apiErr, nil
}

func rawMessages(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			var str string
			if err := json.Unmarshal(item, &str); err == nil {
				out = append(out, str)
				continue
			}
			out = append(out, string(item))
		}
		return out
	}
	return []string{string(raw)}
}
