// Package notify показывает короткие немодальные уведомления.
// Одновременно видно не больше одного: новое сразу вытесняет текущее,
// каждое само исчезает через TTL.
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Severity уровень уведомления.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

// DefaultTTL время показа по умолчанию.
const DefaultTTL = 5 * time.Second

// Notification показанное уведомление.
type Notification struct {
	ID       uint64    `json:"id"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	ShownAt  time.Time `json:"shown_at"`
}

// Observer получает факт показа, реализуется пакетом metrics.
type Observer interface {
	ObserveNotification(severity string)
}

// Notifier держит не более одного видимого уведомления.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	log      *slog.Logger
	observer Observer

	seq     uint64
	current *Notification
	timer   *time.Timer
}

// New создаёт Notifier. ttl <= 0 заменяется на DefaultTTL; observer может быть nil.
func New(ttl time.Duration, log *slog.Logger, observer Observer) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, log: log, observer: observer}
}

// Show показывает уведомление, убирая текущее независимо от его таймера.
func (n *Notifier) Show(severity Severity, message string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	id := n.seq
	n.current = &Notification{ID: id, Severity: severity, Message: message, ShownAt: time.Now()}
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(id) })

	n.log.Info("notification", slog.String("severity", string(severity)), slog.String("message", message))
	if n.observer != nil {
		n.observer.ObserveNotification(string(severity))
	}
	return *n.current
}

// Current возвращает видимое уведомление.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Dismiss закрывает уведомление вручную.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

// expire снимает уведомление id, если оно всё ещё видно.
func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.current.ID == id {
		n.current = nil
		n.timer = nil
	}
}
