// Package events публикует события клиента (вход, выход, подписки) в RabbitMQ.
// Публикация необязательна: без подключения Publisher молча ничего не делает.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
)

// Type тип события, он же routing key.
type Type string

const (
	SessionLogin     Type = "session.login"
	SessionRegister  Type = "session.register"
	SessionLogout    Type = "session.logout"
	PlanSubscribed   Type = "plan.subscribed"
	PlanUnsubscribed Type = "plan.unsubscribed"
	PlanCreated      Type = "plan.created"
	TrainerFollowed  Type = "trainer.followed"
	TrainerUnfollowed Type = "trainer.unfollowed"
)

// Event тело сообщения.
type Event struct {
	Type      Type      `json:"type"`
	Username  string    `json:"username,omitempty"`
	PlanID    int       `json:"plan_id,omitempty"`
	TrainerID int       `json:"trainer_id,omitempty"`
	At        time.Time `json:"at"`
}

// Channel часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher отправляет события в exchange.
type Publisher struct {
	ch       Channel
	exchange string
	log      *slog.Logger
}

// NewPublisher создаёт Publisher. ch == nil отключает публикацию.
func NewPublisher(ch Channel, exchange string, log *slog.Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, log: log}
}

// Publish отправляет событие. Ошибка только логируется: события не влияют
// на результат действия пользователя.
func (p *Publisher) Publish(e Event) {
	if p == nil || p.ch == nil {
		return
	}
	if err := p.publish(e); err != nil {
		p.log.Warn("failed to publish event", slog.String("type", string(e.Type)), sl.Err(err))
	}
}

func (p *Publisher) publish(e Event) error {
	const op = "events.Publish"
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		p.exchange,
		string(e.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.At,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
