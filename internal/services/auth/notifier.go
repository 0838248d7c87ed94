package auth

import (
	"time"

	"github.com/streadway/amqp"

	"github.com/mashagrib/knowledge-base/internal/lib/rabbitmq"
	"github.com/mashagrib/knowledge-base/internal/models"
)

// RegisteredEvent сообщение о регистрации нового сотрудника.
type RegisteredEvent struct {
	UserUID   string    `json:"user_uid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AmqpNotifier публикует события регистрации в RabbitMQ.
type AmqpNotifier struct {
	ch *amqp.Channel
}

// NewAmqpNotifier создает notifier поверх открытого канала.
func NewAmqpNotifier(ch *amqp.Channel) *AmqpNotifier {
	return &AmqpNotifier{ch: ch}
}

// NotifyUserRegistered публикует событие о новой учётной записи.
func (n *AmqpNotifier) NotifyUserRegistered(user *models.User) error {
	return rabbitmq.PublishMessage(n.ch, rabbitmq.Exchange, "registered", RegisteredEvent{
		UserUID:   user.UID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
