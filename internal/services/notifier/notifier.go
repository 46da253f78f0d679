// Package services реализует публикацию событий уведомлений в RabbitMQ.
//
// Ядро зависит от коллаборатора уведомлений только через сигнал
// успех/ошибка публикации: доставку письма выполняет отдельный
// сервис-потребитель (cmd/notification-sender).
package services

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/bsanthoshbsr/elearning-platform/internal/lib/rabbitmq"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

// NotifierService публикует события жизненного цикла пользователя
// в обменник уведомлений. Ключ маршрутизации равен типу события.
type NotifierService struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(ch *amqp.Channel, log *slog.Logger) *NotifierService {
	return &NotifierService{ch: ch, log: log}
}

// Notify публикует событие. Ошибка публикации возвращается вызывающему
// как сигнал сбоя коллаборатора; повторных попыток здесь нет.
func (n *NotifierService) Notify(event models.NotificationEvent) error {
	return rabbitmq.PublishMessage(n.ch, rabbitmq.Exchange, event.Type, event)
}
