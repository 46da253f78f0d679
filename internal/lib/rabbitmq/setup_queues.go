package rabbitmq

// QueueConfig связывает очередь с ключом маршрутизации обменника.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди для писем пользователям:
// по одной на каждое событие жизненного цикла.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notifications.registration", RoutingKey: "registration"},
		{QueueName: "notifications.password_reset", RoutingKey: "password_reset"},
		{QueueName: "notifications.enrollment", RoutingKey: "enrollment"},
	}
}
