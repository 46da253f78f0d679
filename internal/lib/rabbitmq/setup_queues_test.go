package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

func TestGetNotificationQueues(t *testing.T) {
	queues := GetNotificationQueues()

	require.Len(t, queues, 3)

	// Ключи маршрутизации совпадают с типами событий: издатель публикует
	// событие по его типу, и оно должно попасть в свою очередь.
	wantKeys := map[string]string{
		"notifications.registration":   models.EventRegistration,
		"notifications.password_reset": models.EventPasswordReset,
		"notifications.enrollment":     models.EventEnrollment,
	}

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true

		key, ok := wantKeys[q.QueueName]
		require.Truef(t, ok, "unexpected queue: %s", q.QueueName)
		assert.Equal(t, key, q.RoutingKey)
	}
}
