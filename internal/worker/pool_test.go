package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/notify"
	"github.com/BuzzLyutic/collabtask-api/tests"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []model.Notification
}

func (s *recordingSender) Send(_ context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestPool_ProcessesQueue(t *testing.T) {
	pool, cleanup := tests.SetupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	ctx := context.Background()

	admin := tests.SeedUser(t, pool, "admin", "admin@example.com", "admin")
	owner := tests.SeedUser(t, pool, "owner", "owner@example.com", "employee")
	taskID := tests.SeedTask(t, pool, owner, "Ship v2")

	_, err := pool.Exec(ctx, `
		INSERT INTO notification_events (kind, task_id, actor_id)
		VALUES ($1, $2, $3)
	`, model.EventTaskCreated, taskID, owner)
	require.NoError(t, err)

	sender := &recordingSender{}
	workerPool := NewPool(notify.NewDispatcher(pool, sender, logger), logger, 2)
	workerPool.Start(ctx)

	success := tests.WaitForCondition(t, 15*time.Second, func() bool {
		var sent int
		pool.QueryRow(ctx, "SELECT COUNT(*) FROM notification_deliveries WHERE status = 'sent'").Scan(&sent)
		return sent >= 1
	})

	workerPool.Stop()
	require.True(t, success, "delivery should be sent")

	assert.Equal(t, 1, sender.count())

	var recipient int64
	pool.QueryRow(ctx, "SELECT recipient_id FROM notification_deliveries WHERE status = 'sent'").Scan(&recipient)
	assert.Equal(t, admin, recipient)
}

func TestPool_NoDuplicateDeliveries(t *testing.T) {
	pool, cleanup := tests.SetupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	ctx := context.Background()

	tests.SeedUser(t, pool, "admin", "admin@example.com", "admin")
	owner := tests.SeedUser(t, pool, "owner", "owner@example.com", "employee")

	// Несколько событий, несколько воркеров: каждое событие разворачивается
	// ровно один раз, каждая доставка отправляется ровно один раз
	const events = 10
	for i := 0; i < events; i++ {
		taskID := tests.SeedTask(t, pool, owner, "Task")
		_, err := pool.Exec(ctx, `
			INSERT INTO notification_events (kind, task_id, actor_id)
			VALUES ($1, $2, $3)
		`, model.EventTaskCreated, taskID, owner)
		require.NoError(t, err)
	}

	sender := &recordingSender{}
	workerPool := NewPool(notify.NewDispatcher(pool, sender, logger), logger, 5)
	workerPool.Start(ctx)

	success := tests.WaitForCondition(t, 20*time.Second, func() bool {
		var sent int
		pool.QueryRow(ctx, "SELECT COUNT(*) FROM notification_deliveries WHERE status = 'sent'").Scan(&sent)
		return sent >= events
	})

	workerPool.Stop()
	require.True(t, success, "all deliveries should be sent")

	// Один админ на событие — ровно по одной доставке
	var deliveries int
	pool.QueryRow(ctx, "SELECT COUNT(*) FROM notification_deliveries").Scan(&deliveries)
	assert.Equal(t, events, deliveries)
	assert.Equal(t, events, sender.count())

	var pending int
	pool.QueryRow(ctx, "SELECT COUNT(*) FROM notification_events WHERE status = 'pending'").Scan(&pending)
	assert.Zero(t, pending)
}

func TestPool_GracefulShutdown(t *testing.T) {
	pool, cleanup := tests.SetupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	ctx := context.Background()

	owner := tests.SeedUser(t, pool, "owner", "owner@example.com", "employee")
	taskID := tests.SeedTask(t, pool, owner, "Ship v2")
	_, err := pool.Exec(ctx, `
		INSERT INTO notification_events (kind, task_id, actor_id)
		VALUES ($1, $2, $3)
	`, model.EventTaskCreated, taskID, owner)
	require.NoError(t, err)

	workerPool := NewPool(notify.NewDispatcher(pool, &recordingSender{}, logger), logger, 2)
	workerPool.Start(ctx)

	time.Sleep(1 * time.Second)

	done := make(chan struct{})
	go func() {
		workerPool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("worker pool did not stop gracefully within 10 seconds")
	}
}
