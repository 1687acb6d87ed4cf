package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/notify"
)

// Pool — фоновые воркеры очереди уведомлений. Запрос, породивший событие,
// на доставку не ждет: он только кладет событие в очередь
type Pool struct {
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
	count      int
	interval   time.Duration
	wg         sync.WaitGroup
	stop       chan struct{}
}

func NewPool(dispatcher *notify.Dispatcher, logger *zap.Logger, count int) *Pool {
	return &Pool{
		dispatcher: dispatcher,
		logger:     logger,
		count:      count,
		interval:   time.Second,
		stop:       make(chan struct{}),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.logger.Info("Starting worker pool", zap.Int("workers", p.count))

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	close(p.stop)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.processNext(ctx); err != nil && !errors.Is(err, notify.ErrNoWork) {
				p.logger.Error("worker error", zap.Int("worker", id), zap.Error(err))
			}
		}
	}
}

// processNext выгребает очередь до пустоты: сначала разворачивает события,
// потом отправляет готовые доставки
func (p *Pool) processNext(ctx context.Context) error {
	for {
		err := p.dispatcher.FanOutNext(ctx)
		if errors.Is(err, notify.ErrNoWork) {
			break
		}
		if err != nil {
			return err
		}
	}

	for {
		err := p.dispatcher.DeliverNext(ctx)
		if err != nil {
			return err // включая ErrNoWork, его отфильтрует вызывающий
		}
	}
}
