package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
)

// Sender — транспорт доставки. Почтовый шлюз живет за этим интерфейсом
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// LogSender пишет уведомление в лог. Транспорт по умолчанию,
// пока не подключен настоящий SMTP
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, n model.Notification) error {
	s.logger.Info("notification delivered",
		zap.Int64("recipient_id", n.RecipientID),
		zap.String("recipient_email", n.RecipientEmail),
		zap.String("kind", n.Kind),
		zap.Int64("task_id", n.TaskID),
		zap.String("message", n.Message),
	)
	return nil
}
