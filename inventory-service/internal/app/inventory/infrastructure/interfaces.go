package infrastructure

import (
	"context"
)

// MessagePublisher отправляет события изменения данных склада
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
