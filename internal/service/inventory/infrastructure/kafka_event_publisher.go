// internal/service/inventory/infrastructure/kafka_event_publisher.go
package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"commerce/internal/pkg/logger"
	"commerce/internal/pkg/mq"
	"commerce/internal/service/inventory/domain"
)

// KafkaEventPublisher 实现了 domain.EventPublisher 接口，
// 把库存事件写入 Kafka，key 为商品 ID 以保证同一商品的事件有序。
type KafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: writer}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event *domain.StockEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal stock event")
	}
	return mq.ProduceMessage(ctx, p.writer, []byte(event.ProductID), payload)
}

// Close 关闭底层的 Kafka writer。
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}

// NopEventPublisher 在没有配置 Kafka 时使用，只在 debug 级别记录事件。
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(ctx context.Context, event *domain.StockEvent) error {
	logger.Ctx(ctx).Debug().
		Str("type", string(event.Type)).
		Str("product_id", event.ProductID).
		Msg("stock event dropped: no event sink configured")
	return nil
}
