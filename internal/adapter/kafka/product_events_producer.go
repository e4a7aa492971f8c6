package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/VatsalRaj481/Arise/internal/core/port"
	"github.com/VatsalRaj481/Arise/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
)

var _ port.ProductEventsProducer = (*ProductEventsProducer)(nil)

// A ProductEventsProducer publishes product lifecycle events keyed by
// product id, so events of one product keep their order within a partition.
type ProductEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewProductEventsProducer(
	opts ...ProducerOpt,
) (ProductEventsProducer, error) {
	const op = "NewProductEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ProductEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ProductEventsProducer{options.cl, options.encoder}, nil
}

// Close waits for buffered records until ctx is done and closes the client.
func (p ProductEventsProducer) Close(ctx context.Context) {
	const op = "ProductEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	if err := p.cl.Flush(ctx); err != nil {
		log.Warn("buffered events are dropped", "err", err)
	}
	p.cl.Close()
	log.Info("producer is closed")
}

// ProduceProductEvent buffers the event and returns without waiting for the
// broker. Delivery is detached from ctx cancellation, its failures, a full
// buffer included, are only logged. Only encoding failures are returned.
func (p ProductEventsProducer) ProduceProductEvent(
	ctx context.Context, e domain.ProductEvent,
) error {
	const op = "ProductEventsProducer.ProduceProductEvent"

	ctx = context.WithoutCancel(ctx)
	r, err := p.createRecord(ctx, e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.cl.TryProduce(ctx, r, func(r *kgo.Record, err error) {
		if err != nil {
			slog.Warn("failed to deliver product event",
				"op", op, "key", string(r.Key), "type", e.Type, "err", err,
			)
		}
	})
	return nil
}

func (p ProductEventsProducer) createRecord(
	ctx context.Context, e domain.ProductEvent,
) (*kgo.Record, error) {
	const op = "ProductEventsProducer.createRecord"

	v, err := p.encoder.Encode(p.toSchema(e))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key := strconv.FormatInt(e.Product.ID, 10)
	r := &kgo.Record{
		Key:   []byte(key),
		Value: v,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}
	otel.GetTextMapPropagator().Inject(ctx, recordCarrier{r})
	return r, nil
}

func (ProductEventsProducer) toSchema(e domain.ProductEvent) schema.ProductEventV1 {
	return schema.ProductEventV1{
		Type:        string(e.Type),
		ProductID:   e.Product.ID,
		Name:        e.Product.Name,
		Description: e.Product.Description,
		Price:       e.Product.Price.String(),
		ImageURL:    e.Product.ImageURL,
		OccurredAt:  e.OccurredAt,
	}
}
