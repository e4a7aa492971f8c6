package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/VatsalRaj481/Arise/internal/core/port"
)

var _ port.ProductManager = (*Service)(nil)
var _ port.ProductViewer = (*Service)(nil)

const (
	defaultLookupConcurrency = 8
	defaultListBudget        = 5 * time.Second
)

// A Service keeps product records and their remote stock records loosely
// in sync and builds stock enriched product views.
//
// The product store is the system of record. Stock calls are best-effort
// side effects and never fail, block or roll back a product operation.
type Service struct {
	productStore      port.ProductStore
	stockGateway      port.StockGateway
	eventsProducer    port.ProductEventsProducer
	lookupConcurrency int
	listBudget        time.Duration
}

// New returns a [Service]. The events producer may be nil.
//
// listBudget bounds all stock lookups of one listing, lookups still
// pending when it runs out leave their views without stock information.
func New(
	productStore port.ProductStore,
	stockGateway port.StockGateway,
	eventsProducer port.ProductEventsProducer,
	lookupConcurrency int,
	listBudget time.Duration,
) Service {
	if productStore == nil || stockGateway == nil {
		panic("service.New: product store and stock gateway are required") // develop mistake
	}
	if lookupConcurrency <= 0 {
		lookupConcurrency = defaultLookupConcurrency
	}
	if listBudget <= 0 {
		listBudget = defaultListBudget
	}
	return Service{
		productStore:      productStore,
		stockGateway:      stockGateway,
		eventsProducer:    eventsProducer,
		lookupConcurrency: lookupConcurrency,
		listBudget:        listBudget,
	}
}

func (s Service) listProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.listProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.productStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrInternal, err)
	}
	return ps, nil
}

// findProduct reads the product and sorts store failures into
// [domain.ErrNotFound] and [domain.ErrInternal].
func (s Service) findProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.productStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Product{}, fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%w: %w", domain.ErrInternal, err)
	}
	return p, nil
}

func (s Service) publish(
	ctx context.Context, t domain.ProductEventType, p domain.Product,
) {
	const op = "Service.publish"

	if s.eventsProducer == nil {
		return
	}

	evt := domain.ProductEvent{Type: t, Product: p, OccurredAt: time.Now()}
	if err := s.eventsProducer.ProduceProductEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce product event",
			"op", op, "type", t, "product_id", p.ID, "err", err,
		)
	}
}
