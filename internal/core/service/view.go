package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

func (s Service) GetProductView(
	ctx context.Context, id int64,
) (domain.ProductView, error) {
	const op = "Service.GetProductView"

	if err := ctx.Err(); err != nil {
		return domain.ProductView{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.findProduct(ctx, id)
	if err != nil {
		return domain.ProductView{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.enrich(ctx, p), nil
}

// ListProductViews returns one view per stored product in store order.
//
// Stock lookups run concurrently within the list budget. A failed lookup
// only degrades the status of its own view, a lookup not finished within
// the budget or after ctx is done leaves its view without stock information.
func (s Service) ListProductViews(
	ctx context.Context,
) ([]domain.ProductView, error) {
	const op = "Service.ListProductViews"
	log := slog.With("op", op)

	ps, err := s.listProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.listBudget)
	defer cancel()

	results := make([]domain.StockResult, len(ps))
	resolved := s.lookupAll(lookupCtx, ps, results)
	if resolved != len(ps) {
		log.Warn("stock lookups left unresolved",
			"resolved", resolved, "total", len(ps), "err", lookupCtx.Err(),
		)
	}

	vs := make([]domain.ProductView, len(ps))
	for i := range ps {
		vs[i] = s.view(ps[i], results[i])
	}
	return vs, nil
}

type slotResult struct {
	i   int
	res domain.StockResult
}

// lookupAll fills results by index and returns once every lookup is done
// or ctx is done, whichever comes first. It reports the number of filled
// slots; lookups still running when ctx ends are abandoned.
func (s Service) lookupAll(
	ctx context.Context, ps []domain.Product, results []domain.StockResult,
) int {
	done := make(chan slotResult, len(ps))

	go func() {
		var g errgroup.Group
		g.SetLimit(s.lookupConcurrency)
		for i := range ps {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				done <- slotResult{i, s.stockGateway.GetStock(ctx, ps[i].ID)}
				return nil
			})
		}
		_ = g.Wait()
		close(done)
	}()

	var n int
	for {
		select {
		case r, ok := <-done:
			if !ok {
				return n
			}
			results[r.i] = r.res
			n++
		case <-ctx.Done():
			return n
		}
	}
}

func (s Service) enrich(ctx context.Context, p domain.Product) domain.ProductView {
	return s.view(p, s.stockGateway.GetStock(ctx, p.ID))
}

func (s Service) view(p domain.Product, res domain.StockResult) domain.ProductView {
	const op = "Service.view"

	v := domain.NewProductView(p, res)
	switch res.Outcome {
	case domain.StockUnavailable:
		slog.Error("failed to fetch stock",
			"op", op, "product_id", p.ID, "err", res.Err,
		)
	case domain.StockMissing, domain.StockAbsent:
		slog.Warn("stock record not found",
			"op", op, "product_id", p.ID, "outcome", res.Outcome,
		)
	case domain.StockUnknown:
		slog.Warn("stock lookup skipped", "op", op, "product_id", p.ID)
	default:
		slog.Debug("stock found",
			"op", op, "product_id", p.ID,
			"quantity", res.Snapshot.Quantity, "low_stock", res.Snapshot.LowStock,
		)
	}
	return v
}
