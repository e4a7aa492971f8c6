package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
)

// CreateProduct saves the product and, when an initial quantity is given,
// asks the stock subsystem to provision its stock record.
//
// A failed save aborts before any stock call. Stock failures are logged
// and swallowed.
func (s Service) CreateProduct(
	ctx context.Context, req domain.ProductRequest,
) (domain.Product, error) {
	const op = "Service.CreateProduct"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.productStore.Save(ctx, req.Product(0))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w: %w", op, domain.ErrInternal, err)
	}
	log.Info("product created", "product_id", p.ID)

	if req.InitialQuantity != nil {
		s.createStock(ctx, req.Stock(p.ID))
	}

	s.publish(ctx, domain.ProductCreated, p)
	return p, nil
}

// UpdateProduct overwrites the product fields and pushes the supplied stock
// fields to the stock subsystem.
//
// A stock record found missing on update is created instead.
func (s Service) UpdateProduct(
	ctx context.Context, id int64, req domain.ProductRequest,
) (domain.Product, error) {
	const op = "Service.UpdateProduct"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.findProduct(ctx, id); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.productStore.Save(ctx, req.Product(id))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w: %w", op, domain.ErrInternal, err)
	}
	log.Info("product updated", "product_id", p.ID)

	if req.HasStock() {
		s.updateStock(ctx, req.Stock(p.ID))
	}

	s.publish(ctx, domain.ProductUpdated, p)
	return p, nil
}

// DeleteProduct removes the product and then its stock record, if one
// exists. The product deletion is final whatever happens on the stock side.
func (s Service) DeleteProduct(ctx context.Context, id int64) error {
	const op = "Service.DeleteProduct"
	log := slog.With("op", op, "product_id", id)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	exists, err := s.productStore.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInternal, err)
	}
	if !exists {
		return fmt.Errorf("%s: id %d: %w", op, id, domain.ErrNotFound)
	}

	if err := s.productStore.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInternal, err)
	}
	log.Info("product deleted")

	s.deleteStock(ctx, id)

	s.publish(ctx, domain.ProductDeleted, domain.Product{ID: id})
	return nil
}

func (s Service) createStock(ctx context.Context, stock domain.StockSnapshot) {
	const op = "Service.createStock"
	log := slog.With("op", op, "product_id", stock.ProductID)

	err := s.stockGateway.CreateStock(ctx, stock)
	if err != nil {
		logStockErr(log, "failed to create stock", err)
		return
	}
	log.Info("stock created", "quantity", stock.Quantity)
}

func (s Service) updateStock(ctx context.Context, stock domain.StockSnapshot) {
	const op = "Service.updateStock"
	log := slog.With("op", op, "product_id", stock.ProductID)

	err := s.stockGateway.UpdateStock(ctx, stock.ProductID, stock)
	if err == nil {
		log.Info("stock updated", "quantity", stock.Quantity)
		return
	}

	if !errors.Is(err, domain.ErrStockNotFound) {
		logStockErr(log, "failed to update stock", err)
		return
	}

	log.Warn("stock record is missing, creating it", "err", err)
	s.createStock(ctx, stock)
}

func (s Service) deleteStock(ctx context.Context, productID int64) {
	const op = "Service.deleteStock"
	log := slog.With("op", op, "product_id", productID)

	res := s.stockGateway.GetStock(ctx, productID)
	if res.Outcome != domain.StockFound {
		if res.Outcome == domain.StockUnavailable {
			log.Error("failed to look up stock, record left in place", "err", res.Err)
			return
		}
		log.Info("no stock record to delete", "outcome", res.Outcome)
		return
	}

	if err := s.stockGateway.DeleteStock(ctx, productID); err != nil {
		logStockErr(log, "failed to delete stock", err)
		return
	}
	log.Info("stock deleted")
}

// logStockErr logs expected stock outcomes at warn level and everything
// else at error level.
func logStockErr(log *slog.Logger, msg string, err error) {
	if errors.Is(err, domain.ErrStockNotFound) ||
		errors.Is(err, domain.ErrStockConflict) {
		log.Warn(msg, "err", err)
		return
	}
	log.Error(msg, "err", err)
}
