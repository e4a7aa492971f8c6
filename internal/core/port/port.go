package port

import (
	"context"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
)

type ProductManager interface {
	CreateProduct(context.Context, domain.ProductRequest) (domain.Product, error)
	UpdateProduct(context.Context, int64, domain.ProductRequest) (domain.Product, error)
	DeleteProduct(context.Context, int64) error
}

type ProductViewer interface {
	GetProductView(context.Context, int64) (domain.ProductView, error)
	ListProductViews(context.Context) ([]domain.ProductView, error)
}

// A ProductStore is the system of record for products.
//
// FindByID returns [domain.ErrNotFound] when the product does not exist.
type ProductStore interface {
	Save(context.Context, domain.Product) (domain.Product, error)
	FindByID(context.Context, int64) (domain.Product, error)
	FindAll(context.Context) ([]domain.Product, error)
	ExistsByID(context.Context, int64) (bool, error)
	DeleteByID(context.Context, int64) error
}

// A StockGateway is the client of the remote stock subsystem.
//
// Write failures wrap [domain.ErrStockConflict], [domain.ErrStockNotFound]
// or [domain.ErrStockUnavailable]. GetStock never fails, the outcome is
// carried by [domain.StockResult].
type StockGateway interface {
	CreateStock(context.Context, domain.StockSnapshot) error
	UpdateStock(context.Context, int64, domain.StockSnapshot) error
	DeleteStock(context.Context, int64) error
	GetStock(context.Context, int64) domain.StockResult
}

// A ProductEventsProducer hands events over for delivery without waiting
// for the broker.
type ProductEventsProducer interface {
	ProduceProductEvent(context.Context, domain.ProductEvent) error
}
