package domain

type StockStatus string

const (
	InStock              StockStatus = "In Stock"
	LowStock             StockStatus = "Low Stock"
	OutOfStock           StockStatus = "Out of Stock"
	NoStockRecord        StockStatus = "No Stock Record"
	StockServiceError    StockStatus = "Stock Service Error"
	StockInfoUnavailable StockStatus = "Stock Info Unavailable"
)

// HasDetails reports whether the status implies a retrieved snapshot.
func (s StockStatus) HasDetails() bool {
	switch s {
	case InStock, LowStock, OutOfStock:
		return true
	}
	return false
}

// ClassifyStock maps a stock lookup result to a status label.
//
// Zero or negative quantity wins over the low stock flag.
func ClassifyStock(r StockResult) StockStatus {
	switch r.Outcome {
	case StockUnavailable:
		return StockServiceError
	case StockMissing, StockAbsent:
		return NoStockRecord
	case StockFound:
		switch {
		case r.Snapshot.Quantity <= 0:
			return OutOfStock
		case r.Snapshot.LowStock:
			return LowStock
		default:
			return InStock
		}
	default:
		return StockInfoUnavailable
	}
}

type ProductView struct {
	Product      Product
	StockDetails *StockSnapshot
	StockStatus  StockStatus
}

func NewProductView(p Product, r StockResult) ProductView {
	v := ProductView{Product: p, StockStatus: ClassifyStock(r)}
	if v.StockStatus.HasDetails() {
		s := r.Snapshot
		v.StockDetails = &s
	}
	return v
}
