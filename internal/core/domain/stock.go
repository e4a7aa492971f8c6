package domain

type StockSnapshot struct {
	ProductID    int64
	Quantity     int
	ReorderLevel int
	LowStock     bool
}

func NewStockSnapshot(productID int64, quantity, reorderLevel int) StockSnapshot {
	return StockSnapshot{
		ProductID:    productID,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
		LowStock:     quantity <= reorderLevel,
	}
}

// A StockOutcome tells how a stock lookup ended.
type StockOutcome int

const (
	// StockUnknown is the zero value: no lookup outcome was obtained.
	StockUnknown StockOutcome = iota
	StockFound
	StockAbsent
	StockMissing
	StockUnavailable
)

func (o StockOutcome) String() string {
	switch o {
	case StockFound:
		return "found"
	case StockAbsent:
		return "absent"
	case StockMissing:
		return "missing"
	case StockUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// A StockResult is the result of reading one product's stock snapshot.
//
// Snapshot is meaningful only when Outcome is [StockFound]. Err holds the
// underlying failure for [StockMissing] and [StockUnavailable].
type StockResult struct {
	Outcome  StockOutcome
	Snapshot StockSnapshot
	Err      error
}

func StockFoundResult(s StockSnapshot) StockResult {
	return StockResult{Outcome: StockFound, Snapshot: s}
}

func StockAbsentResult() StockResult {
	return StockResult{Outcome: StockAbsent}
}

func StockMissingResult(err error) StockResult {
	return StockResult{Outcome: StockMissing, Err: err}
}

func StockUnavailableResult(err error) StockResult {
	return StockResult{Outcome: StockUnavailable, Err: err}
}
