package domain

import "time"

type ProductEventType string

const (
	ProductCreated ProductEventType = "created"
	ProductUpdated ProductEventType = "updated"
	ProductDeleted ProductEventType = "deleted"
)

// A ProductEvent announces a committed change of a product record.
type ProductEvent struct {
	Type       ProductEventType
	Product    Product
	OccurredAt time.Time
}
