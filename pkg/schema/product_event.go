package schema

import "time"

const ProductEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "products",
	"name": "product_event",
	"fields": [
		{"name": "type", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "name", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "price", "type": "string"},
		{"name": "image_url", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

// ProductEventV1 carries the price as a decimal string.
type ProductEventV1 struct {
	Type        string    `avro:"type"`
	ProductID   int64     `avro:"product_id"`
	Name        string    `avro:"name"`
	Description string    `avro:"description"`
	Price       string    `avro:"price"`
	ImageURL    string    `avro:"image_url"`
	OccurredAt  time.Time `avro:"occurred_at"`
}
