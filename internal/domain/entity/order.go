// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a purchase made by a user. Orders are immutable once
// created; the analytics pipelines only ever read them.
type Order struct {
	ID          uuid.UUID  `json:"id"`           // The Global Unique Identifier (GUID) for the order.
	UserID      uuid.UUID  `json:"user_id"`      // The ID of the user who placed the order.
	OrderDate   time.Time  `json:"order_date"`   // Timestamp of when the order was placed.
	TotalAmount int64      `json:"total_amount"` // The order total in integer currency units.
	Status      string     `json:"status"`       // Free-form status string, e.g. "created", "shipped", "canceled". No enumeration is enforced.
	Items       []LineItem `json:"products"`     // The embedded line items of the order.
	CreatedAt   time.Time  `json:"created_at"`   // Timestamp of when this record was created.
}

// LineItem is one product position within an order.
type LineItem struct {
	ProductID uuid.UUID `json:"product_id"`     // The ID of the purchased product.
	Quantity  int       `json:"quantity"`       // Number of units purchased.
	UnitPrice int64     `json:"price_per_unit"` // Price per unit in integer currency units at purchase time.
}
