// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product represents one item of the catalog. Stock is read by the
// projected-stock pipeline but never decremented by this service.
type Product struct {
	ID          uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the product.
	Name        string    `json:"name"`         // Display name of the product.
	Category    string    `json:"category"`     // Category the product is listed under.
	Price       int64     `json:"price"`        // Current list price in integer currency units.
	Stock       int       `json:"stock"`        // Units currently in stock.
	Rating      int       `json:"rating"`       // Aggregate customer rating.
	Tags        []string  `json:"tags"`         // Free-form tag set.
	Discount    int       `json:"discount"`     // Current discount in percent.
	LastUpdated time.Time `json:"last_updated"` // Timestamp of the last catalog update.
}
