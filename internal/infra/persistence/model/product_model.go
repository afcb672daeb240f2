package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProductModel mirrors the 'products' table. Tags are stored as a JSONB
// string array.
type ProductModel struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string                        `gorm:"type:varchar(255);not null"`
	Category    string                        `gorm:"type:varchar(100);not null;index"`
	Price       int64                         `gorm:"not null"`
	Stock       int                           `gorm:"not null"`
	Rating      int                           `gorm:"not null;default:0"`
	Tags        datatypes.JSONSlice[string]   `gorm:"type:jsonb"`
	Discount    int                           `gorm:"not null;default:0"`
	LastUpdated time.Time                     `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
