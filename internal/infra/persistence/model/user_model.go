package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	Age             int       `gorm:"not null"`
	Street          *string   `gorm:"type:varchar(255)"`
	City            *string   `gorm:"type:varchar(100)"`
	Zipcode         *string   `gorm:"type:varchar(20)"`
	Country         *string   `gorm:"type:varchar(100)"`
	IsPremiumMember bool      `gorm:"not null;default:false;index"`
	DateJoined      time.Time `gorm:"not null;index"`
	// Referral codes are free-form strings; referred_by is not a foreign
	// key and may reference no existing referral_code.
	ReferralCode *string `gorm:"type:varchar(64);index"`
	ReferredBy   *string `gorm:"type:varchar(64);index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Orders []OrderModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
