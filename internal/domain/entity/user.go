// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique customer account.
type User struct {
	ID              uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Name            string    // The user's display name or real name.
	Email           string    // The user's primary contact email.
	Age             int       // The user's age in years.
	Address         *Address  // The user's mailing address. Nil when never provided.
	IsPremiumMember bool      // Indicates whether the user holds a premium membership.
	DateJoined      time.Time // Timestamp of when the user signed up.
	ReferralCode    *string   // The referral code this user issued to invite others. Nil when none was issued.
	ReferredBy      *string   // The referral code of the user who invited this one. Nil for organic signups.
	CreatedAt       time.Time // Timestamp of when this record was created.
	UpdatedAt       time.Time // Timestamp of the last modification to this record.
}

// Address holds the optional mailing address fields of a user.
// Referral codes are free-form strings issued by users; a ReferredBy value
// that matches no ReferralCode is legal and simply ends chain traversal.
type Address struct {
	Street  *string
	City    *string
	Zipcode *string
	Country *string
}
