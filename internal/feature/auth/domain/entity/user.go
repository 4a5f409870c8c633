// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Username is the user's login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:50;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// IsActive marks whether the account may authenticate.
	// Users are never hard-deleted; deactivation flips this flag.
	// No column default: gorm would omit a false value from the INSERT.
	IsActive bool `gorm:"not null"`
}
