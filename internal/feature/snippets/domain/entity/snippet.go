// Package entity defines the domain entities for the snippets feature.
package entity

import "time"

// SharedSnippet is a piece of code a user has shared. The primary key is an
// opaque string token assigned by the repository, not a sequential integer,
// so snippet URLs are not guessable.
type SharedSnippet struct {
	ID string `gorm:"primaryKey;size:20"`

	// UserID references the owning user.
	UserID uint `gorm:"index;not null"`

	Code     string `gorm:"type:text;not null"`
	Language string `gorm:"size:50;not null"`
	Title    string `gorm:"size:100;not null"`

	// Description is optional.
	Description string `gorm:"type:text"`

	CreatedAt time.Time

	// IsPublic controls visibility: public snippets are readable by any
	// authenticated user, private ones only by their owner. No column
	// default: gorm drops zero-valued fields carrying a default tag from
	// the INSERT, which would silently flip false to true.
	IsPublic bool `gorm:"not null"`
}
