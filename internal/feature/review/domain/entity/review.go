// Package entity defines the domain entities for the review feature.
package entity

import "time"

// ReviewResult is the structured review produced by the external model.
type ReviewResult struct {
	Suggestions   []string `json:"suggestions"`
	Explanation   string   `json:"explanation"`
	QualityScore  float64  `json:"quality_score"`
	BestPractices []string `json:"best_practices"`
}

// CodeReview records one completed review exchange. Rows are immutable once
// written; only metrics are appended afterwards.
type CodeReview struct {
	ID uint `gorm:"primaryKey"`

	// UserID references the requesting user.
	UserID uint `gorm:"index;not null"`

	// Code is the reviewed source text.
	Code string `gorm:"type:text;not null"`

	// Language is the language the client declared for the code.
	Language string `gorm:"size:50;not null"`

	// ReviewData is the serialized ReviewResult. It is always valid JSON
	// matching the review schema once persisted.
	ReviewData string `gorm:"type:text;not null"`

	CreatedAt time.Time

	// Version tracks the review schema version.
	Version int `gorm:"not null;default:1"`
}

// PerformanceMetric is an append-only measurement attached to a review.
type PerformanceMetric struct {
	ID uint `gorm:"primaryKey"`

	// CodeReviewID references the owning review.
	CodeReviewID uint `gorm:"index;not null"`

	MetricName  string  `gorm:"size:100;not null"`
	MetricValue float64 `gorm:"not null"`

	CreatedAt time.Time
}
