// Package usecase implements the review orchestration logic.
package usecase

import "codesage_backend/internal/apperror"

var (
	// ErrMalformedResponse is returned when the model's output cannot be
	// parsed as the review schema or is missing a required field.
	ErrMalformedResponse = apperror.New(apperror.ErrMalformedResponse,
		"review model returned a malformed response")
)
