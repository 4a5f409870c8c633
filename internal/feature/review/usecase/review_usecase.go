package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"codesage_backend/internal/apperror"
	"codesage_backend/internal/feature/review/domain/entity"
	"codesage_backend/internal/shared/codeformat"
)

const (
	// MaxCodeLength caps the submitted code size (~100KB).
	MaxCodeLength = 100000

	// reviewTimeout bounds the external model call.
	reviewTimeout = 60 * time.Second

	// durationMetric is the name of the metric appended after each review.
	durationMetric = "review_duration_ms"

	// promptTemplate instructs the model to respond with the review schema.
	// Placeholders: language, code, context.
	promptTemplate = `Analyze the following %s code and provide a detailed review:

Code:
%s

Context: %s

Please provide:
1. Code suggestions for improvement
2. A clear explanation of the code
3. A quality score (0-100)
4. Best practices recommendations

Format the response as JSON with the following structure:
{
    "suggestions": ["suggestion1", "suggestion2", ...],
    "explanation": "detailed explanation",
    "quality_score": 85.5,
    "best_practices": ["practice1", "practice2", ...]
}
`
)

// Reviewer is the external model collaborator. The orchestrator depends on
// this interface only, never on a concrete transport.
type Reviewer interface {
	// Complete sends a prompt to the model and returns its raw text output.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ReviewRepository persists completed reviews and their metrics.
type ReviewRepository interface {
	// CreateReview persists a new review row.
	CreateReview(ctx context.Context, review *entity.CodeReview) error

	// AppendMetric attaches a measurement to an existing review.
	AppendMetric(ctx context.Context, metric *entity.PerformanceMetric) error
}

// reviewUsecase orchestrates a single review exchange: prompt construction,
// model invocation, strict response validation, then persistence.
type reviewUsecase struct {
	reviewer Reviewer
	reviews  ReviewRepository
}

// NewReviewUsecase creates a new reviewUsecase instance.
func NewReviewUsecase(reviewer Reviewer, reviews ReviewRepository) *reviewUsecase {
	return &reviewUsecase{reviewer: reviewer, reviews: reviews}
}

// Review runs the full review pipeline for the given user's code.
// Persistence happens only after the model response parses cleanly, so a
// model failure never leaves a partial row behind.
func (u *reviewUsecase) Review(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.New(apperror.ErrValidation, "code is required")
	}
	if len(code) > MaxCodeLength {
		return nil, apperror.Newf(apperror.ErrValidation,
			"code exceeds maximum length of %d bytes", MaxCodeLength)
	}
	if language == "" {
		language = codeformat.DetectLanguage(code)
	}

	prompt := buildPrompt(code, language, reviewContext)

	callCtx, cancel := context.WithTimeout(ctx, reviewTimeout)
	defer cancel()

	start := time.Now()
	raw, err := u.reviewer.Complete(callCtx, prompt)
	if err != nil {
		return nil, &apperror.AppError{
			Err:     apperror.ErrExternalService,
			Message: fmt.Sprintf("review model call failed: %v", err),
		}
	}
	elapsed := time.Since(start)

	result, err := ParseReviewResult(raw)
	if err != nil {
		return nil, err
	}

	serialized, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize review result: %w", err)
	}

	review := &entity.CodeReview{
		UserID:     userID,
		Code:       code,
		Language:   language,
		ReviewData: string(serialized),
		Version:    1,
	}
	if err := u.reviews.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}

	// Metrics are best effort: the review itself already committed, so a
	// metric write failure must not fail the request.
	metric := &entity.PerformanceMetric{
		CodeReviewID: review.ID,
		MetricName:   durationMetric,
		MetricValue:  float64(elapsed.Milliseconds()),
	}
	if err := u.reviews.AppendMetric(ctx, metric); err != nil {
		slog.Warn("failed to append review metric", "review_id", review.ID, "error", err)
	}

	return result, nil
}

// buildPrompt fills the review prompt template.
func buildPrompt(code, language, reviewContext string) string {
	if reviewContext == "" {
		reviewContext = "No additional context provided"
	}
	return fmt.Sprintf(promptTemplate, language, code, reviewContext)
}

// ParseReviewResult decodes raw model output strictly against the review
// schema. Every field is required and the score must be inside [0,100].
// The cache decorator uses it to reject entries that would never parse.
func ParseReviewResult(raw string) (*entity.ReviewResult, error) {
	// Models sometimes wrap JSON in a markdown fence; strip it before parsing.
	raw = stripCodeFence(raw)

	var decoded struct {
		Suggestions   []string `json:"suggestions"`
		Explanation   *string  `json:"explanation"`
		QualityScore  *float64 `json:"quality_score"`
		BestPractices []string `json:"best_practices"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, apperror.Newf(apperror.ErrMalformedResponse,
			"review response is not valid JSON: %v", err)
	}
	if decoded.Suggestions == nil || decoded.Explanation == nil ||
		decoded.QualityScore == nil || decoded.BestPractices == nil {
		return nil, ErrMalformedResponse
	}
	if *decoded.QualityScore < 0 || *decoded.QualityScore > 100 {
		return nil, apperror.Newf(apperror.ErrMalformedResponse,
			"quality score %v outside [0,100]", *decoded.QualityScore)
	}

	return &entity.ReviewResult{
		Suggestions:   decoded.Suggestions,
		Explanation:   *decoded.Explanation,
		QualityScore:  *decoded.QualityScore,
		BestPractices: decoded.BestPractices,
	}, nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
