// Package api defines the request and response types shared by the HTTP
// handlers.
package api

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ReviewRequest is the body for POST /api/review. Language may be left
// empty, in which case it is detected from the code.
type ReviewRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language"`
	Context  string `json:"context"`
}

// ReviewResponse is the structured review returned to the caller.
type ReviewResponse struct {
	Suggestions   []string `json:"suggestions"`
	Explanation   string   `json:"explanation"`
	QualityScore  float64  `json:"quality_score"`
	BestPractices []string `json:"best_practices"`
}

// CreateSnippetRequest is the body for POST /api/snippets.
type CreateSnippetRequest struct {
	Code        string `json:"code" binding:"required"`
	Language    string `json:"language" binding:"required"`
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// SnippetResponse is a stored snippet rendered to clients.
type SnippetResponse struct {
	ID          string `json:"id"`
	UserID      uint   `json:"user_id"`
	Code        string `json:"code"`
	Language    string `json:"language"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	IsPublic    bool   `json:"is_public"`
}

// HealthResponse is the body for GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// MessageResponse is a generic informational body.
type MessageResponse struct {
	Message string `json:"message"`
}
