package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesage_backend/internal/config"
	"codesage_backend/internal/feature/auth/domain/entity"
	authhandler "codesage_backend/internal/feature/auth/transport/handler"
	authusecase "codesage_backend/internal/feature/auth/usecase"
	"codesage_backend/internal/feature/realtime"
	realtimehandler "codesage_backend/internal/feature/realtime/transport/handler"
	reviewentity "codesage_backend/internal/feature/review/domain/entity"
	reviewhandler "codesage_backend/internal/feature/review/transport/handler"
	snippetentity "codesage_backend/internal/feature/snippets/domain/entity"
	snippethandler "codesage_backend/internal/feature/snippets/transport/handler"
	"codesage_backend/internal/shared/ratelimiter"
)

// stub usecases: the router test only cares about wiring, not behavior.

type stubAuth struct{}

func (stubAuth) Register(ctx context.Context, email, username, password string) (string, error) {
	return "t", nil
}
func (stubAuth) Login(ctx context.Context, username, password string) (string, error) {
	return "t", nil
}

type stubResolver struct{}

func (stubResolver) ResolveActiveUser(ctx context.Context, id uint) (*entity.User, error) {
	return nil, authusecase.ErrInvalidToken
}

type stubReview struct{}

func (stubReview) Review(ctx context.Context, userID uint, code, language, reviewContext string) (*reviewentity.ReviewResult, error) {
	return &reviewentity.ReviewResult{}, nil
}

type stubSnippets struct{}

func (stubSnippets) Create(ctx context.Context, ownerID uint, s *snippetentity.SharedSnippet) (*snippetentity.SharedSnippet, error) {
	return s, nil
}
func (stubSnippets) List(ctx context.Context, requesterID uint, skip, limit int) ([]snippetentity.SharedSnippet, error) {
	return nil, nil
}
func (stubSnippets) Get(ctx context.Context, requesterID uint, id string) (*snippetentity.SharedSnippet, error) {
	return nil, nil
}

func newTestEngine(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.CORSOrigins = []string{"*"}
	cfg.Auth.SecretKey = "test-secret"

	return New(Deps{
		Config:   cfg,
		Limiter:  ratelimiter.NewRateLimiter(limit, time.Minute),
		Users:    stubResolver{},
		Auth:     authhandler.NewAuthHandler(stubAuth{}),
		Review:   reviewhandler.NewReviewHandler(stubReview{}),
		Snippets: snippethandler.NewSnippetHandler(stubSnippets{}),
		WS:       realtimehandler.NewWSHandler(realtime.NewHub()),
	})
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Welcome(t *testing.T) {
	w := get(newTestEngine(t, 100), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to CodeSage API")
}

func TestRouter_Health(t *testing.T) {
	w := get(newTestEngine(t, 100), "/api/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"version":"1.0.0"`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestEngine(t, 100)

	for _, path := range []string{"/api/snippets", "/api/snippets/s1"} {
		w := get(r, path)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}

	req, _ := http.NewRequest(http.MethodPost, "/api/review", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RateLimitCoversAPI(t *testing.T) {
	r := newTestEngine(t, 1)

	first := get(r, "/api/health")
	require.Equal(t, http.StatusOK, first.Code)

	second := get(r, "/api/health")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// The root route sits outside the rate-limited group.
	root := get(r, "/")
	assert.Equal(t, http.StatusOK, root.Code)
}
