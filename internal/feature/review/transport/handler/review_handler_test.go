package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codesage_backend/internal/apperror"
	"codesage_backend/internal/feature/review/domain/entity"
	reviewusecase "codesage_backend/internal/feature/review/usecase"
	jwtmw "codesage_backend/internal/platform/jwt"
)

// mockReviewUsecase is a mock implementation of the ReviewUsecase interface.
type mockReviewUsecase struct {
	ReviewFunc func(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error)
}

func (m *mockReviewUsecase) Review(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error) {
	if m.ReviewFunc != nil {
		return m.ReviewFunc(ctx, userID, code, language, reviewContext)
	}
	return nil, apperror.New(apperror.ErrExternalService, "no stub configured")
}

// newRouter fakes an authenticated user by pre-setting the context keys the
// JWT middleware would set.
func newRouter(uc ReviewUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReviewHandler(uc)
	r := gin.New()
	r.POST("/api/review", func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
	}, h.Review)
	return r
}

func post(r *gin.Engine, body gin.H) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/api/review", bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReviewHandler_Review(t *testing.T) {
	t.Run("success returns the parsed structure", func(t *testing.T) {
		uc := &mockReviewUsecase{
			ReviewFunc: func(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error) {
				assert.Equal(t, uint(7), userID)
				assert.Equal(t, "print(1)", code)
				assert.Equal(t, "python", language)
				return &entity.ReviewResult{
					Suggestions:   []string{"use f-strings"},
					Explanation:   "trivial print",
					QualityScore:  90.0,
					BestPractices: []string{"add tests"},
				}, nil
			},
		}

		w := post(newRouter(uc, 7), gin.H{"code": "print(1)", "language": "python"})

		require.Equal(t, http.StatusOK, w.Code)

		var resp entity.ReviewResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"use f-strings"}, resp.Suggestions)
		assert.Equal(t, "trivial print", resp.Explanation)
		assert.Equal(t, 90.0, resp.QualityScore)
		assert.Equal(t, []string{"add tests"}, resp.BestPractices)
	})

	t.Run("missing code responds 422", func(t *testing.T) {
		w := post(newRouter(&mockReviewUsecase{}, 7), gin.H{"language": "python"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("omitted language passes through empty for detection", func(t *testing.T) {
		uc := &mockReviewUsecase{
			ReviewFunc: func(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error) {
				assert.Equal(t, "", language)
				return &entity.ReviewResult{Explanation: "x"}, nil
			},
		}

		w := post(newRouter(uc, 7), gin.H{"code": "def main(): pass"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("collaborator failure responds 500 with detail", func(t *testing.T) {
		uc := &mockReviewUsecase{
			ReviewFunc: func(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error) {
				return nil, apperror.New(apperror.ErrExternalService, "review model call failed: quota exhausted")
			},
		}

		w := post(newRouter(uc, 7), gin.H{"code": "print(1)", "language": "python"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "quota exhausted")
		assert.Contains(t, w.Body.String(), "/api/review")
	})

	t.Run("malformed model output responds 500", func(t *testing.T) {
		uc := &mockReviewUsecase{
			ReviewFunc: func(ctx context.Context, userID uint, code, language, reviewContext string) (*entity.ReviewResult, error) {
				return nil, reviewusecase.ErrMalformedResponse
			},
		}

		w := post(newRouter(uc, 7), gin.H{"code": "print(1)", "language": "python"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
