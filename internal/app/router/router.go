// Package router wires the HTTP and WebSocket surface.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codesage_backend/internal/api"
	"codesage_backend/internal/config"
	authhandler "codesage_backend/internal/feature/auth/transport/handler"
	realtimehandler "codesage_backend/internal/feature/realtime/transport/handler"
	reviewhandler "codesage_backend/internal/feature/review/transport/handler"
	snippethandler "codesage_backend/internal/feature/snippets/transport/handler"
	jwtmw "codesage_backend/internal/platform/jwt"
	"codesage_backend/internal/shared/ratelimiter"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Deps bundles everything the route table needs.
type Deps struct {
	Config   *config.Config
	Limiter  *ratelimiter.RateLimiter
	Users    jwtmw.UserResolver
	Auth     *authhandler.AuthHandler
	Review   *reviewhandler.ReviewHandler
	Snippets *snippethandler.SnippetHandler
	WS       *realtimehandler.WSHandler
}

// New builds the gin engine with CORS, rate limiting and the full route
// table. Protected routes sit behind the JWT middleware; the WebSocket
// endpoint stays outside it because its identifier is client-supplied.
func New(d Deps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(d.Config.App.CORSOrigins) == 1 && d.Config.App.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = d.Config.App.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/", welcome)

	// Every /api request passes the rate limiter before anything else.
	apiGroup := r.Group("/api")
	apiGroup.Use(d.Limiter.Middleware())
	{
		apiGroup.GET("/health", health)
		apiGroup.POST("/auth/register", d.Auth.Register)
		apiGroup.POST("/auth/login", d.Auth.Login)

		protected := apiGroup.Group("/")
		protected.Use(jwtmw.AuthRequired(d.Config.Auth.SecretKey, d.Users))
		{
			protected.POST("/review", d.Review.Review)
			protected.POST("/snippets", d.Snippets.Create)
			protected.GET("/snippets", d.Snippets.List)
			protected.GET("/snippets/:id", d.Snippets.Get)
		}
	}

	r.GET("/ws/:client_id", d.WS.Serve)

	return r
}

// welcome handles GET /.
func welcome(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Welcome to CodeSage API"})
}

// health handles GET /api/health.
func health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, api.HealthResponse{Status: "healthy", Version: Version})
}
