package http

import (
	"taskledger/internal/config"
	"taskledger/internal/feed"
	"taskledger/internal/http/handlers"
	"taskledger/internal/http/middleware"
	"taskledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the whole API surface. All collaborators are
// constructed here once and injected; nothing hangs off package globals.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, auth *service.AuthService, broker *feed.Broker, rl *middleware.RateLimiter, cfg *config.Config) *handlers.Handler {
	h := handlers.NewHandler(db, auth, broker)
	healthHandler := handlers.NewHealthHandler(db, cfg.Version)

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(rl.Limit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, auth, rl, cfg)

	// Legacy /api alias for older clients
	api := r.Group("/api")
	api.Use(rl.Limit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(api, h, auth, rl, cfg)

	// Live change feed
	r.GET("/ws", h.WS)

	return h
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, auth *service.AuthService, rl *middleware.RateLimiter, cfg *config.Config) {
	// Auth gets a tighter window than the rest of the API
	api.POST("/auth", rl.Limit(cfg.APIRateLimit/4+1, cfg.APIRateWindow), h.Auth)

	jwt := middleware.JWT(auth)

	// Tasks
	api.GET("/tasks", jwt, h.ListTasks)
	api.POST("/tasks", jwt, h.CreateTask)
	api.GET("/tasks/:id", jwt, h.GetTask)
	api.PATCH("/tasks/:id", jwt, h.UpdateTask)
	api.DELETE("/tasks/:id", jwt, h.DeleteTask)

	// Offline sync
	api.POST("/tasks/sync", jwt, rl.LimitPerUser(cfg.APIRateLimit, cfg.APIRateWindow), h.SyncTasks)
	api.POST("/tasks/queue", jwt, h.QueueOperation)
	api.GET("/sync/available", jwt, h.SyncAvailable)

	// Money tracker
	api.GET("/money", jwt, h.ListMoney)
	api.POST("/money", jwt, h.CreateMoney)
	api.PATCH("/money/:id/settle", jwt, h.SettleMoney)
	api.DELETE("/money/:id", jwt, h.DeleteMoney)
	api.GET("/money/summary", jwt, h.MoneySummary)

	// Loan calculator (stateless, no auth needed)
	api.POST("/interest/calculate", h.CalculateInterest)
}
