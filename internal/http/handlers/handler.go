package handlers

import (
	"taskledger/internal/feed"
	"taskledger/internal/repository"
	"taskledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB     *pgxpool.Pool
	Tokens *service.AuthService
	Sync   *service.SyncService
	Money  *service.MoneyService
	Users  *repository.UserRepository
	Queue  *repository.PendingOpRepository
	Feed   *feed.Broker
}

func NewHandler(db *pgxpool.Pool, auth *service.AuthService, broker *feed.Broker) *Handler {
	return &Handler{
		DB:     db,
		Tokens: auth,
		Sync:   service.NewSyncService(repository.NewTaskRepository(db), broker),
		Money:  service.NewMoneyService(repository.NewMoneyRepository(db)),
		Users:  repository.NewUserRepository(db),
		Queue:  repository.NewPendingOpRepository(db),
		Feed:   broker,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
