package handlers

import (
	"errors"
	"net/http"

	"taskledger/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer failures onto HTTP statuses. Batch partial
// failures get their own shape so clients can re-queue exactly what failed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrEmptyText), errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var be *service.BatchError
		if errors.As(err, &be) {
			failures := make([]gin.H, 0, len(be.Failures))
			for _, f := range be.Failures {
				failures = append(failures, gin.H{
					"index":  f.Index,
					"op":     f.Op,
					"reason": f.Err.Error(),
				})
			}
			c.JSON(http.StatusConflict, gin.H{"error": "batch partially failed", "total": be.Total, "failures": failures})
			return
		}

		var pe *service.PersistenceError
		if errors.As(err, &pe) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
