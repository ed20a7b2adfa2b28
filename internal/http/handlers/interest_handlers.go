package handlers

import (
	"errors"
	"net/http"

	"taskledger/internal/interest"

	"github.com/gin-gonic/gin"
)

type interestRequest struct {
	Principal           float64 `json:"principal"`
	MonthlyRate         float64 `json:"monthly_rate"`
	TotalMonths         int     `json:"total_months"`
	CompoundingInterval int     `json:"compounding_interval"`
}

// CalculateInterest runs the loan calculator and returns the full
// period-by-period schedule.
func (h *Handler) CalculateInterest(c *gin.Context) {
	var req interestRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := interest.Calculate(req.Principal, req.MonthlyRate, req.TotalMonths, req.CompoundingInterval)
	if err != nil {
		if errors.Is(err, interest.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "calculation failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}
