package handlers

import (
	"net/http"
	"strconv"

	"taskledger/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMoney(c *gin.Context) {
	entries, err := h.Money.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

type createMoneyRequest struct {
	Kind         string `json:"kind"`
	Counterparty string `json:"counterparty"`
	AmountCents  int64  `json:"amount_cents"`
	Note         string `json:"note"`
}

func (h *Handler) CreateMoney(c *gin.Context) {
	var req createMoneyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	entry, err := h.Money.Create(c.Request.Context(), domain.EntryKind(req.Kind), req.Counterparty, req.AmountCents, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *Handler) SettleMoney(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Settled *bool `json:"settled"`
	}
	if err := c.BindJSON(&req); err != nil || req.Settled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Money.Settle(c.Request.Context(), id, *req.Settled); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) DeleteMoney(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Money.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) MoneySummary(c *gin.Context) {
	sum, err := h.Money.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": sum})
}
