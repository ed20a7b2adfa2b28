package handlers

import (
	"net/http"
	"strconv"

	"taskledger/internal/domain"
	"taskledger/internal/service"

	"github.com/gin-gonic/gin"
)

// ListTasks returns the caller's tasks, newest first.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Sync.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	rows := make([]domain.TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, t.ToRow())
	}
	c.JSON(http.StatusOK, gin.H{"tasks": rows})
}

type createTaskRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	draft := service.TaskDraft{
		Text:      req.Text,
		Completed: req.Completed,
		Priority:  domain.Priority(req.Priority),
	}

	task, err := h.Sync.Create(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task.ToRow()})
}

func (h *Handler) GetTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.Sync.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task.ToRow()})
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch domain.TaskPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if patch.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty patch"})
		return
	}

	task, err := h.Sync.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task.ToRow()})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Sync.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type syncOperation struct {
	Op     string         `json:"op"`
	TaskID int64          `json:"task_id"`
	Task   domain.TaskRow `json:"task"`
}

type syncRequest struct {
	Operations []syncOperation `json:"operations"`
}

// SyncTasks replays a client's queued offline operations in one shot. The
// batch is non-atomic: a 409 response lists which operations failed, by
// index; everything else has already been applied.
func (h *Handler) SyncTasks(c *gin.Context) {
	var req syncRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ops := make([]domain.PendingOp, 0, len(req.Operations))
	for _, op := range req.Operations {
		opType, err := domain.ParseOpType(op.Op)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ops = append(ops, domain.PendingOp{Op: opType, TaskID: op.TaskID, Snapshot: op.Task})
	}

	if err := h.Sync.BatchSync(c.Request.Context(), ops); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": len(ops)})
}

// QueueOperation buffers one operation server-side for the replay worker,
// for clients that cannot hold their own queue open.
func (h *Handler) QueueOperation(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var op syncOperation
	if err := c.BindJSON(&op); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	opType, err := domain.ParseOpType(op.Op)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pending := &domain.PendingOp{UserID: userID, Op: opType, TaskID: op.TaskID, Snapshot: op.Task}
	if err := h.Queue.Enqueue(c.Request.Context(), pending); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"id": pending.ID})
}

// SyncAvailable is the capability probe clients call before attempting a
// sync.
func (h *Handler) SyncAvailable(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": h.Sync.IsAvailable(c.Request.Context())})
}
