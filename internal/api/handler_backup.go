package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"quadro-backend/internal/board"
)

// GetBackup exports the complete board state as one bundle.
func (h *Handler) GetBackup(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Restore replaces the complete board state with an uploaded bundle. A
// bundle missing any required log is rejected before anything is touched.
func (h *Handler) Restore(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := board.ParseBackup(data)
	if err != nil {
		if errors.Is(err, board.ErrInvalidBackup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.ReplaceAll(c.Request.Context(), snap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
