package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quadro-backend/internal/board"
)

// GetCosts aggregates a date range. Accepts either ?from=&to= or a whole
// month via ?month=YYYY-MM.
func (h *Handler) GetCosts(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	if month := c.Query("month"); month != "" {
		start, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}
		from = board.DateKey(start)
		to = board.DateKey(start.AddDate(0, 1, -1))
	}

	if _, err := board.ParseDateKey(from); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	if _, err := board.ParseDateKey(to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}
	if from > to {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must not be after to"})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	report := board.ComputeCosts(from, to, snap, board.CostOptions{TopIdle: h.topIdle})
	c.JSON(http.StatusOK, report)
}
