package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"quadro-backend/internal/board"
)

// GetResources lists every resource, dismissed ones included.
func (h *Handler) GetResources(c *gin.Context) {
	snap, err := h.store.LoadSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap.Resources)
}

type resourceRequest struct {
	ID               string  `json:"id"`
	Name             string  `json:"name" binding:"required"`
	Type             string  `json:"type" binding:"required,oneof=employee machine"`
	Role             string  `json:"role"`
	CostPerDay       float64 `json:"costPerDay"`
	IgnoreCost       bool    `json:"ignoreCost"`
	IsAdministrative bool    `json:"isAdministrative"`
	DismissedAt      string  `json:"dismissedAt"`
}

func (r resourceRequest) toResource() board.Resource {
	return board.Resource{
		ID:               r.ID,
		Name:             r.Name,
		Type:             board.ResourceType(r.Type),
		Role:             r.Role,
		CostPerDay:       r.CostPerDay,
		IgnoreCost:       r.IgnoreCost,
		IsAdministrative: r.IsAdministrative,
		DismissedAt:      r.DismissedAt,
	}
}

// CreateResource registers a new person or machine.
func (h *Handler) CreateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DismissedAt != "" {
		if _, err := board.ParseDateKey(req.DismissedAt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dismissedAt must be YYYY-MM-DD"})
			return
		}
	}

	res := req.toResource()
	if res.ID == "" {
		res.ID = fmt.Sprintf("res-%d", time.Now().UnixNano())
	}
	if err := h.store.CreateResource(c.Request.Context(), res); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdateResource replaces a resource's attributes. Setting dismissedAt is
// how a resource leaves planning while keeping its history.
func (h *Handler) UpdateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DismissedAt != "" {
		if _, err := board.ParseDateKey(req.DismissedAt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dismissedAt must be YYYY-MM-DD"})
			return
		}
	}

	res := req.toResource()
	res.ID = c.Param("id")
	if err := h.store.UpdateResource(c.Request.Context(), res); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeleteResource removes a resource entirely. Prefer dismissal for anything
// with history.
func (h *Handler) DeleteResource(c *gin.Context) {
	if err := h.store.DeleteResource(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetWorksites lists every worksite.
func (h *Handler) GetWorksites(c *gin.Context) {
	snap, err := h.store.LoadSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap.Worksites)
}

// sitePalette rotates over new worksites so each gets a stable color.
var sitePalette = []string{
	"#2563eb", "#16a34a", "#d97706", "#dc2626",
	"#7c3aed", "#0891b2", "#db2777", "#65a30d",
}

type worksiteRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// CreateWorksite registers a construction site. IDs follow the obra-N
// sequence and colors rotate over the palette unless given explicitly.
func (h *Handler) CreateWorksite(c *gin.Context) {
	var req worksiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.store.LoadSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	taken := make(map[string]bool, len(snap.Worksites))
	for _, ws := range snap.Worksites {
		taken[ws.ID] = true
	}
	n := len(snap.Worksites) + 1
	id := fmt.Sprintf("obra-%d", n)
	for taken[id] {
		n++
		id = fmt.Sprintf("obra-%d", n)
	}

	ws := board.Worksite{
		ID:      id,
		Name:    req.Name,
		Color:   req.Color,
		Visible: true,
	}
	if ws.Color == "" {
		ws.Color = sitePalette[(n-1)%len(sitePalette)]
	}

	if err := h.store.CreateWorksite(c.Request.Context(), ws); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ws)
}

// UpdateWorksite replaces a worksite's attributes.
func (h *Handler) UpdateWorksite(c *gin.Context) {
	var req worksiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws := board.Worksite{
		ID:      c.Param("id"),
		Name:    req.Name,
		Color:   req.Color,
		Visible: true,
	}
	if err := h.store.UpdateWorksite(c.Request.Context(), ws); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "worksite not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ws)
}

// DeleteWorksite removes a worksite and purges its allocation history.
func (h *Handler) DeleteWorksite(c *gin.Context) {
	if err := h.store.DeleteWorksite(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
