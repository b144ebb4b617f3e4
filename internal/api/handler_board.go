package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quadro-backend/internal/board"
)

// dateParam validates the :date path segment.
func dateParam(c *gin.Context, name string) (string, bool) {
	key := c.Param(name)
	if _, err := board.ParseDateKey(key); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return "", false
	}
	return key, true
}

func (h *Handler) snapshot(c *gin.Context) (*board.Snapshot, bool) {
	snap, err := h.store.LoadSnapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return snap, true
}

func findResource(snap *board.Snapshot, id string) (board.Resource, bool) {
	for _, res := range snap.Resources {
		if res.ID == id {
			return res, true
		}
	}
	return board.Resource{}, false
}

func knownLocation(snap *board.Snapshot, worksiteID string) bool {
	loc := board.LocationFor(worksiteID)
	if !loc.IsSite() {
		return true
	}
	for _, ws := range snap.Worksites {
		if ws.ID == worksiteID {
			return true
		}
	}
	return false
}

// boardResponse is one resolved day as the clients render it.
type boardResponse struct {
	Date             string                            `json:"date"`
	MaxHours         float64                           `json:"maxHours"`
	Placements       []board.Placement                 `json:"placements"`
	Maintenance      map[string]board.MaintenanceEntry `json:"maintenance"`
	VisibleWorksites []string                          `json:"visibleWorksites"`
	Metadata         board.DayMetadata                 `json:"metadata"`
	Links            map[string]string                 `json:"links"`
	Overtime         map[string]board.OvertimeEntry    `json:"overtime"`
	Fuel             map[string]board.FuelEntry        `json:"fuel"`
	Observations     map[string]string                 `json:"observations"`
}

// GetBoard resolves one day: placements, effective maintenance, visible
// worksites and the per-day side logs.
func (h *Handler) GetBoard(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	resp := boardResponse{
		Date:         dateKey,
		MaxHours:     board.MaxHoursForKey(dateKey),
		Placements:   board.ResolvePlacements(dateKey, snap.Resources, snap.Allocations, snap.Partials),
		Maintenance:  map[string]board.MaintenanceEntry{},
		Metadata:     snap.Metadata[dateKey],
		Links:        snap.Links[dateKey],
		Overtime:     snap.Overtime[dateKey],
		Fuel:         snap.Fuel[dateKey],
		Observations: snap.Observations[dateKey],
	}

	for _, res := range snap.Resources {
		if res.Dismissed(dateKey) {
			continue
		}
		entry, active := board.MaintenanceStatus(res.ID, dateKey, snap.Maintenance, snap.Allocations, snap.Partials)
		if active {
			resp.Maintenance[res.ID] = entry
		}
	}

	for _, ws := range snap.Worksites {
		if board.WorksiteVisible(ws.ID, dateKey, snap.Visibility, snap.Resources, snap.Allocations) {
			resp.VisibleWorksites = append(resp.VisibleWorksites, ws.ID)
		}
	}

	c.JSON(http.StatusOK, resp)
}

type putAllocationRequest struct {
	WorksiteID string `json:"worksiteId" binding:"required"`
}

// PutAllocation writes a full-day allocation. The target may be a worksite
// or one of the yard/rain sentinels.
func (h *Handler) PutAllocation(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req putAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	resourceID := c.Param("resource_id")
	res, found := findResource(snap, resourceID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}
	if res.Dismissed(dateKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "resource is dismissed on this date"})
		return
	}
	if !knownLocation(snap, req.WorksiteID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "worksite not found"})
		return
	}

	if err := h.store.SetAllocation(c.Request.Context(), dateKey, resourceID, req.WorksiteID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAllocation drops the full-day entry; the resource falls back to the
// yard.
func (h *Handler) DeleteAllocation(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	if err := h.store.ClearAllocation(c.Request.Context(), dateKey, c.Param("resource_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type putSplitRequest struct {
	WorksiteID       string  `json:"worksiteId"`
	Hours            float64 `json:"hours"`
	EarlyDismissal   bool    `json:"earlyDismissal"`
	MaintenanceAfter bool    `json:"maintenanceAfter"`
}

// PutSplit divides a resource's day: the given hours stay at the site, the
// remainder goes to the yard unless dismissed early. A machine flagged for
// post-shift maintenance also gets its maintenance toggle recorded here.
func (h *Handler) PutSplit(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req putSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	resourceID := c.Param("resource_id")
	res, found := findResource(snap, resourceID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}

	siteID := req.WorksiteID
	if siteID == "" {
		siteID = snap.Allocations[dateKey][resourceID]
	}
	if !knownLocation(snap, siteID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "worksite not found"})
		return
	}

	split := board.BuildHourSplit(res, siteID, req.Hours, board.MaxHoursForKey(dateKey), board.SplitOptions{
		EarlyDismissal:   req.EarlyDismissal,
		MaintenanceAfter: req.MaintenanceAfter,
	})

	ctx := c.Request.Context()
	if err := h.store.ReplacePartials(ctx, dateKey, resourceID, split.Segments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if split.Maintenance != nil {
		if err := h.store.SetMaintenance(ctx, dateKey, resourceID, *split.Maintenance); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, split.Segments)
}

// DeleteSplit removes the partial sequence; the full-day allocation applies
// again.
func (h *Handler) DeleteSplit(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	if err := h.store.ClearPartials(c.Request.Context(), dateKey, c.Param("resource_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type maintenanceRequest struct {
	InMaintenance bool   `json:"inMaintenance"`
	Reason        string `json:"reason"`
}

// ToggleMaintenance records an explicit maintenance toggle. The interval it
// opens stays in effect until toggled off or until a later real allocation.
func (h *Handler) ToggleMaintenance(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := board.MaintenanceEntry{InMaintenance: req.InMaintenance, Reason: req.Reason}
	if err := h.store.SetMaintenance(c.Request.Context(), dateKey, c.Param("resource_id"), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type visibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// PutVisibility shows or hides one worksite for a date. Hiding is refused
// while resources are still allocated there.
func (h *Handler) PutVisibility(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	worksiteID := c.Param("worksite_id")
	if !*req.Visible {
		snap, ok := h.snapshot(c)
		if !ok {
			return
		}
		if allocated := board.AllocatedResources(worksiteID, dateKey, snap.Resources, snap.Allocations); len(allocated) > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "worksite has allocated resources on this date"})
			return
		}
	}

	if err := h.store.SetVisibility(c.Request.Context(), dateKey, worksiteID, *req.Visible); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// PutAllVisibility shows or hides every worksite for a date. Hide-all skips
// worksites that still have allocated resources.
func (h *Handler) PutAllVisibility(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	var ids []string
	for _, ws := range snap.Worksites {
		if !*req.Visible {
			if allocated := board.AllocatedResources(ws.ID, dateKey, snap.Resources, snap.Allocations); len(allocated) > 0 {
				continue
			}
		}
		ids = append(ids, ws.ID)
	}

	if err := h.store.SetAllVisibility(c.Request.Context(), dateKey, ids, *req.Visible); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type metadataRequest struct {
	IsFinalAllocation bool   `json:"isFinalAllocation"`
	Observations      string `json:"observations"`
}

// PutMetadata writes the day's planning state. The transition to final
// dispatches a push notice to every subscriber.
func (h *Handler) PutMetadata(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req metadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	wasFinal := snap.Metadata[dateKey].IsFinalAllocation

	meta := board.DayMetadata{IsFinalAllocation: req.IsFinalAllocation, Observations: req.Observations}
	if err := h.store.SetDayMetadata(c.Request.Context(), dateKey, meta); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.IsFinalAllocation && !wasFinal && h.pool != nil {
		h.pool.Dispatch(dateKey)
	}
	c.Status(http.StatusNoContent)
}

type overtimeRequest struct {
	Hours      float64 `json:"hours" binding:"required,gt=0"`
	Multiplier float64 `json:"multiplier" binding:"required,oneof=1.5 2"`
}

// PutOvertime records extra hours at 50% or 100% premium.
func (h *Handler) PutOvertime(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req overtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := board.OvertimeEntry{Hours: req.Hours, Multiplier: req.Multiplier}
	if err := h.store.SetOvertime(c.Request.Context(), dateKey, c.Param("resource_id"), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteOvertime clears a resource's overtime entry for a date.
func (h *Handler) DeleteOvertime(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	if err := h.store.ClearOvertime(c.Request.Context(), dateKey, c.Param("resource_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type fuelRequest struct {
	FuelLiters float64 `json:"fuelLiters"`
	OilLiters  float64 `json:"oilLiters"`
	Notes      string  `json:"notes"`
}

// PutFuel records fuel and oil consumed by a resource on a date.
func (h *Handler) PutFuel(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req fuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FuelLiters < 0 || req.OilLiters < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "liters must not be negative"})
		return
	}

	entry := board.FuelEntry{FuelLiters: req.FuelLiters, OilLiters: req.OilLiters, Notes: req.Notes}
	if err := h.store.SetFuelEntry(c.Request.Context(), dateKey, c.Param("resource_id"), entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type fuelQuoteRequest struct {
	PricePerLiter float64 `json:"pricePerLiter" binding:"required,gt=0"`
}

// PutFuelQuote records the diesel price for a date.
func (h *Handler) PutFuelQuote(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req fuelQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SetFuelQuote(c.Request.Context(), dateKey, req.PricePerLiter); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type linkRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
}

// PutLink pairs a machine with its operator for a date.
func (h *Handler) PutLink(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	machine, found := findResource(snap, c.Param("machine_id"))
	if !found || machine.Type != board.ResourceMachine {
		c.JSON(http.StatusNotFound, gin.H{"error": "machine not found"})
		return
	}
	operator, found := findResource(snap, req.EmployeeID)
	if !found || operator.Type != board.ResourceEmployee {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	if err := h.store.SetResourceLink(c.Request.Context(), dateKey, machine.ID, operator.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteLink unpairs a machine for a date.
func (h *Handler) DeleteLink(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	if err := h.store.ClearResourceLink(c.Request.Context(), dateKey, c.Param("machine_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type observationRequest struct {
	Note string `json:"note"`
}

// PutObservation writes a free-form note on a resource for a date. An empty
// note clears it.
func (h *Handler) PutObservation(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req observationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SetObservation(c.Request.Context(), dateKey, c.Param("resource_id"), req.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type pasteRequest struct {
	SourceDate string `json:"sourceDate" binding:"required"`
}

// PasteDay copies a whole day onto the target date, rebalancing partial
// segments when the two days have different hour ceilings.
func (h *Handler) PasteDay(c *gin.Context) {
	dateKey, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req pasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := board.ParseDateKey(req.SourceDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sourceDate must be YYYY-MM-DD"})
		return
	}

	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	clip := board.CopyDay(req.SourceDate, snap)
	clip.Partials = board.AdjustPartialsForDayType(clip.Partials, board.MaxHoursForKey(dateKey))

	if err := h.store.PasteDay(c.Request.Context(), dateKey, clip); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
