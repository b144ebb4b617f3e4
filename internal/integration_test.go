package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quadro-backend/config"
	"quadro-backend/internal/api"
	"quadro-backend/internal/board"
	"quadro-backend/internal/db"
	"quadro-backend/internal/store"
)

// TestPlanningWeek walks a whole planning week through the HTTP API:
// entity setup, allocations, an hour split with post-shift maintenance,
// visibility, overtime, fuel, finalization, copy/paste onto a Friday and
// the cost report over the range. 2024-03-04 is a Monday.
func TestPlanningWeek(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, db.Migrate(testDB))

	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 60,
		},
		Planning: config.PlanningConfig{TopIdle: 3},
	}

	appStore := store.NewGormStore(testDB)
	router := api.NewRouter(cfg, appStore, nil, &webpush.Options{VAPIDPublicKey: "test"})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		var req *http.Request
		if body == "" {
			req, _ = http.NewRequest(method, path, nil)
		} else {
			req, _ = http.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		router.ServeHTTP(w, req)
		return w
	}

	// --- Entity setup ---
	w := do("POST", "/api/resources", `{"id":"r-emp","name":"João","type":"employee","role":"Pedreiro","costPerDay":450}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do("POST", "/api/resources", `{"id":"r-mac","name":"Escavadeira","type":"machine","costPerDay":300}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do("POST", "/api/worksites", `{"name":"Escola Municipal"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var site1 board.Worksite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &site1))
	assert.Equal(t, "obra-1", site1.ID)
	assert.NotEmpty(t, site1.Color)

	w = do("POST", "/api/worksites", `{"name":"Hospital Regional"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var site2 board.Worksite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &site2))
	assert.Equal(t, "obra-2", site2.ID)

	// --- Monday: full-day allocations, overtime, fuel, finalized ---
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-04/allocations/r-emp", `{"worksiteId":"obra-1"}`).Code)
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-04/allocations/r-mac", `{"worksiteId":"obra-1"}`).Code)
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-04/overtime/r-emp", `{"hours":2,"multiplier":1.5}`).Code)
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/fuel/quotes/2024-03-04", `{"pricePerLiter":6.0}`).Code)
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-04/fuel/r-mac", `{"fuelLiters":50}`).Code)
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-04/metadata", `{"isFinalAllocation":true,"observations":"equipe completa"}`).Code)

	t.Run("monday board view", func(t *testing.T) {
		w := do("GET", "/api/board/2024-03-04", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			MaxHours         float64           `json:"maxHours"`
			Placements       []board.Placement `json:"placements"`
			VisibleWorksites []string          `json:"visibleWorksites"`
			Metadata         board.DayMetadata `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, 9.0, resp.MaxHours)
		assert.True(t, resp.Metadata.IsFinalAllocation)

		byResource := map[string]board.Placement{}
		for _, p := range resp.Placements {
			byResource[p.ResourceID] = p
		}
		assert.Equal(t, "obra-1", byResource["r-emp"].WorksiteID)
		assert.True(t, byResource["r-emp"].FullDay)

		// Visibility falls back to allocation presence.
		assert.Contains(t, resp.VisibleWorksites, "obra-1")
		assert.NotContains(t, resp.VisibleWorksites, "obra-2")
	})

	t.Run("hiding a populated worksite is refused", func(t *testing.T) {
		w := do("PUT", "/api/board/2024-03-04/visibility/obra-1", `{"visible":false}`)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = do("PUT", "/api/board/2024-03-04/visibility/obra-2", `{"visible":false}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	// --- Tuesday: hour split sending the machine into maintenance ---
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-05/allocations/r-mac", `{"worksiteId":"obra-1"}`).Code)
	w = do("PUT", "/api/board/2024-03-05/split/r-mac", `{"hours":6,"maintenanceAfter":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var segs []board.PartialSegment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &segs))
	require.Len(t, segs, 2)
	assert.Equal(t, "obra-1", segs[0].WorksiteID)
	assert.Equal(t, 6.0, segs[0].Hours)
	assert.Equal(t, board.YardID, segs[1].WorksiteID)
	assert.Equal(t, 3.0, segs[1].Hours)

	t.Run("maintenance sticks on the following day", func(t *testing.T) {
		w := do("GET", "/api/board/2024-03-06", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Maintenance map[string]board.MaintenanceEntry `json:"maintenance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		entry, ok := resp.Maintenance["r-mac"]
		require.True(t, ok, "machine should still be in maintenance on Wednesday")
		assert.True(t, entry.InMaintenance)
		assert.Equal(t, "Manutenção Pós-Turno", entry.Reason)
	})

	// --- Thursday: real allocation clears maintenance; employee splits ---
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-07/allocations/r-mac", `{"worksiteId":"obra-1"}`).Code)
	assert.Equal(t, http.StatusNoContent, do("PUT", "/api/board/2024-03-07/allocations/r-emp", `{"worksiteId":"obra-1"}`).Code)
	w = do("PUT", "/api/board/2024-03-07/split/r-emp", `{"hours":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("real allocation clears maintenance", func(t *testing.T) {
		w := do("GET", "/api/board/2024-03-07", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Maintenance map[string]board.MaintenanceEntry `json:"maintenance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotContains(t, resp.Maintenance, "r-mac")
	})

	// --- Friday: paste Thursday, rebalanced to the 8h ceiling ---
	assert.Equal(t, http.StatusNoContent, do("POST", "/api/board/2024-03-08/paste", `{"sourceDate":"2024-03-07"}`).Code)

	t.Run("pasted split is rebalanced for Friday", func(t *testing.T) {
		w := do("GET", "/api/board/2024-03-08", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			MaxHours   float64           `json:"maxHours"`
			Placements []board.Placement `json:"placements"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 8.0, resp.MaxHours)

		var total float64
		var yardHours float64
		for _, p := range resp.Placements {
			if p.ResourceID != "r-emp" {
				continue
			}
			total += p.Hours
			if p.WorksiteID == board.YardID {
				yardHours = p.Hours
			}
		}
		assert.Equal(t, 8.0, total, "copied 9h split must shrink to Friday's 8h")
		assert.Equal(t, 3.0, yardHours, "the deficit lands on the smallest segment")
	})

	t.Run("cost report over the week", func(t *testing.T) {
		w := do("GET", "/api/costs?from=2024-03-04&to=2024-03-08", "")
		require.Equal(t, http.StatusOK, w.Code)

		var report board.CostReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))

		// Monday (final): 450 + 300 + 2h*1.5*50 overtime + 50L*6 fuel.
		assert.InDelta(t, 1200, report.TotalRealCost, 0.01)
		assert.InDelta(t, 300, report.TotalFuelCost, 0.01)
		assert.InDelta(t, 150, report.TotalOvertimeCost, 0.01)

		// Tuesday and Wednesday the machine sits in maintenance (zero
		// cost from the toggle date on). Thursday 5h employee + machine
		// day, Friday 5h employee on the 8h base + machine day.
		assert.InDelta(t, 1131.25, report.TotalEstimatedCost, 0.01)
		assert.InDelta(t, 2331.25, report.TotalCost, 0.01)
		assert.InDelta(t, 2331.25, report.CostBySite["obra-1"], 0.01)

		assert.InDelta(t, 1200, report.CostByDay["2024-03-04"], 0.01)
		assert.InDelta(t, 0, report.CostByDay["2024-03-05"], 0.01)
		assert.InDelta(t, 0, report.CostByDay["2024-03-06"], 0.01)
	})

	t.Run("backup export and restore round trip", func(t *testing.T) {
		w := do("GET", "/api/backup", "")
		require.Equal(t, http.StatusOK, w.Code)
		bundle := w.Body.String()

		// A bundle without the required logs never replaces anything.
		assert.Equal(t, http.StatusBadRequest, do("POST", "/api/restore", `{"resources":[]}`).Code)

		assert.Equal(t, http.StatusNoContent, do("POST", "/api/restore", bundle).Code)

		w = do("GET", "/api/board/2024-03-04", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Metadata board.DayMetadata `json:"metadata"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Metadata.IsFinalAllocation, "restored state must match the export")
	})
}
