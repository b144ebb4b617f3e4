package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"quadro-backend/config"
	"quadro-backend/internal/mw"
	"quadro-backend/internal/notification"
	"quadro-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, pool *notification.WorkerPool, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, pool, webpushOptions, cfg.Planning.TopIdle)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	ttl := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	// The cache middleware sits on the whole group: it serves GETs from
	// memory and flushes on every successful mutation.
	api := r.Group("/api")
	api.Use(rateLimiter, caching)
	{
		api.GET("/resources", handler.GetResources)
		api.POST("/resources", handler.CreateResource)
		api.PUT("/resources/:id", handler.UpdateResource)
		api.DELETE("/resources/:id", handler.DeleteResource)

		api.GET("/worksites", handler.GetWorksites)
		api.POST("/worksites", handler.CreateWorksite)
		api.PUT("/worksites/:id", handler.UpdateWorksite)
		api.DELETE("/worksites/:id", handler.DeleteWorksite)

		api.GET("/board/:date", handler.GetBoard)
		api.PUT("/board/:date/allocations/:resource_id", handler.PutAllocation)
		api.DELETE("/board/:date/allocations/:resource_id", handler.DeleteAllocation)
		api.PUT("/board/:date/split/:resource_id", handler.PutSplit)
		api.DELETE("/board/:date/split/:resource_id", handler.DeleteSplit)
		api.POST("/board/:date/maintenance/:resource_id", handler.ToggleMaintenance)
		api.PUT("/board/:date/visibility", handler.PutAllVisibility)
		api.PUT("/board/:date/visibility/:worksite_id", handler.PutVisibility)
		api.PUT("/board/:date/metadata", handler.PutMetadata)
		api.PUT("/board/:date/overtime/:resource_id", handler.PutOvertime)
		api.DELETE("/board/:date/overtime/:resource_id", handler.DeleteOvertime)
		api.PUT("/board/:date/fuel/:resource_id", handler.PutFuel)
		api.PUT("/board/:date/links/:machine_id", handler.PutLink)
		api.DELETE("/board/:date/links/:machine_id", handler.DeleteLink)
		api.PUT("/board/:date/observations/:resource_id", handler.PutObservation)
		api.POST("/board/:date/paste", handler.PasteDay)

		api.PUT("/fuel/quotes/:date", handler.PutFuelQuote)

		api.GET("/costs", handler.GetCosts)

		api.GET("/backup", handler.GetBackup)
		api.POST("/restore", handler.Restore)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
