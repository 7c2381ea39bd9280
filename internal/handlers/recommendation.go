package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wuTims/sentralert-demo-service/internal/cache"
	"github.com/wuTims/sentralert-demo-service/internal/faults"
	"github.com/wuTims/sentralert-demo-service/internal/telemetry"
)

// RecommendationHandler serves per-user recommendations behind the cache
// and the admin endpoint that clears it.
type RecommendationHandler struct {
	cache       cache.Cache
	faults      *faults.Injector
	instruments *telemetry.Instruments
	logger      *zap.SugaredLogger
}

func NewRecommendationHandler(c cache.Cache, injector *faults.Injector, instruments *telemetry.Instruments, logger *zap.SugaredLogger) *RecommendationHandler {
	return &RecommendationHandler{
		cache:       c,
		faults:      injector,
		instruments: instruments,
		logger:      logger,
	}
}

func recommendationKey(userID int) string {
	return fmt.Sprintf("recs:%d", userID)
}

// GetRecommendations returns recommendations for a user. Cache hits answer
// immediately; misses pay the model inference latency and fill the cache.
// The source field makes the difference observable to callers.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	ctx := c.Request.Context()
	key := recommendationKey(userID)

	var recs []string
	hit, err := h.cache.Get(ctx, key, &recs)
	if err != nil {
		h.logger.Warnw("⚠️ cache error", "error", err)
	}
	if hit {
		h.logger.Infow("📦 Cache HIT", "user_id", userID)
		h.instruments.CacheHits.Add(ctx, 1)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "recommendations": recs, "source": "cache"})
		return
	}

	h.logger.Infow("💾 Cache MISS", "user_id", userID)
	h.instruments.CacheMisses.Add(ctx, 1)

	// Simulate ML model inference
	h.faults.Sleep(h.faults.Profile().Recommendations)

	recs = make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		recs = append(recs, fmt.Sprintf("product_%d", i))
	}

	if err := h.cache.Set(ctx, key, recs); err != nil {
		h.logger.Warnw("⚠️ failed to cache recommendations", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "recommendations": recs, "source": "model"})
}

// ClearCache drops all cached recommendations.
func (h *RecommendationHandler) ClearCache(c *gin.Context) {
	profile := h.faults.Profile().CacheClear
	h.faults.Sleep(profile)

	// Simulate occasional permission error
	if h.faults.Chance(profile.ErrorRate) {
		abortWithError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if err := h.cache.Clear(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Infow("🗑️ Cache cleared", "request_id", c.GetString(ContextRequestID))
	c.JSON(http.StatusOK, gin.H{"status": "cache cleared"})
}
