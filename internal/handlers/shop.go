package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/wuTims/sentralert-demo-service/internal/faults"
	"github.com/wuTims/sentralert-demo-service/internal/store"
	"github.com/wuTims/sentralert-demo-service/internal/telemetry"
)

// ShopHandler serves the public storefront endpoints.
type ShopHandler struct {
	catalog     *store.Catalog
	faults      *faults.Injector
	instruments *telemetry.Instruments
	logger      *zap.SugaredLogger
	slowMin     time.Duration
}

func NewShopHandler(catalog *store.Catalog, injector *faults.Injector, instruments *telemetry.Instruments, logger *zap.SugaredLogger, slowMin time.Duration) *ShopHandler {
	return &ShopHandler{
		catalog:     catalog,
		faults:      injector,
		instruments: instruments,
		logger:      logger,
		slowMin:     slowMin,
	}
}

// Home returns the service banner.
func (h *ShopHandler) Home(c *gin.Context) {
	h.faults.Sleep(h.faults.Profile().Home)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "demo-shop"})
}

// Health reports liveness. It never sleeps and never depends on the
// telemetry backend being reachable.
func (h *ShopHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Catalog returns the full product range.
func (h *ShopHandler) Catalog(c *gin.Context) {
	profile := h.faults.Profile().Catalog
	h.faults.Sleep(profile)

	if h.faults.Chance(profile.ErrorRate) {
		h.countSimulatedError(c, "catalog")
		abortWithError(c, http.StatusInternalServerError, "Catalog service temporarily unavailable")
		return
	}

	products := h.catalog.All()
	c.JSON(http.StatusOK, gin.H{"items": products, "total": len(products)})
}

// GetProduct returns a single product by id.
func (h *ShopHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid product ID")
		return
	}

	// Simulate DB query
	h.faults.Sleep(h.faults.Profile().Product)

	product := h.catalog.GetByID(id)
	if product == nil {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Product %d not found", id))
		return
	}

	c.JSON(http.StatusOK, product)
}

// Checkout runs the scenario-driven checkout simulation. mode selects the
// branch: normal completes, slow stretches the latency, error always fails.
func (h *ShopHandler) Checkout(c *gin.Context) {
	mode := c.DefaultQuery("mode", "normal")
	switch mode {
	case "normal", "slow", "error":
	default:
		abortWithError(c, http.StatusBadRequest, "invalid mode: "+mode)
		return
	}

	profile := h.faults.Profile().Checkout
	h.faults.Sleep(profile.LatencyFault)

	if mode == "error" {
		h.countSimulatedError(c, "checkout")
		abortWithError(c, http.StatusInternalServerError, "Checkout failed: payment token missing")
		return
	}

	base := h.faults.Gauss(profile.MeanMS, profile.StddevMS, profile.FloorMS)
	if mode == "slow" {
		base = time.Duration(float64(base) * profile.SlowMultiplier)
		if base < h.slowMin {
			base = h.slowMin
		}
	}
	time.Sleep(base)

	h.instruments.CheckoutLatency.Record(c.Request.Context(), base.Seconds(),
		metric.WithAttributes(attribute.String("mode", mode)))

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"mode":      mode,
		"latency_s": math.Round(base.Seconds()*1000) / 1000,
	})
}

func (h *ShopHandler) countSimulatedError(c *gin.Context, route string) {
	h.instruments.SimulatedErrors.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("route", route)))
}
