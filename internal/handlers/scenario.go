package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wuTims/sentralert-demo-service/internal/faults"
	"github.com/wuTims/sentralert-demo-service/internal/models"
	"github.com/wuTims/sentralert-demo-service/internal/scenario"
	"github.com/wuTims/sentralert-demo-service/internal/telemetry"
)

// ScenarioHandler exposes the traffic generators. Each endpoint fires a
// batch of real HTTP requests back at the shop and replies once the batch
// has finished.
type ScenarioHandler struct {
	runner      *scenario.Runner
	faults      *faults.Injector
	instruments *telemetry.Instruments
	logger      *zap.SugaredLogger
}

func NewScenarioHandler(runner *scenario.Runner, injector *faults.Injector, instruments *telemetry.Instruments, logger *zap.SugaredLogger) *ScenarioHandler {
	return &ScenarioHandler{
		runner:      runner,
		faults:      injector,
		instruments: instruments,
		logger:      logger,
	}
}

// Baseline generates normal browsing traffic across the public endpoints,
// paced to roughly ten requests per second.
func (h *ScenarioHandler) Baseline(c *gin.Context) {
	count, concurrency, ok := h.params(c, 50)
	if !ok {
		return
	}

	routes := []string{"/", "/catalog", "/product/1", "/checkout?mode=normal"}
	h.run(c, scenario.Spec{
		Name:        "baseline",
		Count:       count,
		Concurrency: concurrency,
		Pace:        rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		Next: func(i int) scenario.Request {
			return scenario.Request{
				Method: http.MethodGet,
				Path:   routes[h.faults.IntBetween(0, len(routes)-1)],
			}
		},
	})
}

// CheckoutErrorSpike hammers checkout in error mode.
func (h *ScenarioHandler) CheckoutErrorSpike(c *gin.Context) {
	count, concurrency, ok := h.params(c, 80)
	if !ok {
		return
	}

	h.run(c, scenario.Spec{
		Name:        "checkout-error-spike",
		Count:       count,
		Concurrency: concurrency,
		Next: func(i int) scenario.Request {
			return scenario.Request{Method: http.MethodGet, Path: "/checkout?mode=error"}
		},
	})
}

// CheckoutLatencySpike hammers checkout in slow mode.
func (h *ScenarioHandler) CheckoutLatencySpike(c *gin.Context) {
	count, concurrency, ok := h.params(c, 80)
	if !ok {
		return
	}

	h.run(c, scenario.Spec{
		Name:        "checkout-latency-spike",
		Count:       count,
		Concurrency: concurrency,
		Next: func(i int) scenario.Request {
			return scenario.Request{Method: http.MethodGet, Path: "/checkout?mode=slow"}
		},
	})
}

// TriggerOrders fires order creations. A share of the payloads omit
// payment_method so the order bug shows up in the error tracker.
func (h *ScenarioHandler) TriggerOrders(c *gin.Context) {
	count, concurrency, ok := h.params(c, 50)
	if !ok {
		return
	}

	h.run(c, scenario.Spec{
		Name:        "trigger-orders",
		Count:       count,
		Concurrency: concurrency,
		Next: func(i int) scenario.Request {
			payload := map[string]interface{}{
				"items": []map[string]interface{}{
					{"product_id": 1, "quantity": 1},
				},
			}
			// 30% of generated orders omit payment_method
			if !h.faults.Chance(0.3) {
				payload["payment_method"] = "credit_card"
			}
			body, _ := json.Marshal(payload)
			return scenario.Request{Method: http.MethodPost, Path: "/api/orders", Body: body}
		},
	})
}

// InventoryTimeouts polls one sku often enough to surface the injected
// database timeouts.
func (h *ScenarioHandler) InventoryTimeouts(c *gin.Context) {
	count, concurrency, ok := h.params(c, 40)
	if !ok {
		return
	}

	h.run(c, scenario.Spec{
		Name:        "inventory-timeouts",
		Count:       count,
		Concurrency: concurrency,
		Next: func(i int) scenario.Request {
			return scenario.Request{Method: http.MethodGet, Path: "/api/inventory/SKU123"}
		},
	})
}

func (h *ScenarioHandler) params(c *gin.Context, defaultCount int) (count, concurrency int, ok bool) {
	count, err := strconv.Atoi(c.DefaultQuery("requests", strconv.Itoa(defaultCount)))
	if err != nil || count < 1 {
		abortWithError(c, http.StatusBadRequest, "invalid requests parameter")
		return 0, 0, false
	}

	concurrency, err = strconv.Atoi(c.DefaultQuery("concurrency", "1"))
	if err != nil || concurrency < 1 {
		abortWithError(c, http.StatusBadRequest, "invalid concurrency parameter")
		return 0, 0, false
	}

	return count, concurrency, true
}

func (h *ScenarioHandler) run(c *gin.Context, spec scenario.Spec) {
	ctx := c.Request.Context()

	h.logger.Infow("🎬 scenario started", "scenario", spec.Name, "requests", spec.Count)
	fired := h.runner.Fire(ctx, spec)
	h.logger.Infow("🏁 scenario finished", "scenario", spec.Name, "fired", fired)

	h.instruments.ScenarioRequests.Add(ctx, int64(fired),
		metric.WithAttributes(attribute.String("scenario", spec.Name)))

	c.JSON(http.StatusOK, models.ScenarioResult{Scenario: spec.Name, Requests: fired})
}
