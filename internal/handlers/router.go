package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wuTims/sentralert-demo-service/internal/cache"
	"github.com/wuTims/sentralert-demo-service/internal/faults"
	"github.com/wuTims/sentralert-demo-service/internal/scenario"
	"github.com/wuTims/sentralert-demo-service/internal/store"
	"github.com/wuTims/sentralert-demo-service/internal/telemetry"
)

// Deps carries everything the routes need. main builds one of these and
// hands it to NewRouter.
type Deps struct {
	Logger      *zap.SugaredLogger
	Catalog     *store.Catalog
	Inventory   *store.Inventory
	Orders      *store.Orders
	Cache       cache.Cache
	Faults      *faults.Injector
	Metrics     *telemetry.Metrics
	Instruments *telemetry.Instruments
	Runner      *scenario.Runner
	SlowMin     time.Duration
}

// NewRouter wires the full route table. Recovery sits innermost so the
// tracing and metrics middleware still see panics as 500s.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()

	router.Use(WithRequestID())
	router.Use(WithLogging(d.Logger))
	router.Use(WithTracing())
	router.Use(WithMetrics(d.Metrics))
	router.Use(gin.CustomRecovery(panicHandler(d.Logger)))

	shop := NewShopHandler(d.Catalog, d.Faults, d.Instruments, d.Logger, d.SlowMin)
	orders := NewOrderHandler(d.Catalog, d.Inventory, d.Orders, d.Faults, d.Instruments, d.Logger)
	recs := NewRecommendationHandler(d.Cache, d.Faults, d.Instruments, d.Logger)
	scenarios := NewScenarioHandler(d.Runner, d.Faults, d.Instruments, d.Logger)

	router.GET("/", shop.Home)
	router.GET("/health", shop.Health)
	router.GET("/catalog", shop.Catalog)
	router.GET("/product/:id", shop.GetProduct)
	router.GET("/checkout", shop.Checkout)

	api := router.Group("/api")
	{
		api.POST("/orders", orders.CreateOrder)
		api.GET("/inventory/:sku", orders.CheckInventory)
		api.POST("/refunds", orders.ProcessRefund)
		api.GET("/recommendations/:user_id", recs.GetRecommendations)
		api.DELETE("/cache/clear", recs.ClearCache)
	}

	sc := router.Group("/scenario")
	{
		sc.POST("/baseline", scenarios.Baseline)
		sc.POST("/checkout-error-spike", scenarios.CheckoutErrorSpike)
		sc.POST("/checkout-latency-spike", scenarios.CheckoutLatencySpike)
		sc.POST("/trigger-orders", scenarios.TriggerOrders)
		sc.POST("/inventory-timeouts", scenarios.InventoryTimeouts)
	}

	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	return router
}
