package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/wuTims/sentralert-demo-service/internal/faults"
	"github.com/wuTims/sentralert-demo-service/internal/models"
	"github.com/wuTims/sentralert-demo-service/internal/store"
	"github.com/wuTims/sentralert-demo-service/internal/telemetry"
)

// OrderHandler serves order creation, inventory checks and refunds. Orders
// and refunds are the only writers of the inventory store.
type OrderHandler struct {
	catalog     *store.Catalog
	inventory   *store.Inventory
	orders      *store.Orders
	faults      *faults.Injector
	instruments *telemetry.Instruments
	logger      *zap.SugaredLogger
}

func NewOrderHandler(catalog *store.Catalog, inventory *store.Inventory, orders *store.Orders, injector *faults.Injector, instruments *telemetry.Instruments, logger *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{
		catalog:     catalog,
		inventory:   inventory,
		orders:      orders,
		faults:      injector,
		instruments: instruments,
		logger:      logger,
	}
}

// CreateOrder creates a new order and draws down inventory for its items.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "unable to read request body")
		return
	}

	// BUG: payment_method is read straight off the raw body with no
	// validation - a missing key crashes order processing.
	paymentMethod := gjson.GetBytes(body, "payment_method")
	if !paymentMethod.Exists() {
		panic("order payload missing payment_method")
	}

	if pm := paymentMethod.String(); pm != "credit_card" && pm != "paypal" {
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Invalid payment method: %s", pm))
		return
	}

	var items []models.OrderItem
	for _, it := range gjson.GetBytes(body, "items").Array() {
		productID := int(it.Get("product_id").Int())
		quantity := int(it.Get("quantity").Int())
		if quantity <= 0 {
			quantity = 1
		}

		product := h.catalog.GetByID(productID)
		if product == nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("unknown product id %d", productID))
			return
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			SKU:       product.SKU,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}
	if len(items) == 0 {
		abortWithError(c, http.StatusBadRequest, "order has no items")
		return
	}

	h.faults.Sleep(h.faults.Profile().Orders)

	for _, item := range items {
		h.inventory.Remove(item.SKU, item.Quantity)
	}
	order := h.orders.Create(items)

	h.instruments.OrdersCreated.Add(c.Request.Context(), 1)
	h.logger.Infow("✅ order created",
		"order_id", order.ID,
		"items", len(order.Items),
		"request_id", c.GetString(ContextRequestID),
	)

	c.JSON(http.StatusCreated, gin.H{"order_id": order.ID, "status": order.Status})
}

// CheckInventory returns the quantity on hand for a sku.
func (h *OrderHandler) CheckInventory(c *gin.Context) {
	sku := c.Param("sku")

	profile := h.faults.Profile().Inventory
	h.faults.Sleep(profile.LatencyFault)

	// Simulate occasional database timeout
	if h.faults.Chance(profile.ErrorRate) {
		time.Sleep(time.Duration(profile.TimeoutSleepMS) * time.Millisecond)
		h.instruments.SimulatedErrors.Add(c.Request.Context(), 1,
			metric.WithAttributes(attribute.String("route", "inventory")))
		abortWithError(c, http.StatusGatewayTimeout, "Inventory database timeout")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sku": sku, "available": h.inventory.Available(sku)})
}

// ProcessRefund refunds an order and restocks its items.
func (h *OrderHandler) ProcessRefund(c *gin.Context) {
	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Simulate external payment processor call
	profile := h.faults.Profile().Refunds
	h.faults.Sleep(profile)

	if h.faults.Chance(profile.ErrorRate) {
		h.instruments.SimulatedErrors.Add(c.Request.Context(), 1,
			metric.WithAttributes(attribute.String("route", "refunds")))
		abortWithError(c, http.StatusBadGateway, "Payment processor unavailable")
		return
	}

	items, err := h.orders.Refund(req.OrderID)
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("order %d not found", req.OrderID))
		return
	case errors.Is(err, store.ErrOrderRefunded):
		abortWithError(c, http.StatusConflict, fmt.Sprintf("order %d already refunded", req.OrderID))
		return
	case err != nil:
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	for _, item := range items {
		h.inventory.Add(item.SKU, item.Quantity)
	}

	refundID := fmt.Sprintf("REF-%d", h.faults.IntBetween(10000, 99999))
	h.instruments.RefundsProcessed.Add(c.Request.Context(), 1)
	h.logger.Infow("✅ refund processed",
		"order_id", req.OrderID,
		"refund_id", refundID,
		"request_id", c.GetString(ContextRequestID),
	)

	c.JSON(http.StatusOK, gin.H{"refund_id": refundID, "status": "processed"})
}
