package models

import "time"

const (
	OrderStatusCreated  = "created"
	OrderStatusRefunded = "refunded"
)

type Order struct {
	ID        int         `json:"id"`
	Items     []OrderItem `json:"items"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID int     `json:"product_id"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type RefundRequest struct {
	OrderID int `json:"order_id" binding:"required"`
}
