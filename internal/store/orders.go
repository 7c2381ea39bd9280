package store

import (
	"errors"
	"sync"
	"time"

	"github.com/wuTims/sentralert-demo-service/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderRefunded = errors.New("order already refunded")
)

// Order ids live in a fixed space, so the store holds at most one order per
// id and evicts its oldest order once every id is taken.
const (
	orderIDMin = 1000
	orderIDMax = 9999
	maxOrders  = orderIDMax - orderIDMin + 1
)

// maxRerolls bounds how many candidate ids Create draws before it falls back
// to scanning for the next free id.
const maxRerolls = 10

// Orders holds ephemeral orders for the lifetime of the process.
type Orders struct {
	mu      sync.Mutex
	orders  map[int]models.Order
	created []int // ids in creation order, oldest first
	newID   func() int
}

// NewOrders builds the store; newID supplies candidate order ids and is
// re-invoked on collision.
func NewOrders(newID func() int) *Orders {
	return &Orders{
		orders: make(map[int]models.Order),
		newID:  newID,
	}
}

// Create stores a new order in status created and returns it. Colliding ids
// are re-rolled a bounded number of times before the store scans for the next
// free id; when the id space is exhausted the oldest order is evicted and its
// id reused, so Create always terminates.
func (o *Orders) Create(items []models.OrderItem) models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	var id int
	if len(o.orders) >= maxOrders {
		id = o.evictOldestLocked()
	} else {
		id = o.newID()
		for attempt := 1; attempt < maxRerolls; attempt++ {
			if _, taken := o.orders[id]; !taken {
				break
			}
			id = o.newID()
		}
		if _, taken := o.orders[id]; taken {
			id = o.nextFreeLocked(id)
		}
	}

	order := models.Order{
		ID:        id,
		Items:     items,
		Status:    models.OrderStatusCreated,
		CreatedAt: time.Now().UTC(),
	}
	o.orders[id] = order
	o.created = append(o.created, id)
	return order
}

// nextFreeLocked walks the id space from start, wrapping at orderIDMax, until
// it finds a free id. The caller guarantees at least one id is free.
func (o *Orders) nextFreeLocked(start int) int {
	id := start
	for {
		id++
		if id > orderIDMax {
			id = orderIDMin
		}
		if _, taken := o.orders[id]; !taken {
			return id
		}
	}
}

// evictOldestLocked drops the oldest order and returns its freed id.
func (o *Orders) evictOldestLocked() int {
	id := o.created[0]
	o.created = o.created[1:]
	delete(o.orders, id)
	return id
}

// GetByID returns a copy of the order, or nil when unknown.
func (o *Orders) GetByID(id int) *models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, ok := o.orders[id]
	if !ok {
		return nil
	}
	return &order
}

// Refund flips a created order to refunded and returns its items so the
// caller can restock them.
func (o *Orders) Refund(id int) ([]models.OrderItem, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, ok := o.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if order.Status == models.OrderStatusRefunded {
		return nil, ErrOrderRefunded
	}

	order.Status = models.OrderStatusRefunded
	o.orders[id] = order
	return order.Items, nil
}
