package store

import "sync"

// Inventory tracks stock per sku in memory. Unknown skus receive a starting
// quantity from the seed function on first touch. Quantities may go negative
// under concurrent order/refund races; nothing clamps them.
type Inventory struct {
	mu    sync.Mutex
	stock map[string]int
	seed  func() int
}

func NewInventory(seed func() int) *Inventory {
	return &Inventory{
		stock: make(map[string]int),
		seed:  seed,
	}
}

// Available returns the quantity on hand for sku, seeding it if unseen.
func (i *Inventory) Available(sku string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.quantityLocked(sku)
}

// Remove subtracts n units from sku's stock and returns the new quantity.
func (i *Inventory) Remove(sku string, n int) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	q := i.quantityLocked(sku) - n
	i.stock[sku] = q
	return q
}

// Add restocks n units of sku and returns the new quantity.
func (i *Inventory) Add(sku string, n int) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	q := i.quantityLocked(sku) + n
	i.stock[sku] = q
	return q
}

func (i *Inventory) quantityLocked(sku string) int {
	q, ok := i.stock[sku]
	if !ok {
		q = i.seed()
		i.stock[sku] = q
	}
	return q
}
