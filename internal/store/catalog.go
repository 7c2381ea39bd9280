package store

import "github.com/wuTims/sentralert-demo-service/internal/models"

// Catalog is the static product range, loaded once at startup and read-only
// afterwards.
type Catalog struct {
	products []models.Product
	byID     map[int]models.Product
}

func NewCatalog(products []models.Product) *Catalog {
	byID := make(map[int]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// SeedProducts returns the demo shop's fixed product range.
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "shirt", SKU: "SKU-1", Price: 20, Category: "apparel"},
		{ID: 2, Name: "shoes", SKU: "SKU-2", Price: 50, Category: "footwear"},
		{ID: 3, Name: "hat", SKU: "SKU-3", Price: 15, Category: "accessories"},
	}
}

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// GetByID returns the product, or nil when the id is unknown.
func (c *Catalog) GetByID(id int) *models.Product {
	p, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &p
}
