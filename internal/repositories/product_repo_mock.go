package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog/internal/models"
)

// MemProductRepository is an in-memory implementation of
// ProductRepository, used in tests.
type MemProductRepository struct {
	products map[int64]models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewMemProductRepository creates a new instance of MemProductRepository.
func NewMemProductRepository() *MemProductRepository {
	return &MemProductRepository{
		products: make(map[int64]models.Product),
		nextID:   1,
	}
}

// FindAll returns products matching the filters, newest first.
func (r *MemProductRepository) FindAll(filters models.ProductFilters) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if filters.Search != "" &&
			!strings.Contains(p.Name, filters.Search) &&
			!strings.Contains(p.Description, filters.Search) {
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// FindByID returns a product by its ID.
func (r *MemProductRepository) FindByID(id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product, assigning the next identity.
func (r *MemProductRepository) Create(product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *product
	stored.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.products[stored.ID] = stored
	return &stored, nil
}

// Update modifies an existing product.
func (r *MemProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	stored := *product
	stored.UpdatedAt = time.Now().UTC()
	r.products[product.ID] = stored
	return nil
}

// Delete removes a product by its ID.
func (r *MemProductRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}
