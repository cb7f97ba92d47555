package repositories

import (
	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	FindAll(filters models.ProductFilters) ([]models.Product, error)
	FindByID(id int64) (*models.Product, error)
	Create(product *models.Product) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id int64) error
}
