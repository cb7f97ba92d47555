package services

import (
	"encoding/json"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. The event publisher may
// be nil, in which case change events are skipped.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// ListProducts retrieves products matching the filters.
func (s *ProductService) ListProducts(filters models.ProductFilters) ([]models.Product, error) {
	return s.repo.FindAll(filters)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int64) (*models.Product, error) {
	return s.repo.FindByID(id)
}

// CreateProduct creates a new product. Tags default to the empty list and
// rating fields always start at zero, whatever the caller submitted.
func (s *ProductService) CreateProduct(product *models.Product) (*models.Product, error) {
	if product.Tags == nil {
		product.Tags = models.Tags{}
	}
	product.UserRating = 0
	product.RatingCount = 0

	created, err := s.repo.Create(product)
	if err != nil {
		return nil, err
	}

	s.publish("product.created", map[string]interface{}{
		"id":       created.ID,
		"name":     created.Name,
		"category": created.Category,
	})
	return created, nil
}

// UpdateProduct applies a partial-overwrite patch: any field absent from
// the patch keeps the current stored value. The read and the write are
// separate statements, so two concurrent updates can race and the later
// write wins wholesale.
func (s *ProductService) UpdateProduct(id int64, patch models.ProductUpdate) (*models.Product, error) {
	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.Category != nil {
		current.Category = *patch.Category
	}
	if patch.Tags != nil {
		current.Tags = *patch.Tags
	}
	if patch.UserRating != nil {
		current.UserRating = *patch.UserRating
	}
	if patch.RatingCount != nil {
		current.RatingCount = *patch.RatingCount
	}

	if err := s.repo.Update(current); err != nil {
		return nil, err
	}
	return s.repo.FindByID(id)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("product.deleted", map[string]interface{}{"id": id})
	return nil
}

// publish sends a best-effort change event; failures are logged, never
// surfaced to the request.
func (s *ProductService) publish(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
