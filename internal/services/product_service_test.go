package services_test

import (
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of
// repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(filters models.ProductFilters) ([]models.Product, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(id int64) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) (*models.Product, error) {
	args := m.Called(product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	filters := models.ProductFilters{Category: "tropical"}
	expected := []models.Product{
		{ID: 1, Name: "Product A", Category: "tropical"},
		{ID: 2, Name: "Product B", Category: "tropical"},
	}

	mockRepo.On("FindAll", filters).Return(expected, nil).Once()

	products, err := service.ListProducts(filters)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_Defaults(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	input := &models.Product{
		Name:        "New Product",
		Category:    "freshwater",
		UserRating:  4.5, // must be ignored
		RatingCount: 12,  // must be ignored
	}
	created := &models.Product{ID: 1, Name: "New Product", Category: "freshwater", Tags: models.Tags{}}

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.Tags != nil && len(p.Tags) == 0 && p.UserRating == 0 && p.RatingCount == 0
	})).Return(created, nil).Once()
	mockEvents.On("Publish", "product.created", mock.Anything).Return(nil).Once()

	result, err := service.CreateProduct(input)

	assert.NoError(t, err)
	assert.Equal(t, created, result)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_CreateProduct_TagsOrderPreserved(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	tags := models.Tags{"colorful", "vibrant", "popular"}
	input := &models.Product{Name: "Tagged", Category: "tropical", Tags: tags}

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return assert.ObjectsAreEqual(tags, p.Tags)
	})).Return(&models.Product{ID: 7, Name: "Tagged", Category: "tropical", Tags: tags}, nil).Once()

	result, err := service.CreateProduct(input)

	assert.NoError(t, err)
	assert.Equal(t, tags, result.Tags)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_PartialOverwrite(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	current := &models.Product{
		ID:          1,
		Name:        "Original Name",
		Description: "Original description",
		Category:    "tropical",
		Tags:        models.Tags{"one", "two"},
		UserRating:  3.5,
		RatingCount: 4,
	}
	newName := "Renamed"
	patch := models.ProductUpdate{Name: &newName}

	mockRepo.On("FindByID", int64(1)).Return(current, nil).Once()
	// Every omitted field must keep its pre-update value.
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Renamed" &&
			p.Description == "Original description" &&
			p.Category == "tropical" &&
			len(p.Tags) == 2 &&
			p.UserRating == 3.5 &&
			p.RatingCount == 4
	})).Return(nil).Once()
	updated := *current
	updated.Name = "Renamed"
	mockRepo.On("FindByID", int64(1)).Return(&updated, nil).Once()

	result, err := service.UpdateProduct(1, patch)

	assert.NoError(t, err)
	assert.Equal(t, "Renamed", result.Name)
	assert.Equal(t, "Original description", result.Description)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByID", int64(99)).Return(nil, fmt.Errorf("product 99: %w", repositories.ErrNotFound)).Once()

	result, err := service.UpdateProduct(99, models.ProductUpdate{})

	assert.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, result)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	// Successful deletion publishes an event.
	mockRepo.On("Delete", int64(1)).Return(nil).Once()
	mockEvents.On("Publish", "product.deleted", mock.Anything).Return(nil).Once()
	err := service.DeleteProduct(1)
	assert.NoError(t, err)

	// Deleting an absent product fails without publishing.
	mockRepo.On("Delete", int64(99)).Return(fmt.Errorf("product 99: %w", repositories.ErrNotFound)).Once()
	err = service.DeleteProduct(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProductService_PublishFailureDoesNotFailCreate(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockEvents)

	created := &models.Product{ID: 2, Name: "X", Category: "exotic", Tags: models.Tags{}}
	mockRepo.On("Create", mock.Anything).Return(created, nil).Once()
	mockEvents.On("Publish", "product.created", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	result, err := service.CreateProduct(&models.Product{Name: "X", Category: "exotic"})

	assert.NoError(t, err)
	assert.Equal(t, created, result)
	mockEvents.AssertExpectations(t)
}
