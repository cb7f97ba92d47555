package repositories

import (
	"fmt"
	"strings"
	"time"

	"catalog/internal/database"
	"catalog/internal/models"
)

// productSortColumns is the allow-list for client-controlled ordering.
// Anything outside it is rejected before the clause is interpolated.
var productSortColumns = map[string]bool{
	"name":         true,
	"category":     true,
	"user_rating":  true,
	"rating_count": true,
	"created_at":   true,
	"updated_at":   true,
}

// SQLProductRepository is a Gateway-backed implementation of
// ProductRepository using direct parameterized SQL per operation.
type SQLProductRepository struct {
	gw *database.Gateway
}

// NewSQLProductRepository creates a new instance of SQLProductRepository.
func NewSQLProductRepository(gw *database.Gateway) *SQLProductRepository {
	return &SQLProductRepository{gw: gw}
}

// FindAll retrieves products matching the supplied filters. Filters are
// combined conjunctively; ordering defaults to newest first.
func (r *SQLProductRepository) FindAll(filters models.ProductFilters) ([]models.Product, error) {
	query := "SELECT * FROM products"
	var conditions []string
	var params []interface{}

	if filters.Category != "" {
		conditions = append(conditions, "category = ?")
		params = append(params, filters.Category)
	}
	if filters.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR description LIKE ?)")
		like := "%" + filters.Search + "%"
		params = append(params, like, like)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy, err := sortClause(filters.SortBy, filters.SortOrder)
	if err != nil {
		return nil, err
	}
	query += " ORDER BY " + orderBy

	var products []models.Product
	if err := r.gw.QueryAll(&products, query, params...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// sortClause validates client-controlled sort input against the
// allow-list and returns the clause to interpolate.
func sortClause(sortBy, sortOrder string) (string, error) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	if sortOrder == "" {
		sortOrder = "desc"
	}
	if !productSortColumns[sortBy] {
		return "", fmt.Errorf("%w: column %s is not sortable", ErrInvalidSort, sortBy)
	}
	order := strings.ToLower(sortOrder)
	if order != "asc" && order != "desc" {
		return "", fmt.Errorf("%w: order must be asc or desc, got %s", ErrInvalidSort, sortOrder)
	}
	return sortBy + " " + order, nil
}

// FindByID retrieves a single product by its ID.
func (r *SQLProductRepository) FindByID(id int64) (*models.Product, error) {
	var product models.Product
	found, err := r.gw.QueryFirst(&product, "SELECT * FROM products WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create inserts a new product and returns the freshly created record,
// re-fetched by its generated identity.
func (r *SQLProductRepository) Create(product *models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	id, err := r.gw.InsertReturningID(
		`INSERT INTO products (name, description, category, tags, user_rating, rating_count, image, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		product.Name,
		product.Description,
		product.Category,
		product.Tags,
		product.UserRating,
		product.RatingCount,
		product.Image,
		product.CreatedBy,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return r.FindByID(id)
}

// Update overwrites every column of an existing product row. Partial
// patch semantics are resolved by the caller before this runs.
func (r *SQLProductRepository) Update(product *models.Product) error {
	res, err := r.gw.Exec(
		`UPDATE products
		 SET name = ?, description = ?, category = ?, tags = ?, user_rating = ?, rating_count = ?, image = ?, created_by = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Description,
		product.Category,
		product.Tags,
		product.UserRating,
		product.RatingCount,
		product.Image,
		product.CreatedBy,
		time.Now().UTC(),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product by its ID. Deleting an absent product reports
// ErrNotFound.
func (r *SQLProductRepository) Delete(id int64) error {
	res, err := r.gw.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}
