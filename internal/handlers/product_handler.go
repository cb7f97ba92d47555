package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"catalog/internal/blob"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service       *services.ProductService
	store         blob.Store
	session       fiber.Handler
	validate      *validator.Validate
	maxUploadSize int64
}

// NewProductHandler creates a new ProductHandler. The session handler is
// applied to product creation so multipart uploads can resolve ownership
// from the caller's cookie.
func NewProductHandler(service *services.ProductService, store blob.Store, session fiber.Handler, maxUploadSize int64) *ProductHandler {
	return &ProductHandler{
		service:       service,
		store:         store,
		session:       session,
		validate:      validator.New(),
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Post("/", h.session, h.HandleCreate)
	products.Get("/:id", h.HandleGet)
	products.Put("/:id", h.HandleUpdate)
	products.Delete("/:id", h.HandleDelete)
	products.Use(RouteNotFound)
}

// HandleList retrieves products, optionally filtered and sorted by query
// parameters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	filters := models.ProductFilters{
		Category:  c.Query("category"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	products, err := h.service.ListProducts(filters)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidSort) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"count":   len(products),
	})
}

// HandleCreate creates a new product from either a JSON body or a
// multipart form with an optional image upload. Both variants answer with
// the JSON envelope.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.createFromForm(c)
	}
	return h.createFromJSON(c)
}

func (h *ProductHandler) createFromJSON(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Name and category are required",
		})
	}

	return h.create(c, &product)
}

func (h *ProductHandler) createFromForm(c *fiber.Ctx) error {
	product := models.Product{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Tags:        splitTags(c.FormValue("tags")),
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Name and category are required",
		})
	}

	if data, ok := c.Locals(middleware.SessionKey).(models.SessionData); ok {
		userID := data.UserID
		product.CreatedBy = &userID
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		filename, status, uploadErr := h.storeUpload(file)
		if uploadErr != nil {
			return c.Status(status).JSON(fiber.Map{
				"success": false,
				"error":   uploadErr.Error(),
			})
		}
		product.Image = &filename
	}

	return h.create(c, &product)
}

func (h *ProductHandler) create(c *fiber.Ctx, product *models.Product) error {
	created, err := h.service.CreateProduct(product)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

// storeUpload validates and persists an uploaded image, returning the
// generated blob filename. On failure the second result is the HTTP
// status to answer with.
func (h *ProductHandler) storeUpload(file *multipart.FileHeader) (string, int, error) {
	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		return "", fiber.StatusBadRequest, fmt.Errorf("image exceeds the maximum upload size of %d bytes", h.maxUploadSize)
	}
	if !strings.HasPrefix(file.Header.Get(fiber.HeaderContentType), "image/") {
		return "", fiber.StatusBadRequest, fmt.Errorf("only image uploads are accepted")
	}

	src, err := file.Open()
	if err != nil {
		return "", fiber.StatusInternalServerError, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fiber.StatusInternalServerError, fmt.Errorf("failed to read upload: %w", err)
	}

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := h.store.Put(filename, data); err != nil {
		return "", fiber.StatusInternalServerError, err
	}
	return filename, 0, nil
}

// splitTags parses the comma-separated tags form field.
func splitTags(raw string) models.Tags {
	tags := models.Tags{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// HandleGet retrieves a single product by its ID.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return productNotFound(c)
		}
		log.Printf("Error getting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleUpdate applies a partial update: fields omitted from the body
// keep their stored values.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	var patch models.ProductUpdate
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing product update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	product, err := h.service.UpdateProduct(id, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return productNotFound(c)
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleDelete removes a product. Deleting an absent or already-deleted
// product answers 404.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return productNotFound(c)
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func productNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"error":   "Product not found",
	})
}
