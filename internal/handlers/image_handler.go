package handlers

import (
	"errors"
	"log"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/blob"
)

// ImageHandler serves previously uploaded blobs. It lives outside the
// /api prefix and answers plain text on failure, matching the upload
// flow's consumers.
type ImageHandler struct {
	store blob.Store
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(store blob.Store) *ImageHandler {
	return &ImageHandler{store: store}
}

// RegisterRoutes registers the image route with the Fiber app.
func (h *ImageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/image/:filename", h.HandleServe)
}

// HandleServe streams a stored blob with a content type inferred from
// the filename extension and a 1-year cache header.
func (h *ImageHandler) HandleServe(c *fiber.Ctx) error {
	filename := c.Params("filename")

	data, err := h.store.Get(filename)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("File not found")
		}
		log.Printf("Error retrieving image %s: %v", filename, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error retrieving image")
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000")
	return c.Send(data)
}
