package handlers

import (
	"kvauth/internal/apperrors"
	"kvauth/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DataHandler handles the key-value routes. All of them sit behind
// middleware.AuthRequired.
type DataHandler struct {
	dataService *services.DataService
	validate    *validator.Validate
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(dataService *services.DataService) *DataHandler {
	return &DataHandler{
		dataService: dataService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the key-value routes on an already protected
// router.
func (h *DataHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/", h.HandleStore)
	router.Get("/:key", h.HandleRetrieve)
	router.Put("/:key", h.HandleUpdate)
	router.Delete("/:key", h.HandleDelete)
}

// StoreRequest is the body of POST /api/data.
type StoreRequest struct {
	Key   *string `json:"key" validate:"required"`
	Value *string `json:"value" validate:"required"`
}

// UpdateRequest is the body of PUT /api/data/:key.
type UpdateRequest struct {
	Value *string `json:"value" validate:"required"`
}

func storeFieldError(field string) *apperrors.Error {
	if field == "value" {
		return apperrors.ErrInvalidValue
	}
	return apperrors.ErrInvalidKey
}

// HandleStore stores a new key-value pair.
func (h *DataHandler) HandleStore(c *fiber.Ctx) error {
	var req StoreRequest
	if err := bind(c, h.validate, &req, storeFieldError); err != nil {
		return err
	}

	if err := h.dataService.Store(c.UserContext(), *req.Key, *req.Value); err != nil {
		return err
	}
	return success(c, "Data stored successfully.", nil)
}

// HandleRetrieve returns the value stored under the key path parameter.
func (h *DataHandler) HandleRetrieve(c *fiber.Ctx) error {
	entry, err := h.dataService.Retrieve(c.UserContext(), c.Params("key"))
	if err != nil {
		return err
	}
	return success(c, "", entry)
}

// HandleUpdate replaces the value stored under the key path parameter.
func (h *DataHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := bind(c, h.validate, &req, always(apperrors.ErrInvalidValue)); err != nil {
		return err
	}

	if err := h.dataService.Update(c.UserContext(), c.Params("key"), *req.Value); err != nil {
		return err
	}
	return success(c, "Data updated successfully.", nil)
}

// HandleDelete removes the key path parameter.
func (h *DataHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.dataService.Delete(c.UserContext(), c.Params("key")); err != nil {
		return err
	}
	return success(c, "Data deleted successfully.", nil)
}
