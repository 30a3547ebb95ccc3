package handlers

import (
	"encoding/json"

	"kvauth/internal/apperrors"
	"kvauth/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration and token requests.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/token", h.HandleToken)
}

// RegisterRequest is the body of POST /api/register. Age and Gender are kept
// raw; a value of the wrong type is passed on as absent.
type RegisterRequest struct {
	Username string          `json:"username" validate:"required"`
	Email    string          `json:"email" validate:"required"`
	Password string          `json:"password" validate:"required"`
	FullName string          `json:"full_name" validate:"required"`
	Age      json.RawMessage `json:"age"`
	Gender   json.RawMessage `json:"gender"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := bind(c, h.validate, &req, always(apperrors.ErrInvalidRequest)); err != nil {
		return err
	}

	user, err := h.authService.RegisterUser(c.UserContext(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Age:      optional[int](req.Age),
		Gender:   optional[string](req.Gender),
	})
	if err != nil {
		return err
	}

	return success(c, "User successfully registered!", user)
}

// TokenRequest is the body of POST /api/token.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleToken authenticates a user and issues an access token.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := bind(c, h.validate, &req, always(apperrors.ErrMissingFields)); err != nil {
		return err
	}

	grant, err := h.authService.IssueToken(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return success(c, "Access token generated successfully.", grant)
}
