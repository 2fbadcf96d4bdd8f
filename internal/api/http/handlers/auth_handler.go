package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/streaming-auth/internal/api/dto"
	"github.com/spec-kit/streaming-auth/internal/auth"
	"github.com/spec-kit/streaming-auth/internal/service"
)

// AuthHandler exposes signup, login, logout and user-info endpoints.
type AuthHandler struct {
	auth      *service.AuthService
	users     *service.UserService
	transport *auth.Transport
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, userService *service.UserService, transport *auth.Transport) *AuthHandler {
	return &AuthHandler{auth: authService, users: userService, transport: transport}
}

// Signup handles POST /api/v1/user/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, err := h.auth.RegisterUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":    userView(user),
		"message": "user created successfully",
	})
}

// Login handles POST /api/v1/user/login. The token always comes back
// in the body; in cookie mode the transport additionally sets the
// Authorization cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	tokenString, token, err := h.auth.LoginLocal(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.transport.Attach(c, tokenString)

	return c.JSON(fiber.Map{
		"data":    dto.AuthResponse{Token: tokenString, ExpiresAt: token.ExpiresAt},
		"message": "login successful",
	})
}

// Logout handles POST /api/v1/user/logout. First revocation returns
// 200; a missing or malformed header and a duplicate logout both return
// 400.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), c.Get(fiber.HeaderAuthorization)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logout successful"})
}

// UserInfo handles POST /api/v1/user/user-info for authenticated
// callers.
func (h *AuthHandler) UserInfo(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	user, err := h.users.Get(c.UserContext(), principal.Subject())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":    user.Email,
		"message": "user info retrieved successfully",
	})
}
