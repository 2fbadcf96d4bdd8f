package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/streaming-auth/internal/api/dto"
	"github.com/spec-kit/streaming-auth/internal/domain"
	"github.com/spec-kit/streaming-auth/internal/service"
)

// UsersHandler exposes viewer account CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /api/v1/user.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}

	views := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		views = append(views, userView(user))
	}
	return c.JSON(fiber.Map{"data": views, "message": "success"})
}

// Get handles GET /api/v1/user/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userView(user), "message": "success"})
}

// Update handles PUT /api/v1/user.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "user_id and email required")
	}

	user, err := h.users.UpdateEmail(c.UserContext(), req.UserID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userView(user), "message": "user updated successfully"})
}

// Delete handles DELETE /api/v1/user/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deleted successfully"})
}

func userView(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Origin: string(user.Origin),
	}
}
