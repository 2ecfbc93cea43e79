package handlers

import (
	"errors"

	"github.com/carhubapp/carhub-server/internal/dto"
	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.userService.Roles(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(roles)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Login == "" || req.Email == "" || req.Password == "" || req.RoleID == 0 {
		return respondError(c, fiber.StatusBadRequest, "login, email, password and roleId are required")
	}

	user, err := h.userService.Create(c.Context(), req.Login, req.Email, req.Password, req.RoleID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), id, req.Login, req.Email, req.Password, req.RoleID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return respondError(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return respondError(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}
