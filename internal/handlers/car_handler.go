package handlers

import (
	"errors"

	"github.com/carhubapp/carhub-server/internal/dto"
	"github.com/carhubapp/carhub-server/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CarHandler struct {
	carService *services.CarService
}

func NewCarHandler(carService *services.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

func (h *CarHandler) List(c *fiber.Ctx) error {
	cars, err := h.carService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(cars)
}

func (h *CarHandler) Properties(c *fiber.Ctx) error {
	brands, carModels, colors, err := h.carService.Properties(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.CarPropertiesResponse{
		Brands: brands,
		Models: carModels,
		Colors: colors,
	})
}

func (h *CarHandler) Create(c *fiber.Ctx) error {
	var req dto.CarRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	car, err := h.carService.Create(c.Context(), req.BrandID, req.ModelID, req.ColorID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

func (h *CarHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, fiber.StatusBadRequest, "Invalid car ID")
	}

	var req dto.CarRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	car, err := h.carService.Update(c.Context(), uint(id), req.BrandID, req.ModelID, req.ColorID)
	if err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			return respondError(c, fiber.StatusNotFound, "Car not found")
		}
		return err
	}
	return c.JSON(car)
}

func (h *CarHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return respondError(c, fiber.StatusBadRequest, "Invalid car ID")
	}

	if err := h.carService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrCarNotFound) {
			return respondError(c, fiber.StatusNotFound, "Car not found")
		}
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}
