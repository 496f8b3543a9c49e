package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// RestaurantsHandler serves the restaurant directory.
type RestaurantsHandler struct {
	service *service.RestaurantService
}

// NewRestaurantsHandler constructs handler.
func NewRestaurantsHandler(restaurantService *service.RestaurantService) *RestaurantsHandler {
	return &RestaurantsHandler{service: restaurantService}
}

// List GET /api/restaurants?page=&size=.
func (h *RestaurantsHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), c.QueryInt("page", 0), c.QueryInt("size", service.DefaultPageSize))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Get GET /api/restaurants/:id.
func (h *RestaurantsHandler) Get(c *fiber.Ctx) error {
	id, err := restaurantID(c)
	if err != nil {
		return err
	}
	rest, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(rest)
}

// GetByName GET /api/restaurants/name/:name.
func (h *RestaurantsHandler) GetByName(c *fiber.Ctx) error {
	rest, err := h.service.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(rest)
}

// ListByLocation GET /api/restaurants/location/:location.
func (h *RestaurantsHandler) ListByLocation(c *fiber.Ctx) error {
	items, err := h.service.ListByLocation(c.UserContext(), c.Params("location"))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Create POST /api/restaurants.
func (h *RestaurantsHandler) Create(c *fiber.Ctx) error {
	var req dto.RestaurantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rest, err := h.service.Create(c.UserContext(), toInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(rest)
}

// Update PUT /api/restaurants/:id.
func (h *RestaurantsHandler) Update(c *fiber.Ctx) error {
	id, err := restaurantID(c)
	if err != nil {
		return err
	}
	var req dto.RestaurantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rest, err := h.service.Update(c.UserContext(), id, toInput(req))
	if err != nil {
		return err
	}
	return c.JSON(rest)
}

// Delete DELETE /api/restaurants/:id.
func (h *RestaurantsHandler) Delete(c *fiber.Ctx) error {
	id, err := restaurantID(c)
	if err != nil {
		return err
	}
	rest, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(rest)
}

func restaurantID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("invalid restaurant id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func toInput(req dto.RestaurantRequest) service.RestaurantInput {
	return service.RestaurantInput{Name: req.Name, Rating: req.Rating, Location: req.Location}
}
