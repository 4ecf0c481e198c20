package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/maxfalkovich/web-lab4-weather/internal/dashboard"
	"github.com/maxfalkovich/web-lab4-weather/internal/locations"
	"github.com/maxfalkovich/web-lab4-weather/internal/view"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, ctrl *dashboard.Controller) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(dashboardView(ctrl.State()))
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		ctrl.RefreshAll(c.UserContext())
		return c.JSON(dashboardView(ctrl.State()))
	})

	v1.Post("/geolocate", func(c *fiber.Ctx) error {
		ctrl.Geolocate(c.UserContext())
		return c.JSON(dashboardView(ctrl.State()))
	})

	v1.Get("/cities/suggestions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"cities": locations.Names()})
	})

	v1.Post("/cities", func(c *fiber.Ctx) error {
		var req addCityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return cityError(c, dashboard.ErrEmptyCity)
		}

		if err := ctrl.AddCity(c.UserContext(), req.Name); err != nil {
			return cityError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dashboardView(ctrl.State()))
	})
}

// addCityRequest is the body of the add-city form submission.
type addCityRequest struct {
	Name string `json:"name" validate:"required"`
}

// cityError renders a validation failure as inline field-level text for the
// city input.
func cityError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnprocessableEntity
	if !isValidationError(err) {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"field":   "city",
		"message": err.Error(),
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, dashboard.ErrEmptyCity) ||
		errors.Is(err, dashboard.ErrUnknownCity) ||
		errors.Is(err, dashboard.ErrDuplicateCity)
}

func dashboardView(state *dashboard.State) fiber.Map {
	locs := state.Locations()
	return fiber.Map{
		"status": view.StatusBanner(state.Status()),
		"cards":  view.BuildCards(locs, state.Snapshots()),
	}
}
