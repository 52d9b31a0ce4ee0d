package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gywan/gywan-site/internal/web/navigation"
	"github.com/gywan/gywan-site/internal/web/session"
)

// Render renders name inside the base layout with the navigation context
// and any pending flash messages added to data.
func Render(c *fiber.Ctx, name string, nav *navigation.Context, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	data["Navigation"] = nav
	data["Flashes"] = session.PopFlashes(c)

	return c.Render(name, data, BaseLayout)
}

// ParamID returns the positive numeric :id route parameter or a 404 error.
func ParamID(c *fiber.Ctx) (uint64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.ErrNotFound
	}

	return uint64(id), nil
}

// JSONError writes {"success": false, "error": msg} with status.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
