package handlers

import (
	"strings"

	"ecofinds/internal/domain"
	"ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type HomeHandler struct {
	Catalog *services.CatalogService
}

// Home renders the feed, optionally filtered by a free-text query and an
// exact category (both combine with AND).
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	rawQ := strings.TrimSpace(c.Query("q"))
	q := ""
	if rawQ != "" {
		var ok bool
		if q, ok = validate.Q(rawQ); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			c.Status(fiber.StatusBadRequest)
			return render(c, "home", fiber.Map{
				"Q": "", "Category": "", "Categories": domain.Categories,
				"Products": []any{}, "Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
	}

	category := strings.TrimSpace(c.Query("category"))
	if category != "" && !domain.ValidCategory(category) {
		log.Security(c, "validation.fail", map[string]any{"field": "category", "value": category})
		category = ""
	}

	products, err := h.Catalog.Search(q, category)
	if err != nil {
		log.Error(c, "home.list", err, nil)
		return fiber.ErrInternalServerError
	}

	return render(c, "home", fiber.Map{
		"Q": q, "Category": category, "Categories": domain.Categories,
		"Products": products, "Count": len(products),
	})
}
