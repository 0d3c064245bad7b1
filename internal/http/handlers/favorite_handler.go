package handlers

import (
	"ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	Fav *services.FavoriteService
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	items, err := h.Fav.List(sid)
	if err != nil {
		log.Error(c, "favorites.list.error", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "favorites", fiber.Map{"Items": items})
}

func (h *FavoriteHandler) Save(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := h.Fav.Save(sid, productID); err != nil {
		log.Error(c, "favorites.save.error", err, nil)
		return fiber.ErrInternalServerError
	}
	setFlash(c, "Saved for later.")
	return c.Redirect("/favorites")
}

func (h *FavoriteHandler) Unsave(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := h.Fav.Unsave(sid, productID); err != nil {
		log.Error(c, "favorites.unsave.error", err, nil)
		return fiber.ErrInternalServerError
	}
	return c.Redirect("/favorites")
}
