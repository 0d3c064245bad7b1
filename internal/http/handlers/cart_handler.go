package handlers

import (
	"errors"

	"ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		log.Error(c, "cart.view.error", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(sid, productID, qty); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
		}
		log.Error(c, "cart.add.error", err, nil)
		return fiber.ErrInternalServerError
	}

	log.Info(c, "cart.add", map[string]any{"product_id": productID, "qty": qty})
	setFlash(c, "Added to cart.")
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		log.Error(c, "cart.remove.error", err, nil)
		return fiber.ErrInternalServerError
	}
	setFlash(c, "Removed from cart.")
	return c.Redirect("/cart")
}
