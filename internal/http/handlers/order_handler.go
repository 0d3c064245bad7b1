package handlers

import (
	"errors"

	"ecofinds/internal/log"
	"ecofinds/internal/repos"
	"ecofinds/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
}

// Review shows the cart one last time before the order is placed.
func (h *OrderHandler) Review(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		log.Error(c, "checkout.load", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u := currentUser(c)

	order, err := h.Checkout.Checkout(sid, u.ID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			log.Info(c, "checkout.empty", nil)
			setFlash(c, "Your cart is empty.")
			return c.Redirect("/cart")
		}
		log.Error(c, "checkout.error", err, nil)
		return fiber.ErrInternalServerError
	}

	log.Audit(c, "order.place", map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
		"lines":    len(order.Items),
	})
	setFlash(c, "Order placed successfully!")
	return c.Redirect("/order/" + order.ID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	oid := c.Params("id")

	order, err := h.Orders.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	// Render not-found rather than forbidden so foreign order ids leak nothing
	if order.UserID != u.ID {
		log.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	return render(c, "order", fiber.Map{"Order": order})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Orders.ListByUser(u.ID)
	if err != nil {
		log.Error(c, "orders.history.fail", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "orders", fiber.Map{"Orders": orders})
}
