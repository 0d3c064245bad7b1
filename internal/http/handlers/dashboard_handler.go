package handlers

import (
	"errors"

	"ecofinds/internal/log"
	"ecofinds/internal/repos"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Auth   *services.AuthService
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Cart   *services.CartService
}

func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	u := currentUser(c)
	sid := ensureSID(c)

	listings, err := h.Prods.CountByOwner(u.ID)
	if err != nil {
		log.Error(c, "dashboard.error", err, nil)
		return fiber.ErrInternalServerError
	}
	orders, err := h.Orders.CountByUser(u.ID)
	if err != nil {
		log.Error(c, "dashboard.error", err, nil)
		return fiber.ErrInternalServerError
	}
	cartCount, err := h.Cart.Count(sid)
	if err != nil {
		log.Error(c, "dashboard.error", err, nil)
		return fiber.ErrInternalServerError
	}

	return render(c, "dashboard", fiber.Map{
		"ListingsCount": listings,
		"OrdersCount":   orders,
		"CartCount":     cartCount,
	})
}

// UpdateProfile changes the display name shown on listings and orders.
func (h *DashboardHandler) UpdateProfile(c *fiber.Ctx) error {
	u := currentUser(c)
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		setFlash(c, "Display name is required.")
		return c.Redirect("/dashboard")
	}
	if err := h.Auth.UpdateName(u.ID, name); err != nil {
		if errors.Is(err, services.ErrEmptyName) {
			setFlash(c, "Display name is required.")
			return c.Redirect("/dashboard")
		}
		log.Error(c, "profile.update.error", err, nil)
		return fiber.ErrInternalServerError
	}
	log.Audit(c, "profile.update", map[string]any{"user_id": u.ID})
	setFlash(c, "Profile updated.")
	return c.Redirect("/dashboard")
}
