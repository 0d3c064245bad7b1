package handlers

import (
	"errors"

	"ecofinds/internal/domain"
	"ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}

func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "product_form", fiber.Map{
		"Action": "/products/new", "Categories": domain.Categories, "P": domain.Product{Category: "Other"},
	})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	in, errMsg := listingInput(c)
	if errMsg != "" {
		c.Status(fiber.StatusBadRequest)
		return render(c, "product_form", fiber.Map{
			"Action": "/products/new", "Categories": domain.Categories, "P": domain.Product{}, "Err": errMsg,
		})
	}

	p, err := h.Catalog.Create(u.ID, in)
	if err != nil {
		if msg, ok := listingErrMsg(err); ok {
			c.Status(fiber.StatusBadRequest)
			return render(c, "product_form", fiber.Map{
				"Action": "/products/new", "Categories": domain.Categories, "P": domain.Product{}, "Err": msg,
			})
		}
		log.Error(c, "listing.create.error", err, nil)
		return fiber.ErrInternalServerError
	}

	log.Audit(c, "listing.create", map[string]any{"product_id": p.ID})
	setFlash(c, "Listing created.")
	return c.Redirect("/my-listings")
}

func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	u := currentUser(c)
	p, err := h.Catalog.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if p.OwnerID != u.ID {
		log.Security(c, "access.denied.listing", map[string]any{"product_id": p.ID})
		setFlash(c, "You can only edit your own listings.")
		return c.Redirect("/my-listings")
	}
	return render(c, "product_form", fiber.Map{
		"Action": "/products/" + p.ID + "/edit", "Categories": domain.Categories, "P": p,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	id := c.Params("id")
	in, errMsg := listingInput(c)
	if errMsg == "" {
		if err := h.Catalog.Update(id, u.ID, in); err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
			case errors.Is(err, services.ErrNotOwner):
				log.Security(c, "access.denied.listing", map[string]any{"product_id": id})
				setFlash(c, "You can only edit your own listings.")
				return c.Redirect("/my-listings")
			default:
				if msg, ok := listingErrMsg(err); ok {
					errMsg = msg
				} else {
					log.Error(c, "listing.update.error", err, nil)
					return fiber.ErrInternalServerError
				}
			}
		}
	}
	if errMsg != "" {
		c.Status(fiber.StatusBadRequest)
		return render(c, "product_form", fiber.Map{
			"Action": "/products/" + id + "/edit", "Categories": domain.Categories, "P": domain.Product{ID: id}, "Err": errMsg,
		})
	}

	log.Audit(c, "listing.update", map[string]any{"product_id": id})
	setFlash(c, "Listing updated.")
	return c.Redirect("/my-listings")
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id := c.Params("id")
	if err := h.Catalog.Delete(id, u.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
		case errors.Is(err, services.ErrNotOwner):
			log.Security(c, "access.denied.listing", map[string]any{"product_id": id})
			setFlash(c, "You can only delete your own listings.")
			return c.Redirect("/my-listings")
		default:
			log.Error(c, "listing.delete.error", err, nil)
			return fiber.ErrInternalServerError
		}
	}

	log.Audit(c, "listing.delete", map[string]any{"product_id": id})
	setFlash(c, "Listing deleted.")
	return c.Redirect("/my-listings")
}

func (h *ProductHandler) MyListings(c *fiber.Ctx) error {
	u := currentUser(c)
	listings, err := h.Catalog.ListMine(u.ID)
	if err != nil {
		log.Error(c, "listing.mine.error", err, nil)
		return fiber.ErrInternalServerError
	}
	return render(c, "my_listings", fiber.Map{"Listings": listings})
}

// listingInput reads the shared create/edit form fields. The returned message
// is empty when the input is well-formed.
func listingInput(c *fiber.Ctx) (services.ListingInput, string) {
	title, ok := validate.Title(c.FormValue("title"))
	if !ok {
		return services.ListingInput{}, "Product title is required."
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return services.ListingInput{}, "Price must be a non-negative number."
	}
	return services.ListingInput{
		Title:       title,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Price:       price,
		ImagePath:   c.FormValue("image"),
	}, ""
}

func listingErrMsg(err error) (string, bool) {
	switch {
	case errors.Is(err, services.ErrMissingTitle):
		return "Product title is required.", true
	case errors.Is(err, services.ErrInvalidCategory):
		return "Pick one of the listed categories.", true
	}
	return "", false
}
