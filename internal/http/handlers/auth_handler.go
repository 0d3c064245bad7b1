package handlers

import (
	"errors"
	"time"

	"ecofinds/internal/log"
	"ecofinds/internal/services"
	"ecofinds/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, okEmail := validate.Email(c.FormValue("email"))
	name, okName := validate.Name(c.FormValue("name"))
	pass := c.FormValue("password")

	// Re-prompt with the input discarded on any invalid field
	if !okEmail || !okName || !validate.Password(pass) {
		log.Security(c, "auth.signup.fail", map[string]any{"reason": "bad_input"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "signup", fiber.Map{
			"Err": "All fields are required (password at least 8 characters).",
		})
	}

	u, err := h.Auth.Register(sid, email, name, pass)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			log.Security(c, "auth.signup.fail", map[string]any{"email": email, "reason": "duplicate"})
			c.Status(fiber.StatusConflict)
			return render(c, "signup", fiber.Map{
				"Err": "Email already registered.",
			})
		}
		log.Error(c, "auth.signup.error", err, nil)
		return fiber.ErrInternalServerError
	}

	log.Audit(c, "auth.signup.success", map[string]any{"user_id": u.ID})
	setFlash(c, "Account created. Welcome!")
	return c.Redirect("/")
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	if !ok || pass == "" {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password"})
	}

	_, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		// Same message for unknown email and wrong password
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password"})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	setFlash(c, "Welcome back!")
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	setFlash(c, "You have been logged out.")
	return c.Redirect("/")
}
