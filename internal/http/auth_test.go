package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"ecofinds/internal/config"
	"ecofinds/internal/http/handlers"
	"ecofinds/internal/repos"
	"ecofinds/internal/services"
)

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// newTestApp builds the app the way main does, minus rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	deps := handlers.NewDeps(db, config.Config{DBDSN: ":memory:"}, authSvc)
	requireUser := handlers.RequireUser(authSvc)

	app.Get("/", deps.HomeHandler.Home)
	app.Get("/product/:id", deps.ProductHandler.Detail)
	app.Post("/products/new", requireUser, deps.ProductHandler.Create)
	app.Post("/products/:id/edit", requireUser, deps.ProductHandler.Update)
	app.Post("/products/:id/delete", requireUser, deps.ProductHandler.Delete)
	app.Get("/my-listings", requireUser, deps.ProductHandler.MyListings)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart/add/:id", deps.CartHandler.Add)
	app.Post("/cart/remove/:id", deps.CartHandler.Remove)
	app.Post("/checkout", requireUser, deps.OrderHandler.Place)
	app.Get("/order/:id", requireUser, deps.OrderHandler.View)
	app.Get("/orders", requireUser, deps.OrderHandler.History)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)

	return app, db, authSvc
}

// postForm sends an urlencoded POST with the csrf token and optional sid.
func postForm(t *testing.T, app *fiber.App, path, csrfTok, sid string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", csrfTok)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func TestSignupThenLogin(t *testing.T) {
	app, db, _ := newTestApp(t)
	tok := csrfToken(t, app)

	resp := postForm(t, app, "/signup", tok, "", url.Values{
		"name":     {"Casey"},
		"email":    {"casey@example.com"},
		"password": {"Secret123!"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("signup: want 302, got %d", resp.StatusCode)
	}

	// Stored hash is not the plaintext
	var hash string
	if err := db.Get(&hash, `SELECT password_hash FROM users WHERE email='casey@example.com'`); err != nil {
		t.Fatalf("hash lookup: %v", err)
	}
	if strings.Contains(hash, "Secret123!") || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash: %s", hash)
	}

	// Duplicate signup is rejected
	resp = postForm(t, app, "/signup", tok, "", url.Values{
		"name":     {"Casey Again"},
		"email":    {"casey@example.com"},
		"password": {"Secret123!"},
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup: want 409, got %d", resp.StatusCode)
	}

	// Wrong password fails with the generic 401
	resp = postForm(t, app, "/login", tok, "", url.Values{
		"email":    {"casey@example.com"},
		"password": {"wrongpass!"},
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login: want 401, got %d", resp.StatusCode)
	}

	resp = postForm(t, app, "/login", tok, "", url.Values{
		"email":    {"casey@example.com"},
		"password": {"Secret123!"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login: want 302, got %d", resp.StatusCode)
	}
}

func TestCheckoutRequiresLogin(t *testing.T) {
	app, _, _ := newTestApp(t)
	tok := csrfToken(t, app)

	resp := postForm(t, app, "/checkout", tok, "", url.Values{})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("want redirect to /login, got %q", loc)
	}
}
