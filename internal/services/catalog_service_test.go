package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"ecofinds/internal/repos"
	"ecofinds/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return services.NewCatalogService(repos.NewProductRepo(db)), db
}

func productCount(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCreateRejectsInvalidCategory(t *testing.T) {
	catalog, db := newCatalog(t)
	before := productCount(t, db)

	_, err := catalog.Create("u-demo", services.ListingInput{
		Title: "Solar Charger", Category: "Gadgets", Price: 25,
	})
	if !errors.Is(err, services.ErrInvalidCategory) {
		t.Fatalf("want ErrInvalidCategory, got %v", err)
	}
	if productCount(t, db) != before {
		t.Fatal("row persisted despite invalid category")
	}
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	catalog, db := newCatalog(t)
	before := productCount(t, db)

	_, err := catalog.Create("u-demo", services.ListingInput{
		Title: "   ", Category: "Home", Price: 5,
	})
	if !errors.Is(err, services.ErrMissingTitle) {
		t.Fatalf("want ErrMissingTitle, got %v", err)
	}
	if productCount(t, db) != before {
		t.Fatal("row persisted despite missing title")
	}
}

func TestUpdateAndDeleteRequireOwner(t *testing.T) {
	catalog, db := newCatalog(t)
	auth := &services.AuthService{Users: repos.NewUserRepo(db)}

	intruder, err := auth.Register("sid-b", "b@example.com", "User B", "Secret123!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// p-bottle is seeded and owned by u-demo
	err = catalog.Update("p-bottle", intruder.ID, services.ListingInput{
		Title: "Hijacked", Category: "Other", Price: 0.01,
	})
	if !errors.Is(err, services.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner on update, got %v", err)
	}
	if err := catalog.Delete("p-bottle", intruder.ID); !errors.Is(err, services.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner on delete, got %v", err)
	}

	p, err := catalog.Get("p-bottle")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Title != "Reusable Water Bottle" || p.OwnerID != "u-demo" || p.Price != 14.50 {
		t.Fatalf("listing changed by non-owner: %+v", p)
	}

	// The owner may do both
	if err := catalog.Update("p-bottle", "u-demo", services.ListingInput{
		Title: "Reusable Water Bottle", Description: "Now 1L.", Category: "Outdoors", Price: 16,
	}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if err := catalog.Delete("p-bottle", "u-demo"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := catalog.Get("p-bottle"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestSearchFilters(t *testing.T) {
	catalog, _ := newCatalog(t)

	// Substring match is case-insensitive over title and description
	got, err := catalog.Search("BOTTLE", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Reusable Water Bottle" {
		t.Fatalf("text filter: %+v", got)
	}

	// Exact category match
	got, err = catalog.Search("", "Beauty")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Bamboo Toothbrush" {
		t.Fatalf("category filter: %+v", got)
	}

	// Both filters combine with AND
	got, err = catalog.Search("bottle", "Beauty")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("combined filter should exclude everything: %+v", got)
	}

	// No filters: everything, newest first
	got, err = catalog.Search("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 seeded listings, got %d", len(got))
	}
	if got[0].Title != "Organic Cotton Tote" {
		t.Fatalf("want newest first, got %q", got[0].Title)
	}
}

func TestListMine(t *testing.T) {
	catalog, db := newCatalog(t)
	auth := &services.AuthService{Users: repos.NewUserRepo(db)}

	seller, err := auth.Register("sid-s", "seller@example.com", "Seller", "Secret123!")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := catalog.Create(seller.ID, services.ListingInput{
		Title: "Compost Bin", Category: "Home", Price: 30,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := catalog.ListMine(seller.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].Title != "Compost Bin" {
		t.Fatalf("list mine: %+v", mine)
	}

	demo, err := catalog.ListMine("u-demo")
	if err != nil {
		t.Fatal(err)
	}
	if len(demo) != 3 {
		t.Fatalf("demo should still own the 3 seeded listings, got %d", len(demo))
	}
}
