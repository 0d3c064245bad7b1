package handlers

import (
	"ecofinds/internal/config"
	"ecofinds/internal/repos"
	"ecofinds/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	HomeHandler      *HomeHandler
	ProductHandler   *ProductHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	FavoriteHandler  *FavoriteHandler
	DashboardHandler *DashboardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	favRepo := repos.NewFavoriteRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, orderRepo)
	favSvc := services.NewFavoriteService(favRepo)

	return &Deps{
		HomeHandler:      &HomeHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Cart: cartSvc, Checkout: checkoutSvc, Orders: orderRepo},
		FavoriteHandler:  &FavoriteHandler{Fav: favSvc},
		DashboardHandler: &DashboardHandler{Auth: auth, Prods: prodRepo, Orders: orderRepo, Cart: cartSvc},
	}
}
