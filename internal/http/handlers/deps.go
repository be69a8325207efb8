package handlers

import (
	"shopfront/internal/events"
	"shopfront/internal/kv"
	"shopfront/internal/metrics"
	"shopfront/internal/repos"
	"shopfront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Bus   *events.Bus
	Cart  *services.CartService
	Badge *services.BadgeCounter

	ProductHandler   *ProductHandler
	CartHandler      *CartHandler
	FavoritesHandler *FavoritesHandler
	CheckoutHandler  *CheckoutHandler
	OrderHandler     *OrderHandler
	AccountHandler   *AccountHandler

	// LoginGuard, when set, runs in front of the login route.
	LoginGuard fiber.Handler
}

func NewDeps(st kv.Store, catalog services.Catalog, bus *events.Bus, m *metrics.Registry) *Deps {
	cartRepo := repos.NewCartRepo(st)
	orderRepo := repos.NewOrderRepo(st)

	catalogSvc := services.NewCatalogService(catalog)
	cartSvc := services.NewCartService(cartRepo, bus, m)
	favSvc := services.NewFavoritesService(repos.NewFavoritesRepo(st), bus)
	orderSvc := services.NewOrderService(orderRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, repos.NewAddressRepo(st), orderSvc, cartSvc, m)
	accountSvc := services.NewAccountService(repos.NewUserRepo(st))
	badge := services.NewBadgeCounter(bus, 0)

	return &Deps{
		Bus:              bus,
		Cart:             cartSvc,
		Badge:            badge,
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc, Counter: badge},
		FavoritesHandler: &FavoritesHandler{Favs: favSvc},
		CheckoutHandler:  &CheckoutHandler{Checkout: checkoutSvc},
		OrderHandler:     &OrderHandler{Orders: orderSvc},
		AccountHandler:   &AccountHandler{Accounts: accountSvc},
	}
}

// Mount registers the JSON API under /api/v1 and the receipt page.
func (d *Deps) Mount(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/products", d.ProductHandler.List)
	api.Get("/categories", d.ProductHandler.Categories)

	api.Get("/cart", d.CartHandler.View)
	api.Get("/cart/badge", d.CartHandler.Badge)
	api.Post("/cart/lines", d.CartHandler.Add)
	api.Put("/cart/lines/:id", d.CartHandler.Update)
	api.Delete("/cart/lines/:id", d.CartHandler.Remove)

	api.Get("/favorites", d.FavoritesHandler.List)
	api.Post("/favorites", d.FavoritesHandler.Add)
	api.Post("/favorites/toggle", d.FavoritesHandler.Toggle)
	api.Get("/favorites/:id", d.FavoritesHandler.Check)
	api.Delete("/favorites/:id", d.FavoritesHandler.Remove)

	api.Post("/checkout", d.CheckoutHandler.Begin)
	api.Get("/checkout", d.CheckoutHandler.View)
	api.Put("/checkout/address", d.CheckoutHandler.SaveAddress)
	api.Put("/checkout/payment", d.CheckoutHandler.SelectPayment)
	api.Post("/checkout/lines/:index", d.CheckoutHandler.UpdateLine)
	api.Post("/checkout/confirm", d.CheckoutHandler.Confirm)

	api.Get("/orders", d.OrderHandler.History)
	api.Delete("/orders/:id", d.OrderHandler.Delete)
	api.Delete("/orders", d.OrderHandler.Clear)

	api.Post("/account/register", d.AccountHandler.Register)
	if d.LoginGuard != nil {
		api.Post("/account/login", d.LoginGuard, d.AccountHandler.Login)
	} else {
		api.Post("/account/login", d.AccountHandler.Login)
	}
	api.Post("/account/reset", d.AccountHandler.Reset)
	api.Get("/account/remembered", d.AccountHandler.Remembered)

	app.Get("/orders/:id/receipt", d.OrderHandler.Receipt)
}
