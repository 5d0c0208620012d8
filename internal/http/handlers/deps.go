package handlers

import (
	"robomart/internal/cart"
	"robomart/internal/config"
	applog "robomart/internal/log"
	"robomart/internal/repos"
	"robomart/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CourseHandler   *CourseHandler
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	TrackHandler    *TrackHandler
	AdminHandler    *AdminHandler
	AdminCatalog    *AdminCatalogHandler

	Settings *services.SettingsService
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	courseRepo := repos.NewCourseRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	addrRepo := repos.NewAddressRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, courseRepo)
	cartSvc := services.NewCartService(cart.NewSQLiteAdapter(db), prodRepo)
	settingsSvc := services.NewSettingsService(settingsRepo)
	trackingSvc := services.NewTrackingService(orderRepo)
	dashSvc := services.NewDashboardService(prodRepo, orderRepo)
	checkoutSvc := &services.CheckoutService{
		Carts:          cartSvc,
		Orders:         orderRepo,
		Addresses:      addrRepo,
		Settings:       settingsRepo,
		HomeState:      cfg.HomeState,
		FallbackNumber: cfg.WhatsAppNumber,
		OnAddressSaveFail: func(err error) {
			applog.Error(nil, "checkout.address.save", err, nil)
		},
	}

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc},
		CourseHandler:   &CourseHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Auth: auth},
		TrackHandler:    &TrackHandler{Tracking: trackingSvc},
		AdminHandler: &AdminHandler{
			Dash:     dashSvc,
			Orders:   orderRepo,
			Settings: settingsSvc,
			Users:    userRepo,
		},
		AdminCatalog: &AdminCatalogHandler{
			Prods:   prodRepo,
			Cats:    catRepo,
			Courses: courseRepo,
		},
		Settings: settingsSvc,
	}
}

// ensureSID guarantees a session cookie; the cart and login are keyed by it.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}
