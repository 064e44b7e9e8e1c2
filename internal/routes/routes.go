package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/itamarben/shul-backend/internal/config"
	"github.com/itamarben/shul-backend/internal/handlers"
	"github.com/itamarben/shul-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	rosterHandler *handlers.RosterHandler,
	torahHandler *handlers.TorahHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Signup probes — public, so they get the strict limiter below too.
	// Returned details never include the code itself.
	strict := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Get("/check-user/:first/:last/:code?", strict, authHandler.CheckUser)
	api.Get("/check-code/:code", strict, authHandler.CheckCode)

	// Auth — public, with the stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so the public routes above stay unaffected
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Put("/auth/account", middleware.JWTProtected(cfg), authHandler.UpdateAccount)

	// Profiles — everything behind JWT; per-target visibility is enforced
	// inside the handler
	profiles := api.Group("/profiles", middleware.JWTProtected(cfg))
	profiles.Get("/", profileHandler.List)
	profiles.Get("/me", profileHandler.Me)
	profiles.Get("/:id", profileHandler.Get)
	profiles.Put("/:id", profileHandler.Update)
	profiles.Get("/:id/spouse", profileHandler.ListSpouse)
	profiles.Post("/:id/spouse", profileHandler.CreateSpouse)
	profiles.Put("/:id/spouse/:spouseId", profileHandler.AssociateSpouse)
	profiles.Get("/:id/children", profileHandler.ListChildren)
	profiles.Post("/:id/children", profileHandler.CreateChild)
	profiles.Post("/:id/children/:childId/associate", profileHandler.AssociateChild)
	profiles.Get("/:id/parents", profileHandler.ListParents)
	profiles.Post("/:id/parents", profileHandler.CreateParent)
	profiles.Get("/:id/families", profileHandler.ListFamilies)

	// Torah readings & shabbatot — read endpoints for members
	api.Get("/parashot", middleware.JWTProtected(cfg), torahHandler.ListParashot)
	api.Get("/parashot/:parashaId/segments", middleware.JWTProtected(cfg), torahHandler.ListSegments)
	api.Get("/shabbatot", middleware.JWTProtected(cfg), rosterHandler.ListShabbatot)
	api.Get("/shabbatot/:shabbatId/rosters", middleware.JWTProtected(cfg), rosterHandler.ListRosters)
	api.Get("/duties", middleware.JWTProtected(cfg), rosterHandler.ListDuties)

	// Assignments — members answer their own offers
	api.Get("/assignments", middleware.JWTProtected(cfg), rosterHandler.MyAssignments)
	api.Put("/assignments/:assignmentId", middleware.JWTProtected(cfg), rosterHandler.SetStatus)

	// Gabbai panel (protected + gabbai required)
	gabbai := api.Group("/gabbai", middleware.JWTProtected(cfg), middleware.GabbaiRequired(db, cfg))
	gabbai.Post("/shabbatot", rosterHandler.CreateShabbat)
	gabbai.Post("/rosters", rosterHandler.CreateRoster)
	gabbai.Post("/rosters/:rosterId/assignments", rosterHandler.Assign)
	gabbai.Post("/parashot", torahHandler.CreateParasha)
	gabbai.Post("/segments", torahHandler.CreateSegment)
	gabbai.Get("/settings", settingsHandler.GetSettings)
	gabbai.Put("/settings/:key", settingsHandler.SetSetting)
	gabbai.Delete("/settings/:key", settingsHandler.DeleteSetting)
}
