// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolkuMiddleware "sekolahku_backend/internals/middlewares/auth_school"
	featuresMiddleware "sekolahku_backend/internals/middlewares/features"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u/:school_id",
		schoolkuMiddleware.AuthJWT(schoolkuMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		featuresMiddleware.UseSchoolScope(),
		featuresMiddleware.RequirePathScopeMatch(),
	)
	routeDetails.SchoolUserRoutes(private, db)

	// ===================== ADMIN (per school) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + Scope + RoleCheck)...")
	admin := app.Group("/api/a/:school_id",
		schoolkuMiddleware.AuthJWT(schoolkuMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		featuresMiddleware.UseSchoolScope(),
		featuresMiddleware.RequirePathScopeMatch(),
		featuresMiddleware.IsSchoolAdmin(),
	)
	routeDetails.SchoolAdminRoutes(admin, db)

	// ===================== UPTIME =====================
	app.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"uptime": time.Since(startTime).String()})
	})
}
