// file: internals/features/school/academic_years/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearCtl "sekolahku_backend/internals/features/school/academic_years/controller"
	"sekolahku_backend/internals/middlewares"
)

func AcademicYearAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := yearCtl.NewAcademicYearController(db, nil)

	api.Get("/academic-years", ctl.List)
	api.Get("/academic-years/suggest-label", ctl.SuggestLabel)
	api.Post("/academic-years", ctl.Create)
	api.Put("/academic-years/:id", ctl.Update)

	// transisi lifecycle: limiter lebih ketat (cascade arsip berat)
	transisi := api.Group("", middlewares.TransitionRateLimiter())
	transisi.Post("/academic-years/:id/activate", ctl.Activate)
	transisi.Post("/academic-years/:id/archive", ctl.Archive)
	transisi.Post("/academic-years/:id/reactivate", ctl.Reactivate)
}
