// file: internals/features/school/sections/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	secCtl "sekolahku_backend/internals/features/school/sections/controller"
)

func SectionAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := secCtl.NewSectionController(db, nil)

	api.Get("/sections", ctl.List)
	api.Get("/sections/unused-letters", ctl.UnusedLetters)
	api.Post("/sections", ctl.Create)
}
