// file: internals/features/school/classes/route/all_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtl "sekolahku_backend/internals/features/school/classes/controller"
)

func ClassAllRoutes(api fiber.Router, db *gorm.DB) {
	ctl := classCtl.NewClassController(db)

	api.Get("/classes", ctl.List)
}
