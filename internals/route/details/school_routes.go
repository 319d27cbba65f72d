// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	yearRoute "sekolahku_backend/internals/features/school/academic_years/route"
	classRoute "sekolahku_backend/internals/features/school/classes/route"
	sectionRoute "sekolahku_backend/internals/features/school/sections/route"
)

// SchoolAdminRoutes: lifecycle tahun ajaran + section (khusus admin sekolah).
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	yearRoute.AcademicYearAdminRoutes(r, db)
	sectionRoute.SectionAdminRoutes(r, db)
	classRoute.ClassAllRoutes(r, db)
}

// SchoolUserRoutes: read-only untuk user login biasa.
func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	classRoute.ClassAllRoutes(r, db)
}
