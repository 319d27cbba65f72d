// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/classes/dto"
	model "sekolahku_backend/internals/features/school/classes/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

/* ============================================
   LIST per tahun ajaran
   GET /:school_id/classes?academic_year=2026/2027
============================================ */

func (ctl *ClassController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 30, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.ClassModel{}).
		Where("class_school_id = ?", schoolID)
	if label := strings.TrimSpace(c.Query("academic_year")); label != "" {
		q = q.Where("class_academic_year_label = ?", label)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("class_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung rombel")
	}

	var list []model.ClassModel
	if err := q.Order("class_academic_year_label DESC, class_section_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil rombel")
	}

	return helper.JsonList(c, "OK", dto.FromModels(list),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
