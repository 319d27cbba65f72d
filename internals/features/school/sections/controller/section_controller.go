// file: internals/features/school/sections/controller/section_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	dto "sekolahku_backend/internals/features/school/sections/dto"
	model "sekolahku_backend/internals/features/school/sections/model"
	"sekolahku_backend/internals/features/school/sections/namespace"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type SectionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSectionController(db *gorm.DB, v *validator.Validate) *SectionController {
	if v == nil {
		v = validator.New()
	}
	return &SectionController{DB: db, Validator: v}
}

func (ctl *SectionController) existingNames(c *fiber.Ctx, schoolID any) ([]string, error) {
	var names []string
	if err := ctl.DB.WithContext(c.Context()).Model(&model.SectionModel{}).
		Where("section_school_id = ?", schoolID).
		Pluck("section_name", &names).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar section")
	}
	return names, nil
}

/* ============================================
   LIST
   GET /:school_id/sections
============================================ */

func (ctl *SectionController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 30, 100)

	var total int64
	q := ctl.DB.WithContext(c.Context()).Model(&model.SectionModel{}).
		Where("section_school_id = ?", schoolID)
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung section")
	}

	var list []model.SectionModel
	if err := q.Order("section_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil section")
	}

	return helper.JsonList(c, "OK", dto.FromModels(list),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ============================================
   UNUSED LETTERS
   GET /:school_id/sections/unused-letters
============================================ */

func (ctl *SectionController) UnusedLetters(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	names, err := ctl.existingNames(c, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"unused_letters": namespace.UnusedLetters(names),
	})
}

/* ============================================
   CREATE
   POST /:school_id/sections
============================================ */

func (ctl *SectionController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var p dto.SectionCreateDTO
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(&p); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	p.Normalize()

	// batas kapasitas tergantung jenjang sekolah
	var school schoolModel.SchoolModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("school_id = ?", schoolID).
		First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data sekolah")
	}
	if err := p.ValidateCapacity(school.SchoolLevel); err != nil {
		return helper.FromFiberError(c, err)
	}

	// namespace check sebelum insert; unique index jadi guard kedua
	names, err := ctl.existingNames(c, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := namespace.ValidateName(p.SectionName, names); err != nil {
		return helper.FromFiberError(c, err)
	}

	ent := p.ToModel(schoolID)
	if err := ctl.DB.WithContext(c.Context()).Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Nama section sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat section")
	}
	return helper.JsonCreated(c, "Berhasil membuat section", dto.FromModel(ent))
}
