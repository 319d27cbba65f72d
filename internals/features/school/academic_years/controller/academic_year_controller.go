// file: internals/features/school/academic_years/controller/academic_year_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/school/academic_years/dto"
	model "sekolahku_backend/internals/features/school/academic_years/model"
	registry "sekolahku_backend/internals/features/school/academic_years/registry"
	service "sekolahku_backend/internals/features/school/academic_years/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type AcademicYearController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.TransitionService
}

func NewAcademicYearController(db *gorm.DB, v *validator.Validate) *AcademicYearController {
	if v == nil {
		v = validator.New()
	}
	return &AcademicYearController{
		DB:        db,
		Validator: v,
		Service:   service.NewTransitionService(db),
	}
}

/* ============================================
   RESP/ERR helpers
============================================ */

func httpErr(c *fiber.Ctx, code int, msg string) error {
	return helper.JsonError(c, code, msg)
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

// loadRegistry memuat snapshot semua tahun ajaran sekolah ke registry.
func loadRegistry(db *gorm.DB, c *fiber.Ctx, schoolID uuid.UUID) (*registry.Registry, error) {
	var years []model.AcademicYearModel
	if err := db.WithContext(c.Context()).
		Where("academic_year_school_id = ?", schoolID).
		Find(&years).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil tahun ajaran")
	}
	reg := registry.New()
	if err := reg.Load(years); err != nil {
		return nil, err
	}
	return reg, nil
}

func registryToDTO(reg *registry.Registry) dto.RegistryDTO {
	out := dto.RegistryDTO{
		Planned:  dto.FromModels(reg.Planned()),
		Archived: dto.FromModels(reg.Archived()),
	}
	if cur := reg.Current(); cur != nil {
		resp := dto.FromModel(*cur)
		out.Current = &resp
	}
	return out
}

/* ============================================
   LIST (snapshot registry)
   GET /:school_id/academic-years
============================================ */

func (ctl *AcademicYearController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reg, err := loadRegistry(ctl.DB, c, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", registryToDTO(reg))
}

/* ============================================
   SUGGEST LABEL
   GET /:school_id/academic-years/suggest-label
============================================ */

func (ctl *AcademicYearController) SuggestLabel(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reg, err := loadRegistry(ctl.DB, c, schoolID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	label := registry.SuggestNextLabel(reg.Current(), time.Now())
	return helper.JsonOK(c, "OK", fiber.Map{"academic_year_label": label})
}

/* ============================================
   CREATE
   POST /:school_id/academic-years
============================================ */

func (ctl *AcademicYearController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var p dto.AcademicYearCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if !p.AcademicYearEndDate.After(p.AcademicYearStartDate) {
		return httpErr(c, fiber.StatusBadRequest, "Tanggal akhir harus > tanggal mulai")
	}

	res, err := ctl.Service.CreateYear(c.UserContext(), schoolID, &p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Berhasil membuat tahun ajaran", dto.CreateResultDTO{
		AcademicYear:    dto.FromModel(*res.Year),
		CreatedSections: res.CreatedSections,
		DroppedSections: res.Dropped,
		CreatedClasses:  res.CreatedClasses,
	})
}

/* ============================================
   UPDATE (field + delta section)
   PUT /:school_id/academic-years/:id
============================================ */

func (ctl *AcademicYearController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	yearID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var p dto.AcademicYearUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	res, err := ctl.Service.UpdateYear(c.UserContext(), schoolID, yearID, &p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "Berhasil memperbarui tahun ajaran", fiber.Map{
		"academic_year":    dto.FromModel(*res.Year),
		"sections_added":   res.Diff.Added,
		"sections_removed": res.Diff.Removed,
	})
}
