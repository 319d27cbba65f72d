// file: internals/features/school/academic_years/controller/academic_year_transition_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "sekolahku_backend/internals/features/school/academic_years/dto"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

func (ctl *AcademicYearController) scopeAndYearID(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	yearID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}
	return schoolID, yearID, nil
}

/* ============================================
   ACTIVATE (planned → active)
   POST /:school_id/academic-years/:id/activate
============================================ */

func (ctl *AcademicYearController) Activate(c *fiber.Ctx) error {
	schoolID, yearID, err := ctl.scopeAndYearID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ent, err := ctl.Service.Activate(c.UserContext(), schoolID, yearID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Tahun ajaran diaktifkan", dto.FromModel(*ent))
}

/* ============================================
   ARCHIVE (active → archived) + cascade
   POST /:school_id/academic-years/:id/archive
============================================ */

func (ctl *AcademicYearController) Archive(c *fiber.Ctx) error {
	schoolID, yearID, err := ctl.scopeAndYearID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := ctl.Service.Archive(c.UserContext(), schoolID, yearID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	body := fiber.Map{
		"academic_year":    dto.FromModel(*res.Year),
		"archived_classes": res.ArchivedClasses,
	}
	if res.AutoActivated != nil {
		resp := dto.FromModel(*res.AutoActivated)
		body["auto_activated"] = resp
	}
	return helper.JsonUpdated(c, "Tahun ajaran diarsipkan", body)
}

/* ============================================
   REACTIVATE (archived → planned)
   POST /:school_id/academic-years/:id/reactivate
============================================ */

func (ctl *AcademicYearController) Reactivate(c *fiber.Ctx) error {
	schoolID, yearID, err := ctl.scopeAndYearID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ent, err := ctl.Service.Reactivate(c.UserContext(), schoolID, yearID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Tahun ajaran dikembalikan ke planned", dto.FromModel(*ent))
}
