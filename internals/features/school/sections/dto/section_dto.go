// file: internals/features/school/sections/dto/section_dto.go
package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	"sekolahku_backend/internals/features/school/sections/model"
)

// =======================
// Request DTO
// =======================

type SectionCreateDTO struct {
	SectionName        string `json:"section_name"         validate:"required,len=1"`
	SectionMaxStudents int    `json:"section_max_students" validate:"required,min=15,max=35"`
	// pointer: bedakan "tidak dikirim" vs "false"
	SectionIsActive *bool `json:"section_is_active,omitempty"`
}

func (p *SectionCreateDTO) Normalize() {
	p.SectionName = strings.ToUpper(strings.TrimSpace(p.SectionName))
}

// ValidateCapacity: batas atas tergantung jenjang sekolah (SMP 30, lainnya 35).
func (p *SectionCreateDTO) ValidateCapacity(schoolLevel string) error {
	upper := schoolModel.MaxStudentsUpperBound(schoolLevel)
	if p.SectionMaxStudents < schoolModel.MaxStudentsLowerBound || p.SectionMaxStudents > upper {
		return fiber.NewError(fiber.StatusBadRequest,
			"Kapasitas section harus antara 15 dan "+strconv.Itoa(upper))
	}
	return nil
}

func (p *SectionCreateDTO) ToModel(schoolID uuid.UUID) model.SectionModel {
	isActive := true
	if p.SectionIsActive != nil {
		isActive = *p.SectionIsActive
	}
	return model.SectionModel{
		SectionSchoolID:    schoolID,
		SectionName:        p.SectionName,
		SectionMaxStudents: p.SectionMaxStudents,
		SectionIsActive:    isActive,
	}
}

// =======================
// Response DTO
// =======================

type SectionResponseDTO struct {
	SectionID          uuid.UUID `json:"section_id"`
	SectionSchoolID    uuid.UUID `json:"section_school_id"`
	SectionName        string    `json:"section_name"`
	SectionMaxStudents int       `json:"section_max_students"`
	SectionIsActive    bool      `json:"section_is_active"`
	SectionYearLabels  []string  `json:"section_year_labels,omitempty"`
	SectionCreatedAt   time.Time `json:"section_created_at"`
	SectionUpdatedAt   time.Time `json:"section_updated_at"`
}

// Mapper entity -> response
func FromModel(ent model.SectionModel) SectionResponseDTO {
	return SectionResponseDTO{
		SectionID:          ent.SectionID,
		SectionSchoolID:    ent.SectionSchoolID,
		SectionName:        ent.SectionName,
		SectionMaxStudents: ent.SectionMaxStudents,
		SectionIsActive:    ent.SectionIsActive,
		SectionYearLabels:  ent.SectionYearLabels,
		SectionCreatedAt:   ent.SectionCreatedAt,
		SectionUpdatedAt:   ent.SectionUpdatedAt,
	}
}

func FromModels(list []model.SectionModel) []SectionResponseDTO {
	out := make([]SectionResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
