// file: internals/features/school/academic_years/dto/academic_year_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/academic_years/model"
	"sekolahku_backend/internals/features/school/sections/allocator"
)

// =======================
// Request DTO
// =======================

// NewSectionDTO: usulan section pending di dalam create/update tahun ajaran.
type NewSectionDTO struct {
	Letter      string `json:"letter"       validate:"required,len=1"`
	MaxStudents int    `json:"max_students" validate:"required,min=15,max=35"`
}

type AcademicYearCreateDTO struct {
	AcademicYearLabel     string    `json:"academic_year_label"      validate:"required,len=9"`
	AcademicYearStartDate time.Time `json:"academic_year_start_date" validate:"required"`
	// gtfield agar sejalan dg DB CHECK (end > start)
	AcademicYearEndDate time.Time `json:"academic_year_end_date" validate:"required,gtfield=AcademicYearStartDate"`
	// planned (default) atau active; archived tidak boleh lewat create
	AcademicYearStatus      *string `json:"academic_year_status,omitempty" validate:"omitempty,oneof=planned active"`
	AcademicYearDescription *string `json:"academic_year_description,omitempty"`

	// Section real yang ikut diaktifkan untuk tahun ini (uuid.UUID sudah
	// tervalidasi saat unmarshal)
	SelectedSections []uuid.UUID `json:"selected_sections,omitempty"`
	// Section pending (belum ada di DB) — di-commit best-effort sebelum create
	NewSections []NewSectionDTO `json:"new_sections,omitempty" validate:"omitempty,dive"`
	// Buat rombel per section terpilih (kapasitas = max students section)
	CreateClasses bool `json:"create_classes"`
}

func (p *AcademicYearCreateDTO) Normalize() {
	p.AcademicYearLabel = strings.TrimSpace(p.AcademicYearLabel)
	for i := range p.NewSections {
		p.NewSections[i].Letter = strings.ToUpper(strings.TrimSpace(p.NewSections[i].Letter))
	}
}

func (p *AcademicYearCreateDTO) WantsActive() bool {
	return p.AcademicYearStatus != nil && *p.AcademicYearStatus == model.AcademicYearStatusActive
}

func (p *AcademicYearCreateDTO) ToModel(schoolID uuid.UUID) model.AcademicYearModel {
	status := model.AcademicYearStatusPlanned
	if p.AcademicYearStatus != nil {
		status = *p.AcademicYearStatus
	}
	return model.AcademicYearModel{
		AcademicYearSchoolID:    schoolID,
		AcademicYearLabel:       p.AcademicYearLabel,
		AcademicYearStartDate:   p.AcademicYearStartDate,
		AcademicYearEndDate:     p.AcademicYearEndDate,
		AcademicYearStatus:      status,
		AcademicYearDescription: p.AcademicYearDescription,
	}
}

// AcademicYearUpdateDTO: edit field + delta set section. BUKAN transisi
// status — status hanya berubah lewat endpoint activate/archive/reactivate.
type AcademicYearUpdateDTO struct {
	AcademicYearLabel       *string    `json:"academic_year_label,omitempty" validate:"omitempty,len=9"`
	AcademicYearStartDate   *time.Time `json:"academic_year_start_date,omitempty"`
	AcademicYearEndDate     *time.Time `json:"academic_year_end_date,omitempty"`
	AcademicYearDescription *string    `json:"academic_year_description,omitempty"`

	// Array pengganti utuh; diterjemahkan ke delta add/remove via selection.Diff
	SelectedSections *[]uuid.UUID `json:"selected_sections,omitempty"`
}

func (u *AcademicYearUpdateDTO) ApplyUpdates(ent *model.AcademicYearModel) {
	if u.AcademicYearLabel != nil {
		ent.AcademicYearLabel = strings.TrimSpace(*u.AcademicYearLabel)
	}
	if u.AcademicYearStartDate != nil {
		ent.AcademicYearStartDate = *u.AcademicYearStartDate
	}
	if u.AcademicYearEndDate != nil {
		ent.AcademicYearEndDate = *u.AcademicYearEndDate
	}
	if u.AcademicYearDescription != nil {
		d := strings.TrimSpace(*u.AcademicYearDescription)
		if d == "" {
			ent.AcademicYearDescription = nil
		} else {
			ent.AcademicYearDescription = &d
		}
	}
}

// =======================
// Response DTO
// =======================

type AcademicYearResponseDTO struct {
	AcademicYearID          uuid.UUID  `json:"academic_year_id"`
	AcademicYearSchoolID    uuid.UUID  `json:"academic_year_school_id"`
	AcademicYearLabel       string     `json:"academic_year_label"`
	AcademicYearStartDate   time.Time  `json:"academic_year_start_date"`
	AcademicYearEndDate     time.Time  `json:"academic_year_end_date"`
	AcademicYearStatus      string     `json:"academic_year_status"`
	AcademicYearDescription *string    `json:"academic_year_description,omitempty"`
	AcademicYearCreatedAt   time.Time  `json:"academic_year_created_at"`
	AcademicYearUpdatedAt   time.Time  `json:"academic_year_updated_at"`
}

// Mapper entity -> response
func FromModel(ent model.AcademicYearModel) AcademicYearResponseDTO {
	return AcademicYearResponseDTO{
		AcademicYearID:          ent.AcademicYearID,
		AcademicYearSchoolID:    ent.AcademicYearSchoolID,
		AcademicYearLabel:       ent.AcademicYearLabel,
		AcademicYearStartDate:   ent.AcademicYearStartDate,
		AcademicYearEndDate:     ent.AcademicYearEndDate,
		AcademicYearStatus:      ent.AcademicYearStatus,
		AcademicYearDescription: ent.AcademicYearDescription,
		AcademicYearCreatedAt:   ent.AcademicYearCreatedAt,
		AcademicYearUpdatedAt:   ent.AcademicYearUpdatedAt,
	}
}

func FromModels(list []model.AcademicYearModel) []AcademicYearResponseDTO {
	out := make([]AcademicYearResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}

// CreateResultDTO: hasil create tahun ajaran. Batch section pending bersifat
// best-effort, jadi bagian yang gagal dilaporkan per item, bukan jadi error.
type CreateResultDTO struct {
	AcademicYear    AcademicYearResponseDTO `json:"academic_year"`
	CreatedSections []uuid.UUID             `json:"created_sections,omitempty"`
	DroppedSections []allocator.BatchItem   `json:"dropped_sections,omitempty"`
	CreatedClasses  int                     `json:"created_classes"`
}

// RegistryDTO: snapshot registry untuk response list.
type RegistryDTO struct {
	Current  *AcademicYearResponseDTO  `json:"current,omitempty"`
	Planned  []AcademicYearResponseDTO `json:"planned"`
	Archived []AcademicYearResponseDTO `json:"archived"`
}
