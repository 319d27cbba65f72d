// file: internals/features/school/sections/model/section_year_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SectionYearStatusActive   = "active"
	SectionYearStatusArchived = "archived"
)

// SectionYearModel merepresentasikan tabel `section_academic_years`:
// activation record section untuk satu tahun ajaran.
type SectionYearModel struct {
	SectionYearID       uuid.UUID `json:"section_year_id"        gorm:"column:section_year_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SectionYearSchoolID uuid.UUID `json:"section_year_school_id" gorm:"column:section_year_school_id;type:uuid;not null"`

	SectionYearSectionID      uuid.UUID `json:"section_year_section_id"       gorm:"column:section_year_section_id;type:uuid;not null;uniqueIndex:uq_section_years_pair,where:section_year_deleted_at IS NULL"`
	SectionYearAcademicYearID uuid.UUID `json:"section_year_academic_year_id" gorm:"column:section_year_academic_year_id;type:uuid;not null;uniqueIndex:uq_section_years_pair,where:section_year_deleted_at IS NULL"`

	SectionYearStatus string `json:"section_year_status" gorm:"column:section_year_status;type:varchar(16);not null;default:'active'"`

	SectionYearCreatedAt time.Time      `json:"section_year_created_at" gorm:"column:section_year_created_at;type:timestamptz;not null;autoCreateTime"`
	SectionYearUpdatedAt time.Time      `json:"section_year_updated_at" gorm:"column:section_year_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SectionYearDeletedAt gorm.DeletedAt `json:"section_year_deleted_at,omitempty" gorm:"column:section_year_deleted_at;type:timestamptz;index"`
}

func (SectionYearModel) TableName() string { return "section_academic_years" }
