// file: internals/features/school/academic_years/model/academic_year_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status lifecycle tahun ajaran.
const (
	AcademicYearStatusPlanned  = "planned"
	AcademicYearStatusActive   = "active"
	AcademicYearStatusArchived = "archived"
)

type AcademicYearModel struct {
	// ============ PK & Tenant ============
	AcademicYearID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:academic_year_id" json:"academic_year_id"`
	AcademicYearSchoolID uuid.UUID `gorm:"type:uuid;not null;column:academic_year_school_id;uniqueIndex:uq_academic_years_school_label,where:academic_year_deleted_at IS NULL;uniqueIndex:uq_academic_years_school_active,where:academic_year_status = 'active' AND academic_year_deleted_at IS NULL" json:"academic_year_school_id"`

	// ============ Identitas ============
	// Example label: "2026/2027"
	AcademicYearLabel string `gorm:"type:varchar(9);not null;column:academic_year_label;uniqueIndex:uq_academic_years_school_label,where:academic_year_deleted_at IS NULL" json:"academic_year_label"`

	AcademicYearStartDate time.Time `gorm:"type:timestamptz;not null;column:academic_year_start_date" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"type:timestamptz;not null;column:academic_year_end_date" json:"academic_year_end_date"`

	// planned | active | archived.
	// Index parsial uq_academic_years_school_active (di kolom school id):
	// paling banyak satu baris active per sekolah — guard terakhir untuk
	// race aktivasi lintas sesi.
	AcademicYearStatus string `gorm:"type:varchar(16);not null;default:'planned';column:academic_year_status" json:"academic_year_status"`

	AcademicYearDescription *string `gorm:"type:text;column:academic_year_description" json:"academic_year_description,omitempty"`

	// JSONB extra stats (optional / flexible)
	AcademicYearStats datatypes.JSON `gorm:"type:jsonb;column:academic_year_stats" json:"academic_year_stats,omitempty"`

	// ============ Audit / Soft delete ============
	AcademicYearCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:academic_year_created_at" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:academic_year_updated_at" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"academic_year_deleted_at,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

// ============ Hooks: validation & light normalization ============
func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	// Mirror CHECK: end > start
	if !m.AcademicYearEndDate.After(m.AcademicYearStartDate) {
		return errors.New("academic_year_end_date must be > academic_year_start_date")
	}

	m.AcademicYearLabel = strings.TrimSpace(m.AcademicYearLabel)

	switch m.AcademicYearStatus {
	case AcademicYearStatusPlanned, AcademicYearStatusActive, AcademicYearStatusArchived:
	default:
		return errors.New("academic_year_status tidak dikenal")
	}

	if m.AcademicYearDescription != nil {
		d := strings.TrimSpace(*m.AcademicYearDescription)
		if d == "" {
			m.AcademicYearDescription = nil
		} else {
			m.AcademicYearDescription = &d
		}
	}

	return nil
}
