// file: internals/features/school/sections/model/section_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SectionModel merepresentasikan tabel `sections`.
// Nama section satu huruf kapital (A..Z), unik per sekolah.
type SectionModel struct {
	// PK & tenant
	SectionID       uuid.UUID `json:"section_id"        gorm:"column:section_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SectionSchoolID uuid.UUID `json:"section_school_id" gorm:"column:section_school_id;type:uuid;not null;uniqueIndex:uq_sections_school_name,where:section_deleted_at IS NULL"`

	// Identitas
	SectionName string `json:"section_name" gorm:"column:section_name;type:varchar(1);not null;uniqueIndex:uq_sections_school_name,where:section_deleted_at IS NULL"`

	// Kapasitas: 15..30 (SMP) / 15..35 (lainnya); dicek di DTO + service
	SectionMaxStudents int  `json:"section_max_students" gorm:"column:section_max_students;not null;default:30"`
	SectionIsActive    bool `json:"section_is_active"    gorm:"column:section_is_active;not null;default:true"`

	// Cache label tahun ajaran yang punya activation record untuk section ini
	SectionYearLabels pq.StringArray `json:"section_year_labels,omitempty" gorm:"column:section_year_labels;type:text[]"`

	SectionCreatedAt time.Time      `json:"section_created_at" gorm:"column:section_created_at;type:timestamptz;not null;autoCreateTime"`
	SectionUpdatedAt time.Time      `json:"section_updated_at" gorm:"column:section_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SectionDeletedAt gorm.DeletedAt `json:"section_deleted_at,omitempty" gorm:"column:section_deleted_at;type:timestamptz;index"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeSave(tx *gorm.DB) error {
	m.SectionName = strings.ToUpper(strings.TrimSpace(m.SectionName))
	if len(m.SectionName) != 1 || m.SectionName[0] < 'A' || m.SectionName[0] > 'Z' {
		return errors.New("section_name harus satu huruf A-Z")
	}
	return nil
}
