// file: internals/features/school/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClassStatusActive   = "active"
	ClassStatusArchived = "archived"
)

// ClassModel merepresentasikan tabel `classes`.
// Rombel turunan dari aktivasi section pada satu tahun ajaran; dibuat saat
// create tahun ajaran (bila diminta), diarsipkan oleh cascade arsip tahun.
type ClassModel struct {
	// PK & tenant
	ClassID       uuid.UUID `json:"class_id"        gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassSchoolID uuid.UUID `json:"class_school_id" gorm:"column:class_school_id;type:uuid;not null"`

	// Relasi sumber
	ClassAcademicYearID uuid.UUID `json:"class_academic_year_id" gorm:"column:class_academic_year_id;type:uuid;not null;index"`
	ClassSectionID      uuid.UUID `json:"class_section_id"       gorm:"column:class_section_id;type:uuid;not null"`

	// Denormalisasi untuk listing tanpa join
	ClassAcademicYearLabel string `json:"class_academic_year_label" gorm:"column:class_academic_year_label;type:varchar(9);not null"`
	ClassSectionName       string `json:"class_section_name"        gorm:"column:class_section_name;type:varchar(1);not null"`

	// Kapasitas = section_max_students saat rombel dibuat
	ClassCapacity     int `json:"class_capacity"      gorm:"column:class_capacity;not null"`
	ClassStudentCount int `json:"class_student_count" gorm:"column:class_student_count;not null;default:0"`

	ClassStatus string `json:"class_status" gorm:"column:class_status;type:varchar(16);not null;default:'active'"`

	// Wali kelas & pendamping; dikosongkan oleh cascade arsip
	ClassMainTeacherID *uuid.UUID `json:"class_main_teacher_id,omitempty" gorm:"column:class_main_teacher_id;type:uuid"`
	ClassCoTeacherID   *uuid.UUID `json:"class_co_teacher_id,omitempty"   gorm:"column:class_co_teacher_id;type:uuid"`

	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;type:timestamptz;index"`
}

func (ClassModel) TableName() string { return "classes" }
