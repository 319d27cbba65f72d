// file: internals/features/school/classes/model/class_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassStudentModel merepresentasikan tabel `class_students` (enrollment).
// Cascade arsip tahun ajaran menonaktifkan baris-baris ini.
type ClassStudentModel struct {
	ClassStudentID       uuid.UUID `json:"class_student_id"        gorm:"column:class_student_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClassStudentSchoolID uuid.UUID `json:"class_student_school_id" gorm:"column:class_student_school_id;type:uuid;not null"`

	ClassStudentClassID   uuid.UUID `json:"class_student_class_id"   gorm:"column:class_student_class_id;type:uuid;not null;index"`
	ClassStudentStudentID uuid.UUID `json:"class_student_student_id" gorm:"column:class_student_student_id;type:uuid;not null"`

	ClassStudentIsActive bool `json:"class_student_is_active" gorm:"column:class_student_is_active;not null;default:true"`

	ClassStudentCreatedAt time.Time      `json:"class_student_created_at" gorm:"column:class_student_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassStudentUpdatedAt time.Time      `json:"class_student_updated_at" gorm:"column:class_student_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassStudentDeletedAt gorm.DeletedAt `json:"class_student_deleted_at,omitempty" gorm:"column:class_student_deleted_at;type:timestamptz;index"`
}

func (ClassStudentModel) TableName() string { return "class_students" }
