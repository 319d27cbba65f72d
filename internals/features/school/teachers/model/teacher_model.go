// file: internals/features/school/teachers/model/teacher_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TeacherModel merepresentasikan tabel `school_teachers` (profil guru).
// Daftar class id di profil dibersihkan oleh cascade arsip tahun ajaran.
type TeacherModel struct {
	SchoolTeacherID       uuid.UUID `json:"school_teacher_id"        gorm:"column:school_teacher_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolTeacherSchoolID uuid.UUID `json:"school_teacher_school_id" gorm:"column:school_teacher_school_id;type:uuid;not null;index"`
	SchoolTeacherUserID   uuid.UUID `json:"school_teacher_user_id"   gorm:"column:school_teacher_user_id;type:uuid;not null"`

	SchoolTeacherName string `json:"school_teacher_name" gorm:"column:school_teacher_name;type:varchar(120);not null"`

	// Referensi rombel yang dipegang guru (wali/pendamping); text[] berisi UUID
	SchoolTeacherClassIDs pq.StringArray `json:"school_teacher_class_ids,omitempty" gorm:"column:school_teacher_class_ids;type:text[]"`

	SchoolTeacherIsActive bool `json:"school_teacher_is_active" gorm:"column:school_teacher_is_active;not null;default:true"`

	SchoolTeacherCreatedAt time.Time      `json:"school_teacher_created_at" gorm:"column:school_teacher_created_at;type:timestamptz;not null;autoCreateTime"`
	SchoolTeacherUpdatedAt time.Time      `json:"school_teacher_updated_at" gorm:"column:school_teacher_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SchoolTeacherDeletedAt gorm.DeletedAt `json:"school_teacher_deleted_at,omitempty" gorm:"column:school_teacher_deleted_at;type:timestamptz;index"`
}

func (TeacherModel) TableName() string { return "school_teachers" }
