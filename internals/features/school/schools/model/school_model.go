// file: internals/features/school/schools/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Jenjang sekolah; menentukan batas kapasitas rombel.
const (
	SchoolLevelSD  = "sd"
	SchoolLevelSMP = "smp" // menengah pertama: maksimal 30 siswa per rombel
	SchoolLevelSMA = "sma"
	SchoolLevelSMK = "smk"
)

// SchoolModel merepresentasikan tabel `schools` (tenant)
type SchoolModel struct {
	SchoolID   uuid.UUID `json:"school_id"   gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolName string    `json:"school_name" gorm:"column:school_name;type:varchar(120);not null"`
	SchoolSlug string    `json:"school_slug" gorm:"column:school_slug;type:varchar(160);not null;uniqueIndex"`

	SchoolLevel    string `json:"school_level"     gorm:"column:school_level;type:varchar(10);not null;default:'smp'"`
	SchoolIsActive bool   `json:"school_is_active" gorm:"column:school_is_active;not null;default:true"`

	SchoolCreatedAt time.Time      `json:"school_created_at" gorm:"column:school_created_at;type:timestamptz;not null;autoCreateTime"`
	SchoolUpdatedAt time.Time      `json:"school_updated_at" gorm:"column:school_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SchoolDeletedAt gorm.DeletedAt `json:"school_deleted_at,omitempty" gorm:"column:school_deleted_at;type:timestamptz;index"`
}

func (SchoolModel) TableName() string { return "schools" }

// MaxStudentsUpperBound: batas atas kapasitas rombel per jenjang.
// SMP 30, selain itu 35 (batas bawah selalu 15).
func MaxStudentsUpperBound(level string) int {
	if level == SchoolLevelSMP {
		return 30
	}
	return 35
}

const MaxStudentsLowerBound = 15
