// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/classes/model"
)

type ClassResponseDTO struct {
	ClassID                uuid.UUID  `json:"class_id"`
	ClassSchoolID          uuid.UUID  `json:"class_school_id"`
	ClassAcademicYearID    uuid.UUID  `json:"class_academic_year_id"`
	ClassSectionID         uuid.UUID  `json:"class_section_id"`
	ClassAcademicYearLabel string     `json:"class_academic_year_label"`
	ClassSectionName       string     `json:"class_section_name"`
	ClassCapacity          int        `json:"class_capacity"`
	ClassStudentCount      int        `json:"class_student_count"`
	ClassStatus            string     `json:"class_status"`
	ClassMainTeacherID     *uuid.UUID `json:"class_main_teacher_id,omitempty"`
	ClassCoTeacherID       *uuid.UUID `json:"class_co_teacher_id,omitempty"`
	ClassCreatedAt         time.Time  `json:"class_created_at"`
}

func FromModel(ent model.ClassModel) ClassResponseDTO {
	return ClassResponseDTO{
		ClassID:                ent.ClassID,
		ClassSchoolID:          ent.ClassSchoolID,
		ClassAcademicYearID:    ent.ClassAcademicYearID,
		ClassSectionID:         ent.ClassSectionID,
		ClassAcademicYearLabel: ent.ClassAcademicYearLabel,
		ClassSectionName:       ent.ClassSectionName,
		ClassCapacity:          ent.ClassCapacity,
		ClassStudentCount:      ent.ClassStudentCount,
		ClassStatus:            ent.ClassStatus,
		ClassMainTeacherID:     ent.ClassMainTeacherID,
		ClassCoTeacherID:       ent.ClassCoTeacherID,
		ClassCreatedAt:         ent.ClassCreatedAt,
	}
}

func FromModels(list []model.ClassModel) []ClassResponseDTO {
	out := make([]ClassResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
