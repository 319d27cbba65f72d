// file: internals/features/school/sections/service/section_creator_service.go
package service

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	secModel "sekolahku_backend/internals/features/school/sections/model"
	helper "sekolahku_backend/internals/helpers"
)

// GormSectionCreator: implementasi SectionCreator di atas GORM, scoped ke
// satu sekolah. Unique violation (23505) dipetakan ke Conflict supaya
// tabrakan nama terlihat jelas di hasil batch.
type GormSectionCreator struct {
	DB       *gorm.DB
	SchoolID uuid.UUID
}

func (s GormSectionCreator) CreateSection(ctx context.Context, letter string, maxStudents int) (uuid.UUID, error) {
	ent := secModel.SectionModel{
		SectionSchoolID:    s.SchoolID,
		SectionName:        letter,
		SectionMaxStudents: maxStudents,
		SectionIsActive:    true,
	}
	if err := s.DB.WithContext(ctx).Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return uuid.Nil, fiber.NewError(fiber.StatusConflict, "Nama section sudah dipakai")
		}
		log.Printf("[SectionCreator] ERROR create letter=%s school=%s err=%v", letter, s.SchoolID, err)
		return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat section")
	}
	return ent.SectionID, nil
}
