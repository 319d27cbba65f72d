// file: internals/features/school/academic_years/service/year_store.go
package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	yModel "sekolahku_backend/internals/features/school/academic_years/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	secModel "sekolahku_backend/internals/features/school/sections/model"
	teacherModel "sekolahku_backend/internals/features/school/teachers/model"
	helper "sekolahku_backend/internals/helpers"
)

/* ============================================
   Store interfaces
============================================ */

// transitionStore: operasi persistence yang dipakai workflow transisi status.
// Interface supaya gampang di-mock; semua method mengembalikan error yang
// sudah berbentuk *fiber.Error siap-response.
type transitionStore interface {
	FindYear(schoolID, yearID uuid.UUID) (*yModel.AcademicYearModel, error)
	CountActiveOthers(schoolID, excludeYearID uuid.UUID) (int64, error)
	FlipStatus(schoolID, yearID uuid.UUID, from, to string) error
	// NewestPlanned: tahun planned dengan label tertinggi; (nil, nil) kalau
	// tidak ada.
	NewestPlanned(schoolID uuid.UUID) (*yModel.AcademicYearModel, error)

	ClassIDs(schoolID, yearID uuid.UUID) ([]uuid.UUID, error)
	ArchiveClasses(classIDs []uuid.UUID) (int64, error)
	DeactivateStudents(classIDs []uuid.UUID) error
	StripTeacherClassRefs(schoolID uuid.UUID, classIDs []uuid.UUID) error
	ArchiveSectionYears(schoolID, yearID uuid.UUID) error
}

// composeStore: operasi persistence untuk workflow create/update tahun ajaran.
type composeStore interface {
	FindYear(schoolID, yearID uuid.UUID) (*yModel.AcademicYearModel, error)
	CreateYear(ent *yModel.AcademicYearModel) error
	SaveYear(ent *yModel.AcademicYearModel) error
	CountYearLabel(schoolID uuid.UUID, label string, excludeYearID uuid.UUID) (int64, error)
	CountActiveOthers(schoolID, excludeYearID uuid.UUID) (int64, error)

	LoadSchool(schoolID uuid.UUID) (*schoolModel.SchoolModel, error)
	SectionNames(schoolID uuid.UUID) ([]string, error)
	SectionsByIDs(schoolID uuid.UUID, ids []uuid.UUID) ([]secModel.SectionModel, error)
	ActivatedSectionIDs(schoolID, yearID uuid.UUID) ([]uuid.UUID, error)
	AddActivation(schoolID uuid.UUID, sec secModel.SectionModel, year *yModel.AcademicYearModel) error
	RemoveActivation(schoolID, sectionID uuid.UUID, year *yModel.AcademicYearModel) error
	CreateClass(ent *classModel.ClassModel) error
}

/* ============================================
   Implementasi GORM
============================================ */

// gormYearStore membungkus *gorm.DB — koneksi biasa maupun tx, keduanya sah.
type gormYearStore struct {
	db *gorm.DB
}

// FindYear scoped per sekolah; stale id → 404 (caller reload registry).
func (g gormYearStore) FindYear(schoolID, yearID uuid.UUID) (*yModel.AcademicYearModel, error) {
	var ent yModel.AcademicYearModel
	err := g.db.
		Where("academic_year_school_id = ? AND academic_year_id = ?", schoolID, yearID).
		First(&ent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil tahun ajaran")
	}
	return &ent, nil
}

func (g gormYearStore) CreateYear(ent *yModel.AcademicYearModel) error {
	if err := g.db.Create(ent).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Label tahun ajaran sudah dipakai")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat tahun ajaran")
	}
	return nil
}

func (g gormYearStore) SaveYear(ent *yModel.AcademicYearModel) error {
	if err := g.db.Save(ent).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Label tahun ajaran sudah dipakai")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan tahun ajaran")
	}
	return nil
}

func (g gormYearStore) CountYearLabel(schoolID uuid.UUID, label string, excludeYearID uuid.UUID) (int64, error) {
	var cnt int64
	err := g.db.Model(&yModel.AcademicYearModel{}).
		Where("academic_year_school_id = ? AND academic_year_label = ? AND academic_year_id <> ?",
			schoolID, label, excludeYearID).
		Count(&cnt).Error
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa label")
	}
	return cnt, nil
}

// CountActiveOthers: jumlah tahun active lain (precondition "paling banyak
// satu active"). Dicek di dalam tx, bukan dari snapshot registry yang bisa
// basi; index parsial uq_academic_years_school_active jadi guard terakhir
// untuk race lintas sesi.
func (g gormYearStore) CountActiveOthers(schoolID, excludeYearID uuid.UUID) (int64, error) {
	var cnt int64
	err := g.db.Model(&yModel.AcademicYearModel{}).
		Where("academic_year_school_id = ? AND academic_year_status = ? AND academic_year_id <> ?",
			schoolID, yModel.AcademicYearStatusActive, excludeYearID).
		Count(&cnt).Error
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa tahun aktif")
	}
	return cnt, nil
}

// FlipStatus: conditional write — status hanya berpindah kalau baris masih
// di status asal. RowsAffected 0 berarti sesi lain sudah mendahului.
func (g gormYearStore) FlipStatus(schoolID, yearID uuid.UUID, from, to string) error {
	res := g.db.Model(&yModel.AcademicYearModel{}).
		Where("academic_year_school_id = ? AND academic_year_id = ? AND academic_year_status = ?",
			schoolID, yearID, from).
		Update("academic_year_status", to)
	if res.Error != nil {
		if helper.IsUniqueViolation(res.Error) {
			return fiber.NewError(fiber.StatusConflict, "Masih ada tahun ajaran aktif, arsipkan dulu")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah status tahun ajaran")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "Status tahun ajaran sudah berubah, muat ulang data")
	}
	return nil
}

func (g gormYearStore) NewestPlanned(schoolID uuid.UUID) (*yModel.AcademicYearModel, error) {
	var next yModel.AcademicYearModel
	err := g.db.
		Where("academic_year_school_id = ? AND academic_year_status = ?", schoolID, yModel.AcademicYearStatusPlanned).
		Order("academic_year_label DESC").
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mencari tahun planned")
	}
	return &next, nil
}

func (g gormYearStore) LoadSchool(schoolID uuid.UUID) (*schoolModel.SchoolModel, error) {
	var school schoolModel.SchoolModel
	if err := g.db.Where("school_id = ?", schoolID).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data sekolah")
	}
	return &school, nil
}

func (g gormYearStore) SectionNames(schoolID uuid.UUID) ([]string, error) {
	var names []string
	if err := g.db.Model(&secModel.SectionModel{}).
		Where("section_school_id = ?", schoolID).
		Pluck("section_name", &names).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar section")
	}
	return names, nil
}

func (g gormYearStore) SectionsByIDs(schoolID uuid.UUID, ids []uuid.UUID) ([]secModel.SectionModel, error) {
	var sections []secModel.SectionModel
	if err := g.db.
		Where("section_school_id = ? AND section_id IN ?", schoolID, ids).
		Find(&sections).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil section")
	}
	return sections, nil
}

func (g gormYearStore) ActivatedSectionIDs(schoolID, yearID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := g.db.Model(&secModel.SectionYearModel{}).
		Where("section_year_school_id = ? AND section_year_academic_year_id = ?", schoolID, yearID).
		Pluck("section_year_section_id", &ids).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil aktivasi section")
	}
	return ids, nil
}

// AddActivation membuat activation record + menambah label ke cache
// section_year_labels (idempoten terhadap duplikat).
func (g gormYearStore) AddActivation(schoolID uuid.UUID, sec secModel.SectionModel, year *yModel.AcademicYearModel) error {
	rec := secModel.SectionYearModel{
		SectionYearSchoolID:       schoolID,
		SectionYearSectionID:      sec.SectionID,
		SectionYearAcademicYearID: year.AcademicYearID,
		SectionYearStatus:         secModel.SectionYearStatusActive,
	}
	if err := g.db.Create(&rec).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Section sudah diaktifkan untuk tahun ini")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat aktivasi section")
	}
	if err := g.db.Model(&secModel.SectionModel{}).
		Where("section_id = ? AND NOT (? = ANY(COALESCE(section_year_labels, '{}')))", sec.SectionID, year.AcademicYearLabel).
		Update("section_year_labels",
			gorm.Expr("array_append(COALESCE(section_year_labels, '{}'), ?)", year.AcademicYearLabel),
		).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui cache label section")
	}
	return nil
}

// RemoveActivation soft-delete activation record + membuang label dari cache.
func (g gormYearStore) RemoveActivation(schoolID, sectionID uuid.UUID, year *yModel.AcademicYearModel) error {
	if err := g.db.
		Where("section_year_school_id = ? AND section_year_section_id = ? AND section_year_academic_year_id = ?",
			schoolID, sectionID, year.AcademicYearID).
		Delete(&secModel.SectionYearModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus aktivasi section")
	}
	if err := g.db.Model(&secModel.SectionModel{}).
		Where("section_id = ?", sectionID).
		Update("section_year_labels",
			gorm.Expr("array_remove(COALESCE(section_year_labels, '{}'), ?)", year.AcademicYearLabel),
		).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui cache label section")
	}
	return nil
}

func (g gormYearStore) CreateClass(ent *classModel.ClassModel) error {
	if err := g.db.Create(ent).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat rombel")
	}
	return nil
}

func (g gormYearStore) ClassIDs(schoolID, yearID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := g.db.Model(&classModel.ClassModel{}).
		Where("class_school_id = ? AND class_academic_year_id = ?", schoolID, yearID).
		Pluck("class_id", &ids).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rombel")
	}
	return ids, nil
}

// ArchiveClasses mengarsipkan rombel sekaligus melepas wali & pendamping.
func (g gormYearStore) ArchiveClasses(classIDs []uuid.UUID) (int64, error) {
	upd := g.db.Model(&classModel.ClassModel{}).
		Where("class_id IN ?", classIDs).
		Updates(map[string]any{
			"class_status":          classModel.ClassStatusArchived,
			"class_main_teacher_id": nil,
			"class_co_teacher_id":   nil,
		})
	if upd.Error != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengarsipkan rombel")
	}
	return upd.RowsAffected, nil
}

func (g gormYearStore) DeactivateStudents(classIDs []uuid.UUID) error {
	if err := g.db.Model(&classModel.ClassStudentModel{}).
		Where("class_student_class_id IN ?", classIDs).
		Update("class_student_is_active", false).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menonaktifkan siswa")
	}
	return nil
}

// StripTeacherClassRefs membuang id rombel dari profil guru (text[] Postgres).
func (g gormYearStore) StripTeacherClassRefs(schoolID uuid.UUID, classIDs []uuid.UUID) error {
	idStrs := make([]string, 0, len(classIDs))
	for _, id := range classIDs {
		idStrs = append(idStrs, id.String())
	}
	if err := g.db.Model(&teacherModel.TeacherModel{}).
		Where("school_teacher_school_id = ? AND school_teacher_class_ids && ?::text[]", schoolID, pq.StringArray(idStrs)).
		Update("school_teacher_class_ids",
			gorm.Expr("ARRAY(SELECT x FROM unnest(school_teacher_class_ids) AS x WHERE x <> ALL(?::text[]))", pq.StringArray(idStrs)),
		).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membersihkan profil guru")
	}
	return nil
}

func (g gormYearStore) ArchiveSectionYears(schoolID, yearID uuid.UUID) error {
	if err := g.db.Model(&secModel.SectionYearModel{}).
		Where("section_year_school_id = ? AND section_year_academic_year_id = ?", schoolID, yearID).
		Update("section_year_status", secModel.SectionYearStatusArchived).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengarsipkan aktivasi section")
	}
	return nil
}
