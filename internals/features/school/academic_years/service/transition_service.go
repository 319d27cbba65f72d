// file: internals/features/school/academic_years/service/transition_service.go
package service

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	yModel "sekolahku_backend/internals/features/school/academic_years/model"
)

/* ============================================
   State machine
============================================ */

// Aksi transisi lifecycle tahun ajaran.
const (
	ActionActivate   = "activate"
	ActionArchive    = "archive"
	ActionReactivate = "reactivate"
)

// requiredStatus: status asal yang sah per aksi.
// planned → active → archived → planned (reactivate).
var requiredStatus = map[string]string{
	ActionActivate:   yModel.AcademicYearStatusPlanned,
	ActionArchive:    yModel.AcademicYearStatusActive,
	ActionReactivate: yModel.AcademicYearStatusArchived,
}

// EnsureTransition menolak aksi yang tidak sah dari status sekarang.
func EnsureTransition(action, currentStatus string) error {
	want, ok := requiredStatus[action]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Aksi transisi tidak dikenal: "+action)
	}
	if currentStatus != want {
		return fiber.NewError(fiber.StatusConflict,
			"Transisi "+action+" hanya sah dari status "+want+", sekarang "+currentStatus)
	}
	return nil
}

/* ============================================
   Service
============================================ */

type TransitionService struct {
	DB *gorm.DB
}

func NewTransitionService(db *gorm.DB) *TransitionService {
	return &TransitionService{DB: db}
}

/* ============================================
   Activate (planned → active)
============================================ */

// Activate TIDAK mengarsipkan tahun aktif lain secara otomatis: kalau masih
// ada yang aktif, ditolak Conflict — arsip adalah aksi eksplisit tersendiri.
// Aktivasi juga tidak membuat rombel susulan; rombel hanya dibuat saat create.
func (s *TransitionService) Activate(ctx context.Context, schoolID, yearID uuid.UUID) (*yModel.AcademicYearModel, error) {
	var out *yModel.AcademicYearModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ent, err := runActivate(gormYearStore{db: tx}, schoolID, yearID)
		if err != nil {
			return err
		}
		out = ent
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[YearTransition] ACTIVATE school=%s year=%s label=%s", schoolID, yearID, out.AcademicYearLabel)
	return out, nil
}

func runActivate(st transitionStore, schoolID, yearID uuid.UUID) (*yModel.AcademicYearModel, error) {
	ent, err := st.FindYear(schoolID, yearID)
	if err != nil {
		return nil, err
	}
	if err := EnsureTransition(ActionActivate, ent.AcademicYearStatus); err != nil {
		return nil, err
	}
	cnt, err := st.CountActiveOthers(schoolID, yearID)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Masih ada tahun ajaran aktif, arsipkan dulu")
	}
	if err := st.FlipStatus(schoolID, yearID, yModel.AcademicYearStatusPlanned, yModel.AcademicYearStatusActive); err != nil {
		return nil, err
	}
	ent.AcademicYearStatus = yModel.AcademicYearStatusActive
	return ent, nil
}

/* ============================================
   Archive (active → archived) + cascade
============================================ */

type ArchiveResult struct {
	Year            *yModel.AcademicYearModel
	ArchivedClasses int64
	// Tahun planned terbaru yang otomatis diaktifkan setelah arsip (bisa nil)
	AutoActivated *yModel.AcademicYearModel
}

// Archive menjalankan cascade sebagai SATU transaksi: rombel diarsip, wali
// kelas dilepas, siswa dinonaktifkan, referensi rombel dihapus dari profil
// guru, lalu tahun planned terbaru (label tertinggi) otomatis diaktifkan.
// Gagal di tengah → rollback total, snapshot caller tetap last-known-good.
func (s *TransitionService) Archive(ctx context.Context, schoolID, yearID uuid.UUID) (*ArchiveResult, error) {
	var res *ArchiveResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := runArchive(gormYearStore{db: tx}, schoolID, yearID)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.AutoActivated != nil {
		log.Printf("[YearTransition] ARCHIVE school=%s year=%s classes=%d auto_activated=%s",
			schoolID, yearID, res.ArchivedClasses, res.AutoActivated.AcademicYearLabel)
	} else {
		log.Printf("[YearTransition] ARCHIVE school=%s year=%s classes=%d", schoolID, yearID, res.ArchivedClasses)
	}
	return res, nil
}

func runArchive(st transitionStore, schoolID, yearID uuid.UUID) (*ArchiveResult, error) {
	ent, err := st.FindYear(schoolID, yearID)
	if err != nil {
		return nil, err
	}
	if err := EnsureTransition(ActionArchive, ent.AcademicYearStatus); err != nil {
		return nil, err
	}
	if err := st.FlipStatus(schoolID, yearID, yModel.AcademicYearStatusActive, yModel.AcademicYearStatusArchived); err != nil {
		return nil, err
	}
	ent.AcademicYearStatus = yModel.AcademicYearStatusArchived
	res := &ArchiveResult{Year: ent}

	// (a) rombel milik tahun ini
	classIDs, err := st.ClassIDs(schoolID, yearID)
	if err != nil {
		return nil, err
	}
	if len(classIDs) > 0 {
		// (a+b) arsipkan rombel + lepas wali & pendamping
		n, err := st.ArchiveClasses(classIDs)
		if err != nil {
			return nil, err
		}
		res.ArchivedClasses = n

		// (c) nonaktifkan siswa yang terdaftar di rombel tsb
		if err := st.DeactivateStudents(classIDs); err != nil {
			return nil, err
		}

		// (d) hapus referensi rombel dari profil guru
		if err := st.StripTeacherClassRefs(schoolID, classIDs); err != nil {
			return nil, err
		}
	}

	// arsipkan activation record section untuk tahun ini
	if err := st.ArchiveSectionYears(schoolID, yearID); err != nil {
		return nil, err
	}

	// (e) auto-activate tahun planned terbaru by label, kalau ada
	next, err := st.NewestPlanned(schoolID)
	if err != nil {
		return nil, err
	}
	if next != nil {
		if err := st.FlipStatus(schoolID, next.AcademicYearID, yModel.AcademicYearStatusPlanned, yModel.AcademicYearStatusActive); err != nil {
			return nil, err
		}
		next.AcademicYearStatus = yModel.AcademicYearStatusActive
		res.AutoActivated = next
	}
	return res, nil
}

/* ============================================
   Reactivate (archived → planned)
============================================ */

// Reactivate hanya flip status. Rombel yang sudah diarsip dan siswa yang
// dinonaktifkan TIDAK dipulihkan otomatis (asimetri disengaja; pemulihan
// butuh keputusan produk tersendiri).
func (s *TransitionService) Reactivate(ctx context.Context, schoolID, yearID uuid.UUID) (*yModel.AcademicYearModel, error) {
	var out *yModel.AcademicYearModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ent, err := runReactivate(gormYearStore{db: tx}, schoolID, yearID)
		if err != nil {
			return err
		}
		out = ent
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[YearTransition] REACTIVATE school=%s year=%s label=%s", schoolID, yearID, out.AcademicYearLabel)
	return out, nil
}

func runReactivate(st transitionStore, schoolID, yearID uuid.UUID) (*yModel.AcademicYearModel, error) {
	ent, err := st.FindYear(schoolID, yearID)
	if err != nil {
		return nil, err
	}
	if err := EnsureTransition(ActionReactivate, ent.AcademicYearStatus); err != nil {
		return nil, err
	}
	if err := st.FlipStatus(schoolID, yearID, yModel.AcademicYearStatusArchived, yModel.AcademicYearStatusPlanned); err != nil {
		return nil, err
	}
	ent.AcademicYearStatus = yModel.AcademicYearStatusPlanned
	return ent, nil
}
