// file: internals/features/school/academic_years/service/compose_service.go
package service

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academic_years/dto"
	yModel "sekolahku_backend/internals/features/school/academic_years/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	"sekolahku_backend/internals/features/school/sections/allocator"
	"sekolahku_backend/internals/features/school/sections/selection"
	secService "sekolahku_backend/internals/features/school/sections/service"
)

/* ============================================
   Create tahun ajaran (+ reconcile pending)
============================================ */

type CreateYearResult struct {
	Year            *yModel.AcademicYearModel
	CreatedSections []uuid.UUID
	Dropped         []allocator.BatchItem
	CreatedClasses  int
}

// CreateYear: satu-satunya workflow dengan risiko partial-failure multi-step
// yang nyata. Section pending di-commit lebih dulu (best-effort, DI LUAR
// transaksi tahun — section entitas independen, tidak di-rollback); create
// tahun lalu jalan dengan subset yang sukses, dan huruf yang gagal
// dilaporkan ke caller lewat Dropped.
func (s *TransitionService) CreateYear(ctx context.Context, schoolID uuid.UUID, p *dto.AcademicYearCreateDTO) (*CreateYearResult, error) {
	pre := gormYearStore{db: s.DB.WithContext(ctx)}
	creator := secService.GormSectionCreator{DB: s.DB, SchoolID: schoolID}
	inTx := func(fn func(tx composeStore) error) error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(gormYearStore{db: tx})
		})
	}

	res, err := runCreateYear(ctx, pre, inTx, creator, schoolID, p)
	if err != nil {
		return nil, err
	}
	log.Printf("[YearCompose] CREATE school=%s label=%s status=%s sections=%d dropped=%d classes=%d",
		schoolID, res.Year.AcademicYearLabel, res.Year.AcademicYearStatus,
		len(res.CreatedSections)+len(p.SelectedSections), len(res.Dropped), res.CreatedClasses)
	return res, nil
}

func runCreateYear(
	ctx context.Context,
	st composeStore,
	inTx func(fn func(tx composeStore) error) error,
	creator allocator.SectionCreator,
	schoolID uuid.UUID,
	p *dto.AcademicYearCreateDTO,
) (*CreateYearResult, error) {
	if err := yModel.ValidateLabel(p.AcademicYearLabel); err != nil {
		return nil, err
	}

	// Jenjang sekolah menentukan batas kapasitas section pending
	school, err := st.LoadSchool(schoolID)
	if err != nil {
		return nil, err
	}

	// Label harus bebas SEBELUM batch section jalan: request dengan label
	// duplikat tidak boleh meninggalkan section baru di belakangnya.
	cnt, err := st.CountYearLabel(schoolID, p.AcademicYearLabel, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Label tahun ajaran sudah dipakai")
	}

	res := &CreateYearResult{}

	// === Reconcile section pending → real ===
	if len(p.NewSections) > 0 {
		existingNames, err := st.SectionNames(schoolID)
		if err != nil {
			return nil, err
		}

		alloc := allocator.New(existingNames)
		upper := schoolModel.MaxStudentsUpperBound(school.SchoolLevel)
		for _, ns := range p.NewSections {
			if ns.MaxStudents < schoolModel.MaxStudentsLowerBound || ns.MaxStudents > upper {
				return nil, fiber.NewError(fiber.StatusBadRequest, "Kapasitas section di luar batas jenjang")
			}
			if _, err := alloc.CreatePending(ns.Letter, ns.MaxStudents); err != nil {
				// huruf tabrakan dengan existing/pending lain → validasi lokal, tolak
				return nil, err
			}
		}

		batch := alloc.CommitPending(ctx, creator)
		for _, id := range batch.Created {
			res.CreatedSections = append(res.CreatedSections, id)
		}
		res.Dropped = batch.Failed
	}

	// Section untuk aktivasi tahun = selected (real) + pending yang sukses;
	// id ganda dari client dirapikan dulu supaya cek kepemilikan tidak meleset
	sectionIDs := dedupeUUIDs(append(append([]uuid.UUID{}, p.SelectedSections...), res.CreatedSections...))

	err = inTx(func(tx composeStore) error {
		// re-check label di dalam tx (race antar request); unique index guard kedua
		cnt, err := tx.CountYearLabel(schoolID, p.AcademicYearLabel, uuid.Nil)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Label tahun ajaran sudah dipakai")
		}

		// create langsung active hanya sah tanpa tahun aktif lain
		if p.WantsActive() {
			active, err := tx.CountActiveOthers(schoolID, uuid.Nil)
			if err != nil {
				return err
			}
			if active > 0 {
				return fiber.NewError(fiber.StatusConflict, "Masih ada tahun ajaran aktif, arsipkan dulu")
			}
		}

		ent := p.ToModel(schoolID)
		if err := tx.CreateYear(&ent); err != nil {
			return err
		}
		res.Year = &ent

		if len(sectionIDs) == 0 {
			return nil
		}

		// validasi section milik sekolah ini, sekalian ambil kapasitas
		sections, err := tx.SectionsByIDs(schoolID, sectionIDs)
		if err != nil {
			return err
		}
		if len(sections) != len(sectionIDs) {
			return fiber.NewError(fiber.StatusNotFound, "Ada section yang tidak ditemukan, muat ulang data")
		}

		for _, sec := range sections {
			if err := tx.AddActivation(schoolID, sec, &ent); err != nil {
				return err
			}
			if p.CreateClasses {
				cls := classModel.ClassModel{
					ClassSchoolID:          schoolID,
					ClassAcademicYearID:    ent.AcademicYearID,
					ClassSectionID:         sec.SectionID,
					ClassAcademicYearLabel: ent.AcademicYearLabel,
					ClassSectionName:       sec.SectionName,
					ClassCapacity:          sec.SectionMaxStudents,
					ClassStatus:            classModel.ClassStatusActive,
				}
				if err := tx.CreateClass(&cls); err != nil {
					return err
				}
				res.CreatedClasses++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

/* ============================================
   Update tahun ajaran (field + delta section)
============================================ */

type UpdateYearResult struct {
	Year *yModel.AcademicYearModel
	Diff selection.DiffResult
}

// UpdateYear: edit field + delta set section, sah di status apa pun (bukan
// transisi). Array selected_sections pengganti utuh diterjemahkan lewat
// selection.Diff ke jalur apply inkremental yang sama dengan toggle manual.
func (s *TransitionService) UpdateYear(ctx context.Context, schoolID, yearID uuid.UUID, p *dto.AcademicYearUpdateDTO) (*UpdateYearResult, error) {
	var res *UpdateYearResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := runUpdateYear(gormYearStore{db: tx}, schoolID, yearID, p)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[YearCompose] UPDATE school=%s year=%s added=%d removed=%d",
		schoolID, yearID, len(res.Diff.Added), len(res.Diff.Removed))
	return res, nil
}

func runUpdateYear(st composeStore, schoolID, yearID uuid.UUID, p *dto.AcademicYearUpdateDTO) (*UpdateYearResult, error) {
	ent, err := st.FindYear(schoolID, yearID)
	if err != nil {
		return nil, err
	}

	if p.AcademicYearLabel != nil {
		if err := yModel.ValidateLabel(*p.AcademicYearLabel); err != nil {
			return nil, err
		}
		cnt, err := st.CountYearLabel(schoolID, *p.AcademicYearLabel, yearID)
		if err != nil {
			return nil, err
		}
		if cnt > 0 {
			return nil, fiber.NewError(fiber.StatusConflict, "Label tahun ajaran sudah dipakai")
		}
	}

	// Validasi tanggal gabungan (field lama + perubahan)
	start := ent.AcademicYearStartDate
	end := ent.AcademicYearEndDate
	if p.AcademicYearStartDate != nil {
		start = *p.AcademicYearStartDate
	}
	if p.AcademicYearEndDate != nil {
		end = *p.AcademicYearEndDate
	}
	if !end.After(start) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tanggal akhir harus > tanggal mulai")
	}

	p.ApplyUpdates(ent)
	if err := st.SaveYear(ent); err != nil {
		return nil, err
	}
	res := &UpdateYearResult{Year: ent}

	if p.SelectedSections == nil {
		return res, nil
	}

	// set lama = activation record hidup milik tahun ini
	oldIDs, err := st.ActivatedSectionIDs(schoolID, yearID)
	if err != nil {
		return nil, err
	}

	res.Diff = selection.Diff(uuidsToStrings(oldIDs), uuidsToStrings(dedupeUUIDs(*p.SelectedSections)))

	for _, idStr := range res.Diff.Added {
		secID := uuid.MustParse(idStr)
		secs, err := st.SectionsByIDs(schoolID, []uuid.UUID{secID})
		if err != nil {
			return nil, err
		}
		if len(secs) != 1 {
			return nil, fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan, muat ulang data")
		}
		if err := st.AddActivation(schoolID, secs[0], ent); err != nil {
			return nil, err
		}
	}
	for _, idStr := range res.Diff.Removed {
		if err := st.RemoveActivation(schoolID, uuid.MustParse(idStr), ent); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func uuidsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
