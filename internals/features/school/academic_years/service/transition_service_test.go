package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yModel "sekolahku_backend/internals/features/school/academic_years/model"
)

// Tabel precondition state machine: empat transisi, tiga status.
func TestEnsureTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		ok     bool
	}{
		{ActionActivate, yModel.AcademicYearStatusPlanned, true},
		{ActionActivate, yModel.AcademicYearStatusActive, false},
		{ActionActivate, yModel.AcademicYearStatusArchived, false},

		{ActionArchive, yModel.AcademicYearStatusActive, true},
		{ActionArchive, yModel.AcademicYearStatusPlanned, false},
		{ActionArchive, yModel.AcademicYearStatusArchived, false},

		{ActionReactivate, yModel.AcademicYearStatusArchived, true},
		{ActionReactivate, yModel.AcademicYearStatusPlanned, false},
		{ActionReactivate, yModel.AcademicYearStatusActive, false},
	}
	for _, tc := range cases {
		err := EnsureTransition(tc.action, tc.from)
		if tc.ok {
			assert.NoError(t, err, "%s dari %s", tc.action, tc.from)
			continue
		}
		require.Error(t, err, "%s dari %s", tc.action, tc.from)
		fe, isFiber := err.(*fiber.Error)
		require.True(t, isFiber)
		assert.Equal(t, fiber.StatusConflict, fe.Code)
	}
}

func TestEnsureTransition_UnknownAction(t *testing.T) {
	err := EnsureTransition("promote", yModel.AcademicYearStatusPlanned)
	require.Error(t, err)
	fe, isFiber := err.(*fiber.Error)
	require.True(t, isFiber)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

/* ============================================
   Workflow transisi (fake store)
============================================ */

// fakeTransitionStore: mock transitionStore; merekam setiap langkah cascade.
type fakeTransitionStore struct {
	year         *yModel.AcademicYearModel
	activeOthers int64
	classIDs     []uuid.UUID
	planned      *yModel.AcademicYearModel

	flips                []string
	archivedClasses      []uuid.UUID
	deactivatedStudents  []uuid.UUID
	strippedTeacherRefs  []uuid.UUID
	sectionYearsArchived bool
}

func (f *fakeTransitionStore) FindYear(_, yearID uuid.UUID) (*yModel.AcademicYearModel, error) {
	if f.year == nil || f.year.AcademicYearID != yearID {
		return nil, fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
	}
	cp := *f.year
	return &cp, nil
}

func (f *fakeTransitionStore) CountActiveOthers(_, _ uuid.UUID) (int64, error) {
	return f.activeOthers, nil
}

func (f *fakeTransitionStore) FlipStatus(_, yearID uuid.UUID, from, to string) error {
	f.flips = append(f.flips, from+">"+to)
	if f.year != nil && f.year.AcademicYearID == yearID {
		f.year.AcademicYearStatus = to
	}
	if f.planned != nil && f.planned.AcademicYearID == yearID {
		f.planned.AcademicYearStatus = to
	}
	return nil
}

func (f *fakeTransitionStore) NewestPlanned(_ uuid.UUID) (*yModel.AcademicYearModel, error) {
	return f.planned, nil
}

func (f *fakeTransitionStore) ClassIDs(_, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.classIDs, nil
}

func (f *fakeTransitionStore) ArchiveClasses(classIDs []uuid.UUID) (int64, error) {
	f.archivedClasses = classIDs
	return int64(len(classIDs)), nil
}

func (f *fakeTransitionStore) DeactivateStudents(classIDs []uuid.UUID) error {
	f.deactivatedStudents = classIDs
	return nil
}

func (f *fakeTransitionStore) StripTeacherClassRefs(_ uuid.UUID, classIDs []uuid.UUID) error {
	f.strippedTeacherRefs = classIDs
	return nil
}

func (f *fakeTransitionStore) ArchiveSectionYears(_, _ uuid.UUID) error {
	f.sectionYearsArchived = true
	return nil
}

func testYear(status string) *yModel.AcademicYearModel {
	return &yModel.AcademicYearModel{
		AcademicYearID:     uuid.New(),
		AcademicYearLabel:  "2025/2026",
		AcademicYearStatus: status,
	}
}

func TestRunActivate(t *testing.T) {
	f := &fakeTransitionStore{year: testYear(yModel.AcademicYearStatusPlanned)}

	ent, err := runActivate(f, uuid.New(), f.year.AcademicYearID)
	require.NoError(t, err)
	assert.Equal(t, yModel.AcademicYearStatusActive, ent.AcademicYearStatus)
	assert.Equal(t, []string{"planned>active"}, f.flips)
}

// Masih ada tahun aktif lain → Conflict, dan TIDAK ada flip yang dijalankan:
// state persistence tidak berubah sama sekali.
func TestRunActivate_ConflictLeavesStateUntouched(t *testing.T) {
	f := &fakeTransitionStore{
		year:         testYear(yModel.AcademicYearStatusPlanned),
		activeOthers: 1,
	}

	_, err := runActivate(f, uuid.New(), f.year.AcademicYearID)
	require.Error(t, err)
	fe, isFiber := err.(*fiber.Error)
	require.True(t, isFiber)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	assert.Empty(t, f.flips)
	assert.Equal(t, yModel.AcademicYearStatusPlanned, f.year.AcademicYearStatus)
}

// Cascade arsip lengkap: rombel diarsip + siswa nonaktif + profil guru
// dibersihkan (semuanya dengan id rombel yang sama), aktivasi section
// diarsip, lalu tahun planned terbaru otomatis aktif.
func TestRunArchive_Cascade(t *testing.T) {
	classIDs := []uuid.UUID{uuid.New(), uuid.New()}
	planned := testYear(yModel.AcademicYearStatusPlanned)
	planned.AcademicYearLabel = "2026/2027"

	f := &fakeTransitionStore{
		year:     testYear(yModel.AcademicYearStatusActive),
		classIDs: classIDs,
		planned:  planned,
	}

	res, err := runArchive(f, uuid.New(), f.year.AcademicYearID)
	require.NoError(t, err)

	assert.Equal(t, yModel.AcademicYearStatusArchived, res.Year.AcademicYearStatus)
	assert.Equal(t, int64(2), res.ArchivedClasses)
	assert.Equal(t, classIDs, f.archivedClasses)
	assert.Equal(t, classIDs, f.deactivatedStudents)
	assert.Equal(t, classIDs, f.strippedTeacherRefs)
	assert.True(t, f.sectionYearsArchived)

	require.NotNil(t, res.AutoActivated)
	assert.Equal(t, "2026/2027", res.AutoActivated.AcademicYearLabel)
	assert.Equal(t, yModel.AcademicYearStatusActive, res.AutoActivated.AcademicYearStatus)
	assert.Equal(t, []string{"active>archived", "planned>active"}, f.flips)
}

func TestRunArchive_NoPlannedYear(t *testing.T) {
	f := &fakeTransitionStore{year: testYear(yModel.AcademicYearStatusActive)}

	res, err := runArchive(f, uuid.New(), f.year.AcademicYearID)
	require.NoError(t, err)
	assert.Nil(t, res.AutoActivated)
	assert.Equal(t, int64(0), res.ArchivedClasses)
	assert.Equal(t, []string{"active>archived"}, f.flips)
}

// Reactivate murni flip status: tidak ada satu pun langkah cascade yang
// dijalankan — rombel yang diarsip dan siswa nonaktif tetap apa adanya.
func TestRunReactivate_LeavesArchivedDataAlone(t *testing.T) {
	f := &fakeTransitionStore{
		year:     testYear(yModel.AcademicYearStatusArchived),
		classIDs: []uuid.UUID{uuid.New()},
	}

	ent, err := runReactivate(f, uuid.New(), f.year.AcademicYearID)
	require.NoError(t, err)
	assert.Equal(t, yModel.AcademicYearStatusPlanned, ent.AcademicYearStatus)

	assert.Equal(t, []string{"archived>planned"}, f.flips)
	assert.Nil(t, f.archivedClasses)
	assert.Nil(t, f.deactivatedStudents)
	assert.Nil(t, f.strippedTeacherRefs)
	assert.False(t, f.sectionYearsArchived)
}

func TestRunActivate_StaleID(t *testing.T) {
	f := &fakeTransitionStore{year: testYear(yModel.AcademicYearStatusPlanned)}

	_, err := runActivate(f, uuid.New(), uuid.New())
	require.Error(t, err)
	fe, isFiber := err.(*fiber.Error)
	require.True(t, isFiber)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}
