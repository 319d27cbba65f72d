package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/school/academic_years/dto"
	yModel "sekolahku_backend/internals/features/school/academic_years/model"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	schoolModel "sekolahku_backend/internals/features/school/schools/model"
	secModel "sekolahku_backend/internals/features/school/sections/model"
)

/* ============================================
   Fakes
============================================ */

// fakeComposeStore: mock composeStore; merekam aktivasi & rombel yang dibuat.
type fakeComposeStore struct {
	school       schoolModel.SchoolModel
	labelTaken   bool
	activeOthers int64
	names        []string
	sections     map[uuid.UUID]secModel.SectionModel
	activatedIDs []uuid.UUID

	year        *yModel.AcademicYearModel
	activations []uuid.UUID
	removals    []uuid.UUID
	classes     []classModel.ClassModel
	saved       bool
}

func (f *fakeComposeStore) FindYear(_, yearID uuid.UUID) (*yModel.AcademicYearModel, error) {
	if f.year == nil || f.year.AcademicYearID != yearID {
		return nil, fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")
	}
	cp := *f.year
	return &cp, nil
}

func (f *fakeComposeStore) CreateYear(ent *yModel.AcademicYearModel) error {
	ent.AcademicYearID = uuid.New()
	f.year = ent
	return nil
}

func (f *fakeComposeStore) SaveYear(ent *yModel.AcademicYearModel) error {
	f.saved = true
	f.year = ent
	return nil
}

func (f *fakeComposeStore) CountYearLabel(_ uuid.UUID, _ string, _ uuid.UUID) (int64, error) {
	if f.labelTaken {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeComposeStore) CountActiveOthers(_, _ uuid.UUID) (int64, error) {
	return f.activeOthers, nil
}

func (f *fakeComposeStore) LoadSchool(_ uuid.UUID) (*schoolModel.SchoolModel, error) {
	cp := f.school
	return &cp, nil
}

func (f *fakeComposeStore) SectionNames(_ uuid.UUID) ([]string, error) {
	return f.names, nil
}

func (f *fakeComposeStore) SectionsByIDs(_ uuid.UUID, ids []uuid.UUID) ([]secModel.SectionModel, error) {
	out := make([]secModel.SectionModel, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.sections[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeComposeStore) ActivatedSectionIDs(_, _ uuid.UUID) ([]uuid.UUID, error) {
	return f.activatedIDs, nil
}

func (f *fakeComposeStore) AddActivation(_ uuid.UUID, sec secModel.SectionModel, _ *yModel.AcademicYearModel) error {
	f.activations = append(f.activations, sec.SectionID)
	return nil
}

func (f *fakeComposeStore) RemoveActivation(_, sectionID uuid.UUID, _ *yModel.AcademicYearModel) error {
	f.removals = append(f.removals, sectionID)
	return nil
}

func (f *fakeComposeStore) CreateClass(ent *classModel.ClassModel) error {
	f.classes = append(f.classes, *ent)
	return nil
}

// passthrough: "transaksi" test — langsung jalankan closure di store yang sama.
func passthrough(f *fakeComposeStore) func(fn func(tx composeStore) error) error {
	return func(fn func(tx composeStore) error) error {
		return fn(f)
	}
}

// recordingCreator: mock SectionCreator yang mendaftarkan section sukses ke
// store supaya cek kepemilikan di dalam tx melihatnya.
type recordingCreator struct {
	store   *fakeComposeStore
	fail    map[string]bool
	created []string
}

func (r *recordingCreator) CreateSection(_ context.Context, letter string, maxStudents int) (uuid.UUID, error) {
	if r.fail[letter] {
		return uuid.Nil, fiber.NewError(fiber.StatusConflict, "Nama section sudah dipakai")
	}
	id := uuid.New()
	r.created = append(r.created, letter)
	if r.store != nil {
		if r.store.sections == nil {
			r.store.sections = map[uuid.UUID]secModel.SectionModel{}
		}
		r.store.sections[id] = secModel.SectionModel{
			SectionID:          id,
			SectionName:        letter,
			SectionMaxStudents: maxStudents,
		}
	}
	return id, nil
}

func createPayload(label string) *dto.AcademicYearCreateDTO {
	return &dto.AcademicYearCreateDTO{
		AcademicYearLabel:     label,
		AcademicYearStartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		AcademicYearEndDate:   time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

/* ============================================
   CreateYear
============================================ */

// Label duplikat harus ditolak SEBELUM batch section jalan: request yang
// gagal 409 tidak boleh meninggalkan section baru di belakangnya.
func TestRunCreateYear_DuplicateLabelRejectedBeforeBatch(t *testing.T) {
	f := &fakeComposeStore{
		school:     schoolModel.SchoolModel{SchoolLevel: schoolModel.SchoolLevelSMA},
		labelTaken: true,
	}
	creator := &recordingCreator{store: f}
	p := createPayload("2026/2027")
	p.NewSections = []dto.NewSectionDTO{{Letter: "B", MaxStudents: 30}}

	_, err := runCreateYear(context.Background(), f, passthrough(f), creator, uuid.New(), p)
	require.Error(t, err)
	fe, isFiber := err.(*fiber.Error)
	require.True(t, isFiber)
	assert.Equal(t, fiber.StatusConflict, fe.Code)

	assert.Empty(t, creator.created, "tidak boleh ada section yang terlanjur dibuat")
	assert.Nil(t, f.year)
}

// Id section ganda dari client tidak boleh berubah jadi 404 palsu saat cek
// kepemilikan; aktivasi tetap satu per section.
func TestRunCreateYear_DedupesSelectedSections(t *testing.T) {
	secID := uuid.New()
	f := &fakeComposeStore{
		school: schoolModel.SchoolModel{SchoolLevel: schoolModel.SchoolLevelSMA},
		sections: map[uuid.UUID]secModel.SectionModel{
			secID: {SectionID: secID, SectionName: "A", SectionMaxStudents: 30},
		},
	}
	p := createPayload("2026/2027")
	p.SelectedSections = []uuid.UUID{secID, secID}

	res, err := runCreateYear(context.Background(), f, passthrough(f), &recordingCreator{store: f}, uuid.New(), p)
	require.NoError(t, err)
	require.NotNil(t, res.Year)
	assert.Equal(t, []uuid.UUID{secID}, f.activations)
}

// Reconcile parsial: B sukses dan ikut diaktifkan (plus rombelnya), C gagal
// dan dilaporkan per item — bukan error untuk seluruh request.
func TestRunCreateYear_PartialBatch(t *testing.T) {
	f := &fakeComposeStore{
		school: schoolModel.SchoolModel{SchoolLevel: schoolModel.SchoolLevelSMP},
		names:  []string{"A"},
	}
	creator := &recordingCreator{store: f, fail: map[string]bool{"C": true}}
	p := createPayload("2026/2027")
	p.NewSections = []dto.NewSectionDTO{
		{Letter: "B", MaxStudents: 30},
		{Letter: "C", MaxStudents: 30},
	}
	p.CreateClasses = true

	res, err := runCreateYear(context.Background(), f, passthrough(f), creator, uuid.New(), p)
	require.NoError(t, err)

	require.Len(t, res.CreatedSections, 1)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "C", res.Dropped[0].Letter)

	assert.Equal(t, []uuid.UUID{res.CreatedSections[0]}, f.activations)
	require.Len(t, f.classes, 1)
	assert.Equal(t, "B", f.classes[0].ClassSectionName)
	assert.Equal(t, 30, f.classes[0].ClassCapacity)
	assert.Equal(t, 1, res.CreatedClasses)
}

func TestRunCreateYear_ActiveConflict(t *testing.T) {
	f := &fakeComposeStore{
		school:       schoolModel.SchoolModel{SchoolLevel: schoolModel.SchoolLevelSMA},
		activeOthers: 1,
	}
	p := createPayload("2026/2027")
	status := yModel.AcademicYearStatusActive
	p.AcademicYearStatus = &status

	_, err := runCreateYear(context.Background(), f, passthrough(f), &recordingCreator{}, uuid.New(), p)
	require.Error(t, err)
	fe, isFiber := err.(*fiber.Error)
	require.True(t, isFiber)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestRunCreateYear_CapacityOutOfRange(t *testing.T) {
	// SMP: batas atas 30
	f := &fakeComposeStore{school: schoolModel.SchoolModel{SchoolLevel: schoolModel.SchoolLevelSMP}}
	p := createPayload("2026/2027")
	p.NewSections = []dto.NewSectionDTO{{Letter: "B", MaxStudents: 35}}

	_, err := runCreateYear(context.Background(), f, passthrough(f), &recordingCreator{store: f}, uuid.New(), p)
	require.Error(t, err)
	fe, isFiber := err.(*fiber.Error)
	require.True(t, isFiber)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

/* ============================================
   UpdateYear
============================================ */

// Array pengganti utuh diterjemahkan ke delta: hanya selisihnya yang
// dieksekusi sebagai add/remove aktivasi.
func TestRunUpdateYear_SectionDelta(t *testing.T) {
	schoolID := uuid.New()
	keep, drop, add := uuid.New(), uuid.New(), uuid.New()

	year := testYear(yModel.AcademicYearStatusPlanned)
	year.AcademicYearStartDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	year.AcademicYearEndDate = time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

	f := &fakeComposeStore{
		year:         year,
		activatedIDs: []uuid.UUID{keep, drop},
		sections: map[uuid.UUID]secModel.SectionModel{
			add: {SectionID: add, SectionName: "C", SectionMaxStudents: 30},
		},
	}
	sel := []uuid.UUID{keep, add}
	p := &dto.AcademicYearUpdateDTO{SelectedSections: &sel}

	res, err := runUpdateYear(f, schoolID, year.AcademicYearID, p)
	require.NoError(t, err)
	assert.True(t, f.saved)

	assert.Equal(t, []string{add.String()}, res.Diff.Added)
	assert.Equal(t, []string{drop.String()}, res.Diff.Removed)
	assert.Equal(t, []uuid.UUID{add}, f.activations)
	assert.Equal(t, []uuid.UUID{drop}, f.removals)
}

func TestRunUpdateYear_InvalidDates(t *testing.T) {
	year := testYear(yModel.AcademicYearStatusPlanned)
	year.AcademicYearStartDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	year.AcademicYearEndDate = time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	f := &fakeComposeStore{year: year}

	bad := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &dto.AcademicYearUpdateDTO{AcademicYearEndDate: &bad}

	_, err := runUpdateYear(f, uuid.New(), year.AcademicYearID, p)
	require.Error(t, err)
	fe, isFiber := err.(*fiber.Error)
	require.True(t, isFiber)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.False(t, f.saved)
}
