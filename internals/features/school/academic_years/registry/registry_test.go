package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yModel "sekolahku_backend/internals/features/school/academic_years/model"
)

func year(label, status string) yModel.AcademicYearModel {
	return yModel.AcademicYearModel{
		AcademicYearLabel:  label,
		AcademicYearStatus: status,
	}
}

func TestLoad_Partitions(t *testing.T) {
	reg := New()
	err := reg.Load([]yModel.AcademicYearModel{
		year("2024/2025", yModel.AcademicYearStatusArchived),
		year("2025/2026", yModel.AcademicYearStatusActive),
		year("2026/2027", yModel.AcademicYearStatusPlanned),
		year("2027/2028", yModel.AcademicYearStatusPlanned),
		year("2023/2024", yModel.AcademicYearStatusArchived),
	})
	require.NoError(t, err)

	require.NotNil(t, reg.Current())
	assert.Equal(t, "2025/2026", reg.Current().AcademicYearLabel)

	// planned & archived urut label menurun
	require.Len(t, reg.Planned(), 2)
	assert.Equal(t, "2027/2028", reg.Planned()[0].AcademicYearLabel)
	require.Len(t, reg.Archived(), 2)
	assert.Equal(t, "2024/2025", reg.Archived()[0].AcademicYearLabel)
}

func TestLoad_NoActive(t *testing.T) {
	reg := New()
	err := reg.Load([]yModel.AcademicYearModel{
		year("2026/2027", yModel.AcademicYearStatusPlanned),
	})
	require.NoError(t, err)
	assert.Nil(t, reg.Current())
}

// Invarian: paling banyak satu tahun active; dua active = data korup.
func TestLoad_RejectsTwoActive(t *testing.T) {
	reg := New()
	err := reg.Load([]yModel.AcademicYearModel{
		year("2025/2026", yModel.AcademicYearStatusActive),
		year("2026/2027", yModel.AcademicYearStatusActive),
	})
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownStatus(t *testing.T) {
	reg := New()
	err := reg.Load([]yModel.AcademicYearModel{year("2025/2026", "draft")})
	assert.Error(t, err)
}

func TestSuggestNextLabel(t *testing.T) {
	// tanpa tahun aktif → label kalender (pergantian 1 September)
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024/2025", SuggestNextLabel(nil, march))

	october := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025/2026", SuggestNextLabel(nil, october))

	// tahun aktif sudah memegang label kalender → usulkan label berikutnya
	cur := year("2025/2026", yModel.AcademicYearStatusActive)
	assert.Equal(t, "2026/2027", SuggestNextLabel(&cur, october))

	// tahun aktif masih label lama → tetap label kalender
	old := year("2024/2025", yModel.AcademicYearStatusActive)
	assert.Equal(t, "2025/2026", SuggestNextLabel(&old, october))
}
