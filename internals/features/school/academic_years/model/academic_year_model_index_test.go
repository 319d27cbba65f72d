package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseIndexes(t *testing.T) map[string]schema.Index {
	t.Helper()
	s, err := schema.Parse(&AcademicYearModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s.ParseIndexes()
}

// Invarian "paling banyak satu tahun active per sekolah" bersandar pada index
// parsial di DB; pastikan index itu benar-benar terdeklarasi di model.
func TestAcademicYearModel_DeclaresSingleActiveIndex(t *testing.T) {
	idx, ok := parseIndexes(t)["uq_academic_years_school_active"]
	require.True(t, ok, "index uq_academic_years_school_active tidak terdeklarasi")

	assert.Equal(t, "UNIQUE", idx.Class)
	assert.Contains(t, idx.Where, "academic_year_status = 'active'")
	assert.Contains(t, idx.Where, "academic_year_deleted_at IS NULL")
	require.Len(t, idx.Fields, 1)
	assert.Equal(t, "academic_year_school_id", idx.Fields[0].DBName)
}

func TestAcademicYearModel_DeclaresUniqueLabelIndex(t *testing.T) {
	idx, ok := parseIndexes(t)["uq_academic_years_school_label"]
	require.True(t, ok, "index uq_academic_years_school_label tidak terdeklarasi")

	assert.Equal(t, "UNIQUE", idx.Class)
	require.Len(t, idx.Fields, 2)
}
