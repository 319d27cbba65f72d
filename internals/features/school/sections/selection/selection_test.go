package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	s := New()
	s.Toggle("a")
	assert.True(t, s.Has("a"))
	s.Toggle("a")
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())
}

func TestToggleAll_SelectsWhenNotAllSelected(t *testing.T) {
	s := New("a")
	s.ToggleAll([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestToggleAll_DeselectsOnlyCandidates(t *testing.T) {
	s := New("a", "b", "x")
	s.ToggleAll([]string{"a", "b"})
	// union bukan replacement: "x" di luar kandidat tidak disentuh
	assert.Equal(t, []string{"x"}, s.IDs())
}

// Idempoten: dua kali ToggleAll dengan kandidat sama → balik ke keadaan awal.
func TestToggleAll_TwiceRestoresOriginal(t *testing.T) {
	s := New("a", "x")
	before := s.IDs()
	s.ToggleAll([]string{"b", "c"})
	s.ToggleAll([]string{"b", "c"})
	assert.Equal(t, before, s.IDs())
}

func TestDiff(t *testing.T) {
	d := Diff([]string{"a", "b"}, []string{"b", "c"})
	assert.Equal(t, []string{"c"}, d.Added)
	assert.Equal(t, []string{"a"}, d.Removed)
}

func TestDiff_Empty(t *testing.T) {
	d := Diff(nil, nil)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
}

// Round-trip: apply diff inkremental ke set lama harus menghasilkan set baru.
func TestDiff_RoundTrip(t *testing.T) {
	oldIDs := []string{"a", "b", "c"}
	newIDs := []string{"b", "d", "e"}

	d := Diff(oldIDs, newIDs)

	s := New(oldIDs...)
	for _, id := range d.Added {
		s.Toggle(id)
	}
	for _, id := range d.Removed {
		s.Toggle(id)
	}
	assert.Equal(t, []string{"b", "d", "e"}, s.IDs())
}
