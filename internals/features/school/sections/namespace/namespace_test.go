package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnusedLetters_Empty(t *testing.T) {
	got := UnusedLetters(nil)
	require.Len(t, got, 26)
	assert.Equal(t, "A", got[0])
	assert.Equal(t, "Z", got[25])
}

func TestUnusedLetters_ExcludesExisting(t *testing.T) {
	got := UnusedLetters([]string{"A", "C", "Z"})
	assert.Len(t, got, 23)
	assert.NotContains(t, got, "A")
	assert.NotContains(t, got, "C")
	assert.NotContains(t, got, "Z")
	assert.Equal(t, "B", got[0])
}

func TestUnusedLetters_NormalizesCaseAndSpace(t *testing.T) {
	got := UnusedLetters([]string{" a ", "b"})
	assert.NotContains(t, got, "A")
	assert.NotContains(t, got, "B")
}

// Invarian: unused ∩ existing = ∅ dan unused ∪ existing = {A..Z}.
func TestUnusedLetters_SetIdentities(t *testing.T) {
	existing := []string{"B", "D", "F", "H"}
	unused := UnusedLetters(existing)

	seen := make(map[string]bool)
	for _, l := range unused {
		seen[l] = true
	}
	for _, l := range existing {
		assert.False(t, seen[l], "huruf existing tidak boleh muncul di unused: %s", l)
		seen[l] = true
	}
	assert.Len(t, seen, 26)
}

func TestValidateName(t *testing.T) {
	existing := []string{"A", "B"}

	assert.NoError(t, ValidateName("C", existing))
	assert.Error(t, ValidateName("A", existing), "sudah dipakai")
	assert.Error(t, ValidateName("a", existing), "lowercase ditolak")
	assert.Error(t, ValidateName("AB", existing))
	assert.Error(t, ValidateName("", existing))
	assert.Error(t, ValidateName("1", existing))
}
