package allocator

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCreator: mock SectionCreator; gagal untuk huruf di failLetters.
type fakeCreator struct {
	failLetters map[string]bool
	created     []string
}

func (f *fakeCreator) CreateSection(_ context.Context, letter string, _ int) (uuid.UUID, error) {
	if f.failLetters[letter] {
		return uuid.Nil, fiber.NewError(fiber.StatusConflict, "Nama section sudah dipakai")
	}
	f.created = append(f.created, letter)
	return uuid.New(), nil
}

func TestCreatePending_ReservesLetter(t *testing.T) {
	a := New([]string{"A"})

	p, err := a.CreatePending("B", 30)
	require.NoError(t, err)
	assert.Equal(t, "temp-B", p.PendingID)
	assert.Equal(t, "B", p.Letter)

	// huruf terpakai tidak muncul lagi di pool
	assert.NotContains(t, a.UnusedLetters(), "A")
	assert.NotContains(t, a.UnusedLetters(), "B")

	// reservasi ganda ditolak
	_, err = a.CreatePending("B", 30)
	assert.Error(t, err)
	_, err = a.CreatePending("A", 30)
	assert.Error(t, err)
}

func TestReleasePending_ReturnsLetterToPool(t *testing.T) {
	a := New(nil)
	p, err := a.CreatePending("C", 30)
	require.NoError(t, err)
	assert.NotContains(t, a.UnusedLetters(), "C")

	a.ReleasePending(p.PendingID)
	assert.Contains(t, a.UnusedLetters(), "C")
	assert.Empty(t, a.Pending())
}

// Skenario reconcile: selain "A" sudah ada, pending B dan C; commit sukses
// untuk B, gagal untuk C (tabrakan nama). Batch best-effort: B tetap jadi,
// C dilaporkan di daftar gagal.
func TestCommitPending_BestEffort(t *testing.T) {
	a := New([]string{"A"})
	pb, err := a.CreatePending("B", 30)
	require.NoError(t, err)
	_, err = a.CreatePending("C", 30)
	require.NoError(t, err)

	creator := &fakeCreator{failLetters: map[string]bool{"C": true}}
	res := a.CommitPending(context.Background(), creator)

	require.True(t, res.HasFailures())
	assert.Equal(t, []string{"C"}, res.FailedLetters())
	assert.Contains(t, res.Created, pb.PendingID)
	assert.Len(t, res.Created, 1)

	// yang sukses dilepas dari pool pending; yang gagal tetap pending
	require.Len(t, a.Pending(), 1)
	assert.Equal(t, "C", a.Pending()[0].Letter)
}

// Item gagal di-serialize apa adanya: identitas pending + alasan, tanpa
// field id section (id real hanya ada untuk yang sukses, di Created).
func TestBatchItem_FailureJSON(t *testing.T) {
	item := BatchItem{PendingID: "temp-C", Letter: "C", Error: "Nama section sudah dipakai"}

	raw, err := sonic.Marshal(item)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, sonic.Unmarshal(raw, &m))
	assert.Equal(t, "temp-C", m["pending_id"])
	assert.Equal(t, "C", m["letter"])
	assert.Equal(t, "Nama section sudah dipakai", m["error"])
	assert.NotContains(t, m, "section_id")
}

func TestCommitPending_AllSucceed(t *testing.T) {
	a := New(nil)
	_, err := a.CreatePending("A", 20)
	require.NoError(t, err)
	_, err = a.CreatePending("B", 25)
	require.NoError(t, err)

	creator := &fakeCreator{}
	res := a.CommitPending(context.Background(), creator)

	assert.False(t, res.HasFailures())
	assert.Len(t, res.Created, 2)
	assert.Empty(t, a.Pending())
	// urutan commit deterministik by huruf
	assert.Equal(t, []string{"A", "B"}, creator.created)
}
