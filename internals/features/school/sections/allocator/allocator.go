// file: internals/features/school/sections/allocator/allocator.go
package allocator

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/sections/namespace"
)

// PendingSection: section yang diusulkan selama satu sesi edit, belum
// dipersist. ID sementara bentuknya "temp-<huruf>", hanya berlaku lokal.
type PendingSection struct {
	PendingID   string `json:"pending_id"`
	Letter      string `json:"letter"`
	MaxStudents int    `json:"max_students"`
}

// Allocator memegang namespace huruf satu sesi edit: huruf yang sudah
// dipersist + huruf yang direservasi pending. Tidak thread-safe; satu
// allocator per sesi (bounded oleh commit atau cancel).
type Allocator struct {
	existing map[string]bool
	pending  map[string]PendingSection // pendingID -> section
}

func New(existingNames []string) *Allocator {
	a := &Allocator{
		existing: make(map[string]bool, len(existingNames)),
		pending:  make(map[string]PendingSection),
	}
	for _, n := range existingNames {
		a.existing[strings.ToUpper(strings.TrimSpace(n))] = true
	}
	return a
}

// reservedNames: huruf terpakai = existing ∪ pending.
func (a *Allocator) reservedNames() []string {
	out := make([]string, 0, len(a.existing)+len(a.pending))
	for n := range a.existing {
		out = append(out, n)
	}
	for _, p := range a.pending {
		out = append(out, p.Letter)
	}
	return out
}

// UnusedLetters: huruf yang masih bebas untuk sesi ini.
func (a *Allocator) UnusedLetters() []string {
	return namespace.UnusedLetters(a.reservedNames())
}

// CreatePending mereservasi huruf tanpa kontak persistence. Huruf jadi
// tidak tersedia untuk alokasi pending berikutnya sampai direlease.
func (a *Allocator) CreatePending(letter string, maxStudents int) (PendingSection, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if err := namespace.ValidateName(letter, a.reservedNames()); err != nil {
		return PendingSection{}, err
	}
	p := PendingSection{
		PendingID:   "temp-" + letter,
		Letter:      letter,
		MaxStudents: maxStudents,
	}
	a.pending[p.PendingID] = p
	return p, nil
}

// ReleasePending mengembalikan huruf ke pool. Wajib dipanggil saat pending
// dibuang (mis. sesi edit dibatalkan) supaya huruf tidak hilang permanen.
func (a *Allocator) ReleasePending(pendingID string) {
	delete(a.pending, pendingID)
}

// Pending: snapshot terurut by huruf.
func (a *Allocator) Pending() []PendingSection {
	out := make([]PendingSection, 0, len(a.pending))
	for _, p := range a.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Letter < out[j].Letter })
	return out
}

/* ============================================
   Commit (best-effort batch)
============================================ */

// SectionCreator: kolaborator persistence. Interface supaya gampang di-mock.
type SectionCreator interface {
	CreateSection(ctx context.Context, letter string, maxStudents int) (uuid.UUID, error)
}

// BatchItem: pending section yang gagal di-commit. Yang sukses dilaporkan
// lewat BatchResult.Created, jadi di sini cukup identitas pending + alasan.
type BatchItem struct {
	PendingID string `json:"pending_id"`
	Letter    string `json:"letter"`
	Error     string `json:"error"`
}

// BatchResult: hasil commit batch. Batch ini BUKAN all-or-nothing.
type BatchResult struct {
	Created map[string]uuid.UUID // pendingID -> real section id
	Failed  []BatchItem
}

func (r BatchResult) HasFailures() bool { return len(r.Failed) > 0 }

// FailedLetters: huruf yang gagal dibuat, untuk dilaporkan ke caller.
func (r BatchResult) FailedLetters() []string {
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Letter)
	}
	sort.Strings(out)
	return out
}

// CommitPending membuat section real satu per satu. Kegagalan satu item
// tidak menghentikan sisanya: section adalah entitas independen, tabrakan
// nama di satu huruf tidak boleh memblokir saudaranya. Pending yang sukses
// dilepas dari pool; yang gagal tetap pending (caller yang memutuskan).
func (a *Allocator) CommitPending(ctx context.Context, creator SectionCreator) BatchResult {
	res := BatchResult{Created: make(map[string]uuid.UUID)}
	for _, p := range a.Pending() {
		id, err := creator.CreateSection(ctx, p.Letter, p.MaxStudents)
		if err != nil {
			msg := err.Error()
			if fe, ok := err.(*fiber.Error); ok {
				msg = fe.Message
			}
			log.Printf("[SectionAllocator] FAIL commit pending=%s letter=%s err=%v", p.PendingID, p.Letter, err)
			res.Failed = append(res.Failed, BatchItem{PendingID: p.PendingID, Letter: p.Letter, Error: msg})
			continue
		}
		log.Printf("[SectionAllocator] SUCCESS commit pending=%s letter=%s section_id=%s", p.PendingID, p.Letter, id)
		res.Created[p.PendingID] = id
		a.ReleasePending(p.PendingID)
	}
	return res
}
