// file: internals/features/school/sections/selection/selection.go
package selection

import "sort"

// Selection: working set section terpilih selama satu sesi compose/edit
// tahun ajaran. Semua mutasi lewat operasi bernama, bukan assignment lepas.
type Selection struct {
	ids map[string]bool
}

func New(initial ...string) *Selection {
	s := &Selection{ids: make(map[string]bool, len(initial))}
	for _, id := range initial {
		s.ids[id] = true
	}
	return s
}

// Toggle: tambah jika belum ada, hapus jika sudah ada.
func (s *Selection) Toggle(id string) {
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

// ToggleAll: kalau semua kandidat sudah terpilih → deselect kandidat itu saja;
// selain itu → union (pilihan di luar kandidat tidak disentuh).
func (s *Selection) ToggleAll(candidates []string) {
	all := len(candidates) > 0
	for _, id := range candidates {
		if !s.ids[id] {
			all = false
			break
		}
	}
	for _, id := range candidates {
		if all {
			delete(s.ids, id)
		} else {
			s.ids[id] = true
		}
	}
}

func (s *Selection) Has(id string) bool { return s.ids[id] }

func (s *Selection) Len() int { return len(s.ids) }

// IDs: snapshot terurut (deterministik untuk response & test).
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DiffResult: hasil perbandingan dua set pilihan.
type DiffResult struct {
	Added   []string
	Removed []string
}

// Diff membandingkan pilihan lama vs baru sehingga caller yang mengirim
// array pengganti utuh bisa diterjemahkan ke jalur apply inkremental yang
// sama dengan toggle manual.
func Diff(oldIDs, newIDs []string) DiffResult {
	oldSet := make(map[string]bool, len(oldIDs))
	for _, id := range oldIDs {
		oldSet[id] = true
	}
	newSet := make(map[string]bool, len(newIDs))
	for _, id := range newIDs {
		newSet[id] = true
	}

	var res DiffResult
	for id := range newSet {
		if !oldSet[id] {
			res.Added = append(res.Added, id)
		}
	}
	for id := range oldSet {
		if !newSet[id] {
			res.Removed = append(res.Removed, id)
		}
	}
	sort.Strings(res.Added)
	sort.Strings(res.Removed)
	return res
}
