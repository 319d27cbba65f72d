// file: internals/features/school/academic_years/registry/registry.go
package registry

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	yModel "sekolahku_backend/internals/features/school/academic_years/model"
)

// Registry: pandangan in-memory seluruh tahun ajaran satu sekolah,
// dipartisi per status. Snapshot, bukan sumber kebenaran — precondition
// transisi tetap dicek di lapisan persistence (snapshot bisa basi).
type Registry struct {
	current  *yModel.AcademicYearModel
	planned  []yModel.AcademicYearModel
	archived []yModel.AcademicYearModel
}

func New() *Registry { return &Registry{} }

// Load mengganti seluruh pandangan registry: partisi ke current (maksimal
// satu active), planned & archived (urut label menurun). Lebih dari satu
// active berarti data korup → ditolak, snapshot lama dipertahankan.
func (r *Registry) Load(years []yModel.AcademicYearModel) error {
	var current *yModel.AcademicYearModel
	var planned, archived []yModel.AcademicYearModel

	for i := range years {
		y := years[i]
		switch y.AcademicYearStatus {
		case yModel.AcademicYearStatusActive:
			if current != nil {
				return fiber.NewError(fiber.StatusConflict, "Lebih dari satu tahun ajaran aktif")
			}
			current = &y
		case yModel.AcademicYearStatusPlanned:
			planned = append(planned, y)
		case yModel.AcademicYearStatusArchived:
			archived = append(archived, y)
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Status tahun ajaran tidak dikenal: "+y.AcademicYearStatus)
		}
	}

	byLabelDesc := func(list []yModel.AcademicYearModel) {
		sort.Slice(list, func(i, j int) bool {
			return list[i].AcademicYearLabel > list[j].AcademicYearLabel
		})
	}
	byLabelDesc(planned)
	byLabelDesc(archived)

	r.current = current
	r.planned = planned
	r.archived = archived
	return nil
}

// Current: tahun ajaran aktif, atau nil.
func (r *Registry) Current() *yModel.AcademicYearModel { return r.current }

func (r *Registry) Planned() []yModel.AcademicYearModel { return r.planned }

func (r *Registry) Archived() []yModel.AcademicYearModel { return r.archived }

// SuggestNextLabel mengusulkan label untuk tahun ajaran baru.
// Tanpa tahun aktif → label kalender hari ini. Kalau tahun aktif sudah
// memegang label kalender, usulkan label berikutnya (duplikat ditolak saat
// create) — kasus umum: merencanakan tahun depan selagi tahun ini jalan.
func SuggestNextLabel(current *yModel.AcademicYearModel, today time.Time) string {
	calendar := yModel.CalendarLabel(today)
	if current != nil && current.AcademicYearLabel == calendar {
		return yModel.NextLabel(calendar)
	}
	return calendar
}
