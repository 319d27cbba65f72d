// file: internals/features/school/academic_years/model/academic_year_label.go
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

var labelRe = regexp.MustCompile(`^\d{4}/\d{4}$`)

// ValidateLabel: format "YYYY/YYYY" dan tahun kedua = tahun pertama + 1.
func ValidateLabel(label string) error {
	if !labelRe.MatchString(label) {
		return fiber.NewError(fiber.StatusBadRequest, "Format tahun ajaran harus YYYY/YYYY")
	}
	first, _ := strconv.Atoi(label[:4])
	second, _ := strconv.Atoi(label[5:])
	if second != first+1 {
		return fiber.NewError(fiber.StatusBadRequest, "Tahun kedua harus tahun pertama + 1")
	}
	return nil
}

// NextLabel: "2025/2026" -> "2026/2027". Label diasumsikan sudah valid.
func NextLabel(label string) string {
	first, _ := strconv.Atoi(label[:4])
	return fmt.Sprintf("%04d/%04d", first+1, first+2)
}

// CalendarLabel: label tahun ajaran berjalan menurut kalender.
// Tahun ajaran berganti tiap 1 September: sebelum September → (Y-1)/Y,
// mulai September → Y/(Y+1).
func CalendarLabel(today time.Time) string {
	y := today.Year()
	if today.Month() < time.September {
		return fmt.Sprintf("%04d/%04d", y-1, y)
	}
	return fmt.Sprintf("%04d/%04d", y, y+1)
}
