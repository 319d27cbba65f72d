// file: internals/features/school/sections/namespace/namespace.go
package namespace

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Namespace huruf section: A..Z, dipakai bersama oleh section real & pending.

const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// UnusedLetters mengembalikan {A..Z} \ existing, urut alfabet.
// Murni, tanpa side effect; existing di-normalisasi ke upper-case.
func UnusedLetters(existing []string) []string {
	used := make(map[string]bool, len(existing))
	for _, name := range existing {
		used[strings.ToUpper(strings.TrimSpace(name))] = true
	}
	out := make([]string, 0, 26)
	for _, r := range Letters {
		letter := string(r)
		if !used[letter] {
			out = append(out, letter)
		}
	}
	sort.Strings(out)
	return out
}

// ValidateName menolak nama yang bukan satu huruf A-Z atau sudah dipakai
// (section real maupun pending sama-sama mereservasi huruf).
func ValidateName(name string, existing []string) error {
	name = strings.TrimSpace(name)
	if len(name) != 1 || name[0] < 'A' || name[0] > 'Z' {
		return fiber.NewError(fiber.StatusBadRequest, "Nama section harus satu huruf A-Z")
	}
	for _, taken := range existing {
		if strings.EqualFold(strings.TrimSpace(taken), name) {
			return fiber.NewError(fiber.StatusConflict, "Nama section sudah dipakai")
		}
	}
	return nil
}
