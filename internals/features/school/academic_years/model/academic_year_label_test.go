package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateLabel(t *testing.T) {
	assert.NoError(t, ValidateLabel("2026/2027"))

	assert.Error(t, ValidateLabel("2026-2027"))
	assert.Error(t, ValidateLabel("26/27"))
	assert.Error(t, ValidateLabel("2026/2028"), "tahun kedua harus +1")
	assert.Error(t, ValidateLabel("2026/2026"))
	assert.Error(t, ValidateLabel(""))
}

func TestNextLabel(t *testing.T) {
	assert.Equal(t, "2026/2027", NextLabel("2025/2026"))
	assert.Equal(t, "2027/2028", NextLabel("2026/2027"))
}

func TestCalendarLabel(t *testing.T) {
	// sebelum September → (Y-1)/Y
	assert.Equal(t, "2024/2025", CalendarLabel(time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)))
	// mulai September → Y/(Y+1)
	assert.Equal(t, "2025/2026", CalendarLabel(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
}
