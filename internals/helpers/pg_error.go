// file: internals/helpers/pg_error.go
package helper

import (
	"errors"
	"net/http"
)

// --- PG error mapping ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

// MapPGError menerjemahkan error Postgres ke status + pesan.
// 23P01 = exclusion_violation, 23503 = foreign_key_violation, 23505 = unique_violation
func MapPGError(err error) (int, string) {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23P01":
			return http.StatusConflict, "Bentrok data: range overlap."
		case "23503":
			return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
		case "23505":
			return http.StatusConflict, "Data duplikat (unique violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

// IsUniqueViolation: cek pelanggaran unique Postgres (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
