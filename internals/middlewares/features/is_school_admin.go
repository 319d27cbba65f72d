package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* ==========================
   Ekstraksi school_id dari request
========================== */

func extractSchoolID(c *fiber.Ctx) string {
	// 1) param (/:school_id)
	if v := strings.TrimSpace(c.Params("school_id")); v != "" {
		return v
	}
	// 2) query (?school_id=)
	if v := strings.TrimSpace(c.Query("school_id")); v != "" {
		return v
	}
	// 3) header (X-School-ID)
	if v := strings.TrimSpace(c.Get("X-School-ID")); v != "" {
		return v
	}
	return ""
}

// UseSchoolScope menaruh school_id dari path/query/header ke Locals
// supaya controller tidak perlu parsing ulang.
func UseSchoolScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractSchoolID(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusBadRequest, "school_id wajib ada di path")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "school_id tidak valid")
		}
		c.Locals(helperAuth.LocSchoolID, id.String())
		return c.Next()
	}
}

// RequirePathScopeMatch menolak token yang scope school-nya beda dengan path.
func RequirePathScopeMatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathID, _ := c.Locals(helperAuth.LocSchoolID).(string)
		tokenID, _ := c.Locals(helperAuth.LocActiveSchoolID).(string)
		if tokenID != "" && pathID != "" && !strings.EqualFold(tokenID, pathID) {
			return fiber.NewError(fiber.StatusForbidden, "school scope mismatch")
		}
		return c.Next()
	}
}

// IsSchoolAdmin memastikan user punya role admin untuk school pada scope aktif.
func IsSchoolAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		schoolID, err := helperAuth.GetSchoolIDFromLocals(c)
		if err != nil {
			return err
		}
		if !helperAuth.HasSchoolRole(c, schoolID, "admin") {
			return fiber.NewError(fiber.StatusForbidden, "Akses khusus admin sekolah")
		}
		return c.Next()
	}
}
