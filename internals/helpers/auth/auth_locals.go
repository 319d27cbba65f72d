// file: internals/helpers/auth/auth_locals.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals Keys (middleware should set these)
   ============================================ */

const (
	LocUserID         = "user_id"          // string | uuid
	LocSchoolID       = "school_id"        // string UUID (scope dari path)
	LocActiveSchoolID = "active_school_id" // string UUID (scope dari token)
	LocSchoolRoles    = "school_roles"     // []SchoolRolesEntry | []map[string]any
)

type SchoolRolesEntry struct {
	SchoolID uuid.UUID `json:"school_id"`
	Roles    []string  `json:"roles"`
}

// GetSchoolIDFromLocals membaca scope school aktif (path dulu, lalu token).
func GetSchoolIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	for _, key := range []string{LocSchoolID, LocActiveSchoolID} {
		if s, ok := c.Locals(key).(string); ok && strings.TrimSpace(s) != "" {
			id, err := uuid.Parse(strings.TrimSpace(s))
			if err != nil {
				return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id tidak valid")
			}
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "School context tidak ditemukan")
}

// GetUserIDFromLocals membaca user_id hasil hydrate middleware JWT.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	if s, ok := c.Locals(LocUserID).(string); ok && strings.TrimSpace(s) != "" {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}

// HasSchoolRole cek role user pada school tertentu dari claims di Locals.
func HasSchoolRole(c *fiber.Ctx, schoolID uuid.UUID, role string) bool {
	v := c.Locals(LocSchoolRoles)
	if v == nil {
		return false
	}
	role = strings.ToLower(strings.TrimSpace(role))
	switch entries := v.(type) {
	case []SchoolRolesEntry:
		for _, e := range entries {
			if e.SchoolID == schoolID && containsFold(e.Roles, role) {
				return true
			}
		}
	case []any:
		// bentuk mentah dari JWT claims: [{"school_id": "...", "roles": [...]}]
		for _, it := range entries {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			sid, _ := m["school_id"].(string)
			id, err := uuid.Parse(strings.TrimSpace(sid))
			if err != nil || id != schoolID {
				continue
			}
			if raw, ok := m["roles"].([]any); ok {
				for _, r := range raw {
					if s, ok := r.(string); ok && strings.EqualFold(strings.TrimSpace(s), role) {
						return true
					}
				}
			}
		}
	}
	return false
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), want) {
			return true
		}
	}
	return false
}
