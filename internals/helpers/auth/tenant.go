// file: internals/helpers/auth/tenant.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Nama locals yang diisi middleware AuthJWT
const (
	LocUserID         = "user_id"
	LocCompanyID      = "company_id"
	LocRoles          = "roles"
	LocScopeSchoolIDs = "scope_school_ids"
	LocScopeBranchIDs = "scope_branch_ids"
)

/* ============================================
   Tenant (company) context
============================================ */

// GetCompanyID mengambil tenant aktif dari token.
// Semua query entitas WAJIB di-scope dengan ID ini.
func GetCompanyID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocCompanyID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Konteks company tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "company_id pada token tidak valid")
	}
	return id, nil
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id pada token tidak valid")
	}
	return id, nil
}

/* ============================================
   Roles
============================================ */

func GetRoles(c *fiber.Ctx) []string {
	switch v := c.Locals(LocRoles).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func HasAnyRole(c *fiber.Ctx, allowed []string) bool {
	have := GetRoles(c)
	for _, a := range allowed {
		for _, h := range have {
			if strings.EqualFold(a, h) {
				return true
			}
		}
	}
	return false
}

/* ============================================
   Scope filter (role-based school/branch restriction)
============================================ */

// GetScopeSchoolIDs mengembalikan daftar school yang boleh diakses user.
// restricted=false artinya user boleh mengakses semua school di tenant-nya (admin ke atas).
func GetScopeSchoolIDs(c *fiber.Ctx) (ids []uuid.UUID, restricted bool) {
	return scopeIDs(c, LocScopeSchoolIDs)
}

func GetScopeBranchIDs(c *fiber.Ctx) (ids []uuid.UUID, restricted bool) {
	return scopeIDs(c, LocScopeBranchIDs)
}

func scopeIDs(c *fiber.Ctx, key string) ([]uuid.UUID, bool) {
	v := c.Locals(key)
	if v == nil {
		return nil, false
	}
	raw, ok := v.([]string)
	if !ok {
		if anyList, ok2 := v.([]any); ok2 {
			raw = make([]string, 0, len(anyList))
			for _, it := range anyList {
				if s, ok3 := it.(string); ok3 {
					raw = append(raw, s)
				}
			}
		} else {
			return nil, false
		}
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(strings.TrimSpace(s)); err == nil {
			out = append(out, id)
		}
	}
	return out, true
}

// ScopeAllowsSchool cek apakah user boleh menyentuh school tertentu.
func ScopeAllowsSchool(c *fiber.Ctx, schoolID uuid.UUID) bool {
	ids, restricted := GetScopeSchoolIDs(c)
	if !restricted {
		return true
	}
	for _, id := range ids {
		if id == schoolID {
			return true
		}
	}
	return false
}
