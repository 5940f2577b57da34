package constants

import "fmt"

// Role dasar pada token
const (
	RoleUser       = "user"
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
	RoleSuperadmin = "superadmin"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyOwnersCanAccess = "❌ Hanya owner yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "❌ Hanya staff ke atas yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleStaff,
		RoleAdmin,
		RoleOwner,
		RoleSuperadmin,
	}

	StaffAndAbove = []string{
		RoleStaff,
		RoleAdmin,
		RoleOwner,
		RoleSuperadmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
		RoleSuperadmin,
	}

	OwnerAndAbove = []string{
		RoleOwner,
		RoleSuperadmin,
	}
)
