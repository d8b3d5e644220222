package constants

const (
	RoleSuperAdmin    = "SUPER_ADMIN"
	RolePlatformAdmin = "PLATFORM_ADMIN"
	RoleAdmin         = "ADMIN"
	RoleAccountant    = "ACCOUNTANT"
	RoleTeacher       = "TEACHER"
	RoleStudent       = "STUDENT"
)

// AdminTierRoles: role yang boleh menyetujui diskon di atas threshold.
var AdminTierRoles = map[string]struct{}{
	RoleSuperAdmin:    {},
	RolePlatformAdmin: {},
	RoleAdmin:         {},
}

func IsAdminTier(role string) bool {
	_, ok := AdminTierRoles[role]
	return ok
}
