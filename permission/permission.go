package permission

// Permission names one grantable capability. The set below is closed: new
// permissions are appended to the vocabulary, existing strings never change,
// so stored role-permission mappings stay valid.
type Permission string

const (
	// UsersRead is an exported constant or variable used by the permission vocabulary.
	UsersRead Permission = "users:read"
	// UsersWrite is an exported constant or variable used by the permission vocabulary.
	UsersWrite Permission = "users:write"
	// SkillsRead is an exported constant or variable used by the permission vocabulary.
	SkillsRead Permission = "skills:read"
	// SkillsWrite is an exported constant or variable used by the permission vocabulary.
	SkillsWrite Permission = "skills:write"
	// SessionsBook is an exported constant or variable used by the permission vocabulary.
	SessionsBook Permission = "sessions:book"
	// SessionsManage is an exported constant or variable used by the permission vocabulary.
	SessionsManage Permission = "sessions:manage"
	// ReviewsWrite is an exported constant or variable used by the permission vocabulary.
	ReviewsWrite Permission = "reviews:write"
	// ReviewsModerate is an exported constant or variable used by the permission vocabulary.
	ReviewsModerate Permission = "reviews:moderate"
	// ReportsManage is an exported constant or variable used by the permission vocabulary.
	ReportsManage Permission = "reports:manage"
	// SystemManageRoles is an exported constant or variable used by the permission vocabulary.
	SystemManageRoles Permission = "system:manage_roles"
	// SystemAdmin is an exported constant or variable used by the permission vocabulary.
	SystemAdmin Permission = "system:admin"
)

// Role names one of the four application roles.
type Role string

const (
	// RoleUser is an exported constant or variable used by the permission vocabulary.
	RoleUser Role = "User"
	// RoleModerator is an exported constant or variable used by the permission vocabulary.
	RoleModerator Role = "Moderator"
	// RoleAdmin is an exported constant or variable used by the permission vocabulary.
	RoleAdmin Role = "Admin"
	// RoleSuperAdmin is an exported constant or variable used by the permission vocabulary.
	RoleSuperAdmin Role = "SuperAdmin"
)

// All lists every permission in registration order. The order is append-only;
// bit positions in role masks follow it.
func All() []Permission {
	out := make([]Permission, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Roles lists the four role names.
func Roles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin, RoleSuperAdmin}
}

var vocabulary = []Permission{
	UsersRead,
	UsersWrite,
	SkillsRead,
	SkillsWrite,
	SessionsBook,
	SessionsManage,
	ReviewsWrite,
	ReviewsModerate,
	ReportsManage,
	SystemManageRoles,
	SystemAdmin,
}

var rolePermissions = map[Role][]Permission{
	RoleUser: {
		UsersRead,
		SkillsRead,
		SkillsWrite,
		SessionsBook,
		ReviewsWrite,
	},
	RoleModerator: {
		UsersRead,
		SkillsRead,
		SkillsWrite,
		SessionsBook,
		ReviewsWrite,
		ReviewsModerate,
		ReportsManage,
	},
	RoleAdmin: {
		UsersRead,
		UsersWrite,
		SkillsRead,
		SkillsWrite,
		SessionsBook,
		SessionsManage,
		ReviewsWrite,
		ReviewsModerate,
		ReportsManage,
		SystemManageRoles,
	},
	// SuperAdmin carries the reserved root bit and passes every check.
	RoleSuperAdmin: {
		SystemAdmin,
	},
}
