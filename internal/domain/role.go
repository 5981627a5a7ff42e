package domain

// Staff roles checked by the role middleware against the JWT role claim.
const (
	RoleAdmin      = "admin"
	RoleEmployee   = "employee"
	RoleSuperAdmin = "super-admin"
)

// StaffRoles lists every role allowed on the CRM endpoints.
var StaffRoles = []string{RoleAdmin, RoleEmployee, RoleSuperAdmin}
