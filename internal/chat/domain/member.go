package domain

// Role workspace role
type Role string

const (
	// RoleSuperAdmin organization owner
	RoleSuperAdmin Role = "super_admin"
	// RoleAdmin may pin messages
	RoleAdmin Role = "admin"
	// RoleEmployee default role
	RoleEmployee Role = "employee"
)

// Member the fields of a user document chat needs
type Member struct {
	ID             string `bson:"_id" json:"id"`
	Name           string `bson:"name" json:"name"`
	Avatar         string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role           Role   `bson:"role" json:"role"`
	OrganizationID string `bson:"organization_id,omitempty" json:"organizationId,omitempty"`
}

// IsAdmin pin/unpin permission
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
