package domain

import "time"

// UserRef is the canonical "who" value used everywhere downstream of the
// resolver. Name is nil when only the bare identifier is known.
type UserRef struct {
	ID   uint64
	Name *string
}

type OrgRole string

const (
	OrgRoleOwner   OrgRole = "owner"
	OrgRoleManager OrgRole = "manager"
	OrgRoleMember  OrgRole = "member"
)

type OrgUser struct {
	ID             uint64
	OrganisationID uint64
	Name           string
	// Role is descriptive only. Visibility is decided by hierarchy rank,
	// not by role.
	Role               OrgRole
	ReportingManagerID *uint64
	CreatedAt          time.Time
}

// Ref returns the canonical reference for an organisation member.
func (u OrgUser) Ref() UserRef {
	name := u.Name
	return UserRef{ID: u.ID, Name: &name}
}
