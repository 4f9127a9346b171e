package domain

import "github.com/google/uuid"

const RoleAdmin = "admin"

// Profile is the customer account data owned by the auth collaborator
type Profile struct {
	ID       uuid.UUID
	Email    string
	FullName *string
	Role     string
}

// IsAdmin returns true if the profile has administrator rights
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
