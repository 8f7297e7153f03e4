package models

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of marketplace roles. A user may hold several at
// once but drives the product through exactly one active role.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleDriver Role = "driver"
)

var ErrRoleNotHeld = errors.New("role not held by user")

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleDriver:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsWorker reports whether the role supplies services (and therefore has a
// meaningful availability status).
func (r Role) IsWorker() bool {
	return r == RoleSeller || r == RoleDriver
}

type Availability string

const (
	AvailabilityOnline  Availability = "online"
	AvailabilityOffline Availability = "offline"
	AvailabilityBusy    Availability = "busy"
)

func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case AvailabilityOnline, AvailabilityOffline, AvailabilityBusy:
		return Availability(s), nil
	}
	return "", fmt.Errorf("unknown availability %q", s)
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusPending   UserStatus = "pending"
)

type User struct {
	ID           string
	Email        string
	Phone        *string
	PasswordHash []byte
	DisplayName  string
	Roles        []Role
	ActiveRole   Role
	Availability Availability
	TrustScore   int
	Status       UserStatus
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SwitchRole changes the active role. The active role must stay a member of
// the held role set, so a non-member target is rejected without mutating
// anything.
func (u *User) SwitchRole(role Role) error {
	if !u.HasRole(role) {
		return ErrRoleNotHeld
	}
	u.ActiveRole = role
	return nil
}

// EnrollRole adds a role to the held set. Enrolling an already held role is
// a no-op.
func (u *User) EnrollRole(role Role) {
	if u.HasRole(role) {
		return
	}
	u.Roles = append(u.Roles, role)
}

// CanAccess implements the route guard predicate. No requirements means
// anyone passes, anonymous callers fail any requirement, and otherwise the
// requirement must intersect the caller's full role set — not just the
// active role, so a seller browsing as a buyer keeps seller access.
func CanAccess(u *User, required []Role) bool {
	if len(required) == 0 {
		return true
	}
	if u == nil {
		return false
	}
	for _, r := range required {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
