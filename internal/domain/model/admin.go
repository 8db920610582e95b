package model

import "time"

// Permission names a single admin capability.
type Permission string

const (
	PermissionManageProducts Permission = "manageProducts"
	PermissionManageUsers    Permission = "manageUsers"
	PermissionManageOrders   Permission = "manageOrders"
)

// Permissions is the capability set granted to an admin account.
type Permissions struct {
	ManageProducts bool
	ManageUsers    bool
	ManageOrders   bool
}

// Has reports whether the capability flag is set.
func (p Permissions) Has(perm Permission) bool {
	switch perm {
	case PermissionManageProducts:
		return p.ManageProducts
	case PermissionManageUsers:
		return p.ManageUsers
	case PermissionManageOrders:
		return p.ManageOrders
	}
	return false
}

// Admin describes a back-office account with scoped capabilities.
type Admin struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Permissions  Permissions
	LastLogin    *time.Time
	CreatedAt    time.Time
}
