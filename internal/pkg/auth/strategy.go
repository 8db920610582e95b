package auth

import "time"

// Role distinguishes shopper tokens from back-office tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Strategy issues and validates bearer tokens scoped to a principal role.
type Strategy interface {
	IssueToken(subjectID int64, role Role) (string, error)
	ParseToken(token string) (int64, Role, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
