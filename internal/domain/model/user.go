package model

import "time"

// Cart maps product identifiers to quantities.
type Cart map[int64]int

// User describes registered shopper account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsVerified   bool
	IsBlocked    bool
	Cart         Cart
	CreatedAt    time.Time
}

// UserStats aggregates account numbers for the admin dashboard.
type UserStats struct {
	TotalUsers    int64
	VerifiedUsers int64
	RecentUsers   int64
}
