package dto

import (
	"time"

	"github.com/threadcart/backend/internal/domain/model"
)

// UserResponse is a shopper account as served to the back office. The
// password hash never crosses the wire.
type UserResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	IsBlocked  bool      `json:"isBlocked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse maps a shopper account to its wire shape.
func ToUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		IsBlocked:  user.IsBlocked,
		CreatedAt:  user.CreatedAt,
	}
}

// UserListResponse is one page of shopper accounts.
type UserListResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
}

// UpdateUserFlagsRequest changes account moderation flags. Nil fields are
// left unchanged.
type UpdateUserFlagsRequest struct {
	IsVerified *bool `json:"isVerified"`
	IsBlocked  *bool `json:"isBlocked"`
}

// UserStatsResponse is the account dashboard aggregate.
type UserStatsResponse struct {
	Success       bool  `json:"success"`
	TotalUsers    int64 `json:"totalUsers"`
	VerifiedUsers int64 `json:"verifiedUsers"`
	RecentUsers   int64 `json:"recentUsers"`
}

// CartResponse is the shopper's cart keyed by product identifier.
type CartResponse struct {
	Success bool          `json:"success"`
	Cart    map[int64]int `json:"cart"`
}

// CartItemRequest names the product to add or remove.
type CartItemRequest struct {
	ProductID int64 `json:"productId"`
}
