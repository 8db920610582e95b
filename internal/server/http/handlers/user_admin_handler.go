package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/backend/internal/server/http/dto"
)

// UserAdminHandler exposes shopper account moderation to the back office.
type UserAdminHandler struct {
	users UserAdminFacade
}

// NewUserAdminHandler constructs UserAdminHandler.
func NewUserAdminHandler(users UserAdminFacade) *UserAdminHandler {
	return &UserAdminHandler{users: users}
}

// List handles GET /api/admin/users.
func (h *UserAdminHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "pageSize", 10)

	users, total, err := h.users.Users(c.Request.Context(), page, pageSize)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response := dto.UserListResponse{
		Success: true,
		Users:   make([]dto.UserResponse, 0, len(users)),
		Total:   total,
		Page:    page,
	}
	for _, user := range users {
		response.Users = append(response.Users, dto.ToUserResponse(user))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/admin/users/:id.
func (h *UserAdminHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.User(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.ToUserResponse(*user)})
}

// UpdateFlags handles PATCH /api/admin/users/:id.
func (h *UserAdminHandler) UpdateFlags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.IsVerified == nil && req.IsBlocked == nil {
		respondError(c, http.StatusBadRequest, "no flags to update")
		return
	}

	if req.IsVerified != nil {
		if err := h.users.SetUserVerified(c.Request.Context(), id, *req.IsVerified); err != nil {
			respondDomainError(c, err)
			return
		}
	}
	if req.IsBlocked != nil {
		if err := h.users.SetUserBlocked(c.Request.Context(), id, *req.IsBlocked); err != nil {
			respondDomainError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete handles DELETE /api/admin/users/:id.
func (h *UserAdminHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Stats handles GET /api/admin/users/stats.
func (h *UserAdminHandler) Stats(c *gin.Context) {
	stats, err := h.users.UserStats(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserStatsResponse{
		Success:       true,
		TotalUsers:    stats.TotalUsers,
		VerifiedUsers: stats.VerifiedUsers,
		RecentUsers:   stats.RecentUsers,
	})
}
