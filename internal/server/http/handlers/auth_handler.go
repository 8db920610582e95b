package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/server/http/dto"
	"github.com/threadcart/backend/internal/server/http/middleware"
)

// AuthHandler processes shopper registration, login and code flows.
type AuthHandler struct {
	auth         AuthFacade
	verification VerificationFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(auth AuthFacade, verification VerificationFacade) *AuthHandler {
	return &AuthHandler{auth: auth, verification: verification}
}

// Signup handles POST /api/user/register.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	if _, err := h.auth.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		respondDomainError(c, err)
		return
	}

	_, token, err := h.auth.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token})
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	_, token, err := h.auth.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token})
}

// VerifyEmail handles POST /api/user/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.verification.ConfirmEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResendCode handles POST /api/user/resend-code.
func (h *AuthHandler) ResendCode(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.verification.SendVerificationCode(c.Request.Context(), req.Email); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ForgotPassword handles POST /api/user/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.verification.SendPasswordResetCode(c.Request.Context(), req.Email); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResetPassword handles POST /api/user/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.verification.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	_, token, err := h.auth.LoginAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, Token: token})
}

// AdminRegister handles POST /api/admin/register. It runs behind the
// manage-users capability.
func (h *AuthHandler) AdminRegister(c *gin.Context) {
	var req dto.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "malformed request body")
		return
	}

	perms := model.Permissions{
		ManageProducts: req.Permissions.ManageProducts,
		ManageUsers:    req.Permissions.ManageUsers,
		ManageOrders:   req.Permissions.ManageOrders,
	}
	admin, err := h.auth.RegisterAdmin(c.Request.Context(), req.Username, req.Email, req.Password, req.Role, perms)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": admin.ID})
}
