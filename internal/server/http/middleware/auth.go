package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	pkgAuth "github.com/threadcart/backend/internal/pkg/auth"
	"github.com/threadcart/backend/internal/server/http/dto"
)

const (
	// UserIDContextKey is a gin context key for the authenticated shopper.
	UserIDContextKey = "userID"
	// AdminContextKey is a gin context key for the authenticated admin account.
	AdminContextKey = "admin"
	authCookieName  = "threadcart_token"
)

// TokenParser validates bearer tokens and returns the principal.
type TokenParser interface {
	ParseToken(token string) (int64, pkgAuth.Role, error)
}

// AdminResolver loads admin accounts for permission checks.
type AdminResolver interface {
	AdminByID(ctx context.Context, id int64) (*model.Admin, error)
}

// UserAuthRequired ensures the request carries a valid shopper token.
func UserAuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortWith(c, http.StatusUnauthorized, "authentication required")
			return
		}

		subjectID, role, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abortWith(c, http.StatusUnauthorized, "invalid token")
				return
			}
			abortWith(c, http.StatusInternalServerError, "internal error")
			return
		}
		if role != pkgAuth.RoleUser {
			abortWith(c, http.StatusForbidden, "user token required")
			return
		}

		c.Set(UserIDContextKey, subjectID)
		c.Next()
	}
}

// AdminAuthRequired validates the token, checks the admin role and loads
// the account so permission middleware can inspect its capabilities.
func AdminAuthRequired(parser TokenParser, admins AdminResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortWith(c, http.StatusUnauthorized, "authentication required")
			return
		}

		subjectID, role, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abortWith(c, http.StatusUnauthorized, "invalid token")
				return
			}
			abortWith(c, http.StatusInternalServerError, "internal error")
			return
		}
		if role != pkgAuth.RoleAdmin {
			abortWith(c, http.StatusForbidden, "admin token required")
			return
		}

		admin, err := admins.AdminByID(c.Request.Context(), subjectID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				abortWith(c, http.StatusUnauthorized, "unknown admin account")
				return
			}
			abortWith(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Set(AdminContextKey, admin)
		c.Next()
	}
}

// RequirePermission gates a route group on a single admin capability. It
// must run after AdminAuthRequired.
func RequirePermission(perm model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(AdminContextKey)
		if !ok {
			abortWith(c, http.StatusUnauthorized, "authentication required")
			return
		}
		admin, ok := val.(*model.Admin)
		if !ok || !admin.Permissions.Has(perm) {
			abortWith(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.NewError(message))
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
