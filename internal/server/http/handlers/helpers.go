package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/server/http/dto"
	"github.com/threadcart/backend/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated shopper identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.NewError(message))
}

// respondDomainError maps domain sentinels onto HTTP statuses with the
// uniform failure envelope.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		respondError(c, http.StatusConflict, "already exists")
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domainErrors.ErrForbidden):
		respondError(c, http.StatusForbidden, "account is blocked")
	case errors.Is(err, domainErrors.ErrPaymentVerificationFailed):
		respondError(c, http.StatusBadRequest, "payment verification failed")
	case errors.Is(err, domainErrors.ErrInvalidCode):
		respondError(c, http.StatusBadRequest, "invalid or expired code")
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, "unknown status")
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "status transition not allowed")
	case errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrMissingParameter),
		errors.Is(err, domainErrors.ErrMissingRequiredField):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domainErrors.ErrGatewayRejected):
		respondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, domainErrors.ErrGatewayUnavailable):
		respondError(c, http.StatusServiceUnavailable, "payment gateway unavailable")
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid identifier")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
