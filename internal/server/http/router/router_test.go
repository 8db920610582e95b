package router_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/pkg/auth"
	"github.com/threadcart/backend/internal/server/http/router"
	"github.com/threadcart/backend/internal/test"
)

type tokenParserStub struct{}

// ParseToken understands tokens of the form "<role>:<id>".
func (tokenParserStub) ParseToken(token string) (int64, auth.Role, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return 0, "", auth.ErrInvalidToken
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", auth.ErrInvalidToken
	}
	return id, auth.Role(parts[0]), nil
}

type adminResolverStub struct {
	admin *model.Admin
}

func (s adminResolverStub) AdminByID(ctx context.Context, id int64) (*model.Admin, error) {
	return s.admin, nil
}

func newTestRouter(admin *model.Admin) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return router.Setup(test.ShopFacadeStub{}, tokenParserStub{}, adminResolverStub{admin: admin}, logger)
}

func serve(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestPublicCatalogRoutes(t *testing.T) {
	engine := newTestRouter(nil)

	for _, path := range []string{
		"/api/products",
		"/api/products/new-collection",
		"/api/products/popular-women",
		"/api/products/related?category=men",
	} {
		if rec := serve(engine, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestPaymentRoutesRequireUserToken(t *testing.T) {
	engine := newTestRouter(nil)

	if rec := serve(engine, http.MethodPost, "/api/payment/create-order", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create-order = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec := serve(engine, http.MethodPost, "/api/payment/create-order", "admin:1"); rec.Code != http.StatusForbidden {
		t.Fatalf("admin token on user route = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCartRoutesRequireUserToken(t *testing.T) {
	engine := newTestRouter(nil)

	if rec := serve(engine, http.MethodGet, "/api/user/cart", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous cart = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec := serve(engine, http.MethodGet, "/api/user/cart", "user:7"); rec.Code != http.StatusOK {
		t.Fatalf("authed cart = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAdminRoutesEnforceCapabilities(t *testing.T) {
	ordersOnly := &model.Admin{
		ID:          1,
		Username:    "ops",
		Permissions: model.Permissions{ManageOrders: true},
	}
	engine := newTestRouter(ordersOnly)

	if rec := serve(engine, http.MethodGet, "/api/admin/orders", "admin:1"); rec.Code != http.StatusOK {
		t.Fatalf("orders with manage-orders = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := serve(engine, http.MethodGet, "/api/admin/users", "admin:1"); rec.Code != http.StatusForbidden {
		t.Fatalf("users without manage-users = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := serve(engine, http.MethodGet, "/api/admin/orders", "user:1"); rec.Code != http.StatusForbidden {
		t.Fatalf("user token on admin route = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := serve(engine, http.MethodGet, "/api/admin/orders", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous admin route = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestUnknownRoute(t *testing.T) {
	engine := newTestRouter(nil)

	if rec := serve(engine, http.MethodGet, "/api/unknown", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
