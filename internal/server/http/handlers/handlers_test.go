package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/server/http/handlers"
	"github.com/threadcart/backend/internal/server/http/middleware"
	"github.com/threadcart/backend/internal/test"
	"github.com/threadcart/backend/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func assertEnvelopeError(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantMessage string) {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, wantStatus, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if success, _ := body["success"].(bool); success {
		t.Fatal("error response reports success")
	}
	if msg, _ := body["error"].(string); msg != wantMessage {
		t.Fatalf("error message = %q, want %q", msg, wantMessage)
	}
}

func authedEngine(userID int64) *gin.Engine {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
	})
	return engine
}

func TestSignupIssuesToken(t *testing.T) {
	facade := test.ShopFacadeStub{
		AuthFacadeStub: test.AuthFacadeStub{
			LoginUserFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
				return &model.User{ID: 7, Email: email}, "issued-token", nil
			},
		},
	}
	handler := handlers.NewAuthHandler(facade, facade)

	engine := gin.New()
	engine.POST("/api/user/register", handler.Signup)

	rec := performJSON(t, engine, http.MethodPost, "/api/user/register", map[string]string{
		"name":     "Maya",
		"email":    "maya@example.com",
		"password": "secret",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["token"] != "issued-token" {
		t.Fatalf("token = %v, want issued-token", body["token"])
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected auth cookie to be set")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	facade := test.ShopFacadeStub{
		AuthFacadeStub: test.AuthFacadeStub{
			RegisterUserFn: func(ctx context.Context, name, email, password string) (*model.User, error) {
				return nil, domainErrors.ErrAlreadyExists
			},
		},
	}
	handler := handlers.NewAuthHandler(facade, facade)

	engine := gin.New()
	engine.POST("/api/user/register", handler.Signup)

	rec := performJSON(t, engine, http.MethodPost, "/api/user/register", map[string]string{
		"name":     "Maya",
		"email":    "maya@example.com",
		"password": "secret",
	})
	assertEnvelopeError(t, rec, http.StatusConflict, "already exists")
}

func TestLoginInvalidCredentials(t *testing.T) {
	facade := test.ShopFacadeStub{
		AuthFacadeStub: test.AuthFacadeStub{
			LoginUserFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrInvalidCredentials
			},
		},
	}
	handler := handlers.NewAuthHandler(facade, facade)

	engine := gin.New()
	engine.POST("/api/user/login", handler.Login)

	rec := performJSON(t, engine, http.MethodPost, "/api/user/login", map[string]string{
		"email":    "maya@example.com",
		"password": "wrong",
	})
	assertEnvelopeError(t, rec, http.StatusUnauthorized, "invalid credentials")
}

func TestLoginBlockedAccount(t *testing.T) {
	facade := test.ShopFacadeStub{
		AuthFacadeStub: test.AuthFacadeStub{
			LoginUserFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
				return nil, "", domainErrors.ErrForbidden
			},
		},
	}
	handler := handlers.NewAuthHandler(facade, facade)

	engine := gin.New()
	engine.POST("/api/user/login", handler.Login)

	rec := performJSON(t, engine, http.MethodPost, "/api/user/login", map[string]string{
		"email":    "maya@example.com",
		"password": "secret",
	})
	assertEnvelopeError(t, rec, http.StatusForbidden, "account is blocked")
}

func TestVerifyEmailInvalidCode(t *testing.T) {
	facade := test.ShopFacadeStub{
		VerificationFacadeStub: test.VerificationFacadeStub{
			ConfirmEmailFn: func(ctx context.Context, email, code string) error {
				return domainErrors.ErrInvalidCode
			},
		},
	}
	handler := handlers.NewAuthHandler(facade, facade)

	engine := gin.New()
	engine.POST("/api/user/verify-email", handler.VerifyEmail)

	rec := performJSON(t, engine, http.MethodPost, "/api/user/verify-email", map[string]string{
		"email": "maya@example.com",
		"code":  "000000",
	})
	assertEnvelopeError(t, rec, http.StatusBadRequest, "invalid or expired code")
}

func TestCreatePaymentOrderResponse(t *testing.T) {
	facade := test.ShopFacadeStub{
		PaymentFacadeStub: test.PaymentFacadeStub{
			InitiateFn: func(ctx context.Context, amount decimal.Decimal, currency, receipt string, notes map[string]string) (*usecase.PaymentIntent, error) {
				return &usecase.PaymentIntent{
					GatewayOrderID: "order_test42",
					AmountMinor:    49950,
					Currency:       currency,
					Receipt:        receipt,
					DisplayKey:     "key_public",
				}, nil
			},
		},
	}
	handler := handlers.NewPaymentHandler(facade)

	engine := authedEngine(7)
	engine.POST("/api/payment/create-order", handler.CreateOrder)

	rec := performJSON(t, engine, http.MethodPost, "/api/payment/create-order", map[string]any{
		"amount":   "499.50",
		"currency": "INR",
		"receipt":  "rcpt-1",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["gatewayOrderId"] != "order_test42" {
		t.Fatalf("gatewayOrderId = %v", body["gatewayOrderId"])
	}
	if body["keyId"] != "key_public" {
		t.Fatalf("keyId = %v", body["keyId"])
	}
	if body["amount"] != float64(49950) {
		t.Fatalf("amount = %v, want 49950", body["amount"])
	}
}

func TestVerifyPaymentFailure(t *testing.T) {
	facade := test.ShopFacadeStub{
		PaymentFacadeStub: test.PaymentFacadeStub{
			VerifyFn: func(c usecase.Confirmation) error {
				return domainErrors.ErrPaymentVerificationFailed
			},
		},
	}
	handler := handlers.NewPaymentHandler(facade)

	engine := authedEngine(7)
	engine.POST("/api/payment/verify", handler.Verify)

	rec := performJSON(t, engine, http.MethodPost, "/api/payment/verify", map[string]string{
		"gatewayOrderId":   "order_1",
		"gatewayPaymentId": "pay_1",
		"gatewaySignature": "bad",
	})
	assertEnvelopeError(t, rec, http.StatusBadRequest, "payment verification failed")
}

func TestConfirmPaymentUsesAuthenticatedUser(t *testing.T) {
	var captured usecase.OrderInput
	facade := test.ShopFacadeStub{
		PaymentFacadeStub: test.PaymentFacadeStub{
			ConfirmFn: func(ctx context.Context, c usecase.Confirmation, input usecase.OrderInput) (*model.Order, error) {
				captured = input
				return &model.Order{
					ID:          uuid.New(),
					UserID:      input.UserID,
					Items:       input.Items,
					TotalAmount: input.TotalAmount,
					Payment: model.PaymentInfo{
						GatewayOrderID:   c.GatewayOrderID,
						GatewayPaymentID: c.GatewayPaymentID,
						GatewaySignature: c.GatewaySignature,
						Status:           model.PaymentStatusCompleted,
					},
					Status: model.OrderStatusProcessing,
				}, nil
			},
		},
	}
	handler := handlers.NewPaymentHandler(facade)

	engine := authedEngine(42)
	engine.POST("/api/payment/confirm", handler.Confirm)

	rec := performJSON(t, engine, http.MethodPost, "/api/payment/confirm", map[string]any{
		"gatewayOrderId":   "order_1",
		"gatewayPaymentId": "pay_1",
		"gatewaySignature": "c0ffee",
		"items": []map[string]any{
			{"productId": 3, "quantity": 2, "unitPrice": "100.00"},
		},
		"totalAmount": "200.00",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if captured.UserID != 42 {
		t.Fatalf("order input user = %d, want 42", captured.UserID)
	}
	if strings.Contains(rec.Body.String(), "c0ffee") {
		t.Fatal("gateway signature leaked into the response body")
	}
	body := decodeBody(t, rec)
	order, _ := body["order"].(map[string]any)
	if order == nil {
		t.Fatalf("missing order in response: %s", rec.Body.String())
	}
	if order["userId"] != float64(42) {
		t.Fatalf("order userId = %v, want 42", order["userId"])
	}
}

func TestOrderListEnvelope(t *testing.T) {
	facade := test.ShopFacadeStub{
		OrderAdminFacadeStub: test.OrderAdminFacadeStub{
			OrdersFn: func(ctx context.Context, status, sortBy, direction string, page, pageSize int) ([]model.Order, int64, error) {
				if status != "processing" || sortBy != "date" || direction != "desc" {
					t.Fatalf("filters not forwarded: %q %q %q", status, sortBy, direction)
				}
				if page != 2 || pageSize != 5 {
					t.Fatalf("pagination not forwarded: page=%d pageSize=%d", page, pageSize)
				}
				return []model.Order{{ID: uuid.New(), Status: model.OrderStatusProcessing}}, 11, nil
			},
		},
	}
	handler := handlers.NewOrderAdminHandler(facade)

	engine := gin.New()
	engine.GET("/api/admin/orders", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders?status=processing&sortBy=date&direction=desc&page=2&pageSize=5", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["total"] != float64(11) {
		t.Fatalf("total = %v, want 11", body["total"])
	}
	if body["page"] != float64(2) {
		t.Fatalf("page = %v, want 2", body["page"])
	}
}

func TestUpdateOrderStatusErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"unknown status", domainErrors.ErrInvalidStatus, http.StatusBadRequest, "unknown status"},
		{"illegal transition", domainErrors.ErrInvalidTransition, http.StatusConflict, "status transition not allowed"},
		{"missing order", domainErrors.ErrNotFound, http.StatusNotFound, "not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			facade := test.ShopFacadeStub{
				OrderAdminFacadeStub: test.OrderAdminFacadeStub{
					UpdateStatusFn: func(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
						return nil, tc.err
					},
				},
			}
			handler := handlers.NewOrderAdminHandler(facade)

			engine := gin.New()
			engine.PUT("/api/admin/orders/:id/status", handler.UpdateStatus)

			path := "/api/admin/orders/" + uuid.NewString() + "/status"
			rec := performJSON(t, engine, http.MethodPut, path, map[string]string{"status": "shipped"})
			assertEnvelopeError(t, rec, tc.wantStatus, tc.wantMessage)
		})
	}
}

func TestUpdateOrderStatusRejectsMalformedID(t *testing.T) {
	handler := handlers.NewOrderAdminHandler(test.ShopFacadeStub{})

	engine := gin.New()
	engine.PUT("/api/admin/orders/:id/status", handler.UpdateStatus)

	rec := performJSON(t, engine, http.MethodPut, "/api/admin/orders/not-a-uuid/status", map[string]string{"status": "shipped"})
	assertEnvelopeError(t, rec, http.StatusBadRequest, "invalid order identifier")
}

func TestOrderStatsResponse(t *testing.T) {
	facade := test.ShopFacadeStub{
		OrderAdminFacadeStub: test.OrderAdminFacadeStub{
			StatsFn: func(ctx context.Context, windowDays int) (*model.OrderStats, error) {
				if windowDays != 7 {
					t.Fatalf("windowDays = %d, want 7", windowDays)
				}
				return &model.OrderStats{
					TotalOrders: 3,
					CountsByStatus: map[model.OrderStatus]int64{
						model.OrderStatusProcessing: 2,
						model.OrderStatusDelivered:  1,
					},
					TotalRevenue: decimal.NewFromInt(350),
				}, nil
			},
		},
	}
	handler := handlers.NewOrderAdminHandler(facade)

	engine := gin.New()
	engine.GET("/api/admin/orders/stats", handler.Stats)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/stats?windowDays=7", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["totalRevenue"] != "350" {
		t.Fatalf("totalRevenue = %v, want 350", body["totalRevenue"])
	}
	counts, _ := body["countsByStatus"].(map[string]any)
	if counts["processing"] != float64(2) {
		t.Fatalf("processing count = %v, want 2", counts["processing"])
	}
}

func TestRelatedProductsPassesCategory(t *testing.T) {
	facade := test.ShopFacadeStub{
		CatalogFacadeStub: test.CatalogFacadeStub{
			RelatedFn: func(ctx context.Context, category string) ([]model.Product, error) {
				if category != "women" {
					t.Fatalf("category = %q, want women", category)
				}
				return []model.Product{{ID: 5, Name: "Dress", Category: "women"}}, nil
			},
		},
	}
	handler := handlers.NewProductHandler(facade)

	engine := gin.New()
	engine.GET("/api/products/related", handler.Related)

	req := httptest.NewRequest(http.MethodGet, "/api/products/related?category=women", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestRelatedProductsMissingCategory(t *testing.T) {
	facade := test.ShopFacadeStub{
		CatalogFacadeStub: test.CatalogFacadeStub{
			RelatedFn: func(ctx context.Context, category string) ([]model.Product, error) {
				return nil, domainErrors.ErrMissingParameter
			},
		},
	}
	handler := handlers.NewProductHandler(facade)

	engine := gin.New()
	engine.GET("/api/products/related", handler.Related)

	req := httptest.NewRequest(http.MethodGet, "/api/products/related", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCartAddUsesAuthenticatedUser(t *testing.T) {
	facade := test.ShopFacadeStub{
		CartFacadeStub: test.CartFacadeStub{
			AddFn: func(ctx context.Context, userID, productID int64) (model.Cart, error) {
				if userID != 9 {
					t.Fatalf("userID = %d, want 9", userID)
				}
				return model.Cart{productID: 2}, nil
			},
		},
	}
	handler := handlers.NewCartHandler(facade)

	engine := authedEngine(9)
	engine.POST("/api/user/cart/add", handler.Add)

	rec := performJSON(t, engine, http.MethodPost, "/api/user/cart/add", map[string]any{"productId": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	cart, _ := body["cart"].(map[string]any)
	if cart["3"] != float64(2) {
		t.Fatalf("cart quantity = %v, want 2", cart["3"])
	}
}

func TestUpdateUserFlagsRequiresAtLeastOne(t *testing.T) {
	handler := handlers.NewUserAdminHandler(test.ShopFacadeStub{})

	engine := gin.New()
	engine.PATCH("/api/admin/users/:id", handler.UpdateFlags)

	rec := performJSON(t, engine, http.MethodPatch, "/api/admin/users/5", map[string]any{})
	assertEnvelopeError(t, rec, http.StatusBadRequest, "no flags to update")
}

func TestUpdateUserFlagsAppliesBoth(t *testing.T) {
	var gotVerified, gotBlocked *bool
	facade := test.ShopFacadeStub{
		UserAdminFacadeStub: test.UserAdminFacadeStub{
			SetVerifiedFn: func(ctx context.Context, id int64, verified bool) error {
				gotVerified = &verified
				return nil
			},
			SetBlockedFn: func(ctx context.Context, id int64, blocked bool) error {
				gotBlocked = &blocked
				return nil
			},
		},
	}
	handler := handlers.NewUserAdminHandler(facade)

	engine := gin.New()
	engine.PATCH("/api/admin/users/:id", handler.UpdateFlags)

	rec := performJSON(t, engine, http.MethodPatch, "/api/admin/users/5", map[string]any{
		"isVerified": true,
		"isBlocked":  false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if gotVerified == nil || !*gotVerified {
		t.Fatal("verified flag not applied")
	}
	if gotBlocked == nil || *gotBlocked {
		t.Fatal("blocked flag not applied")
	}
}

func TestUserResponseOmitsPasswordHash(t *testing.T) {
	facade := test.ShopFacadeStub{
		UserAdminFacadeStub: test.UserAdminFacadeStub{
			UserFn: func(ctx context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Name: "Maya", Email: "maya@example.com", PasswordHash: "hash:secret"}, nil
			},
		},
	}
	handler := handlers.NewUserAdminHandler(facade)

	engine := gin.New()
	engine.GET("/api/admin/users/:id", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users/5", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), "hash:secret") {
		t.Fatal("password hash leaked into the response body")
	}
}
