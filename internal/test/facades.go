package test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterUserFn  func(context.Context, string, string, string) (*model.User, error)
	LoginUserFn     func(context.Context, string, string) (*model.User, string, error)
	LoginAdminFn    func(context.Context, string, string) (*model.Admin, string, error)
	RegisterAdminFn func(context.Context, string, string, string, string, model.Permissions) (*model.Admin, error)
}

// RegisterUser returns a stub account for successful registration scenarios.
func (s AuthFacadeStub) RegisterUser(ctx context.Context, name, email, password string) (*model.User, error) {
	if s.RegisterUserFn != nil {
		return s.RegisterUserFn(ctx, name, email, password)
	}
	return &model.User{ID: 1, Name: name, Email: email}, nil
}

// LoginUser returns a token for successful authentication scenarios.
func (s AuthFacadeStub) LoginUser(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.LoginUserFn != nil {
		return s.LoginUserFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email}, "token", nil
}

// LoginAdmin returns a token for successful back-office logins.
func (s AuthFacadeStub) LoginAdmin(ctx context.Context, username, password string) (*model.Admin, string, error) {
	if s.LoginAdminFn != nil {
		return s.LoginAdminFn(ctx, username, password)
	}
	return &model.Admin{ID: 1, Username: username}, "admin-token", nil
}

// RegisterAdmin returns the created account.
func (s AuthFacadeStub) RegisterAdmin(ctx context.Context, username, email, password, role string, perms model.Permissions) (*model.Admin, error) {
	if s.RegisterAdminFn != nil {
		return s.RegisterAdminFn(ctx, username, email, password, role, perms)
	}
	return &model.Admin{ID: 2, Username: username, Role: role, Permissions: perms}, nil
}

// VerificationFacadeStub simulates the one-time code flows.
type VerificationFacadeStub struct {
	SendVerificationFn func(context.Context, string) error
	ConfirmEmailFn     func(context.Context, string, string) error
	SendResetFn        func(context.Context, string) error
	ResetPasswordFn    func(context.Context, string, string, string) error
}

func (s VerificationFacadeStub) SendVerificationCode(ctx context.Context, email string) error {
	if s.SendVerificationFn != nil {
		return s.SendVerificationFn(ctx, email)
	}
	return nil
}

func (s VerificationFacadeStub) ConfirmEmail(ctx context.Context, email, code string) error {
	if s.ConfirmEmailFn != nil {
		return s.ConfirmEmailFn(ctx, email, code)
	}
	return nil
}

func (s VerificationFacadeStub) SendPasswordResetCode(ctx context.Context, email string) error {
	if s.SendResetFn != nil {
		return s.SendResetFn(ctx, email)
	}
	return nil
}

func (s VerificationFacadeStub) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if s.ResetPasswordFn != nil {
		return s.ResetPasswordFn(ctx, email, code, newPassword)
	}
	return nil
}

// CatalogFacadeStub serves canned catalog data.
type CatalogFacadeStub struct {
	ProductsFn      func(context.Context) ([]model.Product, error)
	NewCollectionFn func(context.Context) ([]model.Product, error)
	PopularWomenFn  func(context.Context) ([]model.Product, error)
	RelatedFn       func(context.Context, string) ([]model.Product, error)
	ProductFn       func(context.Context, int64) (*model.Product, error)
	AddProductFn    func(context.Context, model.Product) (*model.Product, error)
	UpdateProductFn func(context.Context, model.Product) (*model.Product, error)
	RemoveProductFn func(context.Context, int64) error
}

func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "Jacket", Category: "men"}}, nil
}

func (s CatalogFacadeStub) NewCollection(ctx context.Context) ([]model.Product, error) {
	if s.NewCollectionFn != nil {
		return s.NewCollectionFn(ctx)
	}
	return nil, nil
}

func (s CatalogFacadeStub) PopularInWomen(ctx context.Context) ([]model.Product, error) {
	if s.PopularWomenFn != nil {
		return s.PopularWomenFn(ctx)
	}
	return nil, nil
}

func (s CatalogFacadeStub) RelatedProducts(ctx context.Context, category string) ([]model.Product, error) {
	if s.RelatedFn != nil {
		return s.RelatedFn(ctx, category)
	}
	return nil, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s CatalogFacadeStub) AddProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.AddProductFn != nil {
		return s.AddProductFn(ctx, product)
	}
	product.ID = 1
	return &product, nil
}

func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return &product, nil
}

func (s CatalogFacadeStub) RemoveProduct(ctx context.Context, id int64) error {
	if s.RemoveProductFn != nil {
		return s.RemoveProductFn(ctx, id)
	}
	return nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	CartFn   func(context.Context, int64) (model.Cart, error)
	AddFn    func(context.Context, int64, int64) (model.Cart, error)
	RemoveFn func(context.Context, int64, int64) (model.Cart, error)
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return model.Cart{}, nil
}

func (s CartFacadeStub) AddToCart(ctx context.Context, userID, productID int64) (model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID)
	}
	return model.Cart{productID: 1}, nil
}

func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID, productID int64) (model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	return model.Cart{}, nil
}

// PaymentFacadeStub simulates the checkout flow.
type PaymentFacadeStub struct {
	InitiateFn func(context.Context, decimal.Decimal, string, string, map[string]string) (*usecase.PaymentIntent, error)
	VerifyFn   func(usecase.Confirmation) error
	ConfirmFn  func(context.Context, usecase.Confirmation, usecase.OrderInput) (*model.Order, error)
}

func (s PaymentFacadeStub) InitiatePayment(ctx context.Context, amount decimal.Decimal, currency, receipt string, notes map[string]string) (*usecase.PaymentIntent, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, amount, currency, receipt, notes)
	}
	return &usecase.PaymentIntent{
		GatewayOrderID: "order_stub",
		AmountMinor:    amount.Mul(decimalHundred).Round(0).IntPart(),
		Currency:       currency,
		Receipt:        receipt,
		DisplayKey:     "key_stub",
	}, nil
}

func (s PaymentFacadeStub) VerifyPayment(c usecase.Confirmation) error {
	if s.VerifyFn != nil {
		return s.VerifyFn(c)
	}
	return nil
}

func (s PaymentFacadeStub) ConfirmAndSettle(ctx context.Context, c usecase.Confirmation, input usecase.OrderInput) (*model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, c, input)
	}
	return &model.Order{
		ID:     uuid.New(),
		UserID: input.UserID,
		Items:  input.Items,
		Payment: model.PaymentInfo{
			GatewayOrderID:   c.GatewayOrderID,
			GatewayPaymentID: c.GatewayPaymentID,
			Status:           model.PaymentStatusCompleted,
		},
		Status:      model.OrderStatusProcessing,
		TotalAmount: input.TotalAmount,
	}, nil
}

// OrderAdminFacadeStub serves canned ledger data.
type OrderAdminFacadeStub struct {
	OrderFn        func(context.Context, uuid.UUID) (*model.Order, error)
	OrdersFn       func(context.Context, string, string, string, int, int) ([]model.Order, int64, error)
	UpdateStatusFn func(context.Context, uuid.UUID, string) (*model.Order, error)
	DeleteFn       func(context.Context, uuid.UUID) error
	StatsFn        func(context.Context, int) (*model.OrderStats, error)
}

func (s OrderAdminFacadeStub) Order(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderAdminFacadeStub) Orders(ctx context.Context, status, sortBy, direction string, page, pageSize int) ([]model.Order, int64, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status, sortBy, direction, page, pageSize)
	}
	return nil, 0, nil
}

func (s OrderAdminFacadeStub) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderAdminFacadeStub) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s OrderAdminFacadeStub) OrderStats(ctx context.Context, windowDays int) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, windowDays)
	}
	return &model.OrderStats{}, nil
}

// UserAdminFacadeStub serves canned account moderation data.
type UserAdminFacadeStub struct {
	UsersFn       func(context.Context, int, int) ([]model.User, int64, error)
	UserFn        func(context.Context, int64) (*model.User, error)
	SetBlockedFn  func(context.Context, int64, bool) error
	SetVerifiedFn func(context.Context, int64, bool) error
	DeleteFn      func(context.Context, int64) error
	StatsFn       func(context.Context) (*model.UserStats, error)
}

func (s UserAdminFacadeStub) Users(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (s UserAdminFacadeStub) User(ctx context.Context, id int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s UserAdminFacadeStub) SetUserBlocked(ctx context.Context, id int64, blocked bool) error {
	if s.SetBlockedFn != nil {
		return s.SetBlockedFn(ctx, id, blocked)
	}
	return nil
}

func (s UserAdminFacadeStub) SetUserVerified(ctx context.Context, id int64, verified bool) error {
	if s.SetVerifiedFn != nil {
		return s.SetVerifiedFn(ctx, id, verified)
	}
	return nil
}

func (s UserAdminFacadeStub) DeleteUser(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

func (s UserAdminFacadeStub) UserStats(ctx context.Context) (*model.UserStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.UserStats{}, nil
}

// ShopFacadeStub aggregates facade stubs for HTTP layer tests.
type ShopFacadeStub struct {
	AuthFacadeStub
	VerificationFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	PaymentFacadeStub
	OrderAdminFacadeStub
	UserAdminFacadeStub
}
