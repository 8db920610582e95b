package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	RegisterUser(ctx context.Context, name, email, password string) (*model.User, error)
	LoginUser(ctx context.Context, email, password string) (*model.User, string, error)
	LoginAdmin(ctx context.Context, username, password string) (*model.Admin, string, error)
	RegisterAdmin(ctx context.Context, username, email, password, role string, perms model.Permissions) (*model.Admin, error)
}

// VerificationFacade drives the emailed one-time code flows.
type VerificationFacade interface {
	SendVerificationCode(ctx context.Context, email string) error
	ConfirmEmail(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// CatalogFacade serves storefront and back-office catalog operations.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	NewCollection(ctx context.Context) ([]model.Product, error)
	PopularInWomen(ctx context.Context) ([]model.Product, error)
	RelatedProducts(ctx context.Context, category string) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	AddProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	RemoveProduct(ctx context.Context, id int64) error
}

// CartFacade manages the shopper's cart.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (model.Cart, error)
	AddToCart(ctx context.Context, userID, productID int64) (model.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID int64) (model.Cart, error)
}

// PaymentFacade exposes the checkout and settlement flow.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, amount decimal.Decimal, currency, receipt string, notes map[string]string) (*usecase.PaymentIntent, error)
	VerifyPayment(c usecase.Confirmation) error
	ConfirmAndSettle(ctx context.Context, c usecase.Confirmation, input usecase.OrderInput) (*model.Order, error)
}

// OrderAdminFacade exposes the order ledger to the back office.
type OrderAdminFacade interface {
	Order(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Orders(ctx context.Context, statusFilter, sortBy, direction string, page, pageSize int) ([]model.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	OrderStats(ctx context.Context, windowDays int) (*model.OrderStats, error)
}

// UserAdminFacade exposes shopper account moderation to the back office.
type UserAdminFacade interface {
	Users(ctx context.Context, page, pageSize int) ([]model.User, int64, error)
	User(ctx context.Context, id int64) (*model.User, error)
	SetUserBlocked(ctx context.Context, id int64, blocked bool) error
	SetUserVerified(ctx context.Context, id int64, verified bool) error
	DeleteUser(ctx context.Context, id int64) error
	UserStats(ctx context.Context) (*model.UserStats, error)
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	VerificationFacade
	CatalogFacade
	CartFacade
	PaymentFacade
	OrderAdminFacade
	UserAdminFacade
}
