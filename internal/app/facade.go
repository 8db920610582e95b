package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/threadcart/backend/internal/adapter/gateway"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/pkg/auth"
	"github.com/threadcart/backend/internal/usecase"
)

// ShopFacade aggregates use cases behind a single surface consumed by the
// HTTP layer and the payment reconciler.
type ShopFacade struct {
	authUC       *usecase.AuthUseCase
	verification *usecase.VerificationUseCase
	catalog      *usecase.CatalogUseCase
	cart         *usecase.CartUseCase
	settlement   *usecase.SettlementUseCase
	orders       *usecase.OrderUseCase
	userAdmin    *usecase.UserAdminUseCase
	strategy     auth.Strategy
	admins       AdminLookup
}

// AdminLookup resolves admin accounts for permission checks.
type AdminLookup interface {
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
}

// NewShopFacade constructs ShopFacade.
func NewShopFacade(
	authUC *usecase.AuthUseCase,
	verification *usecase.VerificationUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	settlement *usecase.SettlementUseCase,
	orders *usecase.OrderUseCase,
	userAdmin *usecase.UserAdminUseCase,
	strategy auth.Strategy,
	admins AdminLookup,
) *ShopFacade {
	return &ShopFacade{
		authUC:       authUC,
		verification: verification,
		catalog:      catalog,
		cart:         cart,
		settlement:   settlement,
		orders:       orders,
		userAdmin:    userAdmin,
		strategy:     strategy,
		admins:       admins,
	}
}

// --- authentication ---

func (f *ShopFacade) RegisterUser(ctx context.Context, name, email, password string) (*model.User, error) {
	user, err := f.authUC.RegisterUser(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	// Registration triggers the email verification flow; a failed delivery
	// does not undo the account, the shopper can ask for a resend.
	_ = f.verification.SendVerificationCode(ctx, user.Email)
	return user, nil
}

func (f *ShopFacade) LoginUser(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.authUC.LoginUser(ctx, email, password)
}

func (f *ShopFacade) LoginAdmin(ctx context.Context, username, password string) (*model.Admin, string, error) {
	return f.authUC.LoginAdmin(ctx, username, password)
}

func (f *ShopFacade) RegisterAdmin(ctx context.Context, username, email, password, role string, perms model.Permissions) (*model.Admin, error) {
	return f.authUC.RegisterAdmin(ctx, username, email, password, role, perms)
}

func (f *ShopFacade) ParseToken(token string) (int64, auth.Role, error) {
	return f.strategy.ParseToken(token)
}

func (f *ShopFacade) AdminByID(ctx context.Context, id int64) (*model.Admin, error) {
	return f.admins.GetByID(ctx, id)
}

// --- email verification and password reset ---

func (f *ShopFacade) SendVerificationCode(ctx context.Context, email string) error {
	return f.verification.SendVerificationCode(ctx, email)
}

func (f *ShopFacade) ConfirmEmail(ctx context.Context, email, code string) error {
	return f.verification.ConfirmEmail(ctx, email, code)
}

func (f *ShopFacade) SendPasswordResetCode(ctx context.Context, email string) error {
	return f.verification.SendPasswordResetCode(ctx, email)
}

func (f *ShopFacade) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return f.verification.ResetPassword(ctx, email, code, newPassword)
}

// --- catalog ---

func (f *ShopFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.All(ctx)
}

func (f *ShopFacade) NewCollection(ctx context.Context) ([]model.Product, error) {
	return f.catalog.NewCollection(ctx)
}

func (f *ShopFacade) PopularInWomen(ctx context.Context) ([]model.Product, error) {
	return f.catalog.PopularInWomen(ctx)
}

func (f *ShopFacade) RelatedProducts(ctx context.Context, category string) ([]model.Product, error) {
	return f.catalog.Related(ctx, category)
}

func (f *ShopFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *ShopFacade) AddProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.AddProduct(ctx, product)
}

func (f *ShopFacade) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return f.catalog.UpdateProduct(ctx, product)
}

func (f *ShopFacade) RemoveProduct(ctx context.Context, id int64) error {
	return f.catalog.RemoveProduct(ctx, id)
}

// --- cart ---

func (f *ShopFacade) Cart(ctx context.Context, userID int64) (model.Cart, error) {
	return f.cart.Get(ctx, userID)
}

func (f *ShopFacade) AddToCart(ctx context.Context, userID, productID int64) (model.Cart, error) {
	return f.cart.Add(ctx, userID, productID)
}

func (f *ShopFacade) RemoveFromCart(ctx context.Context, userID, productID int64) (model.Cart, error) {
	return f.cart.Remove(ctx, userID, productID)
}

// --- payment and settlement ---

func (f *ShopFacade) InitiatePayment(ctx context.Context, amount decimal.Decimal, currency, receipt string, notes map[string]string) (*usecase.PaymentIntent, error) {
	return f.settlement.InitiatePayment(ctx, amount, currency, receipt, notes)
}

func (f *ShopFacade) VerifyPayment(c usecase.Confirmation) error {
	return f.settlement.VerifyPayment(c)
}

// ConfirmAndSettle persists the verified order and empties the shopper's
// cart once the order is on the ledger.
func (f *ShopFacade) ConfirmAndSettle(ctx context.Context, c usecase.Confirmation, input usecase.OrderInput) (*model.Order, error) {
	order, err := f.settlement.ConfirmAndSettle(ctx, c, input)
	if err != nil {
		return nil, err
	}
	_ = f.cart.Clear(ctx, input.UserID)
	return order, nil
}

// --- order ledger (admin) ---

func (f *ShopFacade) Order(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *ShopFacade) Orders(ctx context.Context, statusFilter, sortBy, direction string, page, pageSize int) ([]model.Order, int64, error) {
	return f.orders.List(ctx, statusFilter, sortBy, direction, page, pageSize)
}

func (f *ShopFacade) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *ShopFacade) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return f.orders.Delete(ctx, id)
}

func (f *ShopFacade) OrderStats(ctx context.Context, windowDays int) (*model.OrderStats, error) {
	return f.orders.Stats(ctx, windowDays)
}

// --- user administration ---

func (f *ShopFacade) Users(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	return f.userAdmin.List(ctx, page, pageSize)
}

func (f *ShopFacade) User(ctx context.Context, id int64) (*model.User, error) {
	return f.userAdmin.Get(ctx, id)
}

func (f *ShopFacade) SetUserBlocked(ctx context.Context, id int64, blocked bool) error {
	return f.userAdmin.SetBlocked(ctx, id, blocked)
}

func (f *ShopFacade) SetUserVerified(ctx context.Context, id int64, verified bool) error {
	return f.userAdmin.SetVerified(ctx, id, verified)
}

func (f *ShopFacade) DeleteUser(ctx context.Context, id int64) error {
	return f.userAdmin.Delete(ctx, id)
}

func (f *ShopFacade) UserStats(ctx context.Context) (*model.UserStats, error) {
	return f.userAdmin.Stats(ctx)
}

// --- payment reconciliation ---

func (f *ShopFacade) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return f.settlement.StalePending(ctx, olderThan, limit)
}

func (f *ShopFacade) FetchGatewayOrder(ctx context.Context, gatewayOrderID string) (*gateway.RemoteOrder, error) {
	return f.settlement.FetchRemote(ctx, gatewayOrderID)
}

func (f *ShopFacade) UpdatePaymentStatus(ctx context.Context, order model.Order, status model.PaymentStatus) error {
	return f.settlement.SetPaymentStatus(ctx, order.ID, status)
}
