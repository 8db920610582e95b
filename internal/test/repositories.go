package test

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Carts   map[int64]model.Cart
	Next    int64
	Err     error
	StatsFn func(context.Context) (*model.UserStats, error)
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Carts:   make(map[int64]model.Cart),
		Next:    1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash, Cart: model.Cart{}}
	s.Next++
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List pages through stored users in insertion order of identifiers.
func (s *UserRepositoryStub) List(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	var all []model.User
	for id := int64(1); id < s.Next; id++ {
		if user, ok := s.ByID[id]; ok {
			all = append(all, *user)
		}
	}
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// SetVerified flips the verification flag.
func (s *UserRepositoryStub) SetVerified(ctx context.Context, id int64, verified bool) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.IsVerified = verified
	return nil
}

// SetBlocked flips the blocked flag.
func (s *UserRepositoryStub) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.IsBlocked = blocked
	return nil
}

// SetPasswordHash replaces the stored credential hash.
func (s *UserRepositoryStub) SetPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// GetCart returns the stored cart for the user.
func (s *UserRepositoryStub) GetCart(ctx context.Context, id int64) (model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.ByID[id]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	return s.Carts[id], nil
}

// SetCart stores the cart for the user.
func (s *UserRepositoryStub) SetCart(ctx context.Context, id int64, cart model.Cart) error {
	if s.Err != nil {
		return s.Err
	}
	s.Carts[id] = cart
	return nil
}

// Delete removes the user and reports whether it existed.
func (s *UserRepositoryStub) Delete(ctx context.Context, id int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return false, nil
	}
	delete(s.ByID, id)
	delete(s.ByEmail, user.Email)
	delete(s.Carts, id)
	return true, nil
}

// Stats aggregates counts over the stored users.
func (s *UserRepositoryStub) Stats(ctx context.Context) (*model.UserStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	stats := &model.UserStats{}
	for _, user := range s.ByID {
		stats.TotalUsers++
		if user.IsVerified {
			stats.VerifiedUsers++
		}
	}
	return stats, nil
}

// AdminRepositoryStub stores back-office accounts in-memory for tests.
type AdminRepositoryStub struct {
	ByUsername map[string]*model.Admin
	ByID       map[int64]*model.Admin
	Next       int64
	TouchCalls []int64
	TouchErr   error
	CreateErr  error
}

// NewAdminRepositoryStub constructs stub repository with initialized maps.
func NewAdminRepositoryStub() *AdminRepositoryStub {
	return &AdminRepositoryStub{
		ByUsername: make(map[string]*model.Admin),
		ByID:       make(map[int64]*model.Admin),
		Next:       1,
	}
}

// Create registers an admin unless the username is taken.
func (s *AdminRepositoryStub) Create(ctx context.Context, admin model.Admin) (*model.Admin, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if _, exists := s.ByUsername[admin.Username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	admin.ID = s.Next
	s.Next++
	stored := admin
	s.ByUsername[admin.Username] = &stored
	s.ByID[admin.ID] = &stored
	return &stored, nil
}

// GetByUsername fetches an admin by username or returns not found.
func (s *AdminRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	if admin, ok := s.ByUsername[username]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches an admin by identifier or returns not found.
func (s *AdminRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	if admin, ok := s.ByID[id]; ok {
		return admin, nil
	}
	return nil, domainErrors.ErrNotFound
}

// TouchLastLogin records the invocation.
func (s *AdminRepositoryStub) TouchLastLogin(ctx context.Context, id int64) error {
	s.TouchCalls = append(s.TouchCalls, id)
	return s.TouchErr
}

// ProductRepositoryStub stores catalog entries in-memory for tests.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

// Create stores a product with a generated identifier.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	product.ID = s.Next
	s.Next++
	stored := product
	s.Products[product.ID] = &stored
	return &stored, nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListAll returns products ordered by identifier.
func (s *ProductRepositoryStub) ListAll(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var all []model.Product
	for id := int64(1); id < s.Next; id++ {
		if product, ok := s.Products[id]; ok {
			all = append(all, *product)
		}
	}
	return all, nil
}

// ListNewest returns the most recently added products first.
func (s *ProductRepositoryStub) ListNewest(ctx context.Context, limit int) ([]model.Product, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var newest []model.Product
	for i := len(all) - 1; i >= 0 && len(newest) < limit; i-- {
		newest = append(newest, all[i])
	}
	return newest, nil
}

// ListByCategory filters products by category up to the limit.
func (s *ProductRepositoryStub) ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Product
	for _, product := range all {
		if product.Category == category {
			matched = append(matched, product)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

// Update replaces a stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	stored := product
	s.Products[product.ID] = &stored
	return &stored, nil
}

// Delete removes a product and reports whether it existed.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return false, nil
	}
	delete(s.Products, id)
	return true, nil
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn              func(context.Context, model.Order) (*model.Order, bool, error)
	GetByIDFn             func(context.Context, uuid.UUID) (*model.Order, error)
	ListFn                func(context.Context, repository.OrderListOptions) ([]model.Order, int64, error)
	UpdateStatusFn        func(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error)
	UpdatePaymentStatusFn func(context.Context, uuid.UUID, model.PaymentStatus) error
	DeleteFn              func(context.Context, uuid.UUID) (bool, error)
	StatsFn               func(context.Context, time.Duration) (*model.OrderStats, error)
	SelectStalePendingFn  func(context.Context, time.Duration, int) ([]model.Order, error)

	Created        []model.Order
	PaymentUpdates []PaymentStatusCall
}

// PaymentStatusCall records an UpdatePaymentStatus invocation.
type PaymentStatusCall struct {
	OrderID uuid.UUID
	Status  model.PaymentStatus
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, bool, error) {
	s.Created = append(s.Created, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	order.ID = uuid.New()
	return &order, true, nil
}

// GetByID returns the configured order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// List delegates to the configured override.
func (s *OrderRepositoryStub) List(ctx context.Context, opts repository.OrderListOptions) ([]model.Order, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, opts)
	}
	return nil, 0, nil
}

// UpdateStatus delegates to the configured override.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return nil, domainErrors.ErrNotFound
}

// UpdatePaymentStatus records update invocations.
func (s *OrderRepositoryStub) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	if s.UpdatePaymentStatusFn != nil {
		return s.UpdatePaymentStatusFn(ctx, id, status)
	}
	s.PaymentUpdates = append(s.PaymentUpdates, PaymentStatusCall{OrderID: id, Status: status})
	return nil
}

// Delete delegates to the configured override.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return false, nil
}

// Stats delegates to the configured override.
func (s *OrderRepositoryStub) Stats(ctx context.Context, window time.Duration) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, window)
	}
	return &model.OrderStats{}, nil
}

// SelectStalePending delegates to the configured override.
func (s *OrderRepositoryStub) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.SelectStalePendingFn != nil {
		return s.SelectStalePendingFn(ctx, olderThan, limit)
	}
	return nil, nil
}
