package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/domain/model"
	"github.com/threadcart/backend/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage uses. pgxmock satisfies
// it, which keeps the repository tests off a live database.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type adminRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            is_verified BOOLEAN NOT NULL DEFAULT FALSE,
            is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
            cart_data JSONB NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS admins (
            id BIGSERIAL PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'admin',
            manage_products BOOLEAN NOT NULL DEFAULT TRUE,
            manage_users BOOLEAN NOT NULL DEFAULT TRUE,
            manage_orders BOOLEAN NOT NULL DEFAULT TRUE,
            last_login TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            display_id BIGINT NOT NULL,
            name TEXT NOT NULL,
            image TEXT NOT NULL,
            category TEXT NOT NULL,
            description TEXT NOT NULL,
            new_price NUMERIC(12,2) NOT NULL,
            old_price NUMERIC(12,2) NOT NULL,
            date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            available BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id BIGINT NOT NULL REFERENCES users(id),
            total_amount NUMERIC(12,2) NOT NULL,
            shipping_address JSONB,
            gateway_order_id TEXT NOT NULL,
            gateway_payment_id TEXT UNIQUE NOT NULL,
            gateway_signature TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            order_status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id BIGINT NOT NULL,
            quantity INT NOT NULL CHECK (quantity >= 1),
            unit_price NUMERIC(12,2) NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(order_status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_payment_pending ON orders(payment_status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category, date DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, name, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	u.Cart = model.Cart{}
	return &u, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u        model.User
		cartData []byte
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsVerified, &u.IsBlocked, &cartData, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(cartData, &u.Cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &u, nil
}

const userColumns = `id, name, email, password_hash, is_verified, is_blocked, cart_data, created_at`

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) List(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.storage.pool.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var (
			u        model.User
			cartData []byte
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsVerified, &u.IsBlocked, &cartData, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(cartData, &u.Cart); err != nil {
			return nil, 0, fmt.Errorf("decode cart: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *userRepository) setFlag(ctx context.Context, id int64, column string, value bool) error {
	query := fmt.Sprintf(`UPDATE users SET %s=$1 WHERE id=$2`, column)
	tag, err := r.storage.pool.Exec(ctx, query, value, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	return r.setFlag(ctx, id, "is_verified", verified)
}

func (r *userRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return r.setFlag(ctx, id, "is_blocked", blocked)
}

func (r *userRepository) SetPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetCart(ctx context.Context, id int64) (model.Cart, error) {
	var cartData []byte
	err := r.storage.pool.QueryRow(ctx, `SELECT cart_data FROM users WHERE id=$1`, id).Scan(&cartData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var cart model.Cart
	if err := json.Unmarshal(cartData, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

func (r *userRepository) SetCart(ctx context.Context, id int64, cart model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	tag, err := r.storage.pool.Exec(ctx, `UPDATE users SET cart_data=$1 WHERE id=$2`, data, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *userRepository) Stats(ctx context.Context) (*model.UserStats, error) {
	const query = `SELECT COUNT(*),
                          COUNT(*) FILTER (WHERE is_verified),
                          COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '30 days')
                   FROM users`
	var stats model.UserStats
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&stats.TotalUsers, &stats.VerifiedUsers, &stats.RecentUsers); err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- AdminRepository implementation ---

const adminColumns = `id, username, email, password_hash, role, manage_products, manage_users, manage_orders, last_login, created_at`

func (r *adminRepository) Create(ctx context.Context, admin model.Admin) (*model.Admin, error) {
	const query = `INSERT INTO admins (username, email, password_hash, role, manage_products, manage_users, manage_orders)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	role := admin.Role
	if role == "" {
		role = "admin"
	}
	err := r.storage.pool.QueryRow(ctx, query,
		admin.Username, admin.Email, admin.PasswordHash, role,
		admin.Permissions.ManageProducts, admin.Permissions.ManageUsers, admin.Permissions.ManageOrders,
	).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	admin.Role = role
	return &admin, nil
}

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Role,
		&a.Permissions.ManageProducts, &a.Permissions.ManageUsers, &a.Permissions.ManageOrders,
		&a.LastLogin, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE username=$1`
	return scanAdmin(r.storage.pool.QueryRow(ctx, query, username))
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id=$1`
	return scanAdmin(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.storage.pool.Exec(ctx, `UPDATE admins SET last_login=NOW() WHERE id=$1`, id)
	return err
}

// --- ProductRepository implementation ---

const productColumns = `id, display_id, name, image, category, description, new_price, old_price, date, available`

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (display_id, name, image, category, description, new_price, old_price, available)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING id, date`
	err := r.storage.pool.QueryRow(ctx, query,
		product.DisplayID, product.Name, product.Image, product.Category,
		product.Description, product.NewPrice, product.OldPrice, product.Available,
	).Scan(&product.ID, &product.Date)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.DisplayID, &p.Name, &p.Image, &p.Category, &p.Description,
		&p.NewPrice, &p.OldPrice, &p.Date, &p.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.DisplayID, &p.Name, &p.Image, &p.Category, &p.Description,
			&p.NewPrice, &p.OldPrice, &p.Date, &p.Available); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY date DESC`)
}

func (r *productRepository) ListNewest(ctx context.Context, limit int) ([]model.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY date DESC LIMIT $1`, limit)
}

func (r *productRepository) ListByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category=$1 ORDER BY date DESC`
	if limit > 0 {
		return r.queryProducts(ctx, query+` LIMIT $2`, category, limit)
	}
	return r.queryProducts(ctx, query, category)
}

func (r *productRepository) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET display_id=$1, name=$2, image=$3, category=$4, description=$5,
                       new_price=$6, old_price=$7, available=$8
                   WHERE id=$9
                   RETURNING date`
	err := r.storage.pool.QueryRow(ctx, query,
		product.DisplayID, product.Name, product.Image, product.Category, product.Description,
		product.NewPrice, product.OldPrice, product.Available, product.ID,
	).Scan(&product.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, total_amount, shipping_address, gateway_order_id, gateway_payment_id,
                      gateway_signature, payment_status, order_status, created_at, updated_at`

func scanOrderRow(scan func(dest ...any) error) (*model.Order, error) {
	var (
		o       model.Order
		address []byte
	)
	err := scan(&o.ID, &o.UserID, &o.TotalAmount, &address,
		&o.Payment.GatewayOrderID, &o.Payment.GatewayPaymentID, &o.Payment.GatewaySignature,
		&o.Payment.Status, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(address) > 0 {
		o.ShippingAddress = &model.Address{}
		if err := json.Unmarshal(address, o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, bool, error) {
	var address any
	if order.ShippingAddress != nil {
		encoded, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return nil, false, fmt.Errorf("encode shipping address: %w", err)
		}
		address = encoded
	}

	created := true
	stored := order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
                (user_id, total_amount, shipping_address, gateway_order_id, gateway_payment_id, gateway_signature, payment_status, order_status)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                ON CONFLICT (gateway_payment_id) DO NOTHING
                RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, order.TotalAmount, address,
			order.Payment.GatewayOrderID, order.Payment.GatewayPaymentID, order.Payment.GatewaySignature,
			order.Payment.Status, order.Status,
		).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			// Same gateway payment already settled: hand back the
			// stored record instead of a duplicate.
			created = false
			return nil
		}

		for _, item := range order.Items {
			const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`
			if _, err := tx.Exec(ctx, insertItem, stored.ID, item.ProductID, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if !created {
		existing, err := r.getByPaymentID(ctx, order.Payment.GatewayPaymentID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return &stored, true, nil
}

func (r *orderRepository) getByPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_payment_id=$1`
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, gatewayPaymentID).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return r.attachItems(ctx, order)
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return r.attachItems(ctx, order)
}

func (r *orderRepository) attachItems(ctx context.Context, order *model.Order) (*model.Order, error) {
	items, err := r.itemsFor(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *orderRepository) itemsFor(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.LineItem, error) {
	const query = `SELECT order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]model.LineItem)
	for rows.Next() {
		var (
			orderID uuid.UUID
			item    model.LineItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		result[orderID] = append(result[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// sortColumns whitelists client-facing sort fields.
var sortColumns = map[string]string{
	"created_at":   "created_at",
	"total_amount": "total_amount",
	"order_status": "order_status",
	"updated_at":   "updated_at",
}

func (r *orderRepository) List(ctx context.Context, opts repository.OrderListOptions) ([]model.Order, int64, error) {
	opts = opts.Normalize()

	sortBy, ok := sortColumns[opts.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	direction := "DESC"
	if opts.Direction == repository.SortAsc {
		direction = "ASC"
	}

	where := ""
	args := []any{}
	if opts.Status != nil {
		where = " WHERE order_status=$1"
		args = append(args, *opts.Status)
	}

	var total int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		orderColumns, where, sortBy, direction, len(args)+1, len(args)+2)
	args = append(args, opts.PageSize, (opts.Page-1)*opts.PageSize)

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrderRow(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(orders) > 0 {
		ids := lo.Map(orders, func(o model.Order, _ int) uuid.UUID { return o.ID })
		items, err := r.itemsFor(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range orders {
			orders[i].Items = items[orders[i].ID]
		}
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current model.OrderStatus
		err := tx.QueryRow(ctx, `SELECT order_status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if !model.TransitionAllowed(current, status) {
			return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, current, status)
		}

		query := `UPDATE orders SET order_status=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + orderColumns
		updated, err = scanOrderRow(tx.QueryRow(ctx, query, status, id).Scan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, updated)
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET payment_status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) Stats(ctx context.Context, window time.Duration) (*model.OrderStats, error) {
	stats := &model.OrderStats{
		CountsByStatus: make(map[model.OrderStatus]int64),
		TotalRevenue:   decimal.Zero,
		RecentRevenue:  decimal.Zero,
	}
	cutoff := time.Now().Add(-window)

	rows, err := r.storage.pool.Query(ctx, `SELECT order_status, COUNT(*) FROM orders GROUP BY order_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status model.OrderStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.CountsByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const revenueQuery = `SELECT
                COALESCE(SUM(total_amount) FILTER (WHERE order_status IN ('delivered','shipped')), 0),
                COUNT(*) FILTER (WHERE created_at >= $1),
                COALESCE(SUM(total_amount) FILTER (WHERE created_at >= $1 AND order_status IN ('delivered','shipped')), 0)
            FROM orders`
	if err := r.storage.pool.QueryRow(ctx, revenueQuery, cutoff).Scan(&stats.TotalRevenue, &stats.RecentOrders, &stats.RecentRevenue); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *orderRepository) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	cutoff := time.Now().Add(-olderThan)
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE payment_status=$1 AND created_at < $2
              ORDER BY created_at
              LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.PaymentStatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrderRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
