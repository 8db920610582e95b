package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadcart/backend/internal/adapter/gateway"
	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/storage/redisstore"
)

var decimalHundred = decimal.NewFromInt(100)

// GatewayClientStub simulates the payment gateway for tests.
type GatewayClientStub struct {
	CreateOrderFn func(context.Context, gateway.CreateOrderRequest) (*gateway.RemoteOrder, error)
	FetchOrderFn  func(context.Context, string) (*gateway.RemoteOrder, error)
	Key           string
}

// CreateOrder delegates to the override or returns a created intent.
func (s GatewayClientStub) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.RemoteOrder, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, req)
	}
	return &gateway.RemoteOrder{
		ID:       "order_stub",
		Amount:   req.Amount.Mul(decimalHundred).Round(0).IntPart(),
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   gateway.RemoteStatusCreated,
	}, nil
}

// FetchOrder delegates to the override or reports the intent as paid.
func (s GatewayClientStub) FetchOrder(ctx context.Context, gatewayOrderID string) (*gateway.RemoteOrder, error) {
	if s.FetchOrderFn != nil {
		return s.FetchOrderFn(ctx, gatewayOrderID)
	}
	return &gateway.RemoteOrder{ID: gatewayOrderID, Status: gateway.RemoteStatusPaid}, nil
}

// KeyID returns the configured public key identifier.
func (s GatewayClientStub) KeyID() string {
	if s.Key != "" {
		return s.Key
	}
	return "key_stub"
}

// CodeStoreStub keeps pending codes in a map, ignoring TTL.
type CodeStoreStub struct {
	mu    sync.Mutex
	codes map[string]redisstore.PendingCode
	Err   error
}

// NewCodeStoreStub constructs an empty in-memory code store.
func NewCodeStoreStub() *CodeStoreStub {
	return &CodeStoreStub{codes: make(map[string]redisstore.PendingCode)}
}

func codeKey(kind redisstore.CodeKind, email string) string {
	return string(kind) + ":" + email
}

// Put stores the pending code.
func (s *CodeStoreStub) Put(ctx context.Context, kind redisstore.CodeKind, email string, code redisstore.PendingCode, ttl time.Duration) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[codeKey(kind, email)] = code
	return nil
}

// Get returns the stored code or not found.
func (s *CodeStoreStub) Get(ctx context.Context, kind redisstore.CodeKind, email string) (*redisstore.PendingCode, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[codeKey(kind, email)]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &code, nil
}

// Delete removes the stored code.
func (s *CodeStoreStub) Delete(ctx context.Context, kind redisstore.CodeKind, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, codeKey(kind, email))
	return nil
}

// SentMail records a delivery attempt made through MailSenderStub.
type SentMail struct {
	To   string
	Name string
	Code string
	Kind string
}

// MailSenderStub records outbound messages instead of delivering them.
type MailSenderStub struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

// SendVerificationCode records the verification message.
func (s *MailSenderStub) SendVerificationCode(ctx context.Context, to, name, code string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentMail{To: to, Name: name, Code: code, Kind: "verification"})
	return nil
}

// SendPasswordResetCode records the reset message.
func (s *MailSenderStub) SendPasswordResetCode(ctx context.Context, to, name, code string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentMail{To: to, Name: name, Code: code, Kind: "reset"})
	return nil
}

// LastSent returns the most recent recorded message.
func (s *MailSenderStub) LastSent() *SentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return nil
	}
	sent := s.Sent[len(s.Sent)-1]
	return &sent
}
