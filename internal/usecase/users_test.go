package usecase_test

import (
	. "github.com/threadcart/backend/internal/usecase"

	"context"
	"errors"
	"testing"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
	"github.com/threadcart/backend/internal/test"
)

func TestUserAdminSetBlockedFlagsAccount(t *testing.T) {
	users := test.NewUserRepositoryStub()
	user, err := users.Create(context.Background(), "Jo", "jo@example.com", "hash")
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	uc := NewUserAdminUseCase(users, discardLogger())

	if err := uc.SetBlocked(context.Background(), user.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, err := users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.IsBlocked {
		t.Fatal("expected account to be blocked")
	}
}

func TestUserAdminSetBlockedUnknownAccount(t *testing.T) {
	uc := NewUserAdminUseCase(test.NewUserRepositoryStub(), discardLogger())

	err := uc.SetBlocked(context.Background(), 404, true)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserAdminDeleteMissingAccount(t *testing.T) {
	uc := NewUserAdminUseCase(test.NewUserRepositoryStub(), discardLogger())

	err := uc.Delete(context.Background(), 404)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserAdminListPaginates(t *testing.T) {
	users := test.NewUserRepositoryStub()
	for i := 0; i < 15; i++ {
		email := "user" + string(rune('a'+i)) + "@example.com"
		if _, err := users.Create(context.Background(), "U", email, "hash"); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}
	uc := NewUserAdminUseCase(users, discardLogger())

	page, total, err := uc.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 15 {
		t.Fatalf("expected total 15, got %d", total)
	}
	if len(page) != 5 {
		t.Fatalf("expected 5 users on second page, got %d", len(page))
	}
}
