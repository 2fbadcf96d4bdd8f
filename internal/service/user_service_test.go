package service

import (
	"context"
	"testing"

	"github.com/spec-kit/streaming-auth/internal/domain"
)

func TestUserServiceNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	if err == nil {
		t.Fatal("Get() on unknown id returned no error")
	}
	if code := errorCode(t, err); code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", code)
	}

	if err := svc.Delete(ctx, "missing"); errorCode(t, err) != "NOT_FOUND" {
		t.Error("Delete() on unknown id not reported as not found")
	}
}

func TestUserServiceUpdateAndDelete(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	user := &domain.User{Name: "Mina", Email: "mina@example.com", Origin: domain.OriginLocal}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	updated, err := svc.UpdateEmail(ctx, user.ID, "new@example.com")
	if err != nil {
		t.Fatalf("UpdateEmail() error: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("Email = %q, want %q", updated.Email, "new@example.com")
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("List() returned %d users, want 1", len(users))
	}

	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := svc.Get(ctx, user.ID); err == nil {
		t.Error("Get() after delete returned no error")
	}
}
