package app

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPassword(t *testing.T) {
	store := newUserStore()
	svc := NewUserService(store)

	user, err := svc.Create(context.Background(), CreateUserInput{Username: "ravi", Password: "s3cret-pass"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Persona != "general" {
		t.Fatalf("expected default persona, got %q", user.Persona)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("hash does not match: %v", err)
	}
}

func TestCreateUserRejections(t *testing.T) {
	svc := NewUserService(newUserStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Username: "a", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateUserInput{Username: "a", Password: "long-enough", Persona: "pirate"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown persona, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateUserInput{Username: "a", Password: "long-enough"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, CreateUserInput{Username: "a", Password: "long-enough"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
