package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/mocks"
)

func TestProfileServiceImpl(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	user := createVerifiedUser(t, repo)
	svc := NewProfileService(repo)
	ctx := context.Background()

	got, err := svc.Get(ctx, user.ID)
	if err != nil || got.Email != user.Email {
		t.Fatalf("get: %+v %v", got, err)
	}

	updated, err := svc.Update(ctx, user.ID, domain.ProfileUpdate{LastName: ptr("  Tester ")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Test" || updated.LastName != "Tester" {
		t.Errorf("only the given field should change, got %+v", updated)
	}
	if updated.Email != user.Email || !updated.PhoneVerified {
		t.Error("identity fields must be untouched")
	}

	if _, err := svc.Update(ctx, "ghost", domain.ProfileUpdate{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
