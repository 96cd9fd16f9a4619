package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/you/foodauth/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&DBUser{}, &DBStaff{}, &DBOTP{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Email:        "jane@example.com",
		Phone:        "+15550001111",
		PasswordHash: "hashed_password",
		FirstName:    "Jane",
		LastName:     "Doe",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected id to be assigned")
	}

	tests := []struct {
		name string
		find func() (*domain.User, error)
	}{
		{"by email", func() (*domain.User, error) { return repo.FindByEmail(ctx, "jane@example.com") }},
		{"by phone", func() (*domain.User, error) { return repo.FindByPhone(ctx, "+15550001111") }},
		{"by id", func() (*domain.User, error) { return repo.FindByID(ctx, user.ID) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.find()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != user.ID || got.Email != user.Email || got.Phone != user.Phone {
				t.Errorf("unexpected user %+v", got)
			}
			if got.FirstName != "Jane" || got.LastName != "Doe" || got.PhoneVerified {
				t.Errorf("unexpected profile fields %+v", got)
			}
		})
	}
}

func TestUserRepositoryImpl_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByPhone(ctx, ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("empty phone should never match, got %v", err)
	}
	if err := repo.MarkPhoneVerified(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_Duplicates(t *testing.T) {
	tests := []struct {
		name     string
		user     domain.User
		expected error
	}{
		{name: "same email", user: domain.User{Email: "dup@example.com", Phone: "+15550009999"}, expected: domain.ErrUserAlreadyExists},
		{name: "same email and phone", user: domain.User{Email: "dup@example.com", Phone: "+15550001234"}, expected: domain.ErrUserAlreadyExists},
		{name: "same phone", user: domain.User{Email: "other@example.com", Phone: "+15550001234"}, expected: domain.ErrPhoneAlreadyUsed},
	}

	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	if err := repo.Create(ctx, &domain.User{Email: "dup@example.com", Phone: "+15550001234", PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			user.PasswordHash = "h"
			if err := repo.Create(ctx, &user); !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestUserRepositoryImpl_UpdateToTakenPhone(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	first := &domain.User{Email: "a@example.com", Phone: "+15550000001", PasswordHash: "h"}
	second := &domain.User{Email: "b@example.com", Phone: "+15550000002", PasswordHash: "h"}
	for _, u := range []*domain.User{first, second} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create %s: %v", u.Email, err)
		}
	}

	second.Phone = first.Phone
	if err := repo.Update(ctx, second); !errors.Is(err, domain.ErrPhoneAlreadyUsed) {
		t.Errorf("expected ErrPhoneAlreadyUsed, got %v", err)
	}
}

func TestUserRepositoryImpl_PhonelessUsersDoNotCollide(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := repo.Create(ctx, &domain.User{Email: email, PasswordHash: "h"}); err != nil {
			t.Fatalf("create %s: %v", email, err)
		}
	}
}

func TestUserRepositoryImpl_UpdateAndVerify(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Email: "u@example.com", Phone: "+15550002222", PasswordHash: "h"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	user.FirstName = "Updated"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.MarkPhoneVerified(ctx, user.ID); err != nil {
		t.Fatalf("mark verified: %v", err)
	}

	got, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.FirstName != "Updated" || !got.PhoneVerified {
		t.Errorf("unexpected user after update %+v", got)
	}

	if err := repo.Update(ctx, &domain.User{ID: "missing", Email: "x@example.com"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGormTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	tx := NewTransactor(db)
	ctx := context.Background()

	user := &domain.User{Email: "tx@example.com", Phone: "+15550003333", PasswordHash: "h"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := repo.MarkPhoneVerified(ctx, user.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.PhoneVerified {
		t.Error("verification should have been rolled back")
	}

	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return repo.MarkPhoneVerified(ctx, user.ID)
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	got, _ = repo.FindByID(ctx, user.ID)
	if !got.PhoneVerified {
		t.Error("verification should have been committed")
	}
}
