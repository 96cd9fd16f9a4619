package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/you/foodauth/domain"
	"github.com/you/foodauth/internal/mocks"
)

// The default mock behaviours are relied on by service and handler tests,
// so they are pinned down here.
func TestMockDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("token service round trip", func(t *testing.T) {
		tokens := mocks.NewMockTokenService()
		payload := domain.TokenPayload{StaffID: "s-1", Email: "a@x.com", Type: domain.PrincipalStaff, Role: domain.RoleChef}

		pair, err := tokens.IssuePair(payload)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		got, err := tokens.Verify(pair.AccessToken, domain.AccessSecret)
		if err != nil || *got != payload {
			t.Fatalf("expected %+v, got %+v (%v)", payload, got, err)
		}
		if _, err := tokens.Verify(pair.AccessToken, domain.RefreshSecret); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("access token must not verify as refresh, got %v", err)
		}
	})

	t.Run("user repository stores copies", func(t *testing.T) {
		repo := mocks.NewMockUserRepository()
		user := &domain.User{Email: "a@x.com", Phone: "+1"}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("create: %v", err)
		}
		user.FirstName = "mutated"

		got, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.FirstName != "" {
			t.Error("repository should not alias caller structs")
		}
		if err := repo.Create(ctx, &domain.User{Email: "b@x.com", Phone: "+1"}); domain.KindOf(err) != domain.KindConflict {
			t.Errorf("duplicate phone should conflict, got %v", err)
		}
	})

	t.Run("override wins over default", func(t *testing.T) {
		repo := mocks.NewMockUserRepository()
		boom := errors.New("db down")
		repo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return nil, boom
		}
		if _, err := repo.FindByEmail(ctx, "a@x.com"); !errors.Is(err, boom) {
			t.Errorf("expected override error, got %v", err)
		}
	})

	t.Run("casbin enforcer wildcard", func(t *testing.T) {
		e := mocks.NewMockCasbinEnforcer([]string{"role_SUPER_ADMIN", "/api/admin/*", "*"})
		ok, _ := e.Enforce("role_SUPER_ADMIN", "/api/admin/policies", "DELETE")
		if !ok {
			t.Error("wildcard rule should match")
		}
		ok, _ = e.Enforce("role_CHEF", "/api/admin/policies", "GET")
		if ok {
			t.Error("other subjects must be denied")
		}
	})

	t.Run("password service is reversible", func(t *testing.T) {
		pw := mocks.NewMockPasswordService()
		hash, _ := pw.Hash("secret1")
		if hash != mocks.FakeHash("secret1") {
			t.Fatalf("unexpected hash %q", hash)
		}
		if !pw.Verify(hash, "secret1") || pw.Verify(hash, "secret2") {
			t.Error("verify should only accept the hashed plaintext")
		}
		if pw.Verify("secret1", "secret1") {
			t.Error("unprefixed hashes must be rejected")
		}
		if len(pw.Hashed) != 1 || pw.Hashed[0] != "secret1" || len(pw.Verified) != 3 {
			t.Errorf("unexpected calls hashed=%v verified=%v", pw.Hashed, pw.Verified)
		}
	})
}
