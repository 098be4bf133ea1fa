package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	return &Service{Repo: NewMemoryRepo(), Cost: bcrypt.MinCost}
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{
		Email:           "  Ada@Example.COM ",
		Password:        "Engines1842",
		ConfirmPassword: "Engines1842",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Engines1842" {
		t.Fatalf("expected hashed password")
	}
	if user.Provider != ProviderPassword {
		t.Fatalf("expected password provider, got %q", user.Provider)
	}

	got, err := svc.Login(ctx, "ADA@example.com", "Engines1842")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected %s, got %s", user.ID, got.ID)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "Engines1842"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	in := SignupInput{Email: "grace@example.com", Password: "Compiler1", ConfirmPassword: "Compiler1"}

	if _, err := svc.Signup(ctx, in); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	in.Email = "GRACE@example.com"
	if _, err := svc.Signup(ctx, in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupValidation(t *testing.T) {
	cases := map[string]struct {
		in   SignupInput
		want string
	}{
		"missing":  {SignupInput{}, "required"},
		"email":    {SignupInput{Email: "not-an-email", Password: "Abcdefg1", ConfirmPassword: "Abcdefg1"}, "email format"},
		"mismatch": {SignupInput{Email: "a@b.io", Password: "Abcdefg1", ConfirmPassword: "Abcdefg2"}, "do not match"},
		"short":    {SignupInput{Email: "a@b.io", Password: "Ab1", ConfirmPassword: "Ab1"}, "at least 8"},
		"upper":    {SignupInput{Email: "a@b.io", Password: "abcdefg1", ConfirmPassword: "abcdefg1"}, "uppercase"},
		"lower":    {SignupInput{Email: "a@b.io", Password: "ABCDEFG1", ConfirmPassword: "ABCDEFG1"}, "lowercase"},
		"digit":    {SignupInput{Email: "a@b.io", Password: "Abcdefgh", ConfirmPassword: "Abcdefgh"}, "number"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newTestService().Signup(context.Background(), tc.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput in chain")
			}
			if !strings.Contains(strings.Join(verr.Problems, "|"), tc.want) {
				t.Fatalf("expected problem containing %q, got %v", tc.want, verr.Problems)
			}
		})
	}
}

func TestUpsertFromAuthKeepsPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "Lin@Example.com", Provider: ProviderGoogle}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	user, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Email != "lin@example.com" || user.Provider != ProviderGoogle {
		t.Fatalf("unexpected user %+v", user)
	}

	if err := svc.UpsertFromAuth(ctx, User{ID: "", Email: "x@y.io"}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestLoginHashesForUnknownAccounts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "sso@example.com", Provider: ProviderGoogle}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}

	calls := 0
	orig := compareHash
	compareHash = func(hash, password []byte) error {
		calls++
		if _, err := bcrypt.Cost(hash); err != nil {
			t.Fatalf("expected a bcrypt hash, got %q", hash)
		}
		return orig(hash, password)
	}
	t.Cleanup(func() { compareHash = orig })

	for _, email := range []string{"nobody@example.com", "sso@example.com"} {
		if _, err := svc.Login(ctx, email, "Engines1842"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %s, got %v", email, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected one hash comparison per attempt, got %d", calls)
	}
}
