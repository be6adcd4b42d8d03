package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	"github.com/polkiloo/eatery/internal/domain/model"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
	testhelpers "github.com/polkiloo/eatery/internal/test"
)

func newTestAuthUseCase() (*AuthUseCase, *testhelpers.AccountRepositoryStub, *testhelpers.RevocationListStub) {
	accounts := testhelpers.NewAccountRepositoryStub()
	revocations := &testhelpers.RevocationListStub{}
	return NewAuthUseCase(accounts, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, revocations), accounts, revocations
}

func TestAuthUseCaseSignUpSuccess(t *testing.T) {
	uc, accounts, _ := newTestAuthUseCase()

	identity, token, err := uc.SignUp(context.Background(), "  Guest@Eatery.Test ", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Email != "guest@eatery.test" {
		t.Fatalf("expected normalized email, got %q", identity.Email)
	}
	if token != "token:"+identity.UID+":guest@eatery.test" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := accounts.GetByEmail(context.Background(), "guest@eatery.test")
	if err != nil || stored.PasswordHash != "hash:secret1" {
		t.Fatalf("expected hashed account to be stored, got %+v, %v", stored, err)
	}
}

func TestAuthUseCaseSignUpRejectsBadEmail(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()
	for _, email := range []string{"", "not-an-email", "  "} {
		_, _, err := uc.SignUp(context.Background(), email, "secret1")
		var authErr *domainErrors.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected auth error for %q, got %v", email, err)
		}
	}
}

func TestAuthUseCaseSignUpWeakPassword(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()
	_, _, err := uc.SignUp(context.Background(), "guest@eatery.test", "123")
	if !errors.Is(err, pkgAuth.ErrWeakPassword) {
		t.Fatalf("expected weak password error, got %v", err)
	}
}

func TestAuthUseCaseSignUpDuplicate(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()
	if _, _, err := uc.SignUp(context.Background(), "guest@eatery.test", "secret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := uc.SignUp(context.Background(), "GUEST@eatery.test", "another1")
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected generic credentials error, got %v", err)
	}
}

func TestAuthUseCaseSignUpRepositoryError(t *testing.T) {
	uc, accounts, _ := newTestAuthUseCase()
	accounts.Err = testhelpers.ErrStub

	_, _, err := uc.SignUp(context.Background(), "guest@eatery.test", "secret1")
	var pe *domainErrors.PersistenceError
	if !errors.As(err, &pe) || !errors.Is(err, testhelpers.ErrStub) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestAuthUseCaseSignUpIssueTokenError(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	strategy := testhelpers.StrategyStub{IssueFn: func(model.Identity) (string, error) { return "", testhelpers.ErrStub }}
	uc := NewAuthUseCase(accounts, testhelpers.HasherStub{}, strategy, &testhelpers.RevocationListStub{})

	if _, _, err := uc.SignUp(context.Background(), "guest@eatery.test", "secret1"); !errors.Is(err, testhelpers.ErrStub) {
		t.Fatalf("expected issue error, got %v", err)
	}
}

func TestAuthUseCaseSignIn(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()
	created, _, err := uc.SignUp(context.Background(), "guest@eatery.test", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, token, err := uc.SignIn(context.Background(), " Guest@Eatery.test", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.UID != created.UID || token == "" {
		t.Fatalf("unexpected sign-in result %+v %q", identity, token)
	}

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "guest@eatery.test", "nope123"},
		{"unknown email", "ghost@eatery.test", "secret1"},
		{"empty password", "guest@eatery.test", ""},
		{"empty email", "", "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.SignIn(context.Background(), tc.email, tc.password)
			var authErr *domainErrors.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected auth error, got %v", err)
			}
			if authErr.Error() != domainErrors.ErrInvalidCredentials.Error() {
				t.Fatalf("auth error must not reveal the reason, got %q", authErr.Error())
			}
		})
	}
}

func TestAuthUseCaseSignInUnknownEmailComparesPassword(t *testing.T) {
	var compared []string
	hasher := testhelpers.HasherStub{CompareFn: func(hash, password string) error {
		compared = append(compared, hash)
		return testhelpers.HasherStub{}.Compare(hash, password)
	}}
	uc := NewAuthUseCase(testhelpers.NewAccountRepositoryStub(), hasher, testhelpers.StrategyStub{}, &testhelpers.RevocationListStub{})

	for i := 0; i < 2; i++ {
		_, _, err := uc.SignIn(context.Background(), "ghost@eatery.test", "secret1")
		var authErr *domainErrors.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected auth error, got %v", err)
		}
	}
	if len(compared) != 2 || compared[0] != "hash:"+unknownAccountPassword || compared[1] != compared[0] {
		t.Fatalf("expected a password comparison per attempt, got %v", compared)
	}
}

func TestAuthUseCaseSignInRepositoryError(t *testing.T) {
	uc, accounts, _ := newTestAuthUseCase()
	accounts.Err = testhelpers.ErrStub

	_, _, err := uc.SignIn(context.Background(), "guest@eatery.test", "secret1")
	var pe *domainErrors.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestAuthUseCaseVerifyAndSignOut(t *testing.T) {
	uc, _, revocations := newTestAuthUseCase()
	_, token, err := uc.SignUp(context.Background(), "guest@eatery.test", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	identity, err := uc.Verify(context.Background(), token)
	if err != nil || identity.Email != "guest@eatery.test" {
		t.Fatalf("expected valid session, got %+v, %v", identity, err)
	}

	if err := uc.SignOut(context.Background(), token); err != nil {
		t.Fatalf("sign out failed: %v", err)
	}
	if _, ok := revocations.Items[token]; !ok {
		t.Fatalf("expected token to be revoked")
	}
	if _, err := uc.Verify(context.Background(), token); !errors.Is(err, domainErrors.ErrUnauthenticated) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestAuthUseCaseVerifyRejectsInvalidTokens(t *testing.T) {
	uc, _, _ := newTestAuthUseCase()
	for _, token := range []string{"", "garbage"} {
		if _, err := uc.Verify(context.Background(), token); !errors.Is(err, domainErrors.ErrUnauthenticated) {
			t.Fatalf("expected unauthenticated for %q, got %v", token, err)
		}
	}
}

func TestAuthUseCaseVerifyRevocationError(t *testing.T) {
	uc, _, revocations := newTestAuthUseCase()
	revocations.Err = testhelpers.ErrStub
	if _, err := uc.Verify(context.Background(), "token:u1:a@b.c"); !errors.Is(err, testhelpers.ErrStub) {
		t.Fatalf("expected revocation error, got %v", err)
	}
}

func TestAuthUseCaseSignOutInvalidTokenIsNoop(t *testing.T) {
	uc, _, revocations := newTestAuthUseCase()
	for _, token := range []string{"", "garbage"} {
		if err := uc.SignOut(context.Background(), token); err != nil {
			t.Fatalf("expected no error for %q, got %v", token, err)
		}
	}
	if len(revocations.Items) != 0 {
		t.Fatalf("expected nothing to be revoked, got %v", revocations.Items)
	}
}
