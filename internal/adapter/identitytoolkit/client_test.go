package identitytoolkit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
	pkgAuth "github.com/polkiloo/eatery/internal/pkg/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type fakeService struct {
	t        *testing.T
	accounts map[string]string
	tokens   map[string]string
}

func newFakeService(t *testing.T) *httptest.Server {
	svc := &fakeService{t: t, accounts: map[string]string{}, tokens: map[string]string{}}
	return httptest.NewServer(svc)
}

func (s *fakeService) fail(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": 400, "message": message}})
}

func (s *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("key") != "test-key" {
		s.fail(w, "API_KEY_INVALID")
		return
	}
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	switch r.URL.Path {
	case "/v1/accounts:signUp":
		if _, ok := s.accounts[email]; ok {
			s.fail(w, "EMAIL_EXISTS")
			return
		}
		if len(password) < 6 {
			s.fail(w, "WEAK_PASSWORD : Password should be at least 6 characters")
			return
		}
		s.accounts[email] = password
		s.tokens["tok-"+email] = email
		_ = json.NewEncoder(w).Encode(map[string]string{"idToken": "tok-" + email, "email": email, "localId": "uid-" + email})
	case "/v1/accounts:signInWithPassword":
		if stored, ok := s.accounts[email]; !ok || stored != password {
			s.fail(w, "INVALID_LOGIN_CREDENTIALS")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"idToken": "tok-" + email, "email": email, "localId": "uid-" + email})
	case "/v1/accounts:lookup":
		token, _ := body["idToken"].(string)
		owner, ok := s.tokens[token]
		if !ok {
			s.fail(w, "INVALID_ID_TOKEN")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"users": []map[string]string{{"localId": "uid-" + owner, "email": owner}}})
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(baseURL, "test-key", pkgAuth.NewMemoryRevocationList(), testLogger())
	require.NoError(t, err)
	return client
}

func TestNewHTTPClientValidates(t *testing.T) {
	revocations := pkgAuth.NewMemoryRevocationList()
	_, err := NewHTTPClient("://bad-url", "key", revocations, testLogger())
	assert.Error(t, err)
	_, err = NewHTTPClient("/relative", "key", revocations, testLogger())
	assert.Error(t, err)
	_, err = NewHTTPClient("http://example.com", "", revocations, testLogger())
	assert.Error(t, err)
}

func TestSignUpSignInVerifySignOut(t *testing.T) {
	srv := newFakeService(t)
	defer srv.Close()
	client := newTestClient(t, srv.URL+"/v1")
	ctx := context.Background()

	identity, token, err := client.SignUp(ctx, "ana@eatery.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-ana@eatery.test", identity.UID)
	assert.Equal(t, "tok-ana@eatery.test", token)

	_, _, err = client.SignUp(ctx, "ana@eatery.test", "secret1")
	var authErr *domainErrors.AuthError
	assert.True(t, errors.As(err, &authErr), "duplicate sign-up must be an auth error, got %v", err)

	_, _, err = client.SignUp(ctx, "bob@eatery.test", "123")
	assert.ErrorIs(t, err, pkgAuth.ErrWeakPassword)

	_, _, err = client.SignIn(ctx, "ana@eatery.test", "wrong")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)

	identity, token, err = client.SignIn(ctx, "ana@eatery.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@eatery.test", identity.Email)

	verified, err := client.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity.UID, verified.UID)

	_, err = client.Verify(ctx, "forged")
	assert.ErrorIs(t, err, domainErrors.ErrUnauthenticated)
	_, err = client.Verify(ctx, "")
	assert.ErrorIs(t, err, domainErrors.ErrUnauthenticated)

	require.NoError(t, client.SignOut(ctx, token))
	require.NoError(t, client.SignOut(ctx, ""))
	_, err = client.Verify(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthenticated)
}

func TestCallHandlesSpecialStatuses(t *testing.T) {
	t.Run("too many requests", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, _, err := newTestClient(t, srv.URL).SignIn(context.Background(), "a@b.c", "secret1")
		var tm TooManyRequestsError
		require.True(t, errors.As(err, &tm), "expected TooManyRequestsError, got %v", err)
		assert.Equal(t, 7*time.Second, tm.RetryAfter)
	})

	t.Run("server error is logged", func(t *testing.T) {
		logged := make(chan struct{}, 1)
		handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && a.Value.Any() == slog.LevelError {
				select {
				case logged <- struct{}{}:
				default:
				}
			}
			return a
		}})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		client, err := NewHTTPClient(srv.URL, "key", pkgAuth.NewMemoryRevocationList(), slog.New(handler))
		require.NoError(t, err)
		_, err = client.Verify(context.Background(), "token")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domainErrors.ErrUnauthenticated)

		select {
		case <-logged:
		case <-time.After(time.Second):
			t.Fatal("expected error log to be written")
		}
	})

	t.Run("unknown client error passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, _, err := newTestClient(t, srv.URL).SignIn(context.Background(), "a@b.c", "secret1")
		var se *ServiceError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusForbidden, se.Status)
	})
}

func TestServiceErrorCode(t *testing.T) {
	err := &ServiceError{Status: 400, Message: "WEAK_PASSWORD : Password should be at least 6 characters"}
	assert.Equal(t, "WEAK_PASSWORD", err.Code())
	assert.Contains(t, err.Error(), "400")
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter(""))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
	assert.Equal(t, 5*time.Second, parseRetryAfter("soon"))

	future := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
	got := parseRetryAfter(future)
	assert.True(t, got > 0 && got <= 10*time.Second, "unexpected duration %v", got)
}
