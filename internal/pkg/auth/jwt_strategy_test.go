package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/eatery/internal/domain/model"
)

func TestNewJWTStrategy_DefaultTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	require.NotNil(t, strategy)
	assert.Equal(t, "secret", string(strategy.secret))
	assert.Equal(t, 24*time.Hour, strategy.ttl)
}

func TestNewJWTStrategy_CustomTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: 2 * time.Hour})
	assert.Equal(t, 2*time.Hour, strategy.ttl)
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	identity := model.Identity{UID: "uid-1", Email: "ana@eatery.test"}

	token, err := strategy.IssueToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := strategy.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt, 2*time.Second)

	other, err := strategy.IssueToken(identity)
	require.NoError(t, err)
	otherClaims, err := strategy.ParseToken(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID, "token ids must be unique")
}

func TestJWTStrategy_ParseGarbage(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	_, err := strategy.ParseToken("not-a-jwt")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestJWTStrategy_ParseWrongSecret(t *testing.T) {
	issuer := NewJWTStrategy("secret", Options{})
	token, err := issuer.IssueToken(model.Identity{UID: "u"})
	require.NoError(t, err)

	_, err = NewJWTStrategy("other", Options{}).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTStrategy_ParseExpired(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	strategy.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := strategy.IssueToken(model.Identity{UID: "u"})
	require.NoError(t, err)

	strategy.now = time.Now
	_, err = strategy.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTStrategy_RejectsOtherAlgorithms(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	c := claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = strategy.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTStrategy_RejectsMissingSubject(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	c := claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = strategy.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTStrategy_Name(t *testing.T) {
	assert.Equal(t, "jwt", NewJWTStrategy("secret", Options{}).Name())
}
