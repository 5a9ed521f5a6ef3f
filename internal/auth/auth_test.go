package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens("secret", "swipe", time.Hour)

	token, expiresAt, err := tokens.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestVerifyRejects(t *testing.T) {
	tokens := NewTokens("secret", "swipe", time.Hour)
	valid, _, err := tokens.Issue(7)
	require.NoError(t, err)

	_, err = NewTokens("other", "swipe", time.Hour).Verify(valid)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	_, err = NewTokens("secret", "someone-else", time.Hour).Verify(valid)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong issuer")

	expired := NewTokens("secret", "swipe", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _, err := expired.Issue(7)
	require.NoError(t, err)
	_, err = tokens.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken, "unsigned")

	_, err = tokens.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.NoError(t, hasher.Compare(hash, "s3cret!"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
}
