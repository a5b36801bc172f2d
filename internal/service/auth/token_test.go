package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordsmith-api/internal/config"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenCodec(t *testing.T) {
	t.Parallel()

	_, err := NewTokenCodec(config.AuthConfig{JWTSecret: "short"})
	assert.Error(t, err)

	codec, err := NewTokenCodec(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	assert.NotNil(t, codec)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	codec, err := newTokenCodec(testSecret, fixedClock(now))
	require.NoError(t, err)

	claims := map[string]any{
		ClaimAuthorities: []string{"USER"},
		ClaimUsername:    "jdoe",
		"tenant":         "blog",
	}
	token, err := codec.Issue(context.Background(), claims, "jdoe", 900000)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := codec.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", got.Subject)
	assert.Equal(t, "jdoe", got.Username)
	assert.Equal(t, []string{"USER"}, got.Authorities)
	assert.Equal(t, now.Unix(), got.IssuedAt.Unix())
	assert.Equal(t, now.Add(15*time.Minute).Unix(), got.ExpiresAt.Unix())
	assert.Equal(t, "blog", got.Extra["tenant"])
	assert.False(t, got.IsExpired(now))
}

func TestVerifyFailures(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		verify  func() time.Time
		wantErr error
	}{
		{
			name: "zero expiry is expired immediately",
			token: func(t *testing.T) string {
				codec, err := newTokenCodec(testSecret, fixedClock(now))
				require.NoError(t, err)
				token, err := codec.Issue(ctx, nil, "jdoe", 0)
				require.NoError(t, err)
				return token
			},
			verify:  fixedClock(now),
			wantErr: ErrExpiredToken,
		},
		{
			name: "expired after lifetime",
			token: func(t *testing.T) string {
				codec, err := newTokenCodec(testSecret, fixedClock(now))
				require.NoError(t, err)
				token, err := codec.Issue(ctx, nil, "jdoe", 60000)
				require.NoError(t, err)
				return token
			},
			verify:  fixedClock(now.Add(time.Minute)),
			wantErr: ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				codec, err := newTokenCodec("another-secret-that-is-long-enough-too", fixedClock(now))
				require.NoError(t, err)
				token, err := codec.Issue(ctx, nil, "jdoe", 60000)
				require.NoError(t, err)
				return token
			},
			verify:  fixedClock(now),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not-a-token" },
			verify:  fixedClock(now),
			wantErr: ErrMalformedToken,
		},
		{
			name: "unsigned token",
			token: func(t *testing.T) string {
				token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
					"sub": "jdoe",
					"exp": now.Add(time.Hour).Unix(),
				})
				signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return signed
			},
			verify:  fixedClock(now),
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
					"exp": now.Add(time.Hour).Unix(),
				})
				signed, err := token.SignedString([]byte(testSecret))
				require.NoError(t, err)
				return signed
			},
			verify:  fixedClock(now),
			wantErr: ErrMalformedToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			codec, err := newTokenCodec(testSecret, tc.verify)
			require.NoError(t, err)

			claims, err := codec.Verify(ctx, tc.token(t))
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestClaimsIsExpired(t *testing.T) {
	t.Parallel()

	exp := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &Claims{ExpiresAt: exp}

	assert.False(t, c.IsExpired(exp.Add(-time.Second)))
	assert.True(t, c.IsExpired(exp), "expiry equal to now is expired")
	assert.True(t, c.IsExpired(exp.Add(time.Second)))
}

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)
	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	verifier := NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(hash, "s3cret-password"))
	assert.Error(t, verifier.Compare(hash, "wrong"))

	assert.Equal(t, 10, NewBcryptHasher(0).cost, "out of range cost falls back to default")
}
