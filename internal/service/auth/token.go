package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phrazzld/wordsmith-api/internal/config"
	"github.com/phrazzld/wordsmith-api/internal/platform/logger"
)

// Claim names written by the application in addition to the registered ones.
const (
	ClaimAuthorities = "authorities"
	ClaimUsername    = "username"
)

// MinSecretLength is the minimum signing secret length in bytes.
const MinSecretLength = 32

// TokenCodec issues and verifies signed identity tokens.
type TokenCodec interface {
	// Issue signs a token for subject carrying claims. The token expires
	// expiryMs milliseconds after the current time.
	Issue(ctx context.Context, claims map[string]any, subject string, expiryMs int64) (string, error)

	// Verify checks the signature and expiry of token and returns its claims.
	// It fails with ErrInvalidToken, ErrExpiredToken or ErrMalformedToken.
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Claims is the decoded content of an identity token.
type Claims struct {
	Subject     string
	Username    string
	Authorities []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	// Extra holds any other claims the token carried.
	Extra map[string]any
}

// IsExpired reports whether the token is no longer valid at now. A token
// whose expiry equals now is expired.
func (c *Claims) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// hmacTokenCodec is an implementation of TokenCodec using HMAC-SHA256 signing.
type hmacTokenCodec struct {
	signingKey []byte
	timeFunc   func() time.Time // Injectable for testing
}

// Ensure hmacTokenCodec implements TokenCodec interface
var _ TokenCodec = (*hmacTokenCodec)(nil)

// NewTokenCodec creates a TokenCodec signing with the configured secret.
// The secret bytes are used as the HMAC key directly.
func NewTokenCodec(cfg config.AuthConfig) (TokenCodec, error) {
	return newTokenCodec(cfg.JWTSecret, time.Now)
}

func newTokenCodec(secret string, timeFunc func() time.Time) (*hmacTokenCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	return &hmacTokenCodec{
		signingKey: []byte(secret),
		timeFunc:   timeFunc,
	}, nil
}

// Issue implements TokenCodec.Issue.
func (c *hmacTokenCodec) Issue(
	ctx context.Context,
	claims map[string]any,
	subject string,
	expiryMs int64,
) (string, error) {
	log := logger.FromContext(ctx)
	now := c.timeFunc()

	mapClaims := jwt.MapClaims{}
	for name, value := range claims {
		mapClaims[name] = value
	}
	mapClaims["sub"] = subject
	mapClaims["iat"] = jwt.NewNumericDate(now)
	mapClaims["exp"] = jwt.NewNumericDate(now.Add(time.Duration(expiryMs) * time.Millisecond))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		log.Error("failed to sign identity token",
			"error", err,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// Verify implements TokenCodec.Verify.
func (c *hmacTokenCodec) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	// Time claims are checked below so that expiry == now counts as expired.
	token, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token verification failed: malformed token", "error", err)
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token verification failed: invalid signature", "error", err)
			return nil, ErrInvalidToken
		default:
			log.Debug("token verification failed: other validation error",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}

	claims, err := decodeClaims(mapClaims)
	if err != nil {
		log.Debug("token verification failed: bad claims", "error", err)
		return nil, ErrMalformedToken
	}

	if claims.IsExpired(c.timeFunc()) {
		log.Debug("token verification failed: token expired",
			"subject", claims.Subject,
			"expiry", claims.ExpiresAt)
		return nil, ErrExpiredToken
	}

	return claims, nil
}

func decodeClaims(mapClaims jwt.MapClaims) (*Claims, error) {
	subject, err := mapClaims.GetSubject()
	if err != nil || subject == "" {
		return nil, fmt.Errorf("missing subject")
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("missing expiry")
	}

	claims := &Claims{
		Subject:   subject,
		ExpiresAt: exp.Time,
		Extra:     map[string]any{},
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	for name, value := range mapClaims {
		switch name {
		case "sub", "exp", "iat":
		case ClaimUsername:
			claims.Username, _ = value.(string)
		case ClaimAuthorities:
			list, ok := value.([]interface{})
			if !ok {
				return nil, fmt.Errorf("authorities claim is not a list")
			}
			for _, item := range list {
				if s, ok := item.(string); ok {
					claims.Authorities = append(claims.Authorities, s)
				}
			}
		default:
			claims.Extra[name] = value
		}
	}
	return claims, nil
}
