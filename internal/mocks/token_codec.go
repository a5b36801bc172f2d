package mocks

import (
	"context"

	"github.com/phrazzld/wordsmith-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing
type MockTokenCodec struct {
	// IssueFn allows test cases to mock the Issue behavior
	IssueFn func(ctx context.Context, claims map[string]any, subject string, expiryMs int64) (string, error)

	// VerifyFn allows test cases to mock the Verify behavior
	VerifyFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token     string
	Err       error
	Claims    *auth.Claims
	VerifyErr error
}

var _ auth.TokenCodec = (*MockTokenCodec)(nil)

// Issue implements the auth.TokenCodec interface
func (m *MockTokenCodec) Issue(
	ctx context.Context,
	claims map[string]any,
	subject string,
	expiryMs int64,
) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, claims, subject, expiryMs)
	}
	return m.Token, m.Err
}

// Verify implements the auth.TokenCodec interface
func (m *MockTokenCodec) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	return m.Claims, m.VerifyErr
}
