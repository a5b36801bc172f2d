// Package mocks provides centralized mock implementations for testing.
//
// Most mocks use function fields: a test sets only the behaviour it cares
// about and every other method falls back to a simple default. MockCache is a
// testify/mock mock for tests that assert on exact cache calls.
//
//	users := &mocks.MockUserStore{
//	    GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
//	        return nil, store.ErrUserNotFound
//	    },
//	}
package mocks
