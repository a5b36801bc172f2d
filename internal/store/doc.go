// Package store defines the persistence contracts for users, posts,
// categories and comments, the sentinel errors implementations return, and
// the transaction helper services use for multi-step writes.
package store
