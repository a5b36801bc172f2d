// Package auth implements identity tokens, password hashing and the
// credential checks behind registration and login.
package auth
