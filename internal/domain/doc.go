// Package domain contains the blog entities (users, posts, categories and
// comments) and the error categories shared by every layer. It has no
// knowledge of storage or transport.
package domain
