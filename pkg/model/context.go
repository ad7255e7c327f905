package model

import "context"

type ctxKey int

var userKey ctxKey

// NewContextWithUser returns a new [context.Context] carrying the
// authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user stored in ctx, if any. It
// had to have been set by the token authentication middleware before.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
