package utils

import (
	"context"
)

type contextKey string

const ContextAccountIDKey contextKey = "accountID"
const ContextAccountTypeKey contextKey = "accountType"
const ContextRoleKey contextKey = "role"

func GetAccountIDFromContext(ctx context.Context) (string, bool) {
	id := ctx.Value(ContextAccountIDKey)
	idStr, ok := id.(string)
	return idStr, ok
}

func GetAccountTypeFromContext(ctx context.Context) (string, bool) {
	kind := ctx.Value(ContextAccountTypeKey)
	kindStr, ok := kind.(string)
	return kindStr, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role := ctx.Value(ContextRoleKey)
	roleStr, ok := role.(string)
	return roleStr, ok
}
