package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	UsernameKey   contextKey = "username"
	RoleKey       contextKey = "role"
	BusinessIDKey contextKey = "business_id"
)

// GetUserIDFromContext extracts the authenticated user's ID from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUsernameFromContext extracts the authenticated username from the request context.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// GetRoleFromContext extracts the authenticated user's role from the request context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetBusinessIDFromContext extracts the acting business (tenant) ID from the
// request context. ok is false when the user has no business association yet;
// read handlers degrade to empty results in that case, write handlers refuse.
func GetBusinessIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	businessID, ok := ctx.Value(BusinessIDKey).(uuid.UUID)
	return businessID, ok
}
