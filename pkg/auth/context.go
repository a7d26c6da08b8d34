package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const operatorKey contextKey = "operator"

// ErrOperatorNotFound is returned when no operator exists in the request context.
var ErrOperatorNotFound = errors.New("operator not found in context")

// OperatorFromCtx returns the authenticated operator's username.
// Returns ErrOperatorNotFound for requests that did not pass RequireAuth.
func OperatorFromCtx(ctx context.Context) (string, error) {
	op, ok := ctx.Value(operatorKey).(string)
	if !ok || op == "" {
		return "", ErrOperatorNotFound
	}
	return op, nil
}

// WithOperator returns a new context with the given operator attached.
// Used by RequireAuth after validating the session.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorKey, operator)
}
