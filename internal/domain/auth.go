package domain

import "context"

// Operator is the authenticated dashboard user.
type Operator struct {
	ID    string
	Email string
	// Token is the bearer token forwarded to the upstream API.
	Token string
}

// TokenVerifier validates a bearer token and returns the operator it names.
type TokenVerifier interface {
	Verify(token string) (*Operator, error)
}

type operatorKey struct{}

// WithOperator returns a context carrying op.
func WithOperator(ctx context.Context, op *Operator) context.Context {
	return context.WithValue(ctx, operatorKey{}, op)
}

// OperatorFromContext returns the operator stored by WithOperator, if any.
func OperatorFromContext(ctx context.Context) (*Operator, bool) {
	op, ok := ctx.Value(operatorKey{}).(*Operator)
	return op, ok && op != nil
}
