package model

import "context"

// ContextManager stores the authenticated client subject in request contexts.
type ContextManager interface {
	SetSubjectToContext(ctx context.Context, subject string) context.Context
	GetSubjectFromContext(ctx context.Context) (string, bool)
}
