package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// TokenService resolves the subject of bearer tokens.
type TokenService interface {
	GetSubject(ctx context.Context, token string) (string, error)
}

// Authenticate validates bearer tokens and injects the subject into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the token and returns
// a context carrying its subject.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}
	if tokenString == "" {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	subject, err := m.tokenService.GetSubject(ctx, tokenString)
	if err != nil || subject == "" {
		m.logger.DebugContext(ctx, "rejected token", "error", err)
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	return m.contextManager.SetSubjectToContext(ctx, subject), nil
}
