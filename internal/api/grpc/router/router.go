package router

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/gophkeeper-profile/internal/api/grpc/handler"
	"github.com/dtroode/gophkeeper-profile/internal/api/grpc/middleware"
	"github.com/dtroode/gophkeeper-profile/internal/logger"
	"github.com/dtroode/gophkeeper-profile/internal/model"
)

// Router builds the control API gRPC server.
type Router struct {
	editor         handler.ProfileEditor
	notices        handler.NoticeSource
	permissions    handler.PermissionSetter
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	editor handler.ProfileEditor,
	notices handler.NoticeSource,
	permissions handler.PermissionSetter,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		editor:         editor,
		notices:        notices,
		permissions:    permissions,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// authRequired exempts the health service; every profile call needs a token.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	return c.Service != healthpb.Health_ServiceDesc.ServiceName
}

// Register returns a server with the profile and health services and the
// logging, recovery and authentication interceptors installed.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	recoverer := recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		r.logger.ErrorContext(ctx, "recovered from panic", "panic", fmt.Sprint(p))
		return status.Error(codes.Internal, "internal server error")
	})

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverer),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverer),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	s := grpc.NewServer(opts...)
	handler.RegisterProfileServer(s, handler.NewProfile(r.editor, r.notices, r.permissions, r.contextManager, r.logger))
	healthpb.RegisterHealthServer(s, health.NewServer())

	return s
}
