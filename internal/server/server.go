// Package server exposes the operational gRPC endpoint: the standard health
// service and reflection. The bot itself talks to Telegram, not gRPC.
package server

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stockbot/internal/auth"
	"github.com/fekuna/omnipos-stockbot/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is reported by the health service alongside the overall "" entry.
const ServiceName = "stockbot"

// chatIDHeader lets operator tooling attribute a call to a chat.
const chatIDHeader = "x-chat-id"

// Pinger is anything the health probe can check, such as *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger logger.ZapLogger
}

func New(log logger.ZapLogger) *Server {
	gs := grpc.NewServer(grpc.UnaryInterceptor(UnaryInterceptor(log)))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)

	s := &Server{grpc: gs, health: hs, logger: log}
	s.SetServing(false)
	return s
}

// SetServing flips both the overall and the named service status.
func (s *Server) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// WatchHealth pings p every interval and reports the result until ctx is done.
func (s *Server) WatchHealth(ctx context.Context, p Pinger, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		err := p.PingContext(pingCtx)
		if err != nil && ctx.Err() == nil {
			s.logger.Warn("Health check failed", zap.Error(err))
		}
		s.SetServing(err == nil)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// UnaryInterceptor tags the context with the caller's chat id, logs each call
// and turns handler panics into codes.Internal.
func UnaryInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get(chatIDHeader); len(vals) > 0 {
				if id, perr := strconv.ParseInt(strings.TrimSpace(vals[0]), 10, 64); perr == nil {
					ctx = auth.WithChatID(ctx, id)
				}
			}
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic in gRPC handler", zap.String("method", info.FullMethod), zap.Any("panic", r))
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
			log.Debug("gRPC call",
				zap.String("method", info.FullMethod),
				zap.Duration("took", time.Since(start)),
				zap.String("code", status.Code(err).String()),
			)
		}()
		return handler(ctx, req)
	}
}
