// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the operational gRPC surface of the blog API: the
// standard health service and server reflection.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
)

// ServiceName is the health-check name reported for the blog API itself.
// The empty name reports the state of the whole server.
const ServiceName = "blog.v1.BlogAPI"

// Handler is the root gRPC transport handler.
//
// It owns the health server. The reported status follows the readiness
// of the storage layer, which is probed through [service.Services.Health].
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. All services start in the
// NOT_SERVING state until [Handler.Refresh] or [Handler.Register] runs.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the health and reflection services to server and
// performs the first readiness probe.
func (h *Handler) Register(ctx context.Context, server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	reflection.Register(server)
	h.Refresh(ctx)
}

// Refresh probes the storage layer and updates the reported status.
func (h *Handler) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	serving := healthpb.HealthCheckResponse_SERVING
	if h.services == nil || h.services.Health == nil {
		h.setStatus(serving)
		return serving
	}

	if err := h.services.Health.PingContext(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "*Handler.Refresh").Msg("storage is not reachable")
		serving = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.setStatus(serving)

	return serving
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// LoggingInterceptor writes one log line per unary call.
func (h *Handler) LoggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	event := h.logger.Debug()
	if err != nil {
		event = h.logger.Warn().Err(err)
	}
	event.
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
