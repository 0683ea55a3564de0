package grpc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Probe reports whether a dependency can currently be used.
type Probe func(ctx context.Context) error

// HealthServiceArgs contain the mandatory arguments for the HealthService.
type HealthServiceArgs struct {
	// Probes are keyed by the service name they are published under.
	Probes map[string]Probe
}

// HealthService publishes the standard grpc health protocol, fed by dependency probes.
// The overall status (empty service name) is SERVING only when every probe passes.
type HealthService struct {
	server *health.Server
	probes map[string]Probe
}

// NewHealthService creates a HealthService. Every service starts as NOT_SERVING.
func NewHealthService(args HealthServiceArgs) *HealthService {
	h := &HealthService{server: health.NewServer(), probes: args.Probes}
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	for name := range h.probes {
		h.server.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return h
}

// Register mounts the health service on s.
func (h *HealthService) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
}

// Check runs every probe concurrently and publishes the outcome.
func (h *HealthService) Check(ctx context.Context) error {
	var (
		mu     sync.Mutex
		failed []error
	)
	var g errgroup.Group
	for name, probe := range h.probes {
		g.Go(func() error {
			status := healthpb.HealthCheckResponse_SERVING
			if err := probe(ctx); err != nil {
				status = healthpb.HealthCheckResponse_NOT_SERVING
				mu.Lock()
				failed = append(failed, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
			h.server.SetServingStatus(name, status)
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		sort.Slice(failed, func(i, j int) bool { return failed[i].Error() < failed[j].Error() })
		h.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return errors.Join(failed...)
	}
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return nil
}

// Watch checks every interval until ctx is done, then reports every service as
// NOT_SERVING so that clients drain before shutdown.
func (h *HealthService) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := h.Check(ctx); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("health probe failed")
		}
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
		}
	}
}
