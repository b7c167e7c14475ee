package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/msgboard/msgboard/backend/internal/handler"
	"github.com/msgboard/msgboard/backend/internal/service"
	service_utils "github.com/msgboard/msgboard/backend/internal/service/utils"
	"github.com/msgboard/msgboard/backend/internal/storage/memory"
	"github.com/msgboard/msgboard/backend/internal/storage/mongo"
	"github.com/msgboard/msgboard/backend/internal/storage/pg"
	"github.com/msgboard/msgboard/backend/internal/utils"
	"github.com/msgboard/msgboard/shared/config"
	"github.com/msgboard/msgboard/shared/logger"
	"github.com/msgboard/msgboard/shared/middleware/metrics"
	"github.com/msgboard/msgboard/shared/middleware/ratelimiter"
)

const rateLimitExpiration = time.Hour

// Storage is what a board store driver has to provide.
type Storage interface {
	service.BoardStorage
	handler.HealthChecker
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config      *config.Config
	Storage     Storage
	Handler     *handler.Handler
	Metrics     *metrics.Metrics
	Registry    *prometheus.Registry
	PostLimiter *ratelimiter.Limiter // nil when rate limiting is off
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := NewStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewDependencies(cfg, storage), nil
}

// NewDependencies wires services and handlers around an already opened storage.
func NewDependencies(cfg *config.Config, storage Storage) *Dependencies {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	validator := utils.NewInputValidator(cfg.Public.Limits)
	sanitizer := service_utils.NewTextSanitizer(cfg.Public.SanitizeHtml)

	thread := service.NewThread(storage, validator, sanitizer, cfg, m.SaveConflicts)
	reply := service.NewReply(storage, validator, sanitizer, cfg, m.SaveConflicts)

	deps := &Dependencies{
		Config:   cfg,
		Storage:  storage,
		Handler:  handler.New(thread, reply, storage, cfg),
		Metrics:  m,
		Registry: registry,
	}
	if rl := cfg.Public.PostRateLimit; rl.Rate > 0 {
		deps.PostLimiter = ratelimiter.New(rl.Rate, rl.Burst, rateLimitExpiration)
	}
	return deps
}

// NewStorage opens the driver selected by storage.driver.
func NewStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	logger.Log.Info("opening board storage", "driver", cfg.Public.Storage.Driver)
	switch cfg.Public.Storage.Driver {
	case config.DriverPostgres:
		return pg.New(ctx, cfg)
	case config.DriverMongo:
		return mongo.New(ctx, cfg)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Public.Storage.Driver)
	}
}

// Close releases everything SetupDependencies opened.
func (d *Dependencies) Close() error {
	if d.PostLimiter != nil {
		d.PostLimiter.Stop()
	}
	return d.Storage.Cleanup()
}
