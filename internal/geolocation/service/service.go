// Package service resolves IP addresses to locations, consulting a cache
// before the upstream repository.
package service

import (
	"context"
	"log/slog"

	"minibank/internal/geolocation/models"
	"minibank/internal/platform/metrics"
	dErrors "minibank/pkg/domain-errors"
	"minibank/pkg/platform/circuit"
	"minibank/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Repository,Cache

// Repository resolves an IP address to a location.
type Repository interface {
	GetLocationByIP(ctx context.Context, ip models.IPAddress) (models.Geolocation, error)
}

// Cache is an optional lookup cache in front of the repository.
type Cache interface {
	Get(ctx context.Context, key string) (models.Geolocation, bool, error)
	Set(ctx context.Context, key string, location models.Geolocation) error
}

// Service carries the geolocation use case. Cache failures degrade to a
// direct lookup; they never fail the request.
type Service struct {
	repo    Repository
	cache   Cache
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option customizes Service construction.
type Option func(*Service)

func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithBreaker guards the upstream repository with a circuit breaker. When
// the breaker is open, lookups that miss the cache fail fast.
func WithBreaker(breaker *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = breaker
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Locate resolves the location for a raw IP address string.
func (s *Service) Locate(ctx context.Context, raw string) (models.Geolocation, error) {
	ip, err := models.ParseIPAddress(raw)
	if err != nil {
		s.metrics.IncrementRejected("geolocation")
		return models.Geolocation{}, err
	}
	return s.LocateIP(ctx, ip)
}

// LocateIP resolves the location for an already-validated address.
func (s *Service) LocateIP(ctx context.Context, ip models.IPAddress) (models.Geolocation, error) {
	key := ip.String()

	if s.cache != nil {
		location, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.WarnContext(ctx, "geolocation cache read failed",
				"request_id", requestcontext.RequestID(ctx),
				"ip", key,
				"error", err.Error(),
			)
		} else if ok {
			if s.metrics != nil {
				s.metrics.GeolocationCacheHits.Inc()
				s.metrics.GeolocationLookups.Inc()
			}
			return location, nil
		}
	}

	if s.breaker != nil && s.breaker.IsOpen() {
		return models.Geolocation{}, dErrors.New(dErrors.CodeUnavailable, "geolocation upstream unavailable")
	}

	location, err := s.repo.GetLocationByIP(ctx, ip)
	if err != nil {
		if s.breaker != nil {
			if _, change := s.breaker.RecordFailure(); change.Opened {
				s.logger.WarnContext(ctx, "geolocation breaker opened",
					"breaker", s.breaker.Name(),
					"error", err.Error(),
				)
			}
		}
		return models.Geolocation{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "geolocation lookup failed")
	}
	if s.breaker != nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "geolocation breaker closed", "breaker", s.breaker.Name())
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, location); err != nil {
			s.logger.WarnContext(ctx, "geolocation cache write failed",
				"request_id", requestcontext.RequestID(ctx),
				"ip", key,
				"error", err.Error(),
			)
		}
	}
	if s.metrics != nil {
		s.metrics.GeolocationLookups.Inc()
	}
	return location, nil
}
