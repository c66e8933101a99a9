// Package pricing resolves park products and prices: reference lookups,
// find-or-create of product and price rows, duplicate detection, trip price
// lookup and currency/tax display.
package pricing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/menye94/park-pricing/internal/pricing"

// Service implements the pricing operations on top of a Store.
type Service struct {
	store     Store
	config    *Config
	converter *Converter
	metrics   *MetricsRecorder
	logger    *zerolog.Logger
	tracer    trace.Tracer
}

// NewService creates a pricing service. A nil config uses Defaults.
func NewService(store Store, config *Config) *Service {
	if config == nil {
		config = Defaults()
	}
	logger := log.With().Str("component", "pricing").Logger()
	return &Service{
		store:     store,
		config:    config,
		converter: NewConverter(config),
		metrics:   NewMetricsRecorder(),
		logger:    &logger,
		tracer:    otel.Tracer(tracerName),
	}
}

// WithLogger replaces the service logger.
func (s *Service) WithLogger(logger *zerolog.Logger) *Service {
	l := logger.With().Str("component", "pricing").Logger()
	s.logger = &l
	return s
}

// Converter returns the currency/tax converter used by the service.
func (s *Service) Converter() *Converter {
	return s.converter
}

// Config returns the service configuration.
func (s *Service) Config() *Config {
	return s.config
}

// call runs one store round trip under the configured timeout.
func (s *Service) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	s.metrics.RecordStore(op, time.Since(start).Seconds())
	return err
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
