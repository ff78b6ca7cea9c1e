package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"officepool/config"
	"officepool/events"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const meterName = "officepool"

// MetricsProvider manages OpenTelemetry metrics for the service
type MetricsProvider struct {
	config        *config.Config
	reader        sdkmetric.Reader
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	mu            sync.RWMutex

	poolsCreatedCounter          metric.Int64Counter
	poolJoinsCounter             metric.Int64Counter
	ownershipClaimsCounter       metric.Int64Counter
	guessesSubmittedCounter      metric.Int64Counter
	natsMessagesPublishedCounter metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// NewMetricsProviderWithReader creates a provider that collects through reader
// instead of the exporter named in the configuration
func NewMetricsProviderWithReader(cfg *config.Config, reader sdkmetric.Reader) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
		reader: reader,
	}
}

// Initialize sets up the OpenTelemetry meter provider and instruments
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Debug("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Info("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	reader := mp.reader
	if reader == nil {
		reader, err = mp.newPeriodicReader(ctx)
		if err != nil {
			return err
		}
	}

	if reader == nil {
		mp.initialized = true
		return nil
	}

	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)

	if mp.reader == nil {
		otel.SetMeterProvider(mp.meterProvider)
	}

	mp.meter = mp.meterProvider.Meter(meterName)

	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	log.Info("Metrics provider initialized successfully")
	return nil
}

// newPeriodicReader builds the configured exporter. It returns a nil reader
// when export is disabled.
func (mp *MetricsProvider) newPeriodicReader(ctx context.Context) (sdkmetric.Reader, error) {
	var exporter sdkmetric.Exporter
	var err error

	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Info("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", mp.config.OTelOTLPEndpoint).Info("Using OTLP metric exporter")

	case "none":
		log.Info("Metrics export disabled (exporter_type='none')")
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	return sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMs)*time.Millisecond),
	), nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.poolsCreatedCounter, err = mp.meter.Int64Counter(
		PoolsCreatedTotal,
		metric.WithDescription("Total number of pools created"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pools created counter: %w", err)
	}

	mp.poolJoinsCounter, err = mp.meter.Int64Counter(
		PoolJoinsTotal,
		metric.WithDescription("Total number of successful pool joins"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pool joins counter: %w", err)
	}

	mp.ownershipClaimsCounter, err = mp.meter.Int64Counter(
		OwnershipClaimsTotal,
		metric.WithDescription("Total number of ownerless pools claimed by their first joiner"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create ownership claims counter: %w", err)
	}

	mp.guessesSubmittedCounter, err = mp.meter.Int64Counter(
		GuessesSubmittedTotal,
		metric.WithDescription("Total number of guesses submitted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create guesses submitted counter: %w", err)
	}

	mp.natsMessagesPublishedCounter, err = mp.meter.Int64Counter(
		NATSMessagesPublishedTotal,
		metric.WithDescription("Total number of NATS messages published"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create NATS messages published counter: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the meter provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// Register subscribes the provider to every event on the bus
func (mp *MetricsProvider) Register(bus *events.Bus) {
	bus.SubscribeAll(mp.RecordEvent)
}

// RecordEvent counts a committed event. It is an events.Handler.
func (mp *MetricsProvider) RecordEvent(ctx context.Context, event events.Event) {
	if !mp.isEnabled() {
		return
	}

	switch e := event.(type) {
	case events.PoolCreatedEvent:
		mp.poolsCreatedCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.Bool(LabelOwned, e.OwnerID != nil)),
		)
	case events.PoolJoinedEvent:
		mp.poolJoinsCounter.Add(ctx, 1)
	case events.PoolOwnershipClaimedEvent:
		mp.ownershipClaimsCounter.Add(ctx, 1)
	case events.GuessSubmittedEvent:
		outcome := GuessOutcomeOverwritten
		if e.Created {
			outcome = GuessOutcomeCreated
		}
		mp.guessesSubmittedCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String(LabelOutcome, outcome)),
		)
	}
}

// RecordNATSMessagePublished records an event forwarded to NATS
func (mp *MetricsProvider) RecordNATSMessagePublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.natsMessagesPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
		),
	)
}

// isEnabled reports whether instruments exist to record into
func (mp *MetricsProvider) isEnabled() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.initialized && mp.meter != nil
}
