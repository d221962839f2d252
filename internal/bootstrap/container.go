package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vetscribe-be/internal/config"
	"vetscribe-be/internal/controller"
	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/internal/repository/contract"
	"vetscribe-be/internal/repository/implementation"
	"vetscribe-be/internal/repository/memory"
	"vetscribe-be/internal/service"
	"vetscribe-be/pkg/llm"
	"vetscribe-be/pkg/llm/factory"
	"vetscribe-be/pkg/llm/gateway"
	"vetscribe-be/pkg/metrics"

	pktNats "vetscribe-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// GenerationTopic is the in-process topic generation outcomes are published on.
const GenerationTopic = "generation.completed"

type Container struct {
	// Controllers
	GenerateController controller.IGenerateController
	RelayController    controller.IRelayController
	RefineController   controller.IRefineController
	HealthController   controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger  logger.ILogger
	Metrics *metrics.Metrics

	closers []func() error
}

type options struct {
	logger   logger.ILogger
	eventLog logger.ILogger
	provider llm.LLMProvider
	now      func() time.Time
}

type Option func(*options)

// WithLogger replaces both the application and the event logger.
func WithLogger(l logger.ILogger) Option {
	return func(o *options) {
		o.logger = l
		o.eventLog = l
	}
}

// WithLLMProvider skips provider construction from config.
func WithLLMProvider(p llm.LLMProvider) Option {
	return func(o *options) { o.provider = p }
}

// WithClock sets the clock used by the in-memory relay store.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Core Facades
	sysLogger := o.logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	eventLogger := o.eventLog
	if eventLogger == nil {
		eventLogger = logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	}
	m := metrics.New()

	c := &Container{Logger: sysLogger, Metrics: m}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	// 3. Generation
	provider := o.provider
	if provider == nil {
		p, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Ai.BaseURL(),
			cfg.Ai.OpenAIAPIKey,
		)
		switch {
		case errors.Is(err, factory.ErrMissingAPIKey):
			sysLogger.Warn("BOOTSTRAP", "No provider credentials, generation runs in stub-only mode", map[string]interface{}{
				"provider": cfg.Ai.LLMProvider,
			})
		case err != nil:
			c.Close()
			return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
		default:
			provider = p
		}
	}

	gw := gateway.New(provider, gateway.Config{
		Model:         cfg.Ai.LLMModel,
		Timeout:       cfg.Generation.Timeout,
		MaxConcurrent: cfg.Generation.MaxConcurrent,
	})
	if gw.Configured() {
		sysLogger.Info("BOOTSTRAP", "Generation provider ready", map[string]interface{}{
			"provider": gw.ProviderName(),
			"model":    gw.Model(),
		})
	}

	// 4. Infrastructure
	relayRepo, err := c.relayRepository(cfg, o.now)
	if err != nil {
		c.Close()
		return nil, err
	}

	// A nil *Publisher must not become a non-nil interface.
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, events stay in-process", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(GenerationTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, GenerationTopic, m, eventLogger, sysLogger, forwarder)

	generationService := service.NewGenerationService(gw, publisherService, sysLogger)
	refineService := service.NewRefineService(gw, publisherService, sysLogger)
	relayService := service.NewRelayService(relayRepo, m, sysLogger)

	// 6. Controllers
	c.GenerateController = controller.NewGenerateController(generationService)
	c.RefineController = controller.NewRefineController(refineService)
	c.RelayController = controller.NewRelayController(relayService)
	c.HealthController = controller.NewHealthController(cfg.App.ServiceName, generationService)

	return c, nil
}

func (c *Container) relayRepository(cfg *config.Config, now func() time.Time) (contract.RelayRepository, error) {
	if cfg.Relay.Backend != "redis" {
		return memory.NewRelayRepository(contract.RelayTTL, now), nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis relay backend: %w", err)
	}
	c.closers = append(c.closers, rdb.Close)

	return implementation.NewRelayRepository(rdb, contract.RelayTTL), nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}
