package main

import (
	"portcall/internal/berths/events"
	"portcall/internal/berths/handler"
	"portcall/internal/berths/repository"
	"portcall/internal/berths/service"
	"portcall/internal/berths/validator"
	"portcall/pkg/app"
	"portcall/pkg/config"
	"portcall/pkg/contracts"
	"portcall/pkg/kafka"
	kafka_config "portcall/pkg/kafka/config"
	kafkamw "portcall/pkg/kafka/middleware"
	"portcall/pkg/metrics"
	"portcall/pkg/middleware"
)

const ServiceName = "berths"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.UsesMongo() {
		cfg.SetMongo()
	}
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Berths service", "store_backend", cfg.StoreBackend)
	m := metrics.New()

	repo := initRepository(cfg)
	berthValidator := validator.NewBerthValidator(cfg.Log)

	components := app.Components{
		HealthHandler: handler.NewHealthHandler(cfg.Client.Mongo, cfg.Client.Redis, cfg.Log),
		Metrics:       m,
		RouteLabel:    handler.RouteLabel,
	}
	if cfg.Client.Redis != nil {
		components.IdempotencyStore = middleware.NewRedisIdempotencyStore(cfg.Client.Redis, cfg.IdempotencyTTL)
		cfg.Log.Info("Idempotency keys stored in Redis")
	}

	var publisher service.AssignmentPublisher = events.NoopPublisher{}
	var kafkaCfg *kafka_config.Config
	if cfg.EventsEnabled {
		var err error
		kafkaCfg, err = kafka_config.Load()
		if err != nil {
			cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
		}
		kafkaCfg.LogConfiguration(cfg.Log)

		producer := initProducer(cfg, kafkaCfg, m)
		publisher = events.NewPublisher(producer, kafkaCfg, cfg.Log)
		components.Closers = append(components.Closers, producer)
	} else {
		cfg.Log.Info("Events disabled, assignments will not be published")
	}

	resolverService := service.NewResolverService(repo, berthValidator, publisher, m, cfg)
	berthService := service.NewBerthService(repo, berthValidator, cfg)
	components.AppHandler = handler.NewBerthHandler(berthService, resolverService, cfg.Log).
		WithResolveTimeout(cfg.ResolveTimeout())

	if cfg.EventsEnabled {
		components.Workers = append(components.Workers, initVisitConsumer(cfg, kafkaCfg, resolverService, m))
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(components)
	serverApp.Run()
}

func initRepository(cfg *config.Config) repository.BerthRepository {
	if !cfg.UsesMongo() {
		cfg.Log.Warn("Using in-memory berth store, data is lost on restart")
		return repository.NewMemoryBerthRepository()
	}

	cfg.Log.Info("Berth repository initialized", "database", cfg.MongoDatabaseName)
	return repository.NewMongoBerthRepository(cfg)
}

func initProducer(cfg *config.Config, kafkaCfg *kafka_config.Config, m *metrics.Metrics) *kafka.Producer {
	producer, err := kafka.NewProducer(kafkaCfg, cfg.BerthAssignedTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamw.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafkamw.MetricsProducerMiddleware(m))

	cfg.Log.Info("Kafka producer initialized", "topic", producer.Topic())
	return producer
}

func initVisitConsumer(cfg *config.Config, kafkaCfg *kafka_config.Config, resolver service.ResolverService, m *metrics.Metrics) contracts.Worker {
	visits := events.NewVisitConsumer(resolver, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.VisitRequestTopic,
		cfg.VisitRequestGroupID,
		cfg.VisitRequestDLQTopic,
		visits.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamw.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafkamw.MetricsConsumerMiddleware(m))

	cfg.Log.Info("Vessel visit consumer initialized",
		"topic", cfg.VisitRequestTopic,
		"group_id", cfg.VisitRequestGroupID,
		"dlq_topic", cfg.VisitRequestDLQTopic,
	)
	return consumer
}
