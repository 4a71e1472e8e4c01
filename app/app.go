package app

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	dbLib "ticketservice/db"
	"ticketservice/db/data_lake"
	"ticketservice/db/payments"
	"ticketservice/db/read_model_ops_payments"
	"ticketservice/db/seats"
	"ticketservice/gateway"
	"ticketservice/http"
	migrations "ticketservice/migration"
	"ticketservice/pubsub"
	"ticketservice/pubsub/bus"
	"ticketservice/pubsub/command"
	"ticketservice/pubsub/event"
	"ticketservice/pubsub/outbox"
	"ticketservice/purchase"
)

type Config struct {
	HTTPAddr        string
	ReceiptCurrency string
}

type App struct {
	db              *sqlx.DB
	watermillRouter *message.Router
	forwarder       *forwarder.Forwarder
	httpServer      *http.Server
	dataLake        data_lake.DataLake
	opsPayments     event.OpsPaymentHandlers
	traceProvider   *tracesdk.TracerProvider
}

// New wires the application. traceProvider may be nil.
func New(
	cfg Config,
	db *sqlx.DB,
	redisClient *redis.Client,
	spreadsheetsService event.SpreadsheetsAPI,
	receiptsService event.ReceiptsService,
	traceProvider *tracesdk.TracerProvider,
) (*App, error) {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher, err := pubsub.NewRedisPublisher(redisClient, watermillLogger)
	if err != nil {
		return nil, err
	}

	eventBus, err := bus.NewEventBus(redisPublisher)
	if err != nil {
		return nil, fmt.Errorf("could not create event bus: %w", err)
	}

	commandBus, err := bus.NewCommandBus(redisPublisher)
	if err != nil {
		return nil, fmt.Errorf("could not create command bus: %w", err)
	}

	paymentsRepo := payments.NewPostgresRepository(db)
	seatsRepo := seats.NewPostgresRepository(db)
	opsPaymentsReadModel := read_model_ops_payments.NewPostgresRepository(db)
	dataLake := data_lake.NewDataLake(db)

	purchaseService := purchase.NewService(
		gateway.NewPaymentAuthority(commandBus),
		gateway.NewSeatAllocator(commandBus),
	)

	postgresSubscriber, err := outbox.NewPostgresSubscriber(db, watermillLogger)
	if err != nil {
		return nil, err
	}

	outboxForwarder, err := outbox.NewForwarder(postgresSubscriber, redisPublisher, watermillLogger)
	if err != nil {
		return nil, err
	}

	splitterSubscriber, err := pubsub.NewRedisSubscriber(redisClient, "svc-tickets.events_splitter", watermillLogger)
	if err != nil {
		return nil, err
	}

	dataLakeSubscriber, err := pubsub.NewRedisSubscriber(redisClient, "svc-tickets.store_to_data_lake", watermillLogger)
	if err != nil {
		return nil, err
	}

	opsPaymentHandlers := event.NewOpsPaymentHandlers(opsPaymentsReadModel)

	eventHandler := event.NewHandler(
		eventBus,
		receiptsService,
		spreadsheetsService,
		cfg.ReceiptCurrency,
	)

	watermillRouter, err := pubsub.NewWatermillRouter(pubsub.RouterDeps{
		RedisPublisher:         redisPublisher,
		SplitterSubscriber:     splitterSubscriber,
		DataLakeSubscriber:     dataLakeSubscriber,
		EventProcessorConfig:   event.NewProcessorConfig(redisClient, watermillLogger),
		EventHandler:           eventHandler,
		OpsPaymentHandlers:     opsPaymentHandlers,
		CommandProcessorConfig: command.NewProcessorConfig(redisClient, watermillLogger),
		CommandHandler:         command.NewHandler(paymentsRepo, seatsRepo),
		DataLake:               dataLake,
		Logger:                 watermillLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create watermill router: %w", err)
	}

	httpServer := http.NewServer(
		cfg.HTTPAddr,
		purchaseService,
		paymentsRepo,
		seatsRepo,
		opsPaymentsReadModel,
	)

	return &App{
		db:              db,
		watermillRouter: watermillRouter,
		forwarder:       outboxForwarder,
		httpServer:      httpServer,
		dataLake:        dataLake,
		opsPayments:     opsPaymentHandlers,
		traceProvider:   traceProvider,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if err := dbLib.InitializeDatabaseSchema(a.db); err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.traceProvider != nil {
		g.Go(func() error {
			<-ctx.Done()
			return a.traceProvider.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		if err := migrations.MigrateOpsPaymentsReadModel(ctx, a.dataLake, a.opsPayments); err != nil {
			log.FromContext(ctx).WithError(err).Error("Could not migrate ops payments read model")
		}
		return nil
	})

	g.Go(func() error {
		return a.forwarder.Run(ctx)
	})

	g.Go(func() error {
		return a.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		// the app must not report healthy before messages are consumed
		<-a.watermillRouter.Running()

		return a.httpServer.Run(ctx)
	})

	return g.Wait()
}
