package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/clients"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"ticketservice/app"
	"ticketservice/config"
	"ticketservice/gateway"
	"ticketservice/tracing"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}

	log.Init(cfg.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	traceProvider, err := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint, cfg.GatewayAddr)
	if err != nil {
		panic(err)
	}
	tracing.InstrumentDefaultTransport()

	apiClients, err := clients.NewClients(cfg.GatewayAddr, func(ctx context.Context, req *http.Request) error {
		req.Header.Set("Correlation-ID", log.CorrelationIDFromContext(ctx))
		return nil
	})
	if err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	traceDB, err := otelsql.Open("postgres", cfg.PostgresURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName("db"),
	)
	if err != nil {
		panic(err)
	}

	db := sqlx.NewDb(traceDB, "postgres")
	defer db.Close()

	a, err := app.New(
		app.Config{
			HTTPAddr:        cfg.HTTPAddr,
			ReceiptCurrency: cfg.ReceiptCurrency,
		},
		db,
		redisClient,
		gateway.NewSpreadsheetsClient(apiClients),
		gateway.NewReceiptsClient(apiClients),
		traceProvider,
	)
	if err != nil {
		panic(err)
	}

	if err := a.Run(ctx); err != nil {
		panic(err)
	}
}
