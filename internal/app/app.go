package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/VatsalRaj481/Arise/config"
	"github.com/VatsalRaj481/Arise/internal/adapter/httphandler"
	"github.com/VatsalRaj481/Arise/internal/adapter/kafka"
	"github.com/VatsalRaj481/Arise/internal/adapter/stockclient"
	"github.com/VatsalRaj481/Arise/internal/adapter/storage"
	"github.com/VatsalRaj481/Arise/internal/adapter/tracing"
	"github.com/VatsalRaj481/Arise/internal/core/port"
	"github.com/VatsalRaj481/Arise/internal/core/service"
	"github.com/VatsalRaj481/Arise/pkg/retry"
	"github.com/VatsalRaj481/Arise/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type outbound struct {
	sqlDB          storage.SQLDB
	productStore   port.ProductStore
	stockGateway   port.StockGateway
	eventsProducer *kafka.ProductEventsProducer
}

type coreService struct {
	productManager port.ProductManager
	productViewer  port.ProductViewer
}

type App struct {
	ctx             context.Context
	cfg             config.Config
	tracingShutdown tracing.ShutdownFunc
	outbound        outbound
	service         coreService
	httpServer      httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initTracing()
	app.initStorage()
	app.initStockGateway()
	app.initEventsProducer()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTracing() {
	const op = "App.initTracing"

	shutdown, err := tracing.Setup(app.ctx, tracing.Opts{
		Endpoint:    app.cfg.Tracing.Endpoint,
		Insecure:    app.cfg.Tracing.Insecure,
		ServiceName: app.cfg.Tracing.ServiceName,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.tracingShutdown = shutdown
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqlDB, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.sqlDB = sqlDB
	app.outbound.productStore = storage.NewProductsRepository(sqlDB)
}

func (app *App) initStockGateway() {
	const op = "App.initStockGateway"

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	gateway, err := stockclient.New(
		app.cfg.Stock.BaseURL, app.cfg.Stock.Timeout, httpClient,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.stockGateway = gateway
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"
	log := slog.With("op", op)

	if !app.cfg.EventsEnabled() {
		log.Info("product events are disabled")
		return
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	topic := app.cfg.Broker.Topics.ProductEvents
	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(500 * time.Millisecond),
	}
	serde, err := retry.DoWithResult(app.ctx, retryCfg, func() (schema.Serde, error) {
		return schema.NewSerdeProductEventV1(
			app.ctx,
			schema.SubjectOpt(topic+"-value"),
			schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
		)
	})
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewProductEventsProducer(
		kafka.ProducerClientOpt(app.ctx, app.cfg.Broker.SeedBrokers, topic),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.eventsProducer = &producer
}

func (app *App) initCoreService() {
	var events port.ProductEventsProducer
	if app.outbound.eventsProducer != nil {
		events = app.outbound.eventsProducer
	}

	s := service.New(
		app.outbound.productStore,
		app.outbound.stockGateway,
		events,
		app.cfg.Stock.LookupConcurrency,
		app.cfg.Stock.ListBudget,
	)
	app.service.productManager = s
	app.service.productViewer = s
}

func (app *App) initInboundAdapters() {
	handler := newHTTPHandler(app.service.productManager, app.service.productViewer)
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, handler, app.cfg.HTTPRequestTimeout,
	)
}

func newHTTPHandler(
	manager port.ProductManager, viewer port.ProductViewer,
) http.Handler {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, manager, viewer)
	httphandler.RegisterHealth(mux)

	var handler http.Handler = httphandler.AllowJSON(mux)
	handler = httphandler.WithLogging(handler)
	handler = httphandler.WithRequestID(handler)
	return otelhttp.NewHandler(handler, "product-service")
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	const op = "App.Close"
	log := slog.With("op", op)

	log.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.outbound.eventsProducer != nil {
		app.outbound.eventsProducer.Close(ctx)
	}
	app.outbound.sqlDB.Close()
	if err := app.tracingShutdown(ctx); err != nil {
		log.Error("failed to shutdown tracing", "err", err)
	}

	log.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
