package app

import (
	"database/sql"
	"fmt"

	"folio/internal/config"
	db_utils "folio/internal/db/utils"
	"folio/internal/ledger"
	"folio/internal/logging"
	"folio/internal/market"
	"folio/internal/prices"
	"folio/internal/queue"
	"folio/internal/repository"
	"folio/internal/resolver"
	"folio/internal/service"

	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/phuslu/log"
)

// App holds every component the binaries share.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Db     *sql.DB

	TxRunner                db_utils.TxRunner
	PortfolioRepository     repository.PortfolioRepository
	ActivityRepository      repository.ActivityRepository
	SnapshotBatchRepository repository.SnapshotBatchRepository
	PriceRepository         repository.PriceRepository
	StockRepository         repository.StockRepository
	ExchangeRateRepository  repository.ExchangeRateRepository

	Market      *market.Client
	Coordinator *ledger.Coordinator

	// Sqs is nil when no queue is configured.
	Sqs       *sqs.SQS
	Publisher queue.Publisher

	PortfolioService service.PortfolioService
	ActivityService  service.ActivityService
	Resolver         resolver.Resolver
}

func New(cfg *config.Config, logger *log.Logger) (*App, error) {
	logger = logging.OrSilent(logger)
	dbConn, err := db_utils.New(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:                  cfg,
		Logger:                  logger,
		Db:                      dbConn,
		TxRunner:                db_utils.NewTxRunner(dbConn, logger),
		PortfolioRepository:     repository.NewPortfolioRepository(),
		ActivityRepository:      repository.NewActivityRepository(),
		SnapshotBatchRepository: repository.NewSnapshotBatchRepository(),
		PriceRepository:         repository.NewPriceRepository(),
		StockRepository:         repository.NewStockRepository(),
		ExchangeRateRepository:  repository.NewExchangeRateRepository(),
	}

	a.Market = market.NewClient(
		a.TxRunner,
		a.PriceRepository,
		a.StockRepository,
		a.ExchangeRateRepository,
		market.NewYahooQuoteSource(),
		cfg.Prices.CacheDuration(),
		logger,
	)
	a.Coordinator = ledger.NewCoordinator(
		a.TxRunner,
		a.PortfolioRepository,
		a.ActivityRepository,
		a.SnapshotBatchRepository,
		a.Market,
		cfg.Ledger,
		logger,
	)

	if cfg.Queue.URL != "" {
		sess, err := queue.NewSession(cfg.Queue)
		if err != nil {
			dbConn.Close()
			return nil, err
		}
		a.Sqs = sqs.New(sess)
		a.Publisher = queue.NewSqsPublisher(a.Sqs, cfg.Queue.URL)
	} else {
		logger.Warn().Msg("no queue configured, recomputing inline")
		a.Publisher = queue.NewInlinePublisher(a.Coordinator)
	}

	a.PortfolioService = service.NewPortfolioService(
		a.TxRunner,
		a.PortfolioRepository,
		a.SnapshotBatchRepository,
		a.Market,
	)
	a.ActivityService = service.NewActivityService(
		a.TxRunner,
		a.PortfolioRepository,
		a.ActivityRepository,
		a.Publisher,
		logger,
	)
	a.Resolver = resolver.NewResolver(a.PortfolioService, a.ActivityService, a.Publisher)

	return a, nil
}

// Consumer reads activity events off the configured queue and hands them
// to the coordinator.
func (a *App) Consumer() (*queue.Consumer, error) {
	if a.Sqs == nil {
		return nil, fmt.Errorf("no queue url configured")
	}
	return &queue.Consumer{
		SQS:         a.Sqs,
		QueueURL:    a.Config.Queue.URL,
		WaitSeconds: a.Config.Queue.WaitSeconds,
		Handler:     a.Coordinator,
		Logger:      a.Logger,
	}, nil
}

func (a *App) PriceIngestor() prices.Ingestor {
	return prices.Ingestor{
		TxRunner:               a.TxRunner,
		Source:                 prices.NewAlphaVantageClient(a.Config.Prices.AlphaVantageKey, a.Logger),
		PriceRepository:        a.PriceRepository,
		StockRepository:        a.StockRepository,
		ExchangeRateRepository: a.ExchangeRateRepository,
		Cache:                  a.Market,
		Logger:                 a.Logger,
	}
}

func (a *App) Close() error {
	return a.Db.Close()
}
