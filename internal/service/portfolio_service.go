package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	folio_errors "folio/internal"
	db_utils "folio/internal/db/utils"
	"folio/internal/domain"
	"folio/internal/metrics"
	"folio/internal/repository"
	"folio/internal/snapshot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=portfolio_service.go -destination=mock_portfolio_service.go -package=service

type PortfolioService interface {
	Create(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error)
	Get(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Portfolio, error)
	GetSnapshots(ctx context.Context, portfolioID uuid.UUID) ([]domain.Snapshot, error)
	GetSummary(ctx context.Context, portfolioID uuid.UUID, asOf time.Time) (*metrics.Summary, error)
}

type portfolioServiceHandler struct {
	TxRunner                db_utils.TxRunner
	PortfolioRepository     repository.PortfolioRepository
	SnapshotBatchRepository repository.SnapshotBatchRepository
	Prices                  metrics.PriceLookup
}

func NewPortfolioService(
	txRunner db_utils.TxRunner,
	portfolioRepository repository.PortfolioRepository,
	snapshotBatchRepository repository.SnapshotBatchRepository,
	prices metrics.PriceLookup,
) PortfolioService {
	return portfolioServiceHandler{
		TxRunner:                txRunner,
		PortfolioRepository:     portfolioRepository,
		SnapshotBatchRepository: snapshotBatchRepository,
		Prices:                  prices,
	}
}

// Create starts a portfolio with no derived state.
func (h portfolioServiceHandler) Create(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error) {
	if p.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user", folio_errors.ErrInvalidPortfolio)
	}
	if err := domain.ValidateCurrency(p.Currency); err != nil {
		return nil, fmt.Errorf("%w: %s", folio_errors.ErrInvalidPortfolio, err.Error())
	}
	total := decimal.Zero
	for instrument, weight := range p.TargetAllocations {
		if weight.IsNegative() {
			return nil, fmt.Errorf("%w: negative target allocation for %s", folio_errors.ErrInvalidPortfolio, instrument)
		}
		total = total.Add(weight)
	}
	if total.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: target allocations sum to %s", folio_errors.ErrInvalidPortfolio, total.String())
	}

	p.CostBasis = domain.CostBasis{}
	p.ActivitiesStartDate = nil
	p.LatestSnapshot = nil
	p.Version = 0
	if p.Aliases == nil {
		p.Aliases = map[string]string{}
	}

	var out *domain.Portfolio
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		out, err = h.PortfolioRepository.Add(tx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (h portfolioServiceHandler) Get(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	var out *domain.Portfolio
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		out, err = h.PortfolioRepository.Get(tx, portfolioID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (h portfolioServiceHandler) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Portfolio, error) {
	var out []domain.Portfolio
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		out, err = h.PortfolioRepository.ListByUser(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (h portfolioServiceHandler) GetSnapshots(ctx context.Context, portfolioID uuid.UUID) ([]domain.Snapshot, error) {
	_, snapshots, err := h.read(ctx, portfolioID)
	return snapshots, err
}

// GetSummary reads inside the transaction and prices outside it.
func (h portfolioServiceHandler) GetSummary(ctx context.Context, portfolioID uuid.UUID, asOf time.Time) (*metrics.Summary, error) {
	p, snapshots, err := h.read(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	summary, err := metrics.Summarize(ctx, h.Prices, *p, snapshots, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize portfolio %s: %w", portfolioID, err)
	}
	return summary, nil
}

func (h portfolioServiceHandler) read(ctx context.Context, portfolioID uuid.UUID) (*domain.Portfolio, []domain.Snapshot, error) {
	var p *domain.Portfolio
	var batches []domain.SnapshotBatch
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		p, err = h.PortfolioRepository.Get(tx, portfolioID)
		if err != nil {
			return err
		}
		batches, err = h.SnapshotBatchRepository.List(tx, portfolioID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return p, snapshot.Unbatch(batches), nil
}
