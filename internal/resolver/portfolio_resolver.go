package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/domain"
	"folio/internal/ledger"
	"folio/internal/timeseries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// longest span a series request may cover
const maxSeriesDays = 366 * 50

func (r resolverHandler) CreatePortfolio(ctx context.Context, req api_types.CreatePortfolioRequest) (*api_types.Portfolio, error) {
	allocations := map[string]decimal.Decimal{}
	for instrument, weight := range req.TargetAllocations {
		d, err := decimal.NewFromString(weight.String())
		if err != nil {
			return nil, fmt.Errorf("%w: target allocation for %s: %s", folio_errors.ErrInvalidPortfolio, instrument, err.Error())
		}
		allocations[instrument] = d
	}

	p, err := r.PortfolioService.Create(ctx, domain.Portfolio{
		UserID:            req.UserID,
		Currency:          req.Currency,
		Aliases:           req.Aliases,
		TargetAllocations: allocations,
	})
	if err != nil {
		return nil, err
	}

	out := portfolioToApi(*p)
	return &out, nil
}

func (r resolverHandler) GetPortfolio(ctx context.Context, portfolioID uuid.UUID) (*api_types.Portfolio, error) {
	p, err := r.PortfolioService.Get(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	out := portfolioToApi(*p)
	return &out, nil
}

func (r resolverHandler) ListPortfolios(ctx context.Context, userID uuid.UUID) (*api_types.ListPortfoliosResponse, error) {
	portfolios, err := r.PortfolioService.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]api_types.Portfolio, len(portfolios))
	for i, p := range portfolios {
		out[i] = portfolioToApi(p)
	}
	return &api_types.ListPortfoliosResponse{Portfolios: out}, nil
}

func (r resolverHandler) GetSnapshots(ctx context.Context, portfolioID uuid.UUID) (*api_types.GetSnapshotsResponse, error) {
	snapshots, err := r.PortfolioService.GetSnapshots(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoredSnapshot, len(snapshots))
	for i, s := range snapshots {
		out[i] = s.ToStorage()
	}
	return &api_types.GetSnapshotsResponse{Snapshots: out}, nil
}

func (r resolverHandler) GetSeries(ctx context.Context, portfolioID uuid.UUID, req api_types.GetSeriesRequest) (*api_types.GetSeriesResponse, error) {
	end := r.today()
	if req.End != "" {
		var err error
		end, err = domain.ParseDay(req.End)
		if err != nil {
			return nil, fmt.Errorf("%w: end date %q", folio_errors.ErrInvalidRequest, req.End)
		}
	}
	if req.Kind == api_types.SeriesKind_Holding && req.Instrument == "" {
		return nil, fmt.Errorf("%w: holding series needs an instrument", folio_errors.ErrInvalidRequest)
	}

	snapshots, err := r.PortfolioService.GetSnapshots(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	var series *timeseries.Series
	switch req.Kind {
	case api_types.SeriesKind_Cash:
		series = ledger.CashSeries(snapshots)
	case api_types.SeriesKind_CashFlow:
		series = ledger.CashFlowSeries(snapshots)
	case api_types.SeriesKind_Holding:
		series = ledger.HoldingSeries(snapshots, req.Instrument)
	default:
		return nil, fmt.Errorf("%w: unknown series kind %q", folio_errors.ErrInvalidRequest, req.Kind)
	}

	out := &api_types.GetSeriesResponse{
		Kind:       req.Kind,
		Instrument: req.Instrument,
		Points:     []api_types.SeriesPoint{},
	}
	start, _, ok := series.Span()
	if !ok {
		return out, nil
	}
	if end.Sub(start).Hours()/24 > maxSeriesDays {
		return nil, fmt.Errorf("%w: series longer than %d days", folio_errors.ErrInvalidRequest, maxSeriesDays)
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out.Points = append(out.Points, api_types.SeriesPoint{
			Date:  domain.FormatDay(d),
			Value: json.Number(series.Get(d).String()),
		})
	}
	return out, nil
}

func (r resolverHandler) GetSummary(ctx context.Context, portfolioID uuid.UUID, asOf string) (*api_types.GetSummaryResponse, error) {
	date := r.today()
	if asOf != "" {
		var err error
		date, err = domain.ParseDay(asOf)
		if err != nil {
			return nil, fmt.Errorf("%w: as-of date %q", folio_errors.ErrInvalidRequest, asOf)
		}
	}

	summary, err := r.PortfolioService.GetSummary(ctx, portfolioID, date)
	if err != nil {
		return nil, err
	}

	gains := make(map[string]json.Number, len(summary.UnrealizedGain))
	for instrument, gain := range summary.UnrealizedGain {
		gains[instrument] = json.Number(gain.String())
	}
	return &api_types.GetSummaryResponse{
		AsOf:               domain.FormatDay(summary.AsOf),
		Value:              json.Number(summary.Value.String()),
		NetCashFlow:        json.Number(summary.NetCashFlow.String()),
		TotalDividends:     json.Number(summary.TotalDividends.String()),
		TimeWeightedReturn: json.Number(summary.TimeWeightedReturn.String()),
		PeriodReturnMean:   summary.PeriodReturnMean,
		PeriodReturnStdev:  summary.PeriodReturnStdev,
		Deposits: api_types.FlowStats{
			Count:  summary.Deposits.Count,
			Total:  json.Number(summary.Deposits.Total.String()),
			Mean:   summary.Deposits.Mean,
			Median: summary.Deposits.Median,
			Stdev:  summary.Deposits.Stdev,
		},
		Withdrawals: api_types.FlowStats{
			Count:  summary.Withdrawals.Count,
			Total:  json.Number(summary.Withdrawals.Total.String()),
			Mean:   summary.Withdrawals.Mean,
			Median: summary.Withdrawals.Median,
			Stdev:  summary.Withdrawals.Stdev,
		},
		UnrealizedGain: gains,
	}, nil
}

// RequestRebuild asks the ledger worker to recompute everything.
func (r resolverHandler) RequestRebuild(ctx context.Context, portfolioID uuid.UUID) error {
	if _, err := r.PortfolioService.Get(ctx, portfolioID); err != nil {
		return err
	}
	return r.Publisher.Publish(ctx, domain.ActivityEvent{PortfolioID: portfolioID})
}

func portfolioToApi(p domain.Portfolio) api_types.Portfolio {
	out := api_types.Portfolio{
		PortfolioID: p.PortfolioID,
		UserID:      p.UserID,
		Currency:    p.Currency,
		Aliases:     p.Aliases,
		CostBasis:   p.CostBasis.ToStorage(),
	}
	if out.Aliases == nil {
		out.Aliases = map[string]string{}
	}
	if len(p.TargetAllocations) > 0 {
		out.TargetAllocations = make(map[string]json.Number, len(p.TargetAllocations))
		for instrument, weight := range p.TargetAllocations {
			out.TargetAllocations[instrument] = json.Number(weight.String())
		}
	}
	if p.ActivitiesStartDate != nil {
		start := domain.FormatDay(*p.ActivitiesStartDate)
		out.ActivitiesStartDate = &start
	}
	if p.LatestSnapshot != nil {
		latest := p.LatestSnapshot.ToStorage()
		out.LatestSnapshot = &latest
	}
	return out
}
