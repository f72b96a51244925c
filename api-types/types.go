package types

import (
	"encoding/json"

	"folio/internal/domain"

	"github.com/google/uuid"
)

// decimals travel as JSON number literals so no precision is lost

type Portfolio struct {
	PortfolioID         uuid.UUID              `json:"portfolioId"`
	UserID              uuid.UUID              `json:"userId"`
	Currency            string                 `json:"currency"`
	Aliases             map[string]string      `json:"aliases"`
	TargetAllocations   map[string]json.Number `json:"targetAllocations,omitempty"`
	CostBasis           map[string]json.Number `json:"costBasis"`
	ActivitiesStartDate *string                `json:"activitiesStartDate,omitempty"`
	LatestSnapshot      *domain.StoredSnapshot `json:"latestSnapshot,omitempty"`
}

type CreatePortfolioRequest struct {
	UserID            uuid.UUID              `json:"userId"`
	Currency          string                 `json:"currency"`
	Aliases           map[string]string      `json:"aliases"`
	TargetAllocations map[string]json.Number `json:"targetAllocations"`
}

type ListPortfoliosResponse struct {
	Portfolios []Portfolio `json:"portfolios"`
}

type ListActivitiesResponse struct {
	Activities []domain.StoredActivity `json:"activities"`
}

type ImportActivitiesRequest struct {
	Activities []domain.StoredActivity `json:"activities"`
}

type GetSnapshotsResponse struct {
	Snapshots []domain.StoredSnapshot `json:"snapshots"`
}

type SeriesKind string

const (
	SeriesKind_Cash     SeriesKind = "cash"
	SeriesKind_CashFlow SeriesKind = "cashFlow"
	SeriesKind_Holding  SeriesKind = "holding"
)

type GetSeriesRequest struct {
	Kind       SeriesKind `form:"kind"`
	Instrument string     `form:"instrument"`
	// End defaults to today.
	End string `form:"end"`
}

type SeriesPoint struct {
	Date  string      `json:"date"`
	Value json.Number `json:"value"`
}

// GetSeriesResponse has one point per calendar day from the first
// activity to End, forward filled.
type GetSeriesResponse struct {
	Kind       SeriesKind    `json:"kind"`
	Instrument string        `json:"instrument,omitempty"`
	Points     []SeriesPoint `json:"points"`
}

type FlowStats struct {
	Count  int         `json:"count"`
	Total  json.Number `json:"total"`
	Mean   float64     `json:"mean"`
	Median float64     `json:"median"`
	Stdev  float64     `json:"stdev"`
}

type GetSummaryResponse struct {
	AsOf               string                 `json:"asOf"`
	Value              json.Number            `json:"value"`
	NetCashFlow        json.Number            `json:"netCashFlow"`
	TotalDividends     json.Number            `json:"totalDividends"`
	TimeWeightedReturn json.Number            `json:"timeWeightedReturn"`
	PeriodReturnMean   float64                `json:"periodReturnMean"`
	PeriodReturnStdev  float64                `json:"periodReturnStdev"`
	Deposits           FlowStats              `json:"deposits"`
	Withdrawals        FlowStats              `json:"withdrawals"`
	UnrealizedGain     map[string]json.Number `json:"unrealizedGain"`
}
