package domain

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio is owned by one user. Activities and snapshot history are
// stored separately, keyed by PortfolioID.
type Portfolio struct {
	PortfolioID         uuid.UUID
	UserID              uuid.UUID
	Currency            string
	Aliases             map[string]string
	TargetAllocations   map[string]decimal.Decimal
	CostBasis           CostBasis
	ActivitiesStartDate *time.Time
	LatestSnapshot      *Snapshot

	// Version is bumped on every derived-state commit and is the
	// optimistic-concurrency precondition for the next one.
	Version int64
}

// DerivedState is everything the ledger recomputes from activities.
type DerivedState struct {
	CostBasis           CostBasis
	ActivitiesStartDate *time.Time
	LatestSnapshot      *Snapshot
}

// StockInfo is the metadata the cost basis engine needs about an instrument.
type StockInfo struct {
	Symbol   string
	Currency string
}

func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}
