// Package costbasis maintains the weighted-average cost per unit of every
// instrument in a portfolio.
package costbasis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/snapshot"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=engine.go -destination=mock_engine.go -package=costbasis

// PriceLookup prices multi-instrument trades. Prices are returned in the
// same order as instruments, converted to currency.
type PriceLookup interface {
	GetPricesInCurrency(ctx context.Context, instruments []string, currency string, date time.Time) ([]decimal.Decimal, error)
}

// ErrNotReversible is returned when undoing an activity would need
// information the running average no longer holds, e.g. the cost of a
// position that was since fully closed. Callers should Replay instead.
var ErrNotReversible = errors.New("cost basis change cannot be reversed")

type Engine struct {
	prices PriceLookup
	logger *log.Logger
}

func NewEngine(prices PriceLookup, logger *log.Logger) Engine {
	return Engine{
		prices: prices,
		logger: logging.OrSilent(logger),
	}
}

type leg struct {
	instrument string
	units      decimal.Decimal
	value      decimal.Decimal // acquisition value, only used for buys
	dilutive   bool            // stock dividend: more units, same total cost
}

// AffectsCost reports whether a can change the cost basis. Only trades and
// stock dividends move holdings.
func AffectsCost(a domain.Activity) bool {
	switch a.(type) {
	case domain.Trade, domain.StockDividend:
		return true
	}
	return false
}

// UpdateCosts undoes before and applies after against the same baseline,
// prev being the portfolio state immediately preceding the edited activity.
// Either activity may be nil. Activities other than trades and stock
// dividends pass costBasis through unchanged.
func (e Engine) UpdateCosts(
	ctx context.Context,
	costBasis domain.CostBasis,
	prev domain.Snapshot,
	currency string,
	after domain.Activity,
	before domain.Activity,
) (domain.CostBasis, error) {
	if !AffectsCost(after) && !AffectsCost(before) {
		return costBasis, nil
	}

	beforeLegs, err := e.legs(ctx, before, currency)
	if err != nil {
		return nil, err
	}
	afterLegs, err := e.legs(ctx, after, currency)
	if err != nil {
		return nil, err
	}

	out := costBasis.DeepCopy()
	if out == nil {
		out = domain.CostBasis{}
	}

	// holdings start at the pre-edit count: baseline plus before's units
	holdings := map[string]decimal.Decimal{}
	holding := func(instrument string) decimal.Decimal {
		if h, ok := holdings[instrument]; ok {
			return h
		}
		return prev.Holding(instrument)
	}
	for _, l := range beforeLegs {
		holdings[l.instrument] = holding(l.instrument).Add(l.units)
	}

	for i := len(beforeLegs) - 1; i >= 0; i-- {
		l := beforeLegs[i]
		pre := holding(l.instrument)
		cost, err := undoLeg(out.Get(l.instrument), pre, l)
		if err != nil {
			return nil, fmt.Errorf("failed to undo %s of activity %s: %w", l.instrument, before.GetID(), err)
		}
		out[l.instrument] = cost
		holdings[l.instrument] = pre.Sub(l.units)
	}

	for _, l := range afterLegs {
		pre := holding(l.instrument)
		out[l.instrument] = e.applyLeg(out.Get(l.instrument), pre, l, after.GetID().String())
		holdings[l.instrument] = pre.Add(l.units)
	}

	return out, nil
}

func (e Engine) applyLeg(cost, pre decimal.Decimal, l leg, activityID string) decimal.Decimal {
	post := pre.Add(l.units)
	if post.IsZero() {
		return decimal.Zero
	}
	if post.IsNegative() || pre.IsNegative() {
		e.logger.Warn().
			Str("activity_id", activityID).
			Str("instrument", l.instrument).
			Str("holding", post.String()).
			Msg("holding went negative, resetting cost basis")
		return decimal.Zero
	}

	switch {
	case l.dilutive:
		return cost.Mul(pre).Div(post)
	case l.units.IsPositive():
		total := cost.Mul(pre).Add(l.value)
		if total.IsNegative() {
			e.logger.Warn().
				Str("activity_id", activityID).
				Str("instrument", l.instrument).
				Msg("buy with negative value, clamping cost basis to zero")
			return decimal.Zero
		}
		return total.Div(post)
	default:
		// selling removes cost at the running average, which leaves the
		// average itself unchanged
		return cost
	}
}

func undoLeg(cost, pre decimal.Decimal, l leg) (decimal.Decimal, error) {
	post := pre.Sub(l.units)
	if post.IsNegative() || pre.IsNegative() {
		return decimal.Zero, ErrNotReversible
	}

	switch {
	case l.units.IsZero():
		return cost, nil
	case l.dilutive:
		if post.IsZero() {
			return decimal.Zero, nil
		}
		if pre.IsZero() {
			return decimal.Zero, ErrNotReversible
		}
		return cost.Mul(pre).Div(post), nil
	case l.units.IsPositive():
		if post.IsZero() {
			return decimal.Zero, nil
		}
		total := cost.Mul(pre).Sub(l.value)
		if total.IsNegative() {
			return decimal.Zero, ErrNotReversible
		}
		return total.Div(post), nil
	default:
		// a sell that closed the position reset the average to zero; the
		// cost of the units it removed is gone
		if pre.IsZero() {
			return decimal.Zero, ErrNotReversible
		}
		return cost, nil
	}
}

func (e Engine) legs(ctx context.Context, a domain.Activity, currency string) ([]leg, error) {
	switch v := a.(type) {
	case domain.StockDividend:
		return []leg{{
			instrument: v.Instrument,
			units:      v.Units,
			dilutive:   true,
		}}, nil
	case domain.Trade:
		if len(v.Trades) == 1 {
			return []leg{{
				instrument: v.Trades[0].Instrument,
				units:      v.Trades[0].Units,
				value:      v.Cost,
			}}, nil
		}
		return e.pricedLegs(ctx, v, currency)
	}
	return nil, nil
}

// pricedLegs values each buy leg of a multi-instrument trade at its market
// price on the trade date.
func (e Engine) pricedLegs(ctx context.Context, t domain.Trade, currency string) ([]leg, error) {
	out := make([]leg, len(t.Trades))
	toPrice := []string{}
	idx := []int{}
	for i, tl := range t.Trades {
		out[i] = leg{instrument: tl.Instrument, units: tl.Units}
		if tl.Units.IsPositive() {
			toPrice = append(toPrice, tl.Instrument)
			idx = append(idx, i)
		}
	}
	if len(toPrice) == 0 {
		return out, nil
	}
	if e.prices == nil {
		return nil, fmt.Errorf("no price lookup configured to value trade %s", t.GetID())
	}

	prices, err := e.prices.GetPricesInCurrency(ctx, toPrice, currency, t.GetDate())
	if err != nil {
		return nil, fmt.Errorf("failed to price legs of trade %s: %w", t.GetID(), err)
	}
	if len(prices) != len(toPrice) {
		return nil, fmt.Errorf("expected %d prices for trade %s, got %d", len(toPrice), t.GetID(), len(prices))
	}
	for j, i := range idx {
		out[i].value = prices[j].Mul(out[i].units)
	}
	return out, nil
}

// Replay rebuilds the cost basis from nothing, applying each activity, in
// ledger order, against the state just before it.
func (e Engine) Replay(ctx context.Context, activities []domain.Activity, currency string, today time.Time) (domain.CostBasis, error) {
	out := domain.CostBasis{}
	current := domain.EmptySnapshot(today)
	for _, a := range activities {
		var err error
		out, err = e.UpdateCosts(ctx, out, current, currency, a, nil)
		if err != nil {
			return nil, err
		}
		if next, ok := snapshot.Apply(a, current); ok {
			current = next
		}
	}
	return out, nil
}
