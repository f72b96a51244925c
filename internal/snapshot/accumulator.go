// Package snapshot folds activities into per-day portfolio snapshots and
// packs snapshot sequences into storage batches.
package snapshot

import (
	"time"

	"folio/internal/domain"
	"folio/internal/logging"

	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// Apply is the ledger's state transition. It never mutates prev. ok is
// false, and prev is returned unchanged, when the activity is not one of
// the known kinds.
func Apply(a domain.Activity, prev domain.Snapshot) (next domain.Snapshot, ok bool) {
	if a == nil {
		return prev, false
	}
	isSameDay := domain.SameDay(a.GetDate(), prev.Date)

	next = prev.DeepCopy()
	next.Date = domain.Day(a.GetDate())
	if !isSameDay {
		next.Dividend = decimal.Zero
	}

	switch v := a.(type) {
	case domain.Deposit:
		next.Cash = next.Cash.Add(v.Amount)
		next.CashFlow = next.CashFlow.Add(v.Amount)
	case domain.Dividend:
		next.Cash = next.Cash.Add(v.Amount)
		next.Dividend = next.Dividend.Add(v.Amount)
	case domain.StockDividend:
		addShares(next.NumShares, v.Instrument, v.Units)
	case domain.Trade:
		next.Cash = next.Cash.Sub(v.Cost)
		for _, leg := range v.Trades {
			addShares(next.NumShares, leg.Instrument, leg.Units)
		}
	default:
		return prev, false
	}

	return next, true
}

// zero deltas are skipped so no spurious empty holdings appear
func addShares(numShares map[string]decimal.Decimal, instrument string, units decimal.Decimal) {
	if units.IsZero() {
		return
	}
	numShares[instrument] = numShares[instrument].Add(units)
}

// Build folds activities, already in ledger order, into one snapshot per
// day that has at least one activity. today dates the empty starting
// snapshot. Unrecognised activities are skipped with a warning.
func Build(activities []domain.Activity, today time.Time, logger *log.Logger) []domain.Snapshot {
	logger = logging.OrSilent(logger)
	out := []domain.Snapshot{}
	current := domain.EmptySnapshot(today)

	for _, a := range activities {
		next, ok := Apply(a, current)
		if !ok {
			ev := logger.Warn()
			if a != nil {
				ev = ev.Str("activity_id", a.GetID().String())
			}
			ev.Msgf("skipping unrecognised activity %T", a)
			continue
		}
		if len(out) > 0 && domain.SameDay(next.Date, current.Date) {
			out[len(out)-1] = next
		} else {
			out = append(out, next)
		}
		current = next
	}

	return out
}

// Before returns the state immediately preceding position i of the ordered
// activity list, i.e. the fold of activities[:i].
func Before(activities []domain.Activity, i int, today time.Time) domain.Snapshot {
	current := domain.EmptySnapshot(today)
	for _, a := range activities[:i] {
		if next, ok := Apply(a, current); ok {
			current = next
		}
	}
	return current
}
