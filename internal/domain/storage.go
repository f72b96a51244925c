package domain

import (
	"encoding/json"
	"fmt"
	"time"

	folio_errors "folio/internal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoredActivity is the storage and wire shape of an activity. Dates are
// YYYY-MM-DD strings, timestamps are epoch milliseconds and numbers are
// kept as JSON number literals so decimals survive the round trip.
type StoredActivity struct {
	ID          uuid.UUID        `json:"id"`
	Type        ActivityType     `json:"type"`
	Date        string           `json:"date"`
	CreatedAt   *int64           `json:"createdAt,omitempty"`
	UpdatedAt   *int64           `json:"updatedAt,omitempty"`
	SkipTrigger bool             `json:"skipTrigger,omitempty"`
	Amount      *json.Number     `json:"amount,omitempty"`
	Instrument  string           `json:"instrument,omitempty"`
	Units       *json.Number     `json:"units,omitempty"`
	Cost        *json.Number     `json:"cost,omitempty"`
	Trades      []StoredTradeLeg `json:"trades,omitempty"`
}

type StoredTradeLeg struct {
	Instrument string      `json:"instrument"`
	Units      json.Number `json:"units"`
}

func ToStorage(a Activity, skipTrigger bool) StoredActivity {
	out := StoredActivity{
		ID:          a.GetID(),
		Type:        a.Type(),
		Date:        FormatDay(Day(a.GetDate())),
		SkipTrigger: skipTrigger,
	}
	meta := metaOf(a)
	out.CreatedAt = millisPtr(meta.CreatedAt)
	out.UpdatedAt = millisPtr(meta.UpdatedAt)

	switch v := a.(type) {
	case Deposit:
		out.Amount = numberPtr(v.Amount)
	case Dividend:
		out.Instrument = v.Instrument
		out.Amount = numberPtr(v.Amount)
	case StockDividend:
		out.Instrument = v.Instrument
		out.Units = numberPtr(v.Units)
	case Trade:
		out.Cost = numberPtr(v.Cost)
		out.Trades = make([]StoredTradeLeg, len(v.Trades))
		for i, leg := range v.Trades {
			out.Trades[i] = StoredTradeLeg{
				Instrument: leg.Instrument,
				Units:      json.Number(leg.Units.String()),
			}
		}
	}
	return out
}

func FromStorage(s StoredActivity) (Activity, error) {
	date, err := ParseDay(s.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date of activity %s: %w", s.ID, err)
	}
	meta := ActivityMeta{
		ActivityID: s.ID,
		Date:       date,
		CreatedAt:  timePtr(s.CreatedAt),
		UpdatedAt:  timePtr(s.UpdatedAt),
	}

	switch s.Type {
	case ActivityType_Deposit:
		amount, err := parseNumber(s.Amount, "amount")
		if err != nil {
			return nil, err
		}
		return Deposit{ActivityMeta: meta, Amount: amount}, nil
	case ActivityType_Dividend:
		amount, err := parseNumber(s.Amount, "amount")
		if err != nil {
			return nil, err
		}
		return Dividend{ActivityMeta: meta, Instrument: s.Instrument, Amount: amount}, nil
	case ActivityType_StockDividend:
		units, err := parseNumber(s.Units, "units")
		if err != nil {
			return nil, err
		}
		return StockDividend{ActivityMeta: meta, Instrument: s.Instrument, Units: units}, nil
	case ActivityType_Trade:
		cost, err := parseNumber(s.Cost, "cost")
		if err != nil {
			return nil, err
		}
		legs := make([]TradeLeg, len(s.Trades))
		for i, leg := range s.Trades {
			units, err := decimal.NewFromString(leg.Units.String())
			if err != nil {
				return nil, fmt.Errorf("failed to parse units of %s: %w", leg.Instrument, err)
			}
			legs[i] = TradeLeg{Instrument: leg.Instrument, Units: units}
		}
		return Trade{ActivityMeta: meta, Trades: legs, Cost: cost}, nil
	}

	return nil, folio_errors.ErrUnknownActivityType{Type: string(s.Type)}
}

func metaOf(a Activity) ActivityMeta {
	switch v := a.(type) {
	case Deposit:
		return v.ActivityMeta
	case Dividend:
		return v.ActivityMeta
	case StockDividend:
		return v.ActivityMeta
	case Trade:
		return v.ActivityMeta
	}
	return ActivityMeta{ActivityID: a.GetID(), Date: a.GetDate()}
}

func parseNumber(n *json.Number, field string) (decimal.Decimal, error) {
	if n == nil {
		return decimal.Zero, fmt.Errorf("missing %s", field)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return d, nil
}

func numberPtr(d decimal.Decimal) *json.Number {
	n := json.Number(d.String())
	return &n
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func timePtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

// ActivityEvent is delivered once per create, update or delete of an
// activity. Delivery is at-least-once. An event with neither Before nor
// After requests a full rebuild of the portfolio's derived state.
type ActivityEvent struct {
	PortfolioID uuid.UUID       `json:"portfolioId"`
	ActivityID  uuid.UUID       `json:"activityId"`
	Before      *StoredActivity `json:"before,omitempty"`
	After       *StoredActivity `json:"after,omitempty"`
}

// Suppressed reports whether the triggering write asked not to be
// reacted to.
func (e ActivityEvent) Suppressed() bool {
	return e.After != nil && e.After.SkipTrigger
}
