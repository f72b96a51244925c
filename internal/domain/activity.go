package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ActivityType string

const (
	ActivityType_Deposit       ActivityType = "deposit"
	ActivityType_Trade         ActivityType = "trade"
	ActivityType_Dividend      ActivityType = "dividend"
	ActivityType_StockDividend ActivityType = "stockDividend"
)

// Activity is one recorded financial event. The set of implementations
// is closed: Deposit, Trade, Dividend and StockDividend.
type Activity interface {
	GetID() uuid.UUID
	GetDate() time.Time
	GetCreatedAt() *time.Time
	Type() ActivityType
	isActivity()
}

// ActivityMeta holds the fields shared by every activity.
type ActivityMeta struct {
	ActivityID uuid.UUID
	Date       time.Time
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
}

func (m ActivityMeta) GetID() uuid.UUID         { return m.ActivityID }
func (m ActivityMeta) GetDate() time.Time       { return m.Date }
func (m ActivityMeta) GetCreatedAt() *time.Time { return m.CreatedAt }
func (ActivityMeta) isActivity()                {}

// Deposit is an external cash contribution. Negative amounts are withdrawals.
type Deposit struct {
	ActivityMeta
	Amount decimal.Decimal
}

func (Deposit) Type() ActivityType { return ActivityType_Deposit }

type TradeLeg struct {
	Instrument string
	Units      decimal.Decimal // negative is valid and implies sell
}

// Trade buys and/or sells one or more instruments for a single cash cost.
// Positive cost is a net buy, negative cost a net sell.
type Trade struct {
	ActivityMeta
	Trades []TradeLeg
	Cost   decimal.Decimal
}

func (Trade) Type() ActivityType { return ActivityType_Trade }

func (t Trade) Instruments() []string {
	out := make([]string, len(t.Trades))
	for i, leg := range t.Trades {
		out[i] = leg.Instrument
	}
	return out
}

type Dividend struct {
	ActivityMeta
	Instrument string
	Amount     decimal.Decimal
}

func (Dividend) Type() ActivityType { return ActivityType_Dividend }

type StockDividend struct {
	ActivityMeta
	Instrument string
	Units      decimal.Decimal
}

func (StockDividend) Type() ActivityType { return ActivityType_StockDividend }

// Label returns the human classification of an activity.
func Label(a Activity) string {
	switch v := a.(type) {
	case Deposit:
		return "Deposit"
	case Dividend:
		return "Cash Dividend"
	case StockDividend:
		return "Stock Dividend"
	case Trade:
		if v.Cost.IsNegative() {
			return "Sell"
		}
		return "Buy"
	}
	return ""
}

// ActivityLess orders activities by date, then creation time, then id.
func ActivityLess(a, b Activity) bool {
	da, db := Day(a.GetDate()), Day(b.GetDate())
	if !da.Equal(db) {
		return da.Before(db)
	}
	ca, cb := a.GetCreatedAt(), b.GetCreatedAt()
	if ca != nil && cb != nil && !ca.Equal(*cb) {
		return ca.Before(*cb)
	}
	return a.GetID().String() < b.GetID().String()
}

func SortActivities(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return ActivityLess(activities[i], activities[j])
	})
}
