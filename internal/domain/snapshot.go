package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the state of a portfolio as of one calendar day.
type Snapshot struct {
	Date      time.Time
	Cash      decimal.Decimal
	CashFlow  decimal.Decimal // cumulative deposits
	Dividend  decimal.Decimal // dividends received on Date only
	NumShares map[string]decimal.Decimal
}

// EmptySnapshot is the state before any activity.
func EmptySnapshot(today time.Time) Snapshot {
	return Snapshot{
		Date:      Day(today),
		Cash:      decimal.Zero,
		CashFlow:  decimal.Zero,
		Dividend:  decimal.Zero,
		NumShares: map[string]decimal.Decimal{},
	}
}

func (s Snapshot) DeepCopy() Snapshot {
	out := s
	out.NumShares = make(map[string]decimal.Decimal, len(s.NumShares))
	for k, v := range s.NumShares {
		out.NumShares[k] = v
	}
	return out
}

func (s Snapshot) Holding(instrument string) decimal.Decimal {
	if n, ok := s.NumShares[instrument]; ok {
		return n
	}
	return decimal.Zero
}

// Equal compares numerically, so 1.50 equals 1.5.
func (s Snapshot) Equal(o Snapshot) bool {
	if !SameDay(s.Date, o.Date) ||
		!s.Cash.Equal(o.Cash) ||
		!s.CashFlow.Equal(o.CashFlow) ||
		!s.Dividend.Equal(o.Dividend) ||
		len(s.NumShares) != len(o.NumShares) {
		return false
	}
	for k, v := range s.NumShares {
		w, ok := o.NumShares[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

type StoredSnapshot struct {
	Date      string                 `json:"date"`
	Cash      json.Number            `json:"cash"`
	CashFlow  json.Number            `json:"cashFlow"`
	Dividend  json.Number            `json:"dividend"`
	NumShares map[string]json.Number `json:"numShares"`
}

func (s Snapshot) ToStorage() StoredSnapshot {
	shares := make(map[string]json.Number, len(s.NumShares))
	for k, v := range s.NumShares {
		shares[k] = json.Number(v.String())
	}
	return StoredSnapshot{
		Date:      FormatDay(s.Date),
		Cash:      json.Number(s.Cash.String()),
		CashFlow:  json.Number(s.CashFlow.String()),
		Dividend:  json.Number(s.Dividend.String()),
		NumShares: shares,
	}
}

func (s StoredSnapshot) ToDomain() (Snapshot, error) {
	date, err := ParseDay(s.Date)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot date: %w", err)
	}
	out := Snapshot{
		Date:      date,
		NumShares: make(map[string]decimal.Decimal, len(s.NumShares)),
	}
	fields := []struct {
		dst *decimal.Decimal
		src json.Number
	}{
		{&out.Cash, s.Cash},
		{&out.CashFlow, s.CashFlow},
		{&out.Dividend, s.Dividend},
	}
	for _, f := range fields {
		if *f.dst, err = decimalOrZero(f.src); err != nil {
			return Snapshot{}, fmt.Errorf("failed to parse snapshot on %s: %w", s.Date, err)
		}
	}
	for k, v := range s.NumShares {
		n, err := decimalOrZero(v)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to parse %s shares on %s: %w", k, s.Date, err)
		}
		out.NumShares[k] = n
	}
	return out, nil
}

func decimalOrZero(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}

// SnapshotBatch is a contiguous, date-ordered chunk of a snapshot sequence.
// StartDate and EndDate are zero for an empty batch.
type SnapshotBatch struct {
	StartDate time.Time
	EndDate   time.Time
	Snapshots []Snapshot
}

type StoredSnapshotBatch struct {
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Snapshots []StoredSnapshot `json:"snapshots"`
}

func (b SnapshotBatch) ToStorage() StoredSnapshotBatch {
	out := StoredSnapshotBatch{Snapshots: make([]StoredSnapshot, len(b.Snapshots))}
	if len(b.Snapshots) > 0 {
		out.StartDate = FormatDay(b.StartDate)
		out.EndDate = FormatDay(b.EndDate)
	}
	for i, s := range b.Snapshots {
		out.Snapshots[i] = s.ToStorage()
	}
	return out
}

func (b StoredSnapshotBatch) ToDomain() (SnapshotBatch, error) {
	out := SnapshotBatch{Snapshots: make([]Snapshot, len(b.Snapshots))}
	for i, s := range b.Snapshots {
		snapshot, err := s.ToDomain()
		if err != nil {
			return SnapshotBatch{}, err
		}
		out.Snapshots[i] = snapshot
	}
	if len(out.Snapshots) > 0 {
		out.StartDate = out.Snapshots[0].Date
		out.EndDate = out.Snapshots[len(out.Snapshots)-1].Date
	}
	return out, nil
}

// CostBasis maps an instrument to its average cost per unit.
type CostBasis map[string]decimal.Decimal

func (c CostBasis) DeepCopy() CostBasis {
	out := make(CostBasis, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func (c CostBasis) Get(instrument string) decimal.Decimal {
	if v, ok := c[instrument]; ok {
		return v
	}
	return decimal.Zero
}

func (c CostBasis) Instruments() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c CostBasis) ToStorage() map[string]json.Number {
	out := make(map[string]json.Number, len(c))
	for k, v := range c {
		out[k] = json.Number(v.String())
	}
	return out
}

func CostBasisFromStorage(in map[string]json.Number) (CostBasis, error) {
	out := make(CostBasis, len(in))
	for k, v := range in {
		d, err := decimalOrZero(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cost basis of %s: %w", k, err)
		}
		out[k] = d
	}
	return out, nil
}
