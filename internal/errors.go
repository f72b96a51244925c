package folio_errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConcurrentModification = errors.New("portfolio was modified concurrently")
	ErrPortfolioNotFound      = errors.New("portfolio not found")
	ErrActivityNotFound       = errors.New("activity not found")
	ErrStockNotFound          = errors.New("stock not found")
	ErrInvalidActivity        = errors.New("invalid activity")
	ErrInvalidPortfolio       = errors.New("invalid portfolio")
	ErrInvalidRequest         = errors.New("invalid request")
)

type ErrUnknownActivityType struct {
	Type string
}

func (e ErrUnknownActivityType) Error() string {
	return fmt.Sprintf("unknown activity type %q", e.Type)
}

type ErrPriceUnavailable struct {
	Instrument string
	Date       time.Time
	Message    string
}

func (e ErrPriceUnavailable) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("no price for %s on %s: %s", e.Instrument, e.Date.Format("2006-01-02"), e.Message)
	}
	return fmt.Sprintf("no price for %s on %s", e.Instrument, e.Date.Format("2006-01-02"))
}

type ErrRetriesExhausted struct {
	Attempts int
	Err      error
}

func (e ErrRetriesExhausted) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %s", e.Attempts, e.Err.Error())
}

func (e ErrRetriesExhausted) Unwrap() error { return e.Err }

// IsRetryable reports whether the whole read-recompute-commit cycle
// should be attempted again with fresh reads.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
