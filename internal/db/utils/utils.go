package db_utils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	folio_errors "folio/internal"
	"folio/internal/logging"

	"github.com/lib/pq"
	"github.com/phuslu/log"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func New(url string) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return dbConn, nil
}

func IsDuplicateEntryErr(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsSerializationFailure reports whether postgres aborted the transaction
// because it conflicted with a concurrent one.
func IsSerializationFailure(err error) bool {
	return hasCode(err, codeSerializationFailure) || hasCode(err, codeDeadlockDetected)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return false
}

// TxRunner runs fn inside one serializable transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type txRunnerHandler struct {
	Db     *sql.DB
	Logger *log.Logger
}

func NewTxRunner(db *sql.DB, logger *log.Logger) TxRunner {
	return txRunnerHandler{
		Db:     db,
		Logger: logging.OrSilent(logger),
	}
}

func (h txRunnerHandler) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := h.Db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			h.Logger.Error().Err(rbErr).Msg("failed to roll back transaction")
		}
		return mapTxErr(err)
	}

	if err := tx.Commit(); err != nil {
		return mapTxErr(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func mapTxErr(err error) error {
	if IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s", folio_errors.ErrConcurrentModification, err.Error())
	}
	return err
}
