// Package ledger keeps a portfolio's derived state (snapshot history, cost
// basis, latest snapshot) in step with its activities.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	folio_errors "folio/internal"
	"folio/internal/config"
	"folio/internal/costbasis"
	db_utils "folio/internal/db/utils"
	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/repository"
	"folio/internal/snapshot"
	"folio/internal/util"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

const defaultMaxAttempts = 5

type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseRecomputing Phase = "recomputing"
	PhaseCommitting  Phase = "committing"
)

// Coordinator recomputes derived state in one transaction per attempt. It
// holds no state between invocations; conflicting commits are detected by
// the portfolio version and the loser starts over with fresh reads.
type Coordinator struct {
	TxRunner                db_utils.TxRunner
	PortfolioRepository     repository.PortfolioRepository
	ActivityRepository      repository.ActivityRepository
	SnapshotBatchRepository repository.SnapshotBatchRepository
	Engine                  costbasis.Engine
	BatchSize               int
	MaxAttempts             int
	Logger                  *log.Logger

	now func() time.Time
}

func NewCoordinator(
	txRunner db_utils.TxRunner,
	portfolioRepository repository.PortfolioRepository,
	activityRepository repository.ActivityRepository,
	snapshotBatchRepository repository.SnapshotBatchRepository,
	prices costbasis.PriceLookup,
	cfg config.LedgerConfig,
	logger *log.Logger,
) *Coordinator {
	logger = logging.OrSilent(logger)
	return &Coordinator{
		TxRunner:                txRunner,
		PortfolioRepository:     portfolioRepository,
		ActivityRepository:      activityRepository,
		SnapshotBatchRepository: snapshotBatchRepository,
		Engine:                  costbasis.NewEngine(prices, logger),
		BatchSize:               cfg.BatchSize,
		MaxAttempts:             cfg.MaxAttempts,
		Logger:                  logger,
		now:                     time.Now,
	}
}

// trigger is the activity write being reacted to. Both sides nil means a
// full rebuild.
type trigger struct {
	activityID uuid.UUID
	before     domain.Activity
	after      domain.Activity
}

func (t trigger) isRebuild() bool {
	return t.before == nil && t.after == nil
}

// Handle reacts to one activity write. Events whose write carried
// skipTrigger are ignored. A missing portfolio is logged and acknowledged.
func (c *Coordinator) Handle(ctx context.Context, event domain.ActivityEvent) error {
	logger := c.logger()
	if event.Suppressed() {
		logger.Debug().
			Str("portfolio_id", event.PortfolioID.String()).
			Str("activity_id", event.ActivityID.String()).
			Msg("skipping suppressed activity event")
		return nil
	}

	t := trigger{activityID: event.ActivityID}
	var err error
	if event.Before != nil {
		if t.before, err = domain.FromStorage(*event.Before); err != nil {
			logger.Warn().Err(err).Str("activity_id", event.ActivityID.String()).Msg("ignoring unreadable previous activity")
		}
	}
	if event.After != nil {
		if t.after, err = domain.FromStorage(*event.After); err != nil {
			logger.Warn().Err(err).Str("activity_id", event.ActivityID.String()).Msg("ignoring unreadable activity")
		}
	}

	return c.run(ctx, event.PortfolioID, t)
}

// Rebuild recomputes everything, including the cost basis, from the full
// activity list.
func (c *Coordinator) Rebuild(ctx context.Context, portfolioID uuid.UUID) error {
	return c.run(ctx, portfolioID, trigger{})
}

func (c *Coordinator) run(ctx context.Context, portfolioID uuid.UUID, t trigger) error {
	logger := c.logger()
	maxAttempts := c.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}

	for attempt := 1; ; attempt++ {
		err := c.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
			return c.recompute(ctx, tx, portfolioID, t)
		})
		c.logPhase(PhaseIdle, portfolioID)
		if err == nil {
			return nil
		}
		if errors.Is(err, folio_errors.ErrPortfolioNotFound) {
			logger.Warn().
				Str("portfolio_id", portfolioID.String()).
				Str("activity_id", t.activityID.String()).
				Msg("portfolio not found, dropping event")
			return nil
		}
		if !folio_errors.IsRetryable(err) {
			return fmt.Errorf("failed to recompute portfolio %s: %w", portfolioID, err)
		}
		if attempt >= maxAttempts {
			return folio_errors.ErrRetriesExhausted{Attempts: attempt, Err: err}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Info().
			Str("portfolio_id", portfolioID.String()).
			Int("attempt", attempt).
			Err(err).
			Msg("recompute conflicted, retrying")
	}
}

func (c *Coordinator) recompute(ctx context.Context, tx *sql.Tx, portfolioID uuid.UUID, t trigger) error {
	today := c.today()

	portfolio, err := c.PortfolioRepository.Get(tx, portfolioID)
	if err != nil {
		return err
	}
	stored, err := c.ActivityRepository.List(tx, portfolioID)
	if err != nil {
		return err
	}

	c.logPhase(PhaseRecomputing, portfolioID)
	activities := c.parseActivities(stored)
	snapshots := snapshot.Build(activities, today, c.Logger)

	costBasis, err := c.costBasis(ctx, *portfolio, activities, t, today)
	if err != nil {
		return err
	}
	batches := snapshot.Batch(snapshots, c.BatchSize)

	c.logPhase(PhaseCommitting, portfolioID)
	state := domain.DerivedState{CostBasis: costBasis}
	if len(activities) > 0 {
		state.ActivitiesStartDate = util.TimePtr(domain.Day(activities[0].GetDate()))
	}
	if len(snapshots) > 0 {
		latest := snapshots[len(snapshots)-1]
		state.LatestSnapshot = &latest
	}

	err = c.SnapshotBatchRepository.DeleteAll(tx, portfolioID)
	if err != nil {
		return err
	}
	err = c.SnapshotBatchRepository.Add(tx, portfolioID, batches)
	if err != nil {
		return err
	}
	return c.PortfolioRepository.UpdateDerived(tx, portfolioID, portfolio.Version, state)
}

func (c *Coordinator) parseActivities(stored []domain.StoredActivity) []domain.Activity {
	out := make([]domain.Activity, 0, len(stored))
	for _, s := range stored {
		a, err := domain.FromStorage(s)
		if err != nil {
			c.logger().Warn().Err(err).Str("activity_id", s.ID.String()).Msg("skipping unreadable activity")
			continue
		}
		out = append(out, a)
	}
	domain.SortActivities(out)
	return out
}

// costBasis adjusts the stored cost basis by the trigger alone when that is
// exact, and replays the ledger otherwise.
func (c *Coordinator) costBasis(
	ctx context.Context,
	portfolio domain.Portfolio,
	activities []domain.Activity,
	t trigger,
	today time.Time,
) (domain.CostBasis, error) {
	logger := c.logger()
	if t.isRebuild() {
		return c.Engine.Replay(ctx, activities, portfolio.Currency, today)
	}

	after, baseline, ok := c.differentialBaseline(portfolio, activities, t, today)
	if !ok {
		logger.Debug().
			Str("portfolio_id", portfolio.PortfolioID.String()).
			Str("activity_id", t.activityID.String()).
			Msg("stored state does not precede this write, replaying cost basis")
		return c.Engine.Replay(ctx, activities, portfolio.Currency, today)
	}

	out, err := c.Engine.UpdateCosts(ctx, portfolio.CostBasis, baseline, portfolio.Currency, after, t.before)
	if errors.Is(err, costbasis.ErrNotReversible) {
		logger.Info().
			Str("portfolio_id", portfolio.PortfolioID.String()).
			Str("activity_id", t.activityID.String()).
			Err(err).
			Msg("replaying cost basis")
		return c.Engine.Replay(ctx, activities, portfolio.Currency, today)
	}
	return out, err
}

// differentialBaseline returns the activity to apply and the snapshot it
// applies against. ok is false unless the stored derived state is exactly
// the state before this write and the write sits at the end of the ledger,
// where the running average is not path dependent on anything later.
func (c *Coordinator) differentialBaseline(
	portfolio domain.Portfolio,
	activities []domain.Activity,
	t trigger,
	today time.Time,
) (after domain.Activity, baseline domain.Snapshot, ok bool) {
	// the stored copy wins over the event payload; it is what the
	// snapshots are built from
	rest := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if a.GetID() == t.activityID {
			after = a
			continue
		}
		rest = append(rest, a)
	}
	if (after == nil) != (t.after == nil) {
		return nil, domain.Snapshot{}, false
	}

	previous := append([]domain.Activity{}, rest...)
	if t.before != nil {
		previous = append(previous, t.before)
		domain.SortActivities(previous)
	}
	if !matchesStored(portfolio.LatestSnapshot, previous, today) {
		return nil, domain.Snapshot{}, false
	}

	if costbasis.AffectsCost(after) || costbasis.AffectsCost(t.before) {
		if after != nil && activities[len(activities)-1].GetID() != after.GetID() {
			return nil, domain.Snapshot{}, false
		}
		if t.before != nil && previous[len(previous)-1].GetID() != t.before.GetID() {
			return nil, domain.Snapshot{}, false
		}
	}

	return after, snapshot.Before(rest, len(rest), today), true
}

func matchesStored(stored *domain.Snapshot, activities []domain.Activity, today time.Time) bool {
	if len(activities) == 0 {
		return stored == nil
	}
	return stored != nil && stored.Equal(snapshot.Before(activities, len(activities), today))
}

func (c *Coordinator) logPhase(phase Phase, portfolioID uuid.UUID) {
	c.logger().Debug().
		Str("portfolio_id", portfolioID.String()).
		Str("phase", string(phase)).
		Msg("ledger phase")
}

func (c *Coordinator) logger() *log.Logger {
	return logging.OrSilent(c.Logger)
}

func (c *Coordinator) today() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().UTC()
}
