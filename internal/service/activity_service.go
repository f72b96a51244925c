package service

import (
	"context"
	"database/sql"
	"fmt"

	folio_errors "folio/internal"
	db_utils "folio/internal/db/utils"
	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/queue"
	"folio/internal/repository"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

//go:generate mockgen -source=activity_service.go -destination=mock_activity_service.go -package=service

// ActivityService writes activities and asks the ledger to recompute after
// each committed write. Events are published after commit so the ledger
// never reads a list that lacks the write. When publishing fails the write
// stays committed; the activity is still returned alongside the error and a
// rebuild repairs the derived state.
type ActivityService interface {
	Create(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error)
	Update(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error)
	Delete(ctx context.Context, portfolioID, activityID uuid.UUID) error
	List(ctx context.Context, portfolioID uuid.UUID) ([]domain.StoredActivity, error)
	// BulkImport writes every activity with skipTrigger set and requests
	// a single rebuild once they are all committed.
	BulkImport(ctx context.Context, portfolioID uuid.UUID, activities []domain.StoredActivity) ([]domain.StoredActivity, error)
}

type activityServiceHandler struct {
	TxRunner            db_utils.TxRunner
	PortfolioRepository repository.PortfolioRepository
	ActivityRepository  repository.ActivityRepository
	Publisher           queue.Publisher
	Logger              *log.Logger
}

func NewActivityService(
	txRunner db_utils.TxRunner,
	portfolioRepository repository.PortfolioRepository,
	activityRepository repository.ActivityRepository,
	publisher queue.Publisher,
	logger *log.Logger,
) ActivityService {
	return activityServiceHandler{
		TxRunner:            txRunner,
		PortfolioRepository: portfolioRepository,
		ActivityRepository:  activityRepository,
		Publisher:           publisher,
		Logger:              logging.OrSilent(logger),
	}
}

func (h activityServiceHandler) Create(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error) {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	if err := ValidateActivity(activity); err != nil {
		return nil, err
	}

	var created domain.StoredActivity
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		_, err := h.PortfolioRepository.Get(tx, portfolioID)
		if err != nil {
			return err
		}
		out, err := h.ActivityRepository.Add(tx, portfolioID, []domain.StoredActivity{activity})
		if err != nil {
			return err
		}
		created = out[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, h.publish(ctx, domain.ActivityEvent{
		PortfolioID: portfolioID,
		ActivityID:  created.ID,
		After:       &created,
	})
}

func (h activityServiceHandler) Update(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error) {
	if activity.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing id", folio_errors.ErrInvalidActivity)
	}
	if err := ValidateActivity(activity); err != nil {
		return nil, err
	}

	var before, after *domain.StoredActivity
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		before, err = h.ActivityRepository.Get(tx, portfolioID, activity.ID)
		if err != nil {
			return err
		}
		after, err = h.ActivityRepository.Update(tx, portfolioID, activity)
		return err
	})
	if err != nil {
		return nil, err
	}

	return after, h.publish(ctx, domain.ActivityEvent{
		PortfolioID: portfolioID,
		ActivityID:  after.ID,
		Before:      before,
		After:       after,
	})
}

func (h activityServiceHandler) Delete(ctx context.Context, portfolioID, activityID uuid.UUID) error {
	var removed *domain.StoredActivity
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		var err error
		removed, err = h.ActivityRepository.Delete(tx, portfolioID, activityID)
		return err
	})
	if err != nil {
		return err
	}

	return h.publish(ctx, domain.ActivityEvent{
		PortfolioID: portfolioID,
		ActivityID:  activityID,
		Before:      removed,
	})
}

func (h activityServiceHandler) List(ctx context.Context, portfolioID uuid.UUID) ([]domain.StoredActivity, error) {
	var out []domain.StoredActivity
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		_, err := h.PortfolioRepository.Get(tx, portfolioID)
		if err != nil {
			return err
		}
		out, err = h.ActivityRepository.List(tx, portfolioID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (h activityServiceHandler) BulkImport(ctx context.Context, portfolioID uuid.UUID, activities []domain.StoredActivity) ([]domain.StoredActivity, error) {
	if len(activities) == 0 {
		return []domain.StoredActivity{}, nil
	}
	toAdd := make([]domain.StoredActivity, len(activities))
	for i, a := range activities {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.SkipTrigger = true
		if err := ValidateActivity(a); err != nil {
			return nil, fmt.Errorf("activity %d: %w", i, err)
		}
		toAdd[i] = a
	}

	var created []domain.StoredActivity
	err := h.TxRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		_, err := h.PortfolioRepository.Get(tx, portfolioID)
		if err != nil {
			return err
		}
		created, err = h.ActivityRepository.Add(tx, portfolioID, toAdd)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.Logger.Info().
		Str("portfolio_id", portfolioID.String()).
		Int("activities", len(created)).
		Msg("imported activities, requesting rebuild")
	return created, h.publish(ctx, domain.ActivityEvent{PortfolioID: portfolioID})
}

func (h activityServiceHandler) publish(ctx context.Context, event domain.ActivityEvent) error {
	if event.Suppressed() {
		return nil
	}
	err := h.Publisher.Publish(ctx, event)
	if err != nil {
		h.Logger.Error().
			Str("portfolio_id", event.PortfolioID.String()).
			Str("activity_id", event.ActivityID.String()).
			Err(err).
			Msg("activity saved but recompute was not requested")
		return err
	}
	return nil
}

// ValidateActivity checks that an activity parses and names its
// instruments.
func ValidateActivity(activity domain.StoredActivity) error {
	a, err := domain.FromStorage(activity)
	if err != nil {
		return fmt.Errorf("%w: %s", folio_errors.ErrInvalidActivity, err.Error())
	}
	switch v := a.(type) {
	case domain.Trade:
		if len(v.Trades) == 0 {
			return fmt.Errorf("%w: trade %s has no legs", folio_errors.ErrInvalidActivity, v.ActivityID)
		}
		for _, leg := range v.Trades {
			if leg.Instrument == "" {
				return fmt.Errorf("%w: trade %s has a leg with no instrument", folio_errors.ErrInvalidActivity, v.ActivityID)
			}
		}
	case domain.Dividend:
		if v.Instrument == "" {
			return fmt.Errorf("%w: dividend %s has no instrument", folio_errors.ErrInvalidActivity, v.ActivityID)
		}
	case domain.StockDividend:
		if v.Instrument == "" {
			return fmt.Errorf("%w: stock dividend %s has no instrument", folio_errors.ErrInvalidActivity, v.ActivityID)
		}
	}
	return nil
}
