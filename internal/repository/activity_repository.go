package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	folio_errors "folio/internal"
	"folio/internal/db/models/postgres/public/model"
	. "folio/internal/db/models/postgres/public/table"
	"folio/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=activity_repository.go -destination=mock_activity_repository.go -package=repository

// ActivityRepository stores activities in their storage form. Conversion to
// domain activities is left to callers so unknown types can be skipped
// rather than failing the whole read.
type ActivityRepository interface {
	Add(tx *sql.Tx, portfolioID uuid.UUID, activities []domain.StoredActivity) ([]domain.StoredActivity, error)
	Update(tx *sql.Tx, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error)
	// Delete returns the removed activity.
	Delete(tx *sql.Tx, portfolioID, activityID uuid.UUID) (*domain.StoredActivity, error)
	Get(tx *sql.Tx, portfolioID, activityID uuid.UUID) (*domain.StoredActivity, error)
	// List returns activities in ledger order: date, then creation time,
	// then id.
	List(tx *sql.Tx, portfolioID uuid.UUID) ([]domain.StoredActivity, error)
}

type activityRepositoryHandler struct{}

func NewActivityRepository() ActivityRepository {
	return activityRepositoryHandler{}
}

func (h activityRepositoryHandler) Add(tx *sql.Tx, portfolioID uuid.UUID, activities []domain.StoredActivity) ([]domain.StoredActivity, error) {
	if len(activities) == 0 {
		return []domain.StoredActivity{}, nil
	}

	now := time.Now().UTC()
	models := make([]model.Activity, len(activities))
	for i, a := range activities {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		m, err := activityToDb(portfolioID, a)
		if err != nil {
			return nil, err
		}
		if a.CreatedAt == nil {
			// keep insertion order as the tie-break within a batch
			m.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		}
		m.UpdatedAt = now
		models[i] = m
	}

	query := Activity.INSERT(Activity.AllColumns).
		MODELS(models).
		RETURNING(Activity.AllColumns)

	result := []model.Activity{}
	err := query.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activities: %w", err)
	}

	out := activitiesFromDb(result)
	sortStored(out)
	return out, nil
}

func (h activityRepositoryHandler) Update(tx *sql.Tx, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error) {
	m, err := activityToDb(portfolioID, activity)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt = time.Now().UTC()

	query := Activity.UPDATE(
		Activity.Type,
		Activity.Date,
		Activity.Amount,
		Activity.Instrument,
		Activity.Units,
		Activity.Cost,
		Activity.Trades,
		Activity.SkipTrigger,
		Activity.UpdatedAt,
	).MODEL(m).WHERE(
		postgres.AND(
			Activity.ActivityID.EQ(postgres.UUID(activity.ID)),
			Activity.PortfolioID.EQ(postgres.UUID(portfolioID)),
		),
	).RETURNING(Activity.AllColumns)

	var out model.Activity
	err = query.Query(tx, &out)
	if err != nil && errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", folio_errors.ErrActivityNotFound, activity.ID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to update activity %s: %w", activity.ID, err)
	}

	stored := activityFromDb(out)
	return &stored, nil
}

func (h activityRepositoryHandler) Delete(tx *sql.Tx, portfolioID, activityID uuid.UUID) (*domain.StoredActivity, error) {
	query := Activity.DELETE().
		WHERE(
			postgres.AND(
				Activity.ActivityID.EQ(postgres.UUID(activityID)),
				Activity.PortfolioID.EQ(postgres.UUID(portfolioID)),
			),
		).
		RETURNING(Activity.AllColumns)

	var out model.Activity
	err := query.Query(tx, &out)
	if err != nil && errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", folio_errors.ErrActivityNotFound, activityID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to delete activity %s: %w", activityID, err)
	}

	stored := activityFromDb(out)
	return &stored, nil
}

func (h activityRepositoryHandler) Get(tx *sql.Tx, portfolioID, activityID uuid.UUID) (*domain.StoredActivity, error) {
	query := Activity.SELECT(Activity.AllColumns).
		WHERE(
			postgres.AND(
				Activity.ActivityID.EQ(postgres.UUID(activityID)),
				Activity.PortfolioID.EQ(postgres.UUID(portfolioID)),
			),
		)

	var out model.Activity
	err := query.Query(tx, &out)
	if err != nil && errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", folio_errors.ErrActivityNotFound, activityID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get activity %s: %w", activityID, err)
	}

	stored := activityFromDb(out)
	return &stored, nil
}

func (h activityRepositoryHandler) List(tx *sql.Tx, portfolioID uuid.UUID) ([]domain.StoredActivity, error) {
	query := Activity.SELECT(Activity.AllColumns).
		WHERE(Activity.PortfolioID.EQ(postgres.UUID(portfolioID))).
		ORDER_BY(
			Activity.Date.ASC(),
			Activity.CreatedAt.ASC(),
			Activity.ActivityID.ASC(),
		)

	result := []model.Activity{}
	err := query.Query(tx, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list activities of portfolio %s: %w", portfolioID, err)
	}

	return activitiesFromDb(result), nil
}

func activityToDb(portfolioID uuid.UUID, a domain.StoredActivity) (model.Activity, error) {
	date, err := domain.ParseDay(a.Date)
	if err != nil {
		return model.Activity{}, fmt.Errorf("failed to parse date of activity %s: %w", a.ID, err)
	}

	out := model.Activity{
		ActivityID:  a.ID,
		PortfolioID: portfolioID,
		Type:        model.ActivityType(a.Type),
		Date:        date,
		SkipTrigger: a.SkipTrigger,
	}
	if a.CreatedAt != nil {
		out.CreatedAt = time.UnixMilli(*a.CreatedAt).UTC()
	}
	if a.Instrument != "" {
		out.Instrument = &a.Instrument
	}

	numbers := []struct {
		dst  **decimal.Decimal
		src  *json.Number
		name string
	}{
		{&out.Amount, a.Amount, "amount"},
		{&out.Units, a.Units, "units"},
		{&out.Cost, a.Cost, "cost"},
	}
	for _, n := range numbers {
		if n.src == nil {
			continue
		}
		d, err := decimal.NewFromString(n.src.String())
		if err != nil {
			return model.Activity{}, fmt.Errorf("failed to parse %s of activity %s: %w", n.name, a.ID, err)
		}
		*n.dst = &d
	}

	if a.Trades != nil {
		trades, err := marshalString(a.Trades)
		if err != nil {
			return model.Activity{}, fmt.Errorf("failed to marshal trades of activity %s: %w", a.ID, err)
		}
		out.Trades = trades
	}

	return out, nil
}

func activityFromDb(m model.Activity) domain.StoredActivity {
	createdAt := m.CreatedAt.UnixMilli()
	updatedAt := m.UpdatedAt.UnixMilli()
	out := domain.StoredActivity{
		ID:          m.ActivityID,
		Type:        domain.ActivityType(m.Type),
		Date:        domain.FormatDay(domain.Day(m.Date)),
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
		SkipTrigger: m.SkipTrigger,
		Amount:      numberPtr(m.Amount),
		Units:       numberPtr(m.Units),
		Cost:        numberPtr(m.Cost),
	}
	if m.Instrument != nil {
		out.Instrument = *m.Instrument
	}
	if m.Trades != nil {
		var legs []domain.StoredTradeLeg
		// a malformed trades document surfaces later as a trade without legs
		if err := unmarshalJson(*m.Trades, &legs); err == nil {
			out.Trades = legs
		}
	}
	return out
}

func activitiesFromDb(models []model.Activity) []domain.StoredActivity {
	out := make([]domain.StoredActivity, len(models))
	for i, m := range models {
		out[i] = activityFromDb(m)
	}
	return out
}

func numberPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := json.Number(d.String())
	return &n
}

func sortStored(activities []domain.StoredActivity) {
	sort.SliceStable(activities, func(i, j int) bool {
		a, b := activities[i], activities[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if *a.CreatedAt != *b.CreatedAt {
			return *a.CreatedAt < *b.CreatedAt
		}
		return a.ID.String() < b.ID.String()
	})
}
