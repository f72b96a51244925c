package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	folio_errors "folio/internal"
	"folio/internal/db/models/postgres/public/model"
	. "folio/internal/db/models/postgres/public/table"
	"folio/internal/domain"
	"folio/internal/util"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=portfolio_repository.go -destination=mock_portfolio_repository.go -package=repository

type PortfolioRepository interface {
	Add(tx *sql.Tx, p domain.Portfolio) (*domain.Portfolio, error)
	Get(tx *sql.Tx, portfolioID uuid.UUID) (*domain.Portfolio, error)
	ListByUser(tx *sql.Tx, userID uuid.UUID) ([]domain.Portfolio, error)
	// UpdateDerived writes recomputed state if the stored version still
	// matches expectedVersion, and bumps it.
	UpdateDerived(tx *sql.Tx, portfolioID uuid.UUID, expectedVersion int64, state domain.DerivedState) error
}

type portfolioRepositoryHandler struct{}

func NewPortfolioRepository() PortfolioRepository {
	return portfolioRepositoryHandler{}
}

func (h portfolioRepositoryHandler) Add(tx *sql.Tx, p domain.Portfolio) (*domain.Portfolio, error) {
	if p.PortfolioID == uuid.Nil {
		p.PortfolioID = uuid.New()
	}
	m, err := portfolioToDb(p)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = m.CreatedAt

	query := Portfolio.INSERT(Portfolio.AllColumns).
		MODEL(m).
		RETURNING(Portfolio.AllColumns)

	var out model.Portfolio
	err = query.Query(tx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return portfolioFromDb(out)
}

func (h portfolioRepositoryHandler) Get(tx *sql.Tx, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	query := Portfolio.SELECT(Portfolio.AllColumns).
		WHERE(Portfolio.PortfolioID.EQ(postgres.UUID(portfolioID)))

	var out model.Portfolio
	err := query.Query(tx, &out)
	if err != nil && errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", folio_errors.ErrPortfolioNotFound, portfolioID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get portfolio %s: %w", portfolioID, err)
	}

	return portfolioFromDb(out)
}

func (h portfolioRepositoryHandler) ListByUser(tx *sql.Tx, userID uuid.UUID) ([]domain.Portfolio, error) {
	query := Portfolio.SELECT(Portfolio.AllColumns).
		WHERE(Portfolio.UserID.EQ(postgres.UUID(userID))).
		ORDER_BY(Portfolio.CreatedAt.ASC())

	var results []model.Portfolio
	err := query.Query(tx, &results)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list portfolios for user %s: %w", userID, err)
	}

	out := make([]domain.Portfolio, 0, len(results))
	for _, r := range results {
		p, err := portfolioFromDb(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (h portfolioRepositoryHandler) UpdateDerived(tx *sql.Tx, portfolioID uuid.UUID, expectedVersion int64, state domain.DerivedState) error {
	costBasis, err := json.Marshal(state.CostBasis.ToStorage())
	if err != nil {
		return fmt.Errorf("failed to marshal cost basis: %w", err)
	}
	var latest *string
	if state.LatestSnapshot != nil {
		latest, err = marshalString(state.LatestSnapshot.ToStorage())
		if err != nil {
			return fmt.Errorf("failed to marshal latest snapshot: %w", err)
		}
	}

	m := model.Portfolio{
		CostBasis:           string(costBasis),
		ActivitiesStartDate: state.ActivitiesStartDate,
		LatestSnapshot:      latest,
		Version:             expectedVersion + 1,
		UpdatedAt:           time.Now().UTC(),
	}
	query := Portfolio.UPDATE(
		Portfolio.CostBasis,
		Portfolio.ActivitiesStartDate,
		Portfolio.LatestSnapshot,
		Portfolio.Version,
		Portfolio.UpdatedAt,
	).MODEL(m).WHERE(
		postgres.AND(
			Portfolio.PortfolioID.EQ(postgres.UUID(portfolioID)),
			Portfolio.Version.EQ(postgres.Int(expectedVersion)),
		),
	)

	result, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to update portfolio %s: %w", portfolioID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: portfolio %s is no longer at version %d", folio_errors.ErrConcurrentModification, portfolioID, expectedVersion)
	}

	return nil
}

func portfolioToDb(p domain.Portfolio) (model.Portfolio, error) {
	aliases := p.Aliases
	if aliases == nil {
		aliases = map[string]string{}
	}
	aliasesJson, err := json.Marshal(aliases)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to marshal aliases: %w", err)
	}

	var targets *string
	if p.TargetAllocations != nil {
		stored := make(map[string]json.Number, len(p.TargetAllocations))
		for k, v := range p.TargetAllocations {
			stored[k] = json.Number(v.String())
		}
		targets, err = marshalString(stored)
		if err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to marshal target allocations: %w", err)
		}
	}

	costBasis, err := json.Marshal(p.CostBasis.ToStorage())
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to marshal cost basis: %w", err)
	}

	var latest *string
	if p.LatestSnapshot != nil {
		latest, err = marshalString(p.LatestSnapshot.ToStorage())
		if err != nil {
			return model.Portfolio{}, fmt.Errorf("failed to marshal latest snapshot: %w", err)
		}
	}

	return model.Portfolio{
		PortfolioID:         p.PortfolioID,
		UserID:              p.UserID,
		Currency:            p.Currency,
		Aliases:             string(aliasesJson),
		TargetAllocations:   targets,
		CostBasis:           string(costBasis),
		ActivitiesStartDate: p.ActivitiesStartDate,
		LatestSnapshot:      latest,
		Version:             p.Version,
	}, nil
}

func portfolioFromDb(m model.Portfolio) (*domain.Portfolio, error) {
	out := domain.Portfolio{
		PortfolioID: m.PortfolioID,
		UserID:      m.UserID,
		Currency:    m.Currency,
		Aliases:     map[string]string{},
		Version:     m.Version,
	}

	if m.Aliases != "" {
		if err := json.Unmarshal([]byte(m.Aliases), &out.Aliases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal aliases of portfolio %s: %w", m.PortfolioID, err)
		}
	}

	if m.TargetAllocations != nil {
		stored := map[string]json.Number{}
		if err := json.Unmarshal([]byte(*m.TargetAllocations), &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal target allocations of portfolio %s: %w", m.PortfolioID, err)
		}
		out.TargetAllocations = make(map[string]decimal.Decimal, len(stored))
		for k, v := range stored {
			d, err := decimal.NewFromString(v.String())
			if err != nil {
				return nil, fmt.Errorf("failed to parse target allocation %s: %w", k, err)
			}
			out.TargetAllocations[k] = d
		}
	}

	stored := map[string]json.Number{}
	if m.CostBasis != "" {
		if err := json.Unmarshal([]byte(m.CostBasis), &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cost basis of portfolio %s: %w", m.PortfolioID, err)
		}
	}
	costBasis, err := domain.CostBasisFromStorage(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cost basis of portfolio %s: %w", m.PortfolioID, err)
	}
	out.CostBasis = costBasis

	if m.ActivitiesStartDate != nil {
		out.ActivitiesStartDate = util.TimePtr(domain.Day(*m.ActivitiesStartDate))
	}

	if m.LatestSnapshot != nil {
		var s domain.StoredSnapshot
		if err := unmarshalJson(*m.LatestSnapshot, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal latest snapshot of portfolio %s: %w", m.PortfolioID, err)
		}
		snapshot, err := s.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to parse latest snapshot of portfolio %s: %w", m.PortfolioID, err)
		}
		out.LatestSnapshot = &snapshot
	}

	return &out, nil
}
