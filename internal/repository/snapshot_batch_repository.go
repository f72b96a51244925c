package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"folio/internal/db/models/postgres/public/model"
	. "folio/internal/db/models/postgres/public/table"
	"folio/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

//go:generate mockgen -source=snapshot_batch_repository.go -destination=mock_snapshot_batch_repository.go -package=repository

type SnapshotBatchRepository interface {
	DeleteAll(tx *sql.Tx, portfolioID uuid.UUID) error
	Add(tx *sql.Tx, portfolioID uuid.UUID, batches []domain.SnapshotBatch) error
	// List returns batches in date order.
	List(tx *sql.Tx, portfolioID uuid.UUID) ([]domain.SnapshotBatch, error)
}

type snapshotBatchRepositoryHandler struct{}

func NewSnapshotBatchRepository() SnapshotBatchRepository {
	return snapshotBatchRepositoryHandler{}
}

func (h snapshotBatchRepositoryHandler) DeleteAll(tx *sql.Tx, portfolioID uuid.UUID) error {
	query := SnapshotBatch.DELETE().
		WHERE(SnapshotBatch.PortfolioID.EQ(postgres.UUID(portfolioID)))

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot batches of portfolio %s: %w", portfolioID, err)
	}
	return nil
}

func (h snapshotBatchRepositoryHandler) Add(tx *sql.Tx, portfolioID uuid.UUID, batches []domain.SnapshotBatch) error {
	if len(batches) == 0 {
		return nil
	}

	models := make([]model.SnapshotBatch, len(batches))
	for i, b := range batches {
		m, err := snapshotBatchToDb(portfolioID, b)
		if err != nil {
			return err
		}
		models[i] = m
	}

	query := SnapshotBatch.INSERT(SnapshotBatch.AllColumns).
		MODELS(models)

	_, err := query.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot batches: %w", err)
	}
	return nil
}

func (h snapshotBatchRepositoryHandler) List(tx *sql.Tx, portfolioID uuid.UUID) ([]domain.SnapshotBatch, error) {
	query := SnapshotBatch.SELECT(SnapshotBatch.AllColumns).
		WHERE(SnapshotBatch.PortfolioID.EQ(postgres.UUID(portfolioID))).
		ORDER_BY(SnapshotBatch.StartDate.ASC())

	result := []model.SnapshotBatch{}
	err := query.Query(tx, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list snapshot batches of portfolio %s: %w", portfolioID, err)
	}

	out := make([]domain.SnapshotBatch, len(result))
	for i, m := range result {
		var stored []domain.StoredSnapshot
		if err := unmarshalJson(m.Snapshots, &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot batch %s: %w", m.SnapshotBatchID, err)
		}
		batch, err := domain.StoredSnapshotBatch{Snapshots: stored}.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot batch %s: %w", m.SnapshotBatchID, err)
		}
		out[i] = batch
	}
	return out, nil
}

func snapshotBatchToDb(portfolioID uuid.UUID, b domain.SnapshotBatch) (model.SnapshotBatch, error) {
	stored := b.ToStorage()
	snapshots, err := json.Marshal(stored.Snapshots)
	if err != nil {
		return model.SnapshotBatch{}, fmt.Errorf("failed to marshal snapshot batch: %w", err)
	}

	out := model.SnapshotBatch{
		SnapshotBatchID: uuid.New(),
		PortfolioID:     portfolioID,
		Snapshots:       string(snapshots),
	}
	if len(b.Snapshots) > 0 {
		start, end := b.StartDate, b.EndDate
		out.StartDate = &start
		out.EndDate = &end
	}
	return out, nil
}
