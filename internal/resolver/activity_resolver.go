package resolver

import (
	"context"
	"fmt"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/domain"

	"github.com/google/uuid"
)

func (r resolverHandler) ListActivities(ctx context.Context, portfolioID uuid.UUID) (*api_types.ListActivitiesResponse, error) {
	activities, err := r.ActivityService.List(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.StoredActivity{}
	}
	return &api_types.ListActivitiesResponse{Activities: activities}, nil
}

func (r resolverHandler) CreateActivity(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error) {
	// timestamps are assigned by the store
	activity.CreatedAt = nil
	activity.UpdatedAt = nil
	return r.ActivityService.Create(ctx, portfolioID, activity)
}

func (r resolverHandler) UpdateActivity(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error) {
	if activity.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing activity id", folio_errors.ErrInvalidRequest)
	}
	return r.ActivityService.Update(ctx, portfolioID, activity)
}

func (r resolverHandler) DeleteActivity(ctx context.Context, portfolioID, activityID uuid.UUID) error {
	return r.ActivityService.Delete(ctx, portfolioID, activityID)
}

func (r resolverHandler) ImportActivities(ctx context.Context, portfolioID uuid.UUID, req api_types.ImportActivitiesRequest) (*api_types.ListActivitiesResponse, error) {
	for i := range req.Activities {
		req.Activities[i].CreatedAt = nil
		req.Activities[i].UpdatedAt = nil
	}
	created, err := r.ActivityService.BulkImport(ctx, portfolioID, req.Activities)
	if err != nil {
		return nil, err
	}
	return &api_types.ListActivitiesResponse{Activities: created}, nil
}
