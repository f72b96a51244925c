package resolver

import (
	"context"
	"time"

	api_types "folio/api-types"
	"folio/internal/domain"
	"folio/internal/queue"
	"folio/internal/service"

	"github.com/google/uuid"
)

type Resolver interface {
	// portfolio endpoints
	CreatePortfolio(ctx context.Context, req api_types.CreatePortfolioRequest) (*api_types.Portfolio, error)
	GetPortfolio(ctx context.Context, portfolioID uuid.UUID) (*api_types.Portfolio, error)
	ListPortfolios(ctx context.Context, userID uuid.UUID) (*api_types.ListPortfoliosResponse, error)
	GetSnapshots(ctx context.Context, portfolioID uuid.UUID) (*api_types.GetSnapshotsResponse, error)
	GetSeries(ctx context.Context, portfolioID uuid.UUID, req api_types.GetSeriesRequest) (*api_types.GetSeriesResponse, error)
	GetSummary(ctx context.Context, portfolioID uuid.UUID, asOf string) (*api_types.GetSummaryResponse, error)
	RequestRebuild(ctx context.Context, portfolioID uuid.UUID) error

	// activity endpoints
	ListActivities(ctx context.Context, portfolioID uuid.UUID) (*api_types.ListActivitiesResponse, error)
	CreateActivity(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error)
	UpdateActivity(ctx context.Context, portfolioID uuid.UUID, activity domain.StoredActivity) (*domain.StoredActivity, error)
	DeleteActivity(ctx context.Context, portfolioID, activityID uuid.UUID) error
	ImportActivities(ctx context.Context, portfolioID uuid.UUID, req api_types.ImportActivitiesRequest) (*api_types.ListActivitiesResponse, error)
}

type resolverHandler struct {
	PortfolioService service.PortfolioService
	ActivityService  service.ActivityService
	Publisher        queue.Publisher

	now func() time.Time
}

func NewResolver(
	portfolioService service.PortfolioService,
	activityService service.ActivityService,
	publisher queue.Publisher,
) Resolver {
	return resolverHandler{
		PortfolioService: portfolioService,
		ActivityService:  activityService,
		Publisher:        publisher,
		now:              time.Now,
	}
}

func (r resolverHandler) today() time.Time {
	if r.now == nil {
		return domain.Day(time.Now().UTC())
	}
	return domain.Day(r.now().UTC())
}
