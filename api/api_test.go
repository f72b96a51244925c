package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/domain"
	"folio/internal/queue"
	"folio/internal/resolver"
	"folio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	router     *gin.Engine
	portfolios *service.MockPortfolioService
	activities *service.MockActivityService
	publisher  *queue.MockPublisher
}

func newApiFixture(t *testing.T) apiFixture {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	f := apiFixture{
		portfolios: service.NewMockPortfolioService(ctrl),
		activities: service.NewMockActivityService(ctrl),
		publisher:  queue.NewMockPublisher(ctrl),
	}
	f.router = NewRouter(resolver.NewResolver(f.portfolios, f.activities, f.publisher), nil)
	return f
}

func (f apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestApi_Portfolios(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		f := newApiFixture(t)
		userID := uuid.New()
		portfolioID := uuid.New()

		f.portfolios.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, p domain.Portfolio) (*domain.Portfolio, error) {
				require.Equal(t, userID, p.UserID)
				require.True(t, decimal.RequireFromString("0.6").Equal(p.TargetAllocations["VTI"]))
				p.PortfolioID = portfolioID
				p.CostBasis = domain.CostBasis{}
				return &p, nil
			},
		)

		w := f.do(t, http.MethodPost, "/portfolios", api_types.CreatePortfolioRequest{
			UserID:            userID,
			Currency:          "USD",
			TargetAllocations: map[string]json.Number{"VTI": "0.6"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var out api_types.Portfolio
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, portfolioID, out.PortfolioID)
		require.Equal(t, "USD", out.Currency)
		require.Equal(t, json.Number("0.6"), out.TargetAllocations["VTI"])
		require.Nil(t, out.LatestSnapshot)
	})

	t.Run("invalid currency is a bad request", func(t *testing.T) {
		f := newApiFixture(t)
		f.portfolios.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, folio_errors.ErrInvalidPortfolio)

		w := f.do(t, http.MethodPost, "/portfolios", api_types.CreatePortfolioRequest{UserID: uuid.New(), Currency: "XYZ"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing portfolio", func(t *testing.T) {
		f := newApiFixture(t)
		portfolioID := uuid.New()
		f.portfolios.EXPECT().Get(gomock.Any(), portfolioID).Return(nil, folio_errors.ErrPortfolioNotFound)

		w := f.do(t, http.MethodGet, "/portfolios/"+portfolioID.String(), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		f := newApiFixture(t)
		w := f.do(t, http.MethodGet, "/portfolios/not-a-uuid", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("derived state is rendered in storage form", func(t *testing.T) {
		f := newApiFixture(t)
		portfolioID := uuid.New()
		start := time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)
		latest := domain.EmptySnapshot(start)
		latest.Cash = decimal.RequireFromString("3412.30")
		latest.NumShares["AAPL"] = decimal.NewFromInt(10)

		f.portfolios.EXPECT().Get(gomock.Any(), portfolioID).Return(&domain.Portfolio{
			PortfolioID:         portfolioID,
			Currency:            "USD",
			CostBasis:           domain.CostBasis{"AAPL": decimal.RequireFromString("158.77")},
			ActivitiesStartDate: &start,
			LatestSnapshot:      &latest,
		}, nil)

		w := f.do(t, http.MethodGet, "/portfolios/"+portfolioID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var out api_types.Portfolio
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, json.Number("158.77"), out.CostBasis["AAPL"])
		require.Equal(t, "2019-07-01", *out.ActivitiesStartDate)
		require.Equal(t, json.Number("3412.3"), out.LatestSnapshot.Cash)
		require.Equal(t, json.Number("10"), out.LatestSnapshot.NumShares["AAPL"])
	})

	t.Run("rebuild publishes a full recompute", func(t *testing.T) {
		f := newApiFixture(t)
		portfolioID := uuid.New()
		f.portfolios.EXPECT().Get(gomock.Any(), portfolioID).Return(&domain.Portfolio{PortfolioID: portfolioID}, nil)
		f.publisher.EXPECT().Publish(gomock.Any(), domain.ActivityEvent{PortfolioID: portfolioID}).Return(nil)

		w := f.do(t, http.MethodPost, "/portfolios/"+portfolioID.String()+"/rebuild", nil)
		require.Equal(t, http.StatusAccepted, w.Code)
	})
}

func TestApi_Series(t *testing.T) {
	portfolioID := uuid.New()
	day := func(d int) time.Time { return time.Date(2019, 7, d, 0, 0, 0, 0, time.UTC) }
	s1 := domain.EmptySnapshot(day(1))
	s1.Cash = decimal.NewFromInt(100)
	s1.NumShares["AAPL"] = decimal.NewFromInt(2)
	s2 := domain.EmptySnapshot(day(3))
	s2.Cash = decimal.NewFromInt(40)
	s2.NumShares["AAPL"] = decimal.NewFromInt(5)

	t.Run("daily forward fill", func(t *testing.T) {
		f := newApiFixture(t)
		f.portfolios.EXPECT().GetSnapshots(gomock.Any(), portfolioID).Return([]domain.Snapshot{s1, s2}, nil)

		w := f.do(t, http.MethodGet, "/portfolios/"+portfolioID.String()+"/series?kind=holding&instrument=AAPL&end=2019-07-04", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var out api_types.GetSeriesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, []api_types.SeriesPoint{
			{Date: "2019-07-01", Value: "2"},
			{Date: "2019-07-02", Value: "2"},
			{Date: "2019-07-03", Value: "5"},
			{Date: "2019-07-04", Value: "5"},
		}, out.Points)
	})

	t.Run("holding needs an instrument", func(t *testing.T) {
		f := newApiFixture(t)
		w := f.do(t, http.MethodGet, "/portfolios/"+portfolioID.String()+"/series?kind=holding", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		f := newApiFixture(t)
		f.portfolios.EXPECT().GetSnapshots(gomock.Any(), portfolioID).Return([]domain.Snapshot{s1}, nil)
		w := f.do(t, http.MethodGet, "/portfolios/"+portfolioID.String()+"/series?kind=value&end=2019-07-02", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty history", func(t *testing.T) {
		f := newApiFixture(t)
		f.portfolios.EXPECT().GetSnapshots(gomock.Any(), portfolioID).Return([]domain.Snapshot{}, nil)
		w := f.do(t, http.MethodGet, "/portfolios/"+portfolioID.String()+"/series?kind=cash", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var out api_types.GetSeriesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Empty(t, out.Points)
	})
}

func TestApi_Activities(t *testing.T) {
	portfolioID := uuid.New()
	amount := json.Number("5000")
	deposit := domain.StoredActivity{Type: domain.ActivityType_Deposit, Date: "2019-07-01", Amount: &amount}

	t.Run("create", func(t *testing.T) {
		f := newApiFixture(t)
		created := deposit
		created.ID = uuid.New()
		f.activities.EXPECT().Create(gomock.Any(), portfolioID, deposit).Return(&created, nil)

		w := f.do(t, http.MethodPost, "/portfolios/"+portfolioID.String()+"/activities", deposit)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var out domain.StoredActivity
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, created.ID, out.ID)
	})

	t.Run("invalid activity", func(t *testing.T) {
		f := newApiFixture(t)
		f.activities.EXPECT().Create(gomock.Any(), portfolioID, gomock.Any()).Return(nil, folio_errors.ErrInvalidActivity)

		w := f.do(t, http.MethodPost, "/portfolios/"+portfolioID.String()+"/activities", domain.StoredActivity{Type: "transfer"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update takes the id from the path", func(t *testing.T) {
		f := newApiFixture(t)
		activityID := uuid.New()
		expected := deposit
		expected.ID = activityID
		f.activities.EXPECT().Update(gomock.Any(), portfolioID, expected).Return(&expected, nil)

		w := f.do(t, http.MethodPut, "/portfolios/"+portfolioID.String()+"/activities/"+activityID.String(), deposit)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("update with mismatched id", func(t *testing.T) {
		f := newApiFixture(t)
		body := deposit
		body.ID = uuid.New()

		w := f.do(t, http.MethodPut, "/portfolios/"+portfolioID.String()+"/activities/"+uuid.NewString(), body)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		f := newApiFixture(t)
		activityID := uuid.New()
		f.activities.EXPECT().Delete(gomock.Any(), portfolioID, activityID).Return(folio_errors.ErrConcurrentModification)

		w := f.do(t, http.MethodDelete, "/portfolios/"+portfolioID.String()+"/activities/"+activityID.String(), nil)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		f := newApiFixture(t)
		activityID := uuid.New()
		f.activities.EXPECT().Delete(gomock.Any(), portfolioID, activityID).Return(nil)

		w := f.do(t, http.MethodDelete, "/portfolios/"+portfolioID.String()+"/activities/"+activityID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("import", func(t *testing.T) {
		f := newApiFixture(t)
		f.activities.EXPECT().BulkImport(gomock.Any(), portfolioID, []domain.StoredActivity{deposit, deposit}).
			Return([]domain.StoredActivity{deposit, deposit}, nil)

		w := f.do(t, http.MethodPost, "/portfolios/"+portfolioID.String()+"/activities/import", api_types.ImportActivitiesRequest{
			Activities: []domain.StoredActivity{deposit, deposit},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var out api_types.ListActivitiesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out.Activities, 2)
	})
}
