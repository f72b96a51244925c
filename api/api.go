package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/domain"
	"folio/internal/logging"
	"folio/internal/resolver"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phuslu/log"
)

type ApiHandler struct {
	Resolver resolver.Resolver
	Logger   *log.Logger
}

func StartApi(port int, r resolver.Resolver, logger *log.Logger) error {
	router := NewRouter(r, logger)
	return router.Run(fmt.Sprintf(":%d", port))
}

func NewRouter(r resolver.Resolver, logger *log.Logger) *gin.Engine {
	h := ApiHandler{Resolver: r, Logger: logging.OrSilent(logger)}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.logRequests)
	router.Use(cors.Default())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to folio"})
	})

	router.POST("/portfolios", h.createPortfolio)
	router.GET("/users/:userId/portfolios", h.listPortfolios)
	router.GET("/portfolios/:portfolioId", h.getPortfolio)
	router.GET("/portfolios/:portfolioId/snapshots", h.getSnapshots)
	router.GET("/portfolios/:portfolioId/series", h.getSeries)
	router.GET("/portfolios/:portfolioId/summary", h.getSummary)
	router.POST("/portfolios/:portfolioId/rebuild", h.requestRebuild)

	router.GET("/portfolios/:portfolioId/activities", h.listActivities)
	router.POST("/portfolios/:portfolioId/activities", h.createActivity)
	router.POST("/portfolios/:portfolioId/activities/import", h.importActivities)
	router.PUT("/portfolios/:portfolioId/activities/:activityId", h.updateActivity)
	router.DELETE("/portfolios/:portfolioId/activities/:activityId", h.deleteActivity)

	return router
}

func (h ApiHandler) createPortfolio(c *gin.Context) {
	var req api_types.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	out, err := h.Resolver.CreatePortfolio(c, req)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h ApiHandler) listPortfolios(c *gin.Context) {
	userID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}
	out, err := h.Resolver.ListPortfolios(c, userID)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) getPortfolio(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	out, err := h.Resolver.GetPortfolio(c, portfolioID)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) getSnapshots(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	out, err := h.Resolver.GetSnapshots(c, portfolioID)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) getSeries(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	var req api_types.GetSeriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.returnErrorJsonCode(fmt.Errorf("failed to read query: %w", err), c, http.StatusBadRequest)
		return
	}
	out, err := h.Resolver.GetSeries(c, portfolioID, req)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) getSummary(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	out, err := h.Resolver.GetSummary(c, portfolioID, c.Query("asOf"))
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) requestRebuild(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	if err := h.Resolver.RequestRebuild(c, portfolioID); err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"rebuild": "requested"})
}

func (h ApiHandler) listActivities(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	out, err := h.Resolver.ListActivities(c, portfolioID)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) createActivity(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	var req domain.StoredActivity
	if err := c.ShouldBindJSON(&req); err != nil {
		h.returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	out, err := h.Resolver.CreateActivity(c, portfolioID, req)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h ApiHandler) importActivities(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	var req api_types.ImportActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	out, err := h.Resolver.ImportActivities(c, portfolioID, req)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h ApiHandler) updateActivity(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	activityID, ok := h.uuidParam(c, "activityId")
	if !ok {
		return
	}
	var req domain.StoredActivity
	if err := c.ShouldBindJSON(&req); err != nil {
		h.returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}
	if req.ID != uuid.Nil && req.ID != activityID {
		h.returnErrorJsonCode(fmt.Errorf("%w: body id does not match path", folio_errors.ErrInvalidRequest), c, http.StatusBadRequest)
		return
	}
	req.ID = activityID

	out, err := h.Resolver.UpdateActivity(c, portfolioID, req)
	if err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h ApiHandler) deleteActivity(c *gin.Context) {
	portfolioID, ok := h.uuidParam(c, "portfolioId")
	if !ok {
		return
	}
	activityID, ok := h.uuidParam(c, "activityId")
	if !ok {
		return
	}
	if err := h.Resolver.DeleteActivity(c, portfolioID, activityID); err != nil {
		h.returnErrorJson(err, c)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ApiHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.returnErrorJsonCode(fmt.Errorf("invalid %s: %w", name, err), c, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, folio_errors.ErrPortfolioNotFound),
		errors.Is(err, folio_errors.ErrActivityNotFound),
		errors.Is(err, folio_errors.ErrStockNotFound):
		return http.StatusNotFound
	case errors.Is(err, folio_errors.ErrInvalidActivity),
		errors.Is(err, folio_errors.ErrInvalidPortfolio),
		errors.Is(err, folio_errors.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, folio_errors.ErrConcurrentModification):
		return http.StatusConflict
	}
	var priceErr folio_errors.ErrPriceUnavailable
	if errors.As(err, &priceErr) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h ApiHandler) returnErrorJson(err error, c *gin.Context) {
	h.returnErrorJsonCode(err, c, statusFor(err))
}

func (h ApiHandler) returnErrorJsonCode(err error, c *gin.Context, code int) {
	ev := h.Logger.Info()
	if code >= http.StatusInternalServerError {
		ev = h.Logger.Error()
	}
	ev.Str("path", c.FullPath()).Int("status", code).Err(err).Msg("request failed")
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (h ApiHandler) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.Logger.Debug().
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Msg("request")
}
