package delivery

import (
	"context"
	"errors"
	"net/http"

	"trackerdash/internal/domain"
	"trackerdash/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DashboardReader runs pipeline operations over a tracker's records
type DashboardReader interface {
	Overview(ctx context.Context, trackerID string, filter domain.Filter, previous domain.PreviousPeriod) (*domain.MetricsData, error)
	InstallStats(ctx context.Context, trackerID string, filter domain.Filter) (*domain.InstallStats, error)
	SubscriptionStats(ctx context.Context, trackerID string, filter domain.Filter) (*domain.SubscriptionStats, error)
	Trend(ctx context.Context, trackerID string, filter domain.Filter) ([]domain.ChartDataPoint, error)
	Ranking(ctx context.Context, trackerID string, filter domain.Filter, rankingType domain.RankingType, limit int) ([]domain.RankingItem, error)
	Distribution(ctx context.Context, trackerID string, filter domain.Filter, kind domain.DistributionKind) ([]domain.DistributionItem, error)
}

type SnapshotRefresher interface {
	Refresh(ctx context.Context, trackerID string) (*domain.Snapshot, error)
	RefreshAll(ctx context.Context) (*domain.RefreshReport, error)
	Invalidate(ctx context.Context, trackerID string) error
}

type LinksManager interface {
	ListApps(ctx context.Context) ([]domain.App, error)
	List(ctx context.Context, trackerID string) ([]domain.TrackingLink, error)
	Create(ctx context.Context, trackerID string, req domain.CreateTrackingLinkRequest) (*domain.TrackingLink, error)
	Update(ctx context.Context, linkID string, req domain.UpdateTrackingLinkRequest) (*domain.TrackingLink, error)
	Delete(ctx context.Context, linkID string) error
}

// handles HTTP requests
type HTTPHandlers struct {
	dashboard DashboardReader
	snapshots SnapshotRefresher
	links     LinksManager
	logger    *logger.Logger
	filters   *FilterBinder
}

// creates new HTTP handlers
func NewHTTPHandlers(
	dashboard DashboardReader,
	snapshots SnapshotRefresher,
	links LinksManager,
	logger *logger.Logger,
	filters *FilterBinder,
) *HTTPHandlers {
	return &HTTPHandlers{
		dashboard: dashboard,
		snapshots: snapshots,
		links:     links,
		logger:    logger,
		filters:   filters,
	}
}

func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "trackerdash",
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	filterParams := gin.H{
		"time_range": "Optional: all times, today, 7d, 30d (default), 90d or custom",
		"platform":   "Optional: all (default), ios or android",
		"group_by":   "Optional: day (default), week or month",
		"start_date": "Optional: inclusive start (YYYY-MM-DD), requires end_date",
		"end_date":   "Optional: inclusive end (YYYY-MM-DD), requires start_date",
	}

	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "trackerdash",
		"version":     "1.0.0",
		"description": "Install and subscription analytics for app trackers",
		"endpoints": gin.H{
			"trackers": gin.H{
				"path":        "/api/v1/trackers",
				"description": "List tracked apps",
			},
			"refresh": gin.H{
				"paths":       []string{"/api/v1/refresh", "/api/v1/trackers/{trackerID}/refresh"},
				"description": "Re-fetch records from the backend",
				"methods":     []string{"POST"},
			},
			"snapshot": gin.H{
				"path":        "/api/v1/trackers/{trackerID}/snapshot",
				"description": "Drop the cached records of a tracker",
				"methods":     []string{"DELETE"},
			},
			"overview": gin.H{
				"path":        "/api/v1/trackers/{trackerID}/overview",
				"description": "Totals, conversion rate and change against a previous period",
				"parameters": gin.H{
					"filters":                filterParams,
					"previous_installs":      "Optional: install count of the previous period",
					"previous_subscriptions": "Optional: subscription count of the previous period",
					"previous_revenue":       "Optional: revenue of the previous period",
				},
			},
			"stats": gin.H{
				"paths":      []string{"/api/v1/trackers/{trackerID}/installs/stats", "/api/v1/trackers/{trackerID}/subscriptions/stats"},
				"parameters": filterParams,
			},
			"trend": gin.H{
				"path":       "/api/v1/trackers/{trackerID}/trend",
				"parameters": filterParams,
				"example":    "/api/v1/trackers/abc/trend?time_range=90d&group_by=week",
			},
			"rankings": gin.H{
				"path":  "/api/v1/trackers/{trackerID}/rankings/{type}",
				"types": []domain.RankingType{domain.RankingCountry, domain.RankingDevice, domain.RankingProduct, domain.RankingVersion, domain.RankingOSVersion},
				"parameters": gin.H{
					"filters": filterParams,
					"limit":   "Optional: number of entries (default: 5)",
				},
			},
			"distributions": gin.H{
				"path":       "/api/v1/trackers/{trackerID}/distributions/{kind}",
				"kinds":      []domain.DistributionKind{domain.DistributionPlatform, domain.DistributionRevenue, domain.DistributionAppVersion, domain.DistributionOSVersion},
				"parameters": filterParams,
			},
			"links": gin.H{
				"paths":   []string{"/api/v1/trackers/{trackerID}/links", "/api/v1/links/{linkID}"},
				"methods": []string{"GET", "POST", "PATCH", "DELETE"},
			},
		},
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) ListTrackers(c *gin.Context) {
	apps, err := h.links.ListApps(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list trackers")
		return
	}
	h.respond(c, http.StatusOK, apps)
}

func (h *HTTPHandlers) RefreshAll(c *gin.Context) {
	report, err := h.snapshots.RefreshAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Refresh failed")
		return
	}
	h.respond(c, http.StatusOK, report)
}

func (h *HTTPHandlers) RefreshTracker(c *gin.Context) {
	snapshot, err := h.snapshots.Refresh(c.Request.Context(), c.Param("trackerID"))
	if err != nil {
		h.respondError(c, err, "Refresh failed")
		return
	}
	h.respond(c, http.StatusOK, gin.H{
		"tracker_id":    snapshot.TrackerID,
		"installs":      len(snapshot.Installs),
		"subscriptions": len(snapshot.Subscriptions),
		"fetched_at":    snapshot.FetchedAt,
	})
}

// InvalidateSnapshot drops the cached records; the next read refetches them
func (h *HTTPHandlers) InvalidateSnapshot(c *gin.Context) {
	if err := h.snapshots.Invalidate(c.Request.Context(), c.Param("trackerID")); err != nil {
		h.respondError(c, err, "Failed to drop snapshot")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandlers) respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"data":       data,
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "Invalid parameters",
		"message":    message,
		"request_id": c.GetString("request_id"),
	})
}

// respondError maps domain and backend errors to a status code
func (h *HTTPHandlers) respondError(c *gin.Context, err error, summary string) {
	status := http.StatusInternalServerError
	var apiErr *domain.APIError

	switch {
	case errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrUnknownRankingType),
		errors.Is(err, domain.ErrUnknownDistribution),
		errors.Is(err, domain.ErrEmptyUpdate),
		errors.Is(err, domain.ErrInvalidLink):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			status = http.StatusNotFound
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			status = http.StatusBadRequest
		default:
			status = http.StatusBadGateway
		}
	}

	log := h.logger.WithContext(c.Request.Context()).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		log.Error(summary)
	} else {
		log.Warn(summary)
	}
	_ = c.Error(err)

	c.JSON(status, gin.H{
		"error":      summary,
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}
