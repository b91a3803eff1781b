package delivery

import (
	"net/http"

	"trackerdash/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandlers) GetOverview(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	previous, err := bindPrevious(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	overview, err := h.dashboard.Overview(c.Request.Context(), c.Param("trackerID"), filter, previous)
	if err != nil {
		h.respondError(c, err, "Failed to compute overview")
		return
	}
	h.respondFiltered(c, overview, filter)
}

func (h *HTTPHandlers) GetInstallStats(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.InstallStats(c.Request.Context(), c.Param("trackerID"), filter)
	if err != nil {
		h.respondError(c, err, "Failed to compute install stats")
		return
	}
	h.respondFiltered(c, stats, filter)
}

func (h *HTTPHandlers) GetSubscriptionStats(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.SubscriptionStats(c.Request.Context(), c.Param("trackerID"), filter)
	if err != nil {
		h.respondError(c, err, "Failed to compute subscription stats")
		return
	}
	h.respondFiltered(c, stats, filter)
}

func (h *HTTPHandlers) GetTrend(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	points, err := h.dashboard.Trend(c.Request.Context(), c.Param("trackerID"), filter)
	if err != nil {
		h.respondError(c, err, "Failed to compute trend")
		return
	}
	h.respondFiltered(c, points, filter)
}

func (h *HTTPHandlers) GetRanking(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	var q rankingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	items, err := h.dashboard.Ranking(c.Request.Context(), c.Param("trackerID"), filter, domain.RankingType(c.Param("type")), q.Limit)
	if err != nil {
		h.respondError(c, err, "Failed to compute ranking")
		return
	}
	h.respondFiltered(c, items, filter)
}

func (h *HTTPHandlers) GetDistribution(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	items, err := h.dashboard.Distribution(c.Request.Context(), c.Param("trackerID"), filter, domain.DistributionKind(c.Param("kind")))
	if err != nil {
		h.respondError(c, err, "Failed to compute distribution")
		return
	}
	h.respondFiltered(c, items, filter)
}

func (h *HTTPHandlers) bindFilter(c *gin.Context) (domain.Filter, bool) {
	filter, err := h.filters.Bind(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return domain.Filter{}, false
	}
	return filter, true
}

// respondFiltered echoes the applied filter next to the data
func (h *HTTPHandlers) respondFiltered(c *gin.Context, data any, filter domain.Filter) {
	c.JSON(http.StatusOK, gin.H{
		"data":       data,
		"filter":     filter,
		"request_id": c.GetString("request_id"),
	})
}
