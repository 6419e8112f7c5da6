package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mssp/backend/internal/application/metrics"
)

// MetricsHandler handles SLA metric and ticket summary HTTP requests
type MetricsHandler struct {
	BaseHandler
	metricsService *metrics.MetricsService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metricsService *metrics.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		metricsService: metricsService,
	}
}

// RecordSLAMetric records or overwrites one SLA measurement
func (h *MetricsHandler) RecordSLAMetric(c *gin.Context) {
	var req metrics.RecordSLAMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.metricsService.RecordSLAMetric(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListSLAMetrics returns a client's SLA measurements, optionally period-bounded
func (h *MetricsHandler) ListSLAMetrics(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var filter metrics.MetricsRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	results, err := h.metricsService.ListSLAMetrics(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// DeleteSLAMetric removes one SLA measurement
func (h *MetricsHandler) DeleteSLAMetric(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid metric ID")
		return
	}

	if err := h.metricsService.DeleteSLAMetric(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordTicketSummary records or overwrites one month's ticket volume
func (h *MetricsHandler) RecordTicketSummary(c *gin.Context) {
	var req metrics.RecordTicketSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.metricsService.RecordTicketSummary(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListTicketSummaries returns a client's monthly ticket summaries
func (h *MetricsHandler) ListTicketSummaries(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var filter metrics.MetricsRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	results, err := h.metricsService.ListTicketSummaries(c.Request.Context(), clientID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Dashboard returns the cross-client rollup for one calendar month
func (h *MetricsHandler) Dashboard(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		h.BadRequest(c, "Query parameter 'period' is required")
		return
	}

	resp, err := h.metricsService.Dashboard(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteTicketSummary removes one ticket summary
func (h *MetricsHandler) DeleteTicketSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid summary ID")
		return
	}

	if err := h.metricsService.DeleteTicketSummary(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
