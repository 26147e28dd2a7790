package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripnexus/tripnexus/internal/domain/recommend"
	apperrors "github.com/tripnexus/tripnexus/pkg/errors"
)

// Handler wires the HTTP transport to the recommendation service.
type Handler struct {
	recommendSvc recommend.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(recommendSvc recommend.Service, logger *slog.Logger) *Handler {
	return &Handler{
		recommendSvc: recommendSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// Recommendations runs the full scoring pipeline for a travel request.
func (h *Handler) Recommendations(c *gin.Context) {
	var req recommend.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.recommendSvc.GetRecommendations(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, recommendError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// DestinationDetails returns the comprehensive view of one destination.
func (h *Handler) DestinationDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "destination id must be a positive integer", err))
		return
	}

	req := recommend.DetailRequest{
		Month:        queryInt(c, "month", 0),
		Age:          queryInt(c, "age", 0),
		Budget:       queryInt(c, "budget", 0),
		DurationDays: queryInt(c, "duration_days", 0),
		DepartureLat: queryFloat(c, "departure_lat"),
		DepartureLng: queryFloat(c, "departure_lng"),
	}
	if group, ok := recommend.ParseGroupType(c.Query("group_type")); ok {
		req.GroupType = group
	}

	details, err := h.recommendSvc.GetDestinationDetails(c.Request.Context(), id, req)
	if err != nil {
		abortWithError(c, recommendError(err))
		return
	}

	c.JSON(http.StatusOK, details)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func recommendError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "recommendation_failed"
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	case apperrors.IsCode(err, "catalog_error"):
		status = http.StatusBadGateway
		code = "catalog_error"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func queryFloat(c *gin.Context, key string) float64 {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
