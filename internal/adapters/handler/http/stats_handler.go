package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitquest/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/chart", h.Chart)
		stats.GET("/calendar", h.Calendar)
		stats.GET("/history", h.History)
		stats.GET("/habits", h.Rates)
	}
}

// Chart godoc
// @Summary   Completion counts, 7 daily or 12 monthly buckets
// @Tags      stats
// @Security  BearerAuth
// @Produce   json
// @Param     granularity query string false "daily or monthly"
// @Param     date        query string false "reference day, YYYY-MM-DD"
// @Success   200 {array} domain.Bucket
// @Failure   400 {object} map[string]string
// @Router    /stats/chart [get]
func (h *StatsHandler) Chart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	buckets, err := h.svc.Chart(c.Request.Context(), userID, c.Query("granularity"), c.Query("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, buckets)
}

// Calendar godoc
// @Summary   Month grid with completed, missed and future flags
// @Tags      stats
// @Security  BearerAuth
// @Produce   json
// @Param     date query string false "any day of the month, YYYY-MM-DD"
// @Success   200 {object} domain.CalendarMonth
// @Router    /stats/calendar [get]
func (h *StatsHandler) Calendar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	month, err := h.svc.Calendar(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, month)
}

// History godoc
// @Summary   14-day completion strip per habit
// @Tags      stats
// @Security  BearerAuth
// @Produce   json
// @Param     date query string false "last day of the strip, YYYY-MM-DD"
// @Success   200 {array} domain.HabitHistory
// @Router    /stats/history [get]
func (h *StatsHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	history, err := h.svc.History(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Rates godoc
// @Summary   Completion rate per habit
// @Tags      stats
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.HabitRate
// @Router    /stats/habits [get]
func (h *StatsHandler) Rates(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rates, err := h.svc.Rates(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rates)
}
