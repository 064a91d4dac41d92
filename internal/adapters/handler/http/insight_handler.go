package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/services"
)

type InsightHandler struct {
	svc *services.InsightService
}

func NewInsightHandler(svc *services.InsightService) *InsightHandler {
	return &InsightHandler{svc: svc}
}

type coachRequest struct {
	CompletedHabitIDs []string `json:"completed_habit_ids"`
	Obstacles         string   `json:"obstacles"`
	Mood              string   `json:"mood"`
}

func (h *InsightHandler) RegisterRoutes(r *gin.RouterGroup) {
	insights := r.Group("/insights")
	{
		insights.GET("/daily", h.Daily)
		insights.GET("/motivation", h.Motivation)
		insights.POST("/analysis", h.Analysis)
		insights.POST("/weekly-report", h.WeeklyReport)
		insights.POST("/coach", h.Coach)
	}
}

// respond writes an insight result. Fallback payloads are still a 200: the
// client renders them like any other reply.
func respond[T any](c *gin.Context, insight *domain.Insight[T], err error) {
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, insight)
}

// Daily godoc
// @Summary   Tip, quote and focus for today, cached per day
// @Tags      insights
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} map[string]any
// @Router    /insights/daily [get]
func (h *InsightHandler) Daily(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	insight, err := h.svc.DailyInsight(c.Request.Context(), userID)
	respond(c, insight, err)
}

// Motivation godoc
// @Summary   A short motivational quote
// @Tags      insights
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} map[string]any
// @Router    /insights/motivation [get]
func (h *InsightHandler) Motivation(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	insight, err := h.svc.Motivation(c.Request.Context())
	respond(c, insight, err)
}

// Analysis godoc
// @Summary   Pattern analysis over the full log history
// @Tags      insights
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} map[string]any
// @Failure   400 {object} map[string]string
// @Router    /insights/analysis [post]
func (h *InsightHandler) Analysis(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	insight, err := h.svc.DeepAnalysis(c.Request.Context(), userID)
	respond(c, insight, err)
}

// WeeklyReport godoc
// @Summary   Report over the last seven days
// @Tags      insights
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} map[string]any
// @Failure   400 {object} map[string]string
// @Router    /insights/weekly-report [post]
func (h *InsightHandler) WeeklyReport(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	insight, err := h.svc.WeeklyReport(c.Request.Context(), userID)
	respond(c, insight, err)
}

// Coach godoc
// @Summary   Daily coach check-in, once per day
// @Tags      insights
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body coachRequest true "check-in"
// @Success   200 {object} map[string]any
// @Router    /insights/coach [post]
func (h *InsightHandler) Coach(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req coachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	insight, err := h.svc.CoachCheckIn(c.Request.Context(), userID, domain.CoachInput{
		CompletedHabitIDs: req.CompletedHabitIDs,
		Obstacles:         req.Obstacles,
		Mood:              req.Mood,
	})
	respond(c, insight, err)
}
