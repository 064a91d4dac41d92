package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/services"
)

// ProgressHandler serves logs, the progress summary and the achievement list.
type ProgressHandler struct {
	svc *services.ProgressService
}

func NewProgressHandler(svc *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

type toggleRequest struct {
	HabitID string `json:"habit_id" binding:"required"`
	// Date defaults to today in the configured timezone.
	Date string `json:"date"`
}

type achievementsResponse struct {
	Achievements []domain.Achievement `json:"achievements"`
	Unlocked     int                  `json:"unlocked"`
	Total        int                  `json:"total"`
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/logs")
	{
		logs.POST("/toggle", h.Toggle)
		logs.GET("", h.ListLogs)
	}
	router.GET("/progress", h.Progress)
	router.GET("/achievements", h.Achievements)
}

// Toggle godoc
// @Summary   Flip the completion of a habit on a date
// @Tags      logs
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body toggleRequest true "habit and date"
// @Success   200 {object} domain.ToggleResult
// @Failure   400 {object} map[string]string
// @Failure   404 {object} map[string]string
// @Router    /logs/toggle [post]
func (h *ProgressHandler) Toggle(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Toggle(c.Request.Context(), userID, req.HabitID, req.Date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListLogs godoc
// @Summary   All habit logs of the user
// @Tags      logs
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.HabitLog
// @Router    /logs [get]
func (h *ProgressHandler) ListLogs(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	logs, err := h.svc.Logs(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// Progress godoc
// @Summary   XP, level, streaks and unlock count
// @Tags      progress
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} domain.Progress
// @Router    /progress [get]
func (h *ProgressHandler) Progress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.svc.Progress(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Achievements godoc
// @Summary   Achievement catalog with unlock state
// @Tags      progress
// @Security  BearerAuth
// @Produce   json
// @Success   200 {object} achievementsResponse
// @Router    /achievements [get]
func (h *ProgressHandler) Achievements(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, unlocked, err := h.svc.Achievements(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, achievementsResponse{
		Achievements: list,
		Unlocked:     unlocked,
		Total:        len(list),
	})
}
