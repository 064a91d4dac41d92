package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitquest/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name          string `json:"name" binding:"required"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	PreferredTime string `json:"preferred_time"`
	Description   string `json:"description"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary   Create a habit
// @Tags      habits
// @Security  BearerAuth
// @Accept    json
// @Produce   json
// @Param     body body createHabitRequest true "habit"
// @Success   201 {object} services.CreateHabitResult
// @Failure   400 {object} map[string]string
// @Router    /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:        userID,
		Name:          req.Name,
		Color:         req.Color,
		Icon:          req.Icon,
		PreferredTime: req.PreferredTime,
		Description:   req.Description,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List godoc
// @Summary   List habits in creation order
// @Tags      habits
// @Security  BearerAuth
// @Produce   json
// @Success   200 {array} domain.Habit
// @Router    /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete godoc
// @Summary   Delete a habit and its logs
// @Tags      habits
// @Security  BearerAuth
// @Param     id path string true "habit id"
// @Success   204
// @Failure   404 {object} map[string]string
// @Router    /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
