package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

// ToggleRecorder observes completion toggles, e.g. for metrics.
type ToggleRecorder interface {
	CompletionToggled(completed bool)
}

type HabitHandler struct {
	svc     *services.HabitService
	toggles ToggleRecorder
}

func NewHabitHandler(svc *services.HabitService, toggles ToggleRecorder) *HabitHandler {
	return &HabitHandler{
		svc:     svc,
		toggles: toggles,
	}
}

type createHabitRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Difficulty  string           `json:"difficulty"`
	TargetValue int              `json:"target_value"`
	Frequency   domain.Frequency `json:"frequency"`
	Weekdays    []int            `json:"weekdays"`
	MonthDays   []int            `json:"month_days"`
	Interval    int              `json:"interval"`
}

type updateHabitRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Difficulty  string           `json:"difficulty"`
	TargetValue int              `json:"target_value"`
	Frequency   domain.Frequency `json:"frequency"`
	Weekdays    []int            `json:"weekdays"`
	MonthDays   []int            `json:"month_days"`
	Interval    int              `json:"interval"`
	CreatedAt   *time.Time       `json:"created_at"`
}

type toggleCompletionRequest struct {
	Date  string `json:"date"`
	Value *int   `json:"value"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/completions/toggle", h.ToggleCompletion)
	}
}

// Create godoc
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        habit  body      createHabitRequest  true  "Habit definition"
// @Success      201    {object}  domain.Habit
// @Failure      400    {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		TargetValue: req.TargetValue,
		Frequency:   req.Frequency,
		Weekdays:    req.Weekdays,
		MonthDays:   req.MonthDays,
		Interval:    req.Interval,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary      List the caller's habits
// @Tags         habits
// @Produce      json
// @Success      200  {array}  domain.Habit
// @Security     BearerAuth
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
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

// Get godoc
// @Summary      Get one habit with its completions
// @Tags         habits
// @Produce      json
// @Param        id   path      string  true  "Habit ID"
// @Success      200  {object}  domain.Habit
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id} [get]
func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Update godoc
// @Summary      Update a habit
// @Description  Omitted fields keep their value. Moving created_at re-anchors custom intervals.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Habit ID"
// @Param        habit  body      updateHabitRequest  true  "Fields to change"
// @Success      200    {object}  domain.Habit
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
		TargetValue: req.TargetValue,
		Frequency:   req.Frequency,
		Weekdays:    req.Weekdays,
		MonthDays:   req.MonthDays,
		Interval:    req.Interval,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Delete godoc
// @Summary      Delete a habit and its completions
// @Tags         habits
// @Param        id  path  string  true  "Habit ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleCompletion godoc
// @Summary      Toggle the completion of one day
// @Description  Removes the completion when present, records it otherwise. The body is optional; date defaults to today.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true   "Habit ID"
// @Param        body  body      toggleCompletionRequest  false  "Day and value"
// @Success      200   {object}  services.ToggleResult
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id}/completions/toggle [post]
func (h *HabitHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req toggleCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.svc.ToggleCompletion(c.Request.Context(), services.ToggleCompletionInput{
		HabitID: c.Param("id"),
		UserID:  userID,
		Date:    req.Date,
		Value:   req.Value,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if h.toggles != nil {
		h.toggles.CompletionToggled(result.Completed)
	}

	c.JSON(http.StatusOK, result)
}
