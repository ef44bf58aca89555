package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

// MaxRangeDays bounds every day-range query parameter.
const MaxRangeDays = 366

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id/stats", h.GetHabitStats)
	r.GET("/stats/today", h.GetToday)
	r.GET("/stats/weekly", h.GetWeeklyStats)
	r.GET("/stats/dashboard", h.GetDashboard)
	r.GET("/notifications/preview", h.GetNotificationPreview)
}

// parseDaysQuery reads an optional positive day count capped at MaxRangeDays.
func parseDaysQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > MaxRangeDays {
		c.JSON(http.StatusBadRequest, errorResponse{Error: name + " must be an integer between 1 and " + strconv.Itoa(MaxRangeDays)})
		return 0, false
	}
	return n, true
}

// GetHabitStats godoc
// @Summary      Statistics of one habit
// @Tags         stats
// @Produce      json
// @Param        id      path      string  true   "Habit ID"
// @Param        date    query     string  false  "Reference day, YYYY-MM-DD"
// @Param        window  query     int     false  "Completion rate window in days"
// @Success      200     {object}  domain.HabitStatistics
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id}/stats [get]
func (h *StatsHandler) GetHabitStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	on, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	window, ok := parseDaysQuery(c, "window")
	if !ok {
		return
	}

	stats, err := h.svc.HabitStats(c.Request.Context(), userID, c.Param("id"), on, window)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetToday godoc
// @Summary      Daily summary across all habits
// @Tags         stats
// @Produce      json
// @Param        date  query     string  false  "Reference day, YYYY-MM-DD"
// @Success      200   {object}  domain.DailySummary
// @Failure      400   {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats/today [get]
func (h *StatsHandler) GetToday(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	on, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), userID, on)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetWeeklyStats godoc
// @Summary      Day-by-day completion trend
// @Description  The range ends at end_date (default today). It starts at start_date when given, otherwise spans days (default 7).
// @Tags         stats
// @Produce      json
// @Param        end_date    query     string  false  "Last day, YYYY-MM-DD"
// @Param        start_date  query     string  false  "First day, YYYY-MM-DD"
// @Param        days        query     int     false  "Number of days"
// @Success      200         {array}   domain.DayRollup
// @Failure      400         {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	days, ok := parseDaysQuery(c, "days")
	if !ok {
		return
	}

	if !start.IsZero() {
		if end.IsZero() {
			end = h.svc.Today()
		}
		if start.After(end) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "start_date cannot be after end_date"})
			return
		}
		days = end.DaysSince(start) + 1
		if days > MaxRangeDays {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "date range too large, max 1 year allowed"})
			return
		}
	}

	trend, err := h.svc.Trend(c.Request.Context(), userID, end, days)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, trend)
}

// GetDashboard godoc
// @Summary      Summary, trend and per-habit statistics in one response
// @Tags         stats
// @Produce      json
// @Param        date  query     string  false  "Reference day, YYYY-MM-DD"
// @Success      200   {object}  domain.Dashboard
// @Failure      400   {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats/dashboard [get]
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	on, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	dash, err := h.svc.Dashboard(c.Request.Context(), userID, on)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

// GetNotificationPreview godoc
// @Summary      Which habits a reminder would mention
// @Tags         notifications
// @Produce      json
// @Param        date  query     string  false  "Reference day, YYYY-MM-DD"
// @Success      200   {object}  domain.NotificationPreview
// @Failure      400   {object}  errorResponse
// @Security     BearerAuth
// @Router       /notifications/preview [get]
func (h *StatsHandler) GetNotificationPreview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	on, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	preview, err := h.svc.Preview(c.Request.Context(), userID, on)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

