package logbook

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrifarma/advisor-api/internal/export"
	"github.com/nutrifarma/advisor-api/internal/handler"
	"github.com/nutrifarma/advisor-api/internal/middleware"
	"github.com/nutrifarma/advisor-api/internal/model"
	"github.com/nutrifarma/advisor-api/internal/session"
)

// Handler exposes the food and activity logs plus their CSV exports.
type Handler struct {
	consent *middleware.ConsentMiddleware
	now     func() time.Time
}

func NewHandler(consent *middleware.ConsentMiddleware) *Handler {
	return &Handler{consent: consent, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	logbook := r.Group("/logbook", h.consent.RequireSession())
	{
		logbook.GET("/food", h.ListFood)
		logbook.POST("/food", h.AddFood)
		logbook.DELETE("/food/:id", h.RemoveFood)
		logbook.GET("/food/export", h.ExportFood)

		logbook.GET("/activity", h.ListActivity)
		logbook.POST("/activity", h.AddActivity)
		logbook.DELETE("/activity/:id", h.RemoveActivity)
		logbook.GET("/activity/export", h.ExportActivity)
	}
}

func (h *Handler) ListFood(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	days := session.GroupFoodByDate(sess.Snapshot().FoodLog)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(days))
}

func (h *Handler) AddFood(c *gin.Context) {
	var req model.AddFoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sess := middleware.SessionFrom(c)
	entry := sess.AddFoodEntry(req)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entry))
}

func (h *Handler) RemoveFood(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid entry ID"))
		return
	}

	sess := middleware.SessionFrom(c)
	if !sess.RemoveFoodEntry(id) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("food entry not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"removed": id}))
}

// ExportFood streams the food log as a CSV attachment; an empty log
// yields 204 and no file.
func (h *Handler) ExportFood(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	file, err := export.FoodLogCSV(sess.Snapshot().FoodLog, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	writeCSV(c, file)
}

func (h *Handler) ListActivity(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	days := session.GroupActivityByDate(sess.Snapshot().ActivityLog)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(days))
}

func (h *Handler) AddActivity(c *gin.Context) {
	var req model.AddActivityEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sess := middleware.SessionFrom(c)
	entry := sess.AddActivityEntry(req)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entry))
}

func (h *Handler) RemoveActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid entry ID"))
		return
	}

	sess := middleware.SessionFrom(c)
	if !sess.RemoveActivityEntry(id) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("activity entry not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"removed": id}))
}

func (h *Handler) ExportActivity(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	file, err := export.ActivityLogCSV(sess.Snapshot().ActivityLog, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	writeCSV(c, file)
}

func writeCSV(c *gin.Context, file *export.File) {
	if file == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", file.Content)
}
