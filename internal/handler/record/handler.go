package record

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrifarma/advisor-api/internal/handler"
	"github.com/nutrifarma/advisor-api/internal/middleware"
	"github.com/nutrifarma/advisor-api/internal/model"
	"github.com/nutrifarma/advisor-api/internal/refdata"
)

// Handler exposes the batch-save operations on the patient record.
// Validation happens at this boundary; a rejected request never
// touches the record.
type Handler struct {
	consent *middleware.ConsentMiddleware
}

func NewHandler(consent *middleware.ConsentMiddleware) *Handler {
	return &Handler{consent: consent}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	record := r.Group("/record", h.consent.RequireSession())
	{
		record.PUT("/profile", h.SaveProfile)
		record.PUT("/clinical", h.SaveClinical)
		record.PUT("/labs", h.SaveLabs)
		record.PUT("/lifestyle", h.SaveLifestyle)

		record.POST("/medications", h.AddMedication)
		record.DELETE("/medications/:id", h.RemoveMedication)
	}

	reference := r.Group("/reference")
	{
		reference.GET("/labs", h.LabReferences)
		reference.GET("/conditions", h.Conditions)
	}
}

func (h *Handler) SaveProfile(c *gin.Context) {
	var req model.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sess := middleware.SessionFrom(c)
	sess.SaveProfile(req)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sess.View()))
}

func (h *Handler) SaveClinical(c *gin.Context) {
	var req model.SaveClinicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sess := middleware.SessionFrom(c)
	sess.SaveClinical(req)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sess.View()))
}

func (h *Handler) SaveLabs(c *gin.Context) {
	var req model.SaveLabsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	for param, v := range req.Values {
		if v < 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("negative value for "+param))
			return
		}
	}

	sess := middleware.SessionFrom(c)
	sess.SaveLabPanel(req.Values)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sess.View()))
}

func (h *Handler) SaveLifestyle(c *gin.Context) {
	var req model.SaveLifestyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sess := middleware.SessionFrom(c)
	sess.SaveLifestyle(req)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sess.View()))
}

func (h *Handler) AddMedication(c *gin.Context) {
	var req model.AddMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	sess := middleware.SessionFrom(c)
	med := sess.AddMedication(req)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(med))
}

func (h *Handler) RemoveMedication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid medication ID"))
		return
	}

	sess := middleware.SessionFrom(c)
	if !sess.RemoveMedication(id) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("medication not found"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"removed": id}))
}

// LabReferences returns the static reference table, useful for
// rendering the lab form.
func (h *Handler) LabReferences(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(refdata.LabReferenceRanges()))
}

// Conditions returns the enumerated chronic conditions.
func (h *Handler) Conditions(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(refdata.ChronicConditions()))
}
