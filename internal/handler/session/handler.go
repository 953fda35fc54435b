package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrifarma/advisor-api/internal/handler"
	"github.com/nutrifarma/advisor-api/internal/middleware"
	"github.com/nutrifarma/advisor-api/internal/session"
	"github.com/nutrifarma/advisor-api/pkg/token"
)

// ConsentNotice is shown to the user before any data is collected; the
// session only opens once it is affirmatively accepted.
const ConsentNotice = "Esta herramienta ASISTE al criterio del farmacéutico, NO lo sustituye. " +
	"La responsabilidad última del consejo recae en el profesional. " +
	"NO es un diagnóstico ni un tratamiento médico. " +
	"Los datos introducidos se mantienen solo en memoria durante la sesión y se " +
	"descartan al finalizarla."

type Handler struct {
	sessions *session.Store
	tokens   *token.Service
	consent  *middleware.ConsentMiddleware
}

func NewHandler(sessions *session.Store, tokens *token.Service, consent *middleware.ConsentMiddleware) *Handler {
	return &Handler{sessions: sessions, tokens: tokens, consent: consent}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/session")
	{
		sessions.GET("/notice", h.Notice)
		sessions.POST("/consent", h.Consent)
		sessions.POST("/reset", h.consent.RequireSession(), h.Reset)
		sessions.GET("/record", h.consent.RequireSession(), h.Record)
	}
}

type consentRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// Notice returns the data-handling notice the user must acknowledge.
func (h *Handler) Notice(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"notice": ConsentNotice}))
}

// Consent is the only way to open a session. Declining halts the
// session entirely: no token, no data exchange.
func (h *Handler) Consent(c *gin.Context) {
	var req consentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if !*req.Accepted {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("consent declined: session not started"))
		return
	}

	sess := h.sessions.Create()
	signed, err := h.tokens.Issue(sess.ID)
	if err != nil {
		h.sessions.Delete(sess.ID)
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to open session"))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"session_id": sess.ID,
		"token":      signed,
	}))
}

// Reset clears the patient record and both logs back to empty.
func (h *Handler) Reset(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	sess.Reset()
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"reset": true}))
}

// Record returns the derived view of the current record.
func (h *Handler) Record(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sess.View()))
}
