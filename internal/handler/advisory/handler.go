package advisory

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrifarma/advisor-api/internal/advisory"
	"github.com/nutrifarma/advisor-api/internal/handler"
	"github.com/nutrifarma/advisor-api/internal/middleware"
	"github.com/nutrifarma/advisor-api/internal/prompt"
	"github.com/nutrifarma/advisor-api/internal/registry"
)

// Completer is the advisory endpoint seam, satisfied by
// advisory.Client.
type Completer interface {
	Complete(ctx context.Context, promptText string) advisory.Result
}

// Searcher is the registry lookup seam, satisfied by registry.Client.
type Searcher interface {
	Lookup(ctx context.Context, drugName string) (*registry.Result, bool)
}

// Handler drives the four advisory flows and the drug lookup.
type Handler struct {
	consent   *middleware.ConsentMiddleware
	completer Completer
	searcher  Searcher
}

func NewHandler(consent *middleware.ConsentMiddleware, completer Completer, searcher Searcher) *Handler {
	return &Handler{consent: consent, completer: completer, searcher: searcher}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	advice := r.Group("/advice", h.consent.RequireSession())
	{
		advice.POST("/query", h.flow(prompt.FlowQuery, true))
		advice.POST("/report", h.flow(prompt.FlowReport, false))
		advice.POST("/coaching", h.flow(prompt.FlowCoaching, false))
		advice.POST("/guidelines", h.flow(prompt.FlowGuidelines, false))
	}

	r.GET("/registry/medicines", h.consent.RequireSession(), h.LookupMedicine)
}

type adviceRequest struct {
	Question string `json:"question"`
}

type adviceResponse struct {
	Flow        prompt.Flow     `json:"flow"`
	Result      advisory.Result `json:"result"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// flow builds the prompt for one template and forwards it. An upstream
// failure still answers 200: the failure variant is part of the body,
// the session never sees a 5xx for it.
func (h *Handler) flow(f prompt.Flow, takesQuestion bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adviceRequest
		if err := c.ShouldBindJSON(&req); err != nil && takesQuestion {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		if takesQuestion && req.Question == "" {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("question is required"))
			return
		}

		sess := middleware.SessionFrom(c)
		promptText := prompt.Build(f, sess.Snapshot(), req.Question)
		result := h.completer.Complete(c.Request.Context(), promptText)

		c.JSON(http.StatusOK, handler.NewSuccessResponse(adviceResponse{
			Flow:        f,
			Result:      result,
			GeneratedAt: time.Now(),
		}))
	}
}

type lookupResponse struct {
	Found  bool             `json:"found"`
	Result *registry.Result `json:"result,omitempty"`
}

// LookupMedicine queries the drug registry; not-found is a normal
// answer, never an error.
func (h *Handler) LookupMedicine(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("name query parameter is required"))
		return
	}

	res, found := h.searcher.Lookup(c.Request.Context(), name)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lookupResponse{
		Found:  found,
		Result: res,
	}))
}
