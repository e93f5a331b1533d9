package handler

import (
	"errors"
	"net/http"

	bookmodel "bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/summary"
	"bookstore-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	service *summary.Service
}

func NewSummaryHandler(svc *summary.Service) *SummaryHandler {
	return &SummaryHandler{service: svc}
}

// GenerateSummary handles POST /books/:id/generate-summary?provider=
func (h *SummaryHandler) GenerateSummary(c *gin.Context) {
	id := c.Param("id")

	result, err := h.service.Generate(c.Request.Context(), id, c.Query("provider"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, summary.ErrUnknownProvider):
		response.ErrorWithDetails(c, http.StatusBadRequest, "UNKNOWN_PROVIDER", err.Error(),
			gin.H{"providers": h.service.Registry().Providers()})
	case errors.Is(err, summary.ErrProviderFailed):
		response.ErrorResponse(c, http.StatusBadGateway, "SUMMARY_FAILED", "failed to generate summary")
	default:
		response.HandleError(c, err, bookmodel.ErrBookNotFound)
	}
}

// ListProviders handles GET /summary/providers
func (h *SummaryHandler) ListProviders(c *gin.Context) {
	r := h.service.Registry()
	c.JSON(http.StatusOK, gin.H{
		"providers": r.Providers(),
		"default":   r.Default(),
	})
}
