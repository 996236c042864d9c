package handler

import (
	"net/http"
	"strings"

	"quantpulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetDataQuality godoc
// @Summary      Screen the historical series of a stock
// @Description  Returns the return-distribution outlier report for the loaded price history
// @Tags         data
// @Produce      json
// @Param        symbol  path  string  true  "Stock symbol (e.g., RELIANCE, TCS)"
// @Success      200  {object}  marketdata.QualityReport
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/data-quality/{symbol} [get]
func (h *Handler) GetDataQuality(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-data-quality")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if len(symbol) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol must be at least 2 characters"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	if h.series == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no historical series loaded"})
		return
	}

	report := h.series.ScreenColumn(domain.SeriesColumn(symbol))
	c.JSON(http.StatusOK, report)
}
