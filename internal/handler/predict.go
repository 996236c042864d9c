package handler

import (
	"net/http"
	"strconv"
	"strings"

	"quantpulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type predictRequest struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	SimulateShock bool    `json:"shock_simulation"`
}

// EnsemblePredict godoc
// @Summary      Run the ensemble prediction for a stock
// @Description  Fuses the quant forecast, topology risk adjustment, and news sentiment into one weighted prediction
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        request  body  predictRequest  true  "Prediction request"
// @Success      200  {object}  domain.EnsembleResult
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/ensemble-predict [post]
func (h *Handler) EnsemblePredict(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.ensemble-predict")
	defer span.End()

	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if len(symbol) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol must be at least 2 characters"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	result, err := h.predictions.Predict(ctx, symbol, req.CurrentPrice, req.SimulateShock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// EnsemblePredictBySymbol godoc
// @Summary      Run the ensemble prediction for a stock by path symbol
// @Description  GET variant of the ensemble prediction; price and shock flag come from query parameters
// @Tags         predictions
// @Produce      json
// @Param        symbol         path   string   true   "Stock symbol (e.g., RELIANCE, TCS)"
// @Param        current_price  query  number   false  "Override the resolved price"
// @Param        shock_simulation query  boolean  false  "Apply the market shock scenario"  default(false)
// @Success      200  {object}  domain.EnsembleResult
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/ensemble-predict/{symbol} [get]
func (h *Handler) EnsemblePredictBySymbol(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.ensemble-predict-by-symbol")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if len(symbol) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol must be at least 2 characters"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	price := 0.0
	if p := c.Query("current_price"); p != "" {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current_price must be a positive number"})
			return
		}
		price = v
	}
	shock := c.DefaultQuery("shock_simulation", "false") == "true"

	result, err := h.predictions.Predict(ctx, symbol, price, shock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPrice godoc
// @Summary      Get the resolved price for a stock
// @Description  Returns the best available quote and its source (cache, live, or fallback)
// @Tags         prices
// @Produce      json
// @Param        symbol  path  string  true  "Stock symbol (e.g., RELIANCE, TCS)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/price/{symbol} [get]
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if len(symbol) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol must be at least 2 characters"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	price, source := h.predictions.ResolvePrice(ctx, symbol)
	c.JSON(http.StatusOK, gin.H{
		"symbol":        symbol,
		"current_price": price,
		"source":        source,
		"supported":     contains(domain.SupportedSymbols, symbol),
	})
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
