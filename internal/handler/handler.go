package handler

import (
	"context"

	"quantpulse/internal/domain"
	"quantpulse/internal/marketdata"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Predictor interface {
	Predict(ctx context.Context, symbol string, requestPrice float64, shock bool) (domain.EnsembleResult, error)
	ResolvePrice(ctx context.Context, symbol string) (float64, string)
}

type Handler struct {
	tracer      trace.Tracer
	predictions Predictor
	series      *marketdata.SeriesStore
}

func New(tracer trace.Tracer, predictions Predictor, series *marketdata.SeriesStore) *Handler {
	return &Handler{
		tracer:      tracer,
		predictions: predictions,
		series:      series,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/v1/ensemble-predict", h.EnsemblePredict)
	r.GET("/api/v1/ensemble-predict/:symbol", h.EnsemblePredictBySymbol)
	r.GET("/api/v1/price/:symbol", h.GetPrice)
	r.GET("/api/v1/data-quality/:symbol", h.GetDataQuality)
}
