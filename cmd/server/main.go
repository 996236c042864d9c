package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quantpulse/internal/bot"
	"quantpulse/internal/cache"
	"quantpulse/internal/config"
	"quantpulse/internal/ensemble"
	"quantpulse/internal/handler"
	"quantpulse/internal/job"
	"quantpulse/internal/marketdata"
	"quantpulse/internal/provider"
	"quantpulse/internal/quant"
	"quantpulse/internal/sentiment"
	"quantpulse/internal/service"
	"quantpulse/internal/topology"
	"quantpulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "quantpulse/docs"
)

const ensembleCacheSize = 100

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer
	loadSeriesFunc = marketdata.LoadSeries
	loadGraphFunc  = topology.LoadGraphFile
	newUpstreamProviderFunc = func(tracer trace.Tracer, baseURL string) *provider.MarketDataProvider {
		return provider.NewMarketDataProvider(tracer, baseURL)
	}
	newPredictionServiceFunc = service.NewPredictionService
	newPricePollerFunc       = job.NewPricePoller
	startPollerFunc          = func(p *job.PricePoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc     = bot.StartTelegramBot
	newHandlerFunc           = handler.New
	newRouterFunc            = gin.Default
	setupSignalNotify        = signal.Notify
	waitForSignalFunc        = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc      = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc   = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           QuantPulse Ensemble Prediction API
// @version         1.0
// @description     Multi-agent stock prediction service fusing trend, topology risk, and news sentiment.

// @host      localhost:8000
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Static inputs are optional: a missing series or graph file only
	// degrades the relevant agent to its default path.
	series, err := loadSeriesFunc(cfg.MarketDataPath)
	if err != nil {
		log.Printf("Warning: historical series unavailable (%v), forecasts use fallback", err)
		series = nil
	}

	var graph *topology.Graph
	if gf, err := loadGraphFunc(cfg.GraphDataPath); err != nil {
		log.Printf("Warning: topology graph unavailable (%v), risk adjustment is neutral", err)
	} else {
		graph = topology.NewGraph(gf)
	}

	forecaster := quant.NewForecaster(series)
	analyzer := topology.NewAnalyzer(graph)
	orchestrator := ensemble.NewOrchestrator(tracer, forecaster, analyzer, cache.NewTTL(ensembleCacheSize))

	var upstream *provider.MarketDataProvider
	if cfg.UpstreamBaseURL != "" {
		upstream = newUpstreamProviderFunc(tracer, cfg.UpstreamBaseURL)
	}

	var priceSource service.PriceSource
	var sentimentSource service.SentimentSource
	if upstream != nil {
		priceSource = upstream
		sentimentSource = upstream
	}
	if scorer := sentiment.NewOpenAIDirectionScorer(cfg.OpenAIAPIKey, cfg.OpenAIModel); scorer != nil {
		sentimentSource = scorer
		log.Println("OpenAI sentiment scoring enabled")
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	predictions := newPredictionServiceFunc(tracer, priceSource, sentimentSource, orchestrator, redisClient)

	// Poller only makes sense with a live quote source.
	if upstream != nil {
		poller := newPricePollerFunc(tracer, predictions, cfg.PricePollSecs)
		startPollerFunc(poller, ctx)
	}

	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(predictions)

	h := newHandlerFunc(tracer, predictions, series)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("quantpulse"))
	r.Use(handler.CORS(cfg.AllowedOrigins))
	r.Use(handler.APIKeyAuth(cfg.APIKey))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
