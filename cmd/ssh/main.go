package main

import (
	"context"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"quantpulse/internal/cache"
	"quantpulse/internal/config"
	"quantpulse/internal/ensemble"
	"quantpulse/internal/marketdata"
	"quantpulse/internal/provider"
	"quantpulse/internal/quant"
	"quantpulse/internal/sentiment"
	"quantpulse/internal/service"
	"quantpulse/internal/topology"
	"quantpulse/internal/tui"
	"quantpulse/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
)

const ensembleCacheSize = 100

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	initRedisFunc     = cache.InitRedis
	initTracerFunc    = tracing.InitTracer
	loadSeriesFunc    = marketdata.LoadSeries
	loadGraphFunc     = topology.LoadGraphFile
	newWishServerFunc = wish.NewServer
	setupSignalNotify = ossignal.Notify
	waitForSignalFunc = func(quit <-chan os.Signal) { <-quit }
)

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

	var priceSource service.PriceSource
	var sentimentSource service.SentimentSource
	if cfg.UpstreamBaseURL != "" {
		upstream := provider.NewMarketDataProvider(tracer, cfg.UpstreamBaseURL)
		priceSource = upstream
		sentimentSource = upstream
	}
	if scorer := sentiment.NewOpenAIDirectionScorer(cfg.OpenAIAPIKey, cfg.OpenAIModel); scorer != nil {
		sentimentSource = scorer
	}

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	predictions := service.NewPredictionService(tracer, priceSource, sentimentSource, orchestrator, redisClient)

	// Fingerprint allowlist from config. An empty list admits any key,
	// which is only intended for local use.
	allowed := make(map[string]bool, len(cfg.SSHAuthorizedFingerprints))
	for _, fp := range cfg.SSHAuthorizedFingerprints {
		allowed[fp] = true
	}

	addr := "0.0.0.0:" + cfg.SSHPort

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			if len(allowed) == 0 {
				return true
			}
			fingerprint := gossh.FingerprintSHA256(key)
			if !allowed[fingerprint] {
				log.Printf("SSH auth denied: fingerprint=%s", fingerprint)
				return false
			}
			log.Printf("SSH auth accepted: user=%s fingerprint=%s", ctx.User(), fingerprint)
			return true
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				model := tui.NewAppModel(tui.Services{
					Predictions: predictions,
					Username:    s.User(),
				})
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
