package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// PricePoller keeps the Redis price cache warm so predictions rarely need
// a synchronous upstream fetch.
type PricePoller struct {
	tracer       trace.Tracer
	prices       PriceRefresher
	pollInterval time.Duration
}

type PriceRefresher interface {
	RefreshPrices(ctx context.Context) error
}

func NewPricePoller(tracer trace.Tracer, prices PriceRefresher, pollIntervalSecs int) *PricePoller {
	return &PricePoller{
		tracer:       tracer,
		prices:       prices,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
	}
}

// Start launches the polling goroutine. Blocks until ctx is cancelled.
func (p *PricePoller) Start(ctx context.Context) {
	log.Println("Price poller starting...")

	go p.pollLoop(ctx, "current-prices", p.pollInterval, func(ctx context.Context) error {
		return p.prices.RefreshPrices(ctx)
	})

	<-ctx.Done()
	log.Println("Price poller stopped")
}

func (p *PricePoller) pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	// Run immediately on start
	if err := fn(ctx); err != nil {
		log.Printf("poller %s initial run error: %v", name, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Printf("poller %s error: %v", name, err)
			}
		}
	}
}
