package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"quantpulse/internal/domain"
	"quantpulse/internal/service"

	tele "gopkg.in/telebot.v3"
)

func StartTelegramBot(predictions *service.PredictionService) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price RELIANCE\nSupported: %s", strings.Join(domain.SupportedSymbols, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		price, source := predictions.ResolvePrice(context.Background(), symbol)
		return c.Send(fmt.Sprintf("%s\nPrice: ₹%.2f\nSource: %s", symbol, price, source))
	})

	b.Handle("/predict", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /predict TCS\nSupported: %s", strings.Join(domain.SupportedSymbols, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		res, err := predictions.Predict(context.Background(), symbol, 0, false)
		if err != nil {
			return c.Send(fmt.Sprintf("Error predicting %s: %v", symbol, err))
		}
		msg := fmt.Sprintf(
			"%s ensemble prediction\nCurrent: ₹%.2f\nPredicted: ₹%.2f (%+.2f%%)\nDirection: %s\nConfidence: %.1f%%\nSentiment: %s",
			res.Symbol, res.CurrentPrice, res.WeightedPrediction, res.PriceChangePercent,
			res.Direction, res.ConfidenceScore, res.Components.SentimentAgent.SentimentLabel,
		)
		return c.Send(msg)
	})

	log.Println("Telegram bot started")
	go b.Start()
}
