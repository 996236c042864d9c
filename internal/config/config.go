package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port            string
	RedisURL        string
	UpstreamBaseURL string
	PricePollSecs   int

	MarketDataPath string
	GraphDataPath  string

	TelegramBotToken string
	OpenAIAPIKey     string
	OpenAIModel      string

	APIKey         string
	AllowedOrigins []string

	SSHPort                   string
	SSHHostKeyPath            string
	SSHAuthorizedFingerprints []string
}

func Load() *Config {
	cfg := &Config{
		RedisURL:         os.Getenv("REDIS_URL"),
		UpstreamBaseURL:  strings.TrimSpace(os.Getenv("UPSTREAM_BASE_URL")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		APIKey:           strings.TrimSpace(os.Getenv("API_KEY")),
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8000"
	}

	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	if cfg.UpstreamBaseURL == "" {
		log.Println("Warning: UPSTREAM_BASE_URL not set, live quotes disabled")
	}

	cfg.PricePollSecs = 60
	if v := strings.TrimSpace(os.Getenv("PRICE_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PricePollSecs = n
		}
	}

	cfg.MarketDataPath = strings.TrimSpace(os.Getenv("MARKET_DATA_PATH"))
	if cfg.MarketDataPath == "" {
		cfg.MarketDataPath = "data/stock_data.csv"
	}

	cfg.GraphDataPath = strings.TrimSpace(os.Getenv("GRAPH_DATA_PATH"))
	if cfg.GraphDataPath == "" {
		cfg.GraphDataPath = "data/graph.json"
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, news sentiment scoring disabled")
	}
	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	cfg.SSHPort = strings.TrimSpace(os.Getenv("SSH_PORT"))
	if cfg.SSHPort == "" {
		cfg.SSHPort = "2222"
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/quantpulse_ed25519"
	}

	if fps := strings.TrimSpace(os.Getenv("SSH_AUTHORIZED_FINGERPRINTS")); fps != "" {
		for _, fp := range strings.Split(fps, ",") {
			fp = strings.TrimSpace(fp)
			if fp != "" {
				cfg.SSHAuthorizedFingerprints = append(cfg.SSHAuthorizedFingerprints, fp)
			}
		}
	}

	return cfg
}
