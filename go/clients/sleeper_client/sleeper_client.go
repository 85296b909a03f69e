package sleeper_client

import (
	"time"

	"github.com/mcdev12/draftboard/go/clients"
)

// Config tunes the client; zero values fall back to the defaults.
type Config struct {
	BaseURL           string        `yaml:"base_url"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
}

type SleeperClient struct {
	*clients.BaseClient
}

func NewSleeperClient(cfg Config) *SleeperClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	rps := cfg.RequestsPerSecond
	if rps == 0 {
		rps = DefaultRequestsPerSecond
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = DefaultBurst
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "draftboard/1.0"
	}

	client := &SleeperClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(UserAgentHeader, userAgent)
	client.SetHeader(AcceptHeader, "application/json")
	client.SetRateLimit(rps, burst)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return client
}
