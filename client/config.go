package client

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds everything needed to reach one game server
type Config struct {
	// ServerHost is the host[:port] of the game server, without a scheme.
	ServerHost string `env:"SERVER_HOST,default=kazhutha-card-game-server.onrender.com"`

	// Insecure switches wss/https to ws/http, for local servers and tests.
	Insecure bool `env:"SERVER_INSECURE,default=false"`

	// RetryInterval is the fixed delay between reconnection attempts.
	RetryInterval time.Duration `env:"RETRY_INTERVAL,default=3s"`

	// RequestTimeout bounds each request/response call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
}

// ConfigFromEnv builds a Config from the environment
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SocketURL is the push channel endpoint for one session identity
func (c Config) SocketURL(gameID, playerName string) string {
	scheme := "wss"
	if c.Insecure {
		scheme = "ws"
	}
	return fmt.Sprintf("%s://%s/ws/%s/%s", scheme, c.ServerHost, url.PathEscape(gameID), url.PathEscape(playerName))
}

// BaseURL is the root of the request/response surface
func (c Config) BaseURL() string {
	scheme := "https"
	if c.Insecure {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s", scheme, c.ServerHost)
}
