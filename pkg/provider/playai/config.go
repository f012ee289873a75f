package playai

import (
	"net/http"
	"time"
)

type Config struct {
	url string

	token string
	user  string

	pollAttempts int
	pollInterval time.Duration

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

func WithUser(user string) Option {
	return func(c *Config) {
		c.user = user
	}
}

func WithPolling(attempts int, interval time.Duration) Option {
	return func(c *Config) {
		c.pollAttempts = attempts
		c.pollInterval = interval
	}
}
