package llm

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/khoahotran/skillfolio/internal/config"
)

const defaultTimeout = 20 * time.Second

// newClient builds an OpenAI-compatible client. BaseURL may point at OpenAI,
// an Ollama server or any other compatible gateway.
func newClient(cfg config.UpstreamConfig, name string) (*openai.Client, time.Duration, error) {
	if cfg.APIKey == "" {
		return nil, 0, fmt.Errorf("%s api_key is not configured", name)
	}
	if cfg.Model == "" {
		return nil, 0, fmt.Errorf("%s model is not configured", name)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	conf.HTTPClient = &http.Client{Timeout: timeout}

	return openai.NewClientWithConfig(conf), timeout, nil
}
