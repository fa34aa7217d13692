package oracle

import (
	"net/http"

	"github.com/sashabaranov/go-openai"
)

type ClientParams struct {
	APIKey string
	// BaseURL of an OpenAI compatible API, empty means the default one
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(params ClientParams) *openai.Client {
	cfg := openai.DefaultConfig(params.APIKey)
	if params.BaseURL != "" {
		cfg.BaseURL = params.BaseURL
	}
	if params.HTTPClient != nil {
		cfg.HTTPClient = params.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}
