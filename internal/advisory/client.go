// Package advisory wraps the hosted text-completion endpoint. One
// request, one response; failures are downgraded to a displayed
// message so the session never crashes on an upstream problem.
package advisory

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// FailureMessage is what the user sees when the completion call cannot
// be served. Upstream detail goes to the log, not to the client.
const FailureMessage = "No se ha podido procesar la consulta en este momento. " +
	"Inténtelo de nuevo en unos minutos."

// Result is the outcome of one completion call: either generated text
// or a human-readable failure, never both.
type Result struct {
	Text    string `json:"text,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// OK reports whether the call produced text.
func (r Result) OK() bool { return r.Failure == "" }

func success(text string) Result { return Result{Text: text} }

func failure() Result { return Result{Failure: FailureMessage} }

// Client calls the generateContent endpoint with web-search grounding
// enabled. No retries, no caching.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{
		http:   http,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearchRetrieval struct{} `json:"google_search_retrieval"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Complete sends one prompt and returns the generated text, or a
// failure Result on any transport, status or decode problem.
func (c *Client) Complete(ctx context.Context, promptText string) Result {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: promptText}}}},
		Tools:    []tool{{}},
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		log.Error().Err(err).Msg("advisory completion request failed")
		return failure()
	}
	if resp.StatusCode() != 200 {
		log.Error().Int("status", resp.StatusCode()).Msg("advisory completion rejected")
		return failure()
	}

	text := joinParts(out)
	if text == "" {
		log.Error().Msg("advisory completion returned no candidates")
		return failure()
	}
	return success(text)
}

func joinParts(out generateResponse) string {
	if len(out.Candidates) == 0 {
		return ""
	}
	var text string
	for _, p := range out.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text
}
