// Package registry queries the CIMA AEMPS medicinal-product database
// by drug name. The lookup is best-effort: any timeout, non-200 status
// or malformed body is reported as "not found", never as an error.
package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Result carries the registry's raw JSON answer for a drug name. The
// core does not interpret the payload beyond checking it parses.
type Result struct {
	Query string          `json:"query"`
	Body  json.RawMessage `json:"body"`
}

// Client performs bounded-wait lookups against the registry search API.
type Client struct {
	http *resty.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout),
	}
}

// Lookup searches the registry by drug name. The boolean is false for
// every kind of failure as well as for an empty name.
func (c *Client) Lookup(ctx context.Context, drugName string) (*Result, bool) {
	if drugName == "" {
		return nil, false
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("nombre", drugName).
		Get("/medicamentos")
	if err != nil {
		log.Warn().Err(err).Str("drug", drugName).Msg("registry lookup failed")
		return nil, false
	}
	if resp.StatusCode() != 200 {
		log.Warn().Int("status", resp.StatusCode()).Str("drug", drugName).Msg("registry lookup rejected")
		return nil, false
	}

	body := resp.Body()
	if !json.Valid(body) {
		log.Warn().Str("drug", drugName).Msg("registry returned malformed body")
		return nil, false
	}
	return &Result{Query: drugName, Body: body}, true
}
