// Package jobsource fetches job and vehicle records from the fleet console
// backend. Records are read-only input to the planning engine.
package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/freightworks/loadplan/core/model"
)

// Config defines the job source endpoint and its client-credentials grant.
// When ClientID is empty the client talks to the endpoint unauthenticated,
// which is how local development environments run.
type Config struct {
	BaseURL      string `json:"base_url" yaml:"base_url"`
	TokenURL     string `json:"token_url" yaml:"token_url"`
	ClientID     string `json:"client_id" yaml:"client_id"`
	ClientSecret string `json:"client_secret" yaml:"client_secret"`
	TimeoutSec   int    `json:"timeout_sec" yaml:"timeout_sec"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSec == 0 {
		c.TimeoutSec = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("jobsource: base_url is required")
	}
	if c.ClientID != "" && c.TokenURL == "" {
		return fmt.Errorf("jobsource: token_url is required when client_id is set")
	}
	return nil
}

// Client fetches records over HTTP.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client. With credentials configured, requests carry an OAuth2
// client-credentials token that is refreshed automatically.
func New(cfg Config) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	var hc *http.Client
	if cfg.ClientID != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		hc = cc.Client(context.Background())
		hc.Timeout = timeout
	} else {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: cfg.BaseURL, http: hc}, nil
}

// Jobs returns the job records assigned to the given vehicle.
func (c *Client) Jobs(ctx context.Context, vehicleID string) ([]model.Job, error) {
	var jobs []model.Job
	url := fmt.Sprintf("%s/api/vehicles/%s/jobs", c.base, vehicleID)
	if err := c.get(ctx, url, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Vehicle returns one vehicle record.
func (c *Client) Vehicle(ctx context.Context, id string) (model.Vehicle, error) {
	var v model.Vehicle
	url := fmt.Sprintf("%s/api/vehicles/%s", c.base, id)
	if err := c.get(ctx, url, &v); err != nil {
		return model.Vehicle{}, err
	}
	return v, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("jobsource: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jobsource: %s returned %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("jobsource: decode %s: %w", url, err)
	}
	return nil
}
