// Package client implements the alma.Client interface: one sub-client per
// resource area sharing a single transport.
package client

import (
	"time"

	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/internal/http"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// Client implements the alma.Client interface.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	pollInterval time.Duration
	maxPolls     int

	// Resource clients
	bibs      alma.BibsClient
	holdings  alma.HoldingsClient
	items     alma.ItemsClient
	analytics alma.AnalyticsClient
}

// New creates an Alma API client from the given configuration. The base
// URL resolves from the region unless Config.BaseURL overrides it; a
// missing API key or unsupported region is a configuration error and no
// network call is attempted.
func New(config *alma.Config) (*Client, error) {
	if config == nil {
		return nil, &alma.Error{Kind: alma.KindConfiguration, Err: alma.ErrConfigRequired}
	}

	if config.APIKey == "" {
		return nil, &alma.Error{Kind: alma.KindConfiguration, Err: alma.ErrAPIKeyRequired}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		if config.Region == "" {
			return nil, &alma.Error{Kind: alma.KindConfiguration, Err: alma.ErrRegionRequired}
		}

		resolved, ok := config.Region.BaseURL()
		if !ok {
			return nil, &alma.Error{
				Kind:   alma.KindConfiguration,
				Detail: string(config.Region),
				Err:    alma.ErrUnsupportedRegion,
			}
		}

		baseURL = resolved
	}

	httpOpts := []http.Option{}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	client := &Client{
		httpClient:   http.NewClient(baseURL, config.APIKey, httpOpts...),
		baseURL:      baseURL,
		pollInterval: config.PollInterval,
		maxPolls:     config.MaxPolls,
	}

	if client.pollInterval <= 0 {
		client.pollInterval = constants.DefaultPollInterval
	}

	if client.maxPolls <= 0 {
		client.maxPolls = constants.DefaultMaxPolls
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients creates all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.bibs = NewBibsClient(c.httpClient)
	c.holdings = NewHoldingsClient(c.httpClient)
	c.items = NewItemsClient(c.httpClient)
	c.analytics = NewAnalyticsClient(c.httpClient, c.pollInterval, c.maxPolls)
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Bibs returns the bibliographic records client.
func (c *Client) Bibs() alma.BibsClient {
	return c.bibs
}

// Holdings returns the holding records client.
func (c *Client) Holdings() alma.HoldingsClient {
	return c.holdings
}

// Items returns the item records client.
func (c *Client) Items() alma.ItemsClient {
	return c.items
}

// Analytics returns the Analytics client.
func (c *Client) Analytics() alma.AnalyticsClient {
	return c.analytics
}
