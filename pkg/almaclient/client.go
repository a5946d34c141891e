// Package almaclient provides the main entry point for creating Alma API
// clients.
package almaclient

import (
	"fmt"

	"github.com/biblio-io/alma-client/internal/client"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// New creates a new Alma API client for the configured region. The API
// key and the region (or an explicit base URL) are required; everything
// else has working defaults.
func New(config *alma.Config) (alma.Client, error) {
	almaClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating alma client: %w", err)
	}

	return almaClient, nil
}

// NewWithAPIKey creates a client from just an API key and region, the
// common case.
func NewWithAPIKey(apiKey string, region alma.Region) (alma.Client, error) {
	return New(&alma.Config{
		APIKey: apiKey,
		Region: region,
	})
}
