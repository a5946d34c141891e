package client

import (
	"time"

	internalhttp "github.com/biblio-io/alma-client/internal/http"
)

// NewTestClient creates a client pointed at a test server URL, with the
// poll interval shortened so Analytics tests run fast.
func NewTestClient(baseURL string) *Client {
	client := &Client{
		httpClient:   internalhttp.NewClient(baseURL, "test-api-key"),
		baseURL:      baseURL,
		pollInterval: time.Millisecond,
		maxPolls:     5,
	}

	client.initializeResourceClients()

	return client
}
