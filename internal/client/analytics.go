package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/biblio-io/alma-client/internal/codec"
	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/internal/http"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// AnalyticsClient implements alma.AnalyticsClient.
type AnalyticsClient struct {
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     int
}

// NewAnalyticsClient creates a new Analytics client.
func NewAnalyticsClient(httpClient *http.Client, pollInterval time.Duration, maxPolls int) *AnalyticsClient {
	return &AnalyticsClient{
		httpClient:   httpClient,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
	}
}

// GetReport implements alma.AnalyticsClient.GetReport. The first fetch
// carries the report path and options; while the vendor reports the run
// unfinished, follow-up fetches carry only the resumption token. The
// poll budget caps follow-ups, and exhausting it returns the accumulated
// partial result with IsFinished still false.
func (c *AnalyticsClient) GetReport(ctx context.Context, path string, opts *alma.ReportOptions) (*alma.AnalyticsReportResults, error) {
	if path == "" {
		return nil, &alma.Error{Kind: alma.KindInvalidInput, Err: alma.ErrReportPathRequired}
	}

	limit := constants.DefaultReportLimit
	if opts != nil && opts.Limit > 0 {
		limit = opts.Limit
	}

	query := url.Values{}
	query.Set("path", path)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("colNames", strconv.FormatBool(opts == nil || !opts.NoColumnNames))

	if opts != nil && opts.Filter != "" {
		query.Set("filter", opts.Filter)
	}

	result, err := c.fetchChunk(ctx, query)
	if err != nil {
		return nil, err
	}

	result.QueryPath = path

	if result.IsFinished {
		return result, nil
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for poll := 0; poll < c.maxPolls && !result.IsFinished; poll++ {
		select {
		case <-ctx.Done():
			return nil, &alma.Error{
				Kind: alma.KindTransport,
				Err:  fmt.Errorf("polling analytics report: %w", ctx.Err()),
			}
		case <-ticker.C:
		}

		tokenQuery := url.Values{}
		tokenQuery.Set("token", result.ResumptionToken)
		tokenQuery.Set("limit", strconv.Itoa(limit))

		chunk, err := c.fetchChunk(ctx, tokenQuery)
		if err != nil {
			return nil, err
		}

		result.Rows = append(result.Rows, chunk.Rows...)
		result.IsFinished = chunk.IsFinished

		if chunk.ResumptionToken != "" {
			result.ResumptionToken = chunk.ResumptionToken
		}

		if len(result.Columns) == 0 {
			result.Columns = chunk.Columns
		}
	}

	return result, nil
}

// fetchChunk retrieves one report chunk. Analytics is the one endpoint
// family that still answers in XML on some installations, so the request
// advertises both formats and the decoder follows the response header.
func (c *AnalyticsClient) fetchChunk(ctx context.Context, query url.Values) (*alma.AnalyticsReportResults, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Path:   "/analytics/reports",
		Query:  query,
		Headers: map[string]string{
			constants.HeaderAccept: constants.AcceptAnalytics,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting analytics report: %w", err)
	}

	return codec.DecodeReport(resp.Body, responseContentType(resp), "/analytics/reports")
}

// ListPaths implements alma.AnalyticsClient.ListPaths.
func (c *AnalyticsClient) ListPaths(ctx context.Context, folderPath string) ([]alma.AnalyticsPath, error) {
	path := "/analytics/paths"
	if folderPath != "" {
		path += "/" + escapeFolderPath(folderPath)
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Path:   path,
		Headers: map[string]string{
			constants.HeaderAccept: constants.AcceptAnalytics,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("listing analytics paths: %w", err)
	}

	return codec.DecodePaths(resp.Body, responseContentType(resp), path)
}

// escapeFolderPath escapes each segment of a catalog folder path while
// keeping its slashes as separators.
func escapeFolderPath(folderPath string) string {
	trimmed := strings.TrimLeft(folderPath, "/")

	return (&url.URL{Path: trimmed}).EscapedPath()
}
