package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/biblio-io/alma-client/internal/codec"
	"github.com/biblio-io/alma-client/internal/http"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// HoldingsClient implements alma.HoldingsClient.
type HoldingsClient struct {
	httpClient *http.Client
}

// NewHoldingsClient creates a new holding records client.
func NewHoldingsClient(httpClient *http.Client) *HoldingsClient {
	return &HoldingsClient{
		httpClient: httpClient,
	}
}

func holdingPath(mmsID, holdingID string) string {
	return "/bibs/" + url.PathEscape(mmsID) + "/holdings/" + url.PathEscape(holdingID)
}

// Get implements alma.HoldingsClient.Get.
func (c *HoldingsClient) Get(ctx context.Context, mmsID, holdingID string) (*alma.Holding, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	if err := requireID("holding_id", holdingID); err != nil {
		return nil, err
	}

	path := holdingPath(mmsID, holdingID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting holding: %w", err)
	}

	return codec.DecodeHolding(resp.Body, responseContentType(resp), path)
}

// List implements alma.HoldingsClient.List. It follows the vendor's
// limit/offset pagination until the reported total is reached or
// opts.Limit caps the accumulation.
func (c *HoldingsClient) List(ctx context.Context, mmsID string, opts *alma.ListOptions) ([]alma.Holding, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	path := "/bibs/" + url.PathEscape(mmsID) + "/holdings"
	pageSize, offset, limit := pageWindow(opts)

	holdings := []alma.Holding{}

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("offset", strconv.Itoa(offset))

		resp, err := c.httpClient.Get(ctx, path, query)
		if err != nil {
			return nil, fmt.Errorf("listing holdings: %w", err)
		}

		page, total, err := codec.DecodeHoldingList(resp.Body, path)
		if err != nil {
			return nil, err
		}

		if len(page) == 0 {
			break
		}

		holdings = append(holdings, page...)
		offset += len(page)

		if limit > 0 && len(holdings) >= limit {
			holdings = holdings[:limit]

			break
		}

		if total > 0 && offset >= total {
			break
		}
	}

	return holdings, nil
}

// Create implements alma.HoldingsClient.Create.
func (c *HoldingsClient) Create(ctx context.Context, mmsID string, record *alma.Holding) (*alma.Holding, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	if record == nil {
		return nil, &alma.Error{Kind: alma.KindInvalidInput, Err: alma.ErrRecordRequired}
	}

	path := "/bibs/" + url.PathEscape(mmsID) + "/holdings"

	body, contentType, err := codec.EncodeJSON(record)
	if err != nil {
		return nil, fmt.Errorf("creating holding: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, path, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("creating holding: %w", err)
	}

	return codec.DecodeHolding(resp.Body, responseContentType(resp), path)
}

// Update implements alma.HoldingsClient.Update.
func (c *HoldingsClient) Update(ctx context.Context, mmsID, holdingID string, record *alma.Holding) (*alma.Holding, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	if err := requireID("holding_id", holdingID); err != nil {
		return nil, err
	}

	if record == nil {
		return nil, &alma.Error{Kind: alma.KindInvalidInput, Err: alma.ErrRecordRequired}
	}

	path := holdingPath(mmsID, holdingID)

	body, contentType, err := codec.EncodeJSON(record)
	if err != nil {
		return nil, fmt.Errorf("updating holding: %w", err)
	}

	resp, err := c.httpClient.Put(ctx, path, nil, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("updating holding: %w", err)
	}

	return codec.DecodeHolding(resp.Body, responseContentType(resp), path)
}

// Delete implements alma.HoldingsClient.Delete.
func (c *HoldingsClient) Delete(ctx context.Context, mmsID, holdingID string) error {
	if err := requireID("mms_id", mmsID); err != nil {
		return err
	}

	if err := requireID("holding_id", holdingID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, holdingPath(mmsID, holdingID), nil)
	if err != nil {
		return fmt.Errorf("deleting holding: %w", err)
	}

	return nil
}
