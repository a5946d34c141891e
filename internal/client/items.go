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

// ItemsClient implements alma.ItemsClient.
type ItemsClient struct {
	httpClient *http.Client
}

// NewItemsClient creates a new item records client.
func NewItemsClient(httpClient *http.Client) *ItemsClient {
	return &ItemsClient{
		httpClient: httpClient,
	}
}

func itemsPath(mmsID, holdingID string) string {
	return "/bibs/" + url.PathEscape(mmsID) + "/holdings/" + url.PathEscape(holdingID) + "/items"
}

func itemPath(mmsID, holdingID, itemPID string) string {
	return itemsPath(mmsID, holdingID) + "/" + url.PathEscape(itemPID)
}

// Get implements alma.ItemsClient.Get.
func (c *ItemsClient) Get(ctx context.Context, mmsID, holdingID, itemPID string) (*alma.Item, error) {
	if err := requireItemIDs(mmsID, holdingID, itemPID); err != nil {
		return nil, err
	}

	path := itemPath(mmsID, holdingID, itemPID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	return codec.DecodeItem(resp.Body, responseContentType(resp), path)
}

// GetByBarcode implements alma.ItemsClient.GetByBarcode. The vendor
// resolves the barcode institution-wide via GET /items?item_barcode=.
func (c *ItemsClient) GetByBarcode(ctx context.Context, barcode string) (*alma.Item, error) {
	if err := requireID("item_barcode", barcode); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("item_barcode", barcode)

	resp, err := c.httpClient.Get(ctx, "/items", query)
	if err != nil {
		return nil, fmt.Errorf("getting item by barcode: %w", err)
	}

	return codec.DecodeItem(resp.Body, responseContentType(resp), "/items")
}

// List implements alma.ItemsClient.List. It follows the vendor's
// limit/offset pagination until the reported total is reached or
// opts.Limit caps the accumulation.
func (c *ItemsClient) List(ctx context.Context, mmsID, holdingID string, opts *alma.ListOptions) ([]alma.Item, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	if err := requireID("holding_id", holdingID); err != nil {
		return nil, err
	}

	path := itemsPath(mmsID, holdingID)
	pageSize, offset, limit := pageWindow(opts)

	items := []alma.Item{}

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageSize))
		query.Set("offset", strconv.Itoa(offset))

		resp, err := c.httpClient.Get(ctx, path, query)
		if err != nil {
			return nil, fmt.Errorf("listing items: %w", err)
		}

		page, total, err := codec.DecodeItemList(resp.Body, path)
		if err != nil {
			return nil, err
		}

		if len(page) == 0 {
			break
		}

		items = append(items, page...)
		offset += len(page)

		if limit > 0 && len(items) >= limit {
			items = items[:limit]

			break
		}

		if total > 0 && offset >= total {
			break
		}
	}

	return items, nil
}

// Create implements alma.ItemsClient.Create.
func (c *ItemsClient) Create(ctx context.Context, mmsID, holdingID string, record *alma.Item) (*alma.Item, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	if err := requireID("holding_id", holdingID); err != nil {
		return nil, err
	}

	if record == nil {
		return nil, &alma.Error{Kind: alma.KindInvalidInput, Err: alma.ErrRecordRequired}
	}

	path := itemsPath(mmsID, holdingID)

	body, contentType, err := codec.EncodeJSON(record)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, path, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return codec.DecodeItem(resp.Body, responseContentType(resp), path)
}

// Update implements alma.ItemsClient.Update.
func (c *ItemsClient) Update(ctx context.Context, mmsID, holdingID, itemPID string, record *alma.Item) (*alma.Item, error) {
	if err := requireItemIDs(mmsID, holdingID, itemPID); err != nil {
		return nil, err
	}

	if record == nil {
		return nil, &alma.Error{Kind: alma.KindInvalidInput, Err: alma.ErrRecordRequired}
	}

	path := itemPath(mmsID, holdingID, itemPID)

	body, contentType, err := codec.EncodeJSON(record)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	resp, err := c.httpClient.Put(ctx, path, nil, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return codec.DecodeItem(resp.Body, responseContentType(resp), path)
}

// Delete implements alma.ItemsClient.Delete.
func (c *ItemsClient) Delete(ctx context.Context, mmsID, holdingID, itemPID string) error {
	if err := requireItemIDs(mmsID, holdingID, itemPID); err != nil {
		return err
	}

	_, err := c.httpClient.Delete(ctx, itemPath(mmsID, holdingID, itemPID), nil)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	return nil
}

func requireItemIDs(mmsID, holdingID, itemPID string) error {
	if err := requireID("mms_id", mmsID); err != nil {
		return err
	}

	if err := requireID("holding_id", holdingID); err != nil {
		return err
	}

	return requireID("item_pid", itemPID)
}
