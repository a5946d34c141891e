package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/biblio-io/alma-client/internal/codec"
	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/internal/http"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// BibsClient implements alma.BibsClient.
type BibsClient struct {
	httpClient *http.Client
}

// NewBibsClient creates a new bibliographic records client.
func NewBibsClient(httpClient *http.Client) *BibsClient {
	return &BibsClient{
		httpClient: httpClient,
	}
}

// Get implements alma.BibsClient.Get.
func (c *BibsClient) Get(ctx context.Context, mmsID string, opts *alma.GetBibOptions) (*alma.Bib, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	path := "/bibs/" + url.PathEscape(mmsID)

	var query url.Values

	if opts != nil {
		query = url.Values{}

		if opts.View != "" {
			query.Set("view", opts.View)
		}

		if opts.Expand != "" {
			query.Set("expand", opts.Expand)
		}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting bib: %w", err)
	}

	return codec.DecodeBib(resp.Body, responseContentType(resp), path)
}

// Create implements alma.BibsClient.Create.
func (c *BibsClient) Create(ctx context.Context, record *alma.Bib) (*alma.Bib, error) {
	if record == nil {
		return nil, &alma.Error{Kind: alma.KindInvalidInput, Err: alma.ErrRecordRequired}
	}

	body, contentType, err := codec.EncodeJSON(record)
	if err != nil {
		return nil, fmt.Errorf("creating bib: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, "/bibs", body, contentType)
	if err != nil {
		return nil, fmt.Errorf("creating bib: %w", err)
	}

	return codec.DecodeBib(resp.Body, responseContentType(resp), "/bibs")
}

// CreateFromXML implements alma.BibsClient.CreateFromXML. The document is
// sent verbatim as application/xml; the caller supplies the vendor's
// <bib> wrapper around the MARCXML record.
func (c *BibsClient) CreateFromXML(ctx context.Context, marcXML string) (*alma.Bib, error) {
	if err := requireID("record", marcXML); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/bibs", []byte(marcXML), constants.ContentTypeXML)
	if err != nil {
		return nil, fmt.Errorf("creating bib from MARCXML: %w", err)
	}

	return codec.DecodeBib(resp.Body, responseContentType(resp), "/bibs")
}

// Update implements alma.BibsClient.Update.
func (c *BibsClient) Update(ctx context.Context, mmsID string, record *alma.Bib, opts *alma.UpdateBibOptions) (*alma.Bib, error) {
	if err := requireID("mms_id", mmsID); err != nil {
		return nil, err
	}

	if record == nil {
		return nil, &alma.Error{Kind: alma.KindInvalidInput, Err: alma.ErrRecordRequired}
	}

	path := "/bibs/" + url.PathEscape(mmsID)

	var query url.Values

	if opts != nil && opts.OverrideWarning {
		query = url.Values{}
		query.Set("override_warning", "true")
	}

	body, contentType, err := codec.EncodeJSON(record)
	if err != nil {
		return nil, fmt.Errorf("updating bib: %w", err)
	}

	resp, err := c.httpClient.Put(ctx, path, query, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("updating bib: %w", err)
	}

	return codec.DecodeBib(resp.Body, responseContentType(resp), path)
}

// Delete implements alma.BibsClient.Delete. A 2xx answer means the record
// is gone; the vendor sends no body.
func (c *BibsClient) Delete(ctx context.Context, mmsID string, opts *alma.DeleteBibOptions) error {
	if err := requireID("mms_id", mmsID); err != nil {
		return err
	}

	path := "/bibs/" + url.PathEscape(mmsID)

	var query url.Values

	if opts != nil {
		query = url.Values{}

		if opts.OverrideWarning {
			query.Set("override_warning", strconv.FormatBool(opts.OverrideWarning))
		}

		if opts.Reason != "" {
			query.Set("reason", opts.Reason)
		}
	}

	_, err := c.httpClient.Delete(ctx, path, query)
	if err != nil {
		return fmt.Errorf("deleting bib: %w", err)
	}

	return nil
}
