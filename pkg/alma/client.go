package alma

import (
	"context"
	"time"
)

// Region identifies the Alma data center an institution is hosted in. Each
// region maps to a fixed API gateway base URL.
type Region string

// Supported regions.
const (
	RegionNA Region = "na"
	RegionEU Region = "eu"
	RegionAP Region = "ap"
	RegionCA Region = "ca"
	RegionCN Region = "cn"
)

var regionBaseURLs = map[Region]string{
	RegionNA: "https://api-na.hosted.exlibrisgroup.com/almaws/v1",
	RegionEU: "https://api-eu.hosted.exlibrisgroup.com/almaws/v1",
	RegionAP: "https://api-ap.hosted.exlibrisgroup.com/almaws/v1",
	RegionCA: "https://api-ca.hosted.exlibrisgroup.com/almaws/v1",
	RegionCN: "https://api-cn.hosted.exlibrisgroup.cn/almaws/v1",
}

// BaseURL returns the API gateway base URL for the region. The second
// return value is false for unsupported regions.
func (r Region) BaseURL() (string, bool) {
	url, ok := regionBaseURLs[r]

	return url, ok
}

// Regions returns the set of supported regions.
func Regions() []Region {
	return []Region{RegionNA, RegionEU, RegionAP, RegionCA, RegionCN}
}

// Config represents client configuration for building an alma.Client.
//
// APIKey and Region are required; BaseURL overrides the region mapping when
// set (mainly for tests and proxies). The configuration is read once at
// construction time and never mutated afterwards.
type Config struct {
	// APIKey is the institution API key, attached to every request as
	// "Authorization: apikey <key>".
	APIKey string
	// Region selects the Alma data center; it must be one of the values
	// returned by Regions() unless BaseURL is set.
	Region Region
	// BaseURL overrides the region-derived base URL when non-empty.
	BaseURL string

	// Timeout bounds each HTTP round-trip. Zero means the transport
	// default.
	Timeout time.Duration
	// PollInterval is the delay between Analytics report polls. Zero means
	// the default.
	PollInterval time.Duration
	// MaxPolls caps the number of follow-up requests GetReport issues for
	// an unfinished report. Zero means the default.
	MaxPolls int

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the transport.
	Logger Logger
}

// Client is the entry point to the Alma API, exposing one sub-client per
// resource area. All sub-clients share the same transport and
// configuration; the client is safe for concurrent use.
type Client interface {
	Bibs() BibsClient
	Holdings() HoldingsClient
	Items() ItemsClient
	Analytics() AnalyticsClient
}

// BibsClient operates on bibliographic records.
type BibsClient interface {
	// Get retrieves a bibliographic record by MMS ID.
	Get(ctx context.Context, mmsID string, opts *GetBibOptions) (*Bib, error)
	// Create registers a new bibliographic record and returns it as stored.
	Create(ctx context.Context, record *Bib) (*Bib, error)
	// CreateFromXML registers a new record from a raw MARCXML document.
	CreateFromXML(ctx context.Context, marcXML string) (*Bib, error)
	// Update replaces the record identified by mmsID.
	Update(ctx context.Context, mmsID string, record *Bib, opts *UpdateBibOptions) (*Bib, error)
	// Delete removes the record identified by mmsID.
	Delete(ctx context.Context, mmsID string, opts *DeleteBibOptions) error
}

// HoldingsClient operates on holding records nested under a Bib.
type HoldingsClient interface {
	Get(ctx context.Context, mmsID, holdingID string) (*Holding, error)
	// List returns all holdings of a Bib in vendor order, following
	// pagination until exhausted or opts.Limit is reached.
	List(ctx context.Context, mmsID string, opts *ListOptions) ([]Holding, error)
	Create(ctx context.Context, mmsID string, record *Holding) (*Holding, error)
	Update(ctx context.Context, mmsID, holdingID string, record *Holding) (*Holding, error)
	Delete(ctx context.Context, mmsID, holdingID string) error
}

// ItemsClient operates on item records nested under a holding.
type ItemsClient interface {
	Get(ctx context.Context, mmsID, holdingID, itemPID string) (*Item, error)
	// GetByBarcode looks an item up by its barcode across the institution.
	GetByBarcode(ctx context.Context, barcode string) (*Item, error)
	// List returns all items of a holding in vendor order, following
	// pagination until exhausted or opts.Limit is reached.
	List(ctx context.Context, mmsID, holdingID string, opts *ListOptions) ([]Item, error)
	Create(ctx context.Context, mmsID, holdingID string, record *Item) (*Item, error)
	Update(ctx context.Context, mmsID, holdingID, itemPID string, record *Item) (*Item, error)
	Delete(ctx context.Context, mmsID, holdingID, itemPID string) error
}

// AnalyticsClient retrieves Analytics reports and the report path tree.
type AnalyticsClient interface {
	// GetReport runs the report at path. While the vendor reports the
	// result as unfinished, it keeps polling with the resumption token up
	// to the configured poll budget, accumulating rows. Exhausting the
	// budget is not an error: the partial result is returned with
	// IsFinished still false.
	GetReport(ctx context.Context, path string, opts *ReportOptions) (*AnalyticsReportResults, error)
	// ListPaths lists reports and folders under folderPath (or the
	// root when folderPath is empty).
	ListPaths(ctx context.Context, folderPath string) ([]AnalyticsPath, error)
}

// GetBibOptions are optional query parameters for BibsClient.Get.
type GetBibOptions struct {
	// View selects the record view ("full" or "brief").
	View string
	// Expand requests additional computed fields, e.g. "p_avail,requests".
	Expand string
}

// UpdateBibOptions are optional query parameters for BibsClient.Update.
type UpdateBibOptions struct {
	// OverrideWarning forces the update past cataloging warnings.
	OverrideWarning bool
}

// DeleteBibOptions are optional query parameters for BibsClient.Delete.
type DeleteBibOptions struct {
	OverrideWarning bool
	// Reason is the vendor-defined deletion reason code.
	Reason string
}

// ListOptions control pagination for list operations.
type ListOptions struct {
	// Limit caps the total number of records accumulated. Zero means all.
	Limit int
	// Offset skips that many records before accumulation starts.
	Offset int
	// PageSize is the per-request page size. Zero means the default.
	PageSize int
}

// ReportOptions are optional parameters for AnalyticsClient.GetReport.
type ReportOptions struct {
	// Limit is the per-fetch row limit (25-1000, multiples of 25). Zero
	// means the default of 1000.
	Limit int
	// Filter is an OBIEE XML filter applied to the report.
	Filter string
	// NoColumnNames suppresses the colNames request parameter.
	NoColumnNames bool
}

// Logger is the structured logging interface used by the transport. The
// cmd/alma CLI provides a zerolog-backed implementation.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
