// Package constants centralizes defaults shared by the transport, the
// resource clients and the CLI.
package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP defaults.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent identifies the client on the wire.
	DefaultUserAgent = "alma-client-go"

	// HeaderAuthorization carries the API key.
	HeaderAuthorization = "Authorization"

	// HeaderAccept selects the response wire format.
	HeaderAccept = "Accept"

	// HeaderContentType declares the request wire format.
	HeaderContentType = "Content-Type"

	// ContentTypeJSON is the JSON media type.
	ContentTypeJSON = "application/json"

	// ContentTypeXML is the XML media type.
	ContentTypeXML = "application/xml"

	// AcceptAnalytics prefers JSON but tolerates the XML the Analytics
	// endpoints historically return.
	AcceptAnalytics = "application/json, application/xml;q=0.9"
)

// Pagination defaults.
const (
	// DefaultPageSize is the per-request page size for list operations.
	DefaultPageSize = 100

	// MaxPageSize is the largest page size the vendor accepts.
	MaxPageSize = 100
)

// Analytics defaults.
const (
	// DefaultReportLimit is the per-fetch row limit for reports.
	DefaultReportLimit = 1000

	// DefaultPollInterval is the delay between report polls.
	DefaultPollInterval = 1 * time.Second

	// DefaultMaxPolls caps follow-up requests for an unfinished report.
	DefaultMaxPolls = 5
)

// Output formats used by the CLI.
const (
	// OutputFormatTable renders results as an ASCII table.
	OutputFormatTable = "table"

	// OutputFormatJSON renders results as indented JSON.
	OutputFormatJSON = "json"

	// OutputFormatYAML renders results as YAML.
	OutputFormatYAML = "yaml"
)
