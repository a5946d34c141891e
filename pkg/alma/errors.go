package alma

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an Error. Every specialization carries the same fields
// as the base API kind with a narrowed meaning.
type Kind string

// Error kinds.
const (
	// KindConfiguration reports bad construction parameters (unsupported
	// region, missing API key). No network call was attempted.
	KindConfiguration Kind = "configuration"
	// KindTransport reports a network-level failure (timeout, connection
	// error). No API response was received.
	KindTransport Kind = "transport"
	// KindAuthentication maps HTTP 401 and 403.
	KindAuthentication Kind = "authentication"
	// KindNotFound maps HTTP 404.
	KindNotFound Kind = "not_found"
	// KindInvalidInput maps HTTP 400 and payload validation failures.
	KindInvalidInput Kind = "invalid_input"
	// KindRateLimit maps HTTP 429.
	KindRateLimit Kind = "rate_limit"
	// KindAPI is the base kind for any other non-2xx response.
	KindAPI Kind = "api"
)

// Error is the typed error every failure path of the client reports.
// StatusCode is zero for configuration, transport and local validation
// errors; Body holds the raw response for caller inspection even when the
// vendor error envelope could not be parsed.
type Error struct {
	Kind       Kind
	StatusCode int
	URL        string
	Detail     string
	ErrorCode  string
	TrackingID string
	Body       []byte
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "alma: %s error", e.Kind)

	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}

	if e.URL != "" {
		fmt.Fprintf(&b, " for %s", e.URL)
	}

	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}

	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

// Unwrap supports errors.Is/As on the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindFromStatus maps a non-2xx HTTP status to an error kind.
func KindFromStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthentication
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest:
		return KindInvalidInput
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindAPI
	}
}

// NewHTTPError builds the typed error for a non-2xx response, extracting a
// human-readable detail from the vendor error envelope when the body
// carries one. The raw body is always attached.
func NewHTTPError(status int, url string, body []byte) *Error {
	err := &Error{
		Kind:       KindFromStatus(status),
		StatusCode: status,
		URL:        url,
		Body:       body,
	}

	if detail, ok := ExtractErrorDetail(body); ok {
		err.Detail = detail.Message
		err.ErrorCode = detail.Code
		err.TrackingID = detail.TrackingID
	}

	return err
}

// ErrorDetail is one entry of the Alma web-service error envelope.
type ErrorDetail struct {
	Code       string
	Message    string
	TrackingID string
}

// ExtractErrorDetail parses the Alma error envelope out of a response
// body, tolerating JSON and XML forms, a single error object or a list,
// and text-only <error> elements. It reports false when no envelope can
// be recognized.
func ExtractErrorDetail(body []byte) (ErrorDetail, bool) {
	if len(body) == 0 {
		return ErrorDetail{}, false
	}

	if detail, ok := extractJSONErrorDetail(body); ok {
		return detail, true
	}

	return extractXMLErrorDetail(body)
}

type jsonErrorEntry struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	TrackingID   string `json:"trackingId"`
}

type jsonErrorEnvelope struct {
	ErrorList struct {
		Error json.RawMessage `json:"error"`
	} `json:"errorList"`
}

func extractJSONErrorDetail(body []byte) (ErrorDetail, bool) {
	var envelope jsonErrorEnvelope

	if err := json.Unmarshal(body, &envelope); err != nil {
		return ErrorDetail{}, false
	}

	raw := envelope.ErrorList.Error
	if len(raw) == 0 {
		return ErrorDetail{}, false
	}

	// The vendor returns either a list of error objects or a bare object.
	var entries []jsonErrorEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		var single jsonErrorEntry
		if err := json.Unmarshal(raw, &single); err != nil {
			return ErrorDetail{}, false
		}

		entries = []jsonErrorEntry{single}
	}

	if len(entries) == 0 || entries[0].ErrorMessage == "" {
		return ErrorDetail{}, false
	}

	return ErrorDetail{
		Code:       entries[0].ErrorCode,
		Message:    entries[0].ErrorMessage,
		TrackingID: entries[0].TrackingID,
	}, true
}

type xmlErrorEntry struct {
	Text         string `xml:",chardata"`
	ErrorCode    string `xml:"errorCode"`
	ErrorMessage string `xml:"errorMessage"`
	TrackingID   string `xml:"trackingId"`
}

// wrappedXMLErrors matches <web_service_result><errorList><error>...
type wrappedXMLErrors struct {
	Errors []xmlErrorEntry `xml:"errorList>error"`
}

// flatXMLErrors matches a bare <errorList><error>... root.
type flatXMLErrors struct {
	Errors []xmlErrorEntry `xml:"error"`
}

func extractXMLErrorDetail(body []byte) (ErrorDetail, bool) {
	var entries []xmlErrorEntry

	var wrapped wrappedXMLErrors
	if err := xml.Unmarshal(body, &wrapped); err == nil && len(wrapped.Errors) > 0 {
		entries = wrapped.Errors
	} else {
		var flat flatXMLErrors
		if err := xml.Unmarshal(body, &flat); err != nil || len(flat.Errors) == 0 {
			return ErrorDetail{}, false
		}

		entries = flat.Errors
	}

	entry := entries[0]
	message := entry.ErrorMessage

	if message == "" {
		// Text-only <error> element.
		message = strings.TrimSpace(entry.Text)
	}

	if message == "" {
		return ErrorDetail{}, false
	}

	return ErrorDetail{
		Code:       entry.ErrorCode,
		Message:    message,
		TrackingID: entry.TrackingID,
	}, true
}

func isKind(err error, kind Kind) bool {
	almaErr := &Error{}
	if errors.As(err, &almaErr) {
		return almaErr.Kind == kind
	}

	return false
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool {
	return isKind(err, KindConfiguration)
}

// IsTransport checks if the error is a network-level transport error.
func IsTransport(err error) bool {
	return isKind(err, KindTransport)
}

// IsAuthentication checks if the error is an authentication error (401/403).
func IsAuthentication(err error) bool {
	return isKind(err, KindAuthentication)
}

// IsNotFound checks if the error is a not-found error (404).
func IsNotFound(err error) bool {
	return isKind(err, KindNotFound)
}

// IsInvalidInput checks if the error is an invalid-input error (400 or
// payload validation failure).
func IsInvalidInput(err error) bool {
	return isKind(err, KindInvalidInput)
}

// IsRateLimit checks if the error is a rate-limit error (429).
func IsRateLimit(err error) bool {
	return isKind(err, KindRateLimit)
}

// Static errors for construction-time failures.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrAPIKeyRequired     = errors.New("API key is required")
	ErrRegionRequired     = errors.New("region is required")
	ErrUnsupportedRegion  = errors.New("unsupported region")
	ErrEmptyIdentifier    = errors.New("identifier must not be empty")
	ErrRecordRequired     = errors.New("record is required")
	ErrReportPathRequired = errors.New("report path is required")
)
