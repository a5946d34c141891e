// Package codec converts raw Alma response bodies into validated record
// types and serializes outgoing records. JSON and XML payloads for the
// same resource normalize to identical records: the XML
// attribute/character-data conventions (desc attributes, @-prefixed keys
// in converted JSON) map onto the same field names as the JSON form.
//
// Every decode runs a validation pass; a payload missing its required
// identifier is reported as an invalid-input error, never as a partially
// populated record.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// IsXML reports whether a Content-Type header denotes an XML payload.
func IsXML(contentType string) bool {
	mediaType := contentType
	if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
		mediaType = mediaType[:idx]
	}

	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	return mediaType == constants.ContentTypeXML || mediaType == "text/xml" ||
		strings.HasSuffix(mediaType, "+xml")
}

// EncodeJSON serializes an outgoing record to the JSON wire format.
func EncodeJSON(record interface{}) ([]byte, string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, "", &alma.Error{
			Kind: alma.KindInvalidInput,
			Err:  fmt.Errorf("encoding request body: %w", err),
		}
	}

	return body, constants.ContentTypeJSON, nil
}

// decodeError wraps a malformed-payload failure as an invalid-input error.
func decodeError(what, url string, err error) *alma.Error {
	return &alma.Error{
		Kind: alma.KindInvalidInput,
		URL:  url,
		Err:  fmt.Errorf("decoding %s payload: %w", what, err),
	}
}

// validationError reports a payload that parsed but fails the record's
// required-field contract.
func validationError(what, url, detail string) *alma.Error {
	return &alma.Error{
		Kind:   alma.KindInvalidInput,
		URL:    url,
		Detail: fmt.Sprintf("invalid %s payload: %s", what, detail),
	}
}

// parseBool normalizes the vendor's boolean spellings ("true"/"false"
// strings in XML, booleans in JSON).
func parseBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// stringify renders a loosely typed JSON value as its string form.
func stringify(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case nil:
		return ""
	case float64:
		// JSON numbers: render integers without a decimal point.
		if typed == float64(int64(typed)) {
			return fmt.Sprintf("%d", int64(typed))
		}

		return fmt.Sprintf("%v", typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// rawToList tolerates the vendor's single-object-or-list convention:
// a JSON value that is either one object or an array of objects decodes
// to a uniform slice.
func rawToList(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}

		return list, nil
	}

	return []json.RawMessage{raw}, nil
}
