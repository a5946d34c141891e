package client

import (
	"strings"

	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/internal/http"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// requireID rejects empty or blank identifiers before any request is
// built.
func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &alma.Error{
			Kind:   alma.KindInvalidInput,
			Detail: name,
			Err:    alma.ErrEmptyIdentifier,
		}
	}

	return nil
}

// responseContentType extracts the media type the vendor answered with so
// the codec can pick the right decoder.
func responseContentType(resp *http.Response) string {
	if resp == nil {
		return ""
	}

	return resp.Headers.Get(constants.HeaderContentType)
}

// pageWindow resolves the effective page size and starting offset for a
// list operation.
func pageWindow(opts *alma.ListOptions) (pageSize, offset, limit int) {
	pageSize = constants.DefaultPageSize

	if opts != nil {
		if opts.PageSize > 0 {
			pageSize = opts.PageSize
		}

		if pageSize > constants.MaxPageSize {
			pageSize = constants.MaxPageSize
		}

		offset = opts.Offset
		limit = opts.Limit
	}

	return pageSize, offset, limit
}
