package alma

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindAuthentication},
		{http.StatusForbidden, KindAuthentication},
		{http.StatusNotFound, KindNotFound},
		{http.StatusBadRequest, KindInvalidInput},
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusInternalServerError, KindAPI},
		{http.StatusBadGateway, KindAPI},
		{http.StatusConflict, KindAPI},
	}

	for _, testCase := range tests {
		t.Run(fmt.Sprintf("%d", testCase.status), func(t *testing.T) {
			assert.Equal(t, testCase.kind, KindFromStatus(testCase.status))
		})
	}
}

func TestExtractErrorDetail_JSONList(t *testing.T) {
	body := []byte(`{"errorList":{"error":[{"errorCode":"402203","errorMessage":"Input parameters mmsId 99 is not valid.","trackingId":"E01-0501"}]}}`)

	detail, ok := ExtractErrorDetail(body)
	require.True(t, ok)
	assert.Equal(t, "402203", detail.Code)
	assert.Equal(t, "Input parameters mmsId 99 is not valid.", detail.Message)
	assert.Equal(t, "E01-0501", detail.TrackingID)
}

func TestExtractErrorDetail_JSONSingleObject(t *testing.T) {
	body := []byte(`{"errorList":{"error":{"errorCode":"401873","errorMessage":"No holding found."}}}`)

	detail, ok := ExtractErrorDetail(body)
	require.True(t, ok)
	assert.Equal(t, "401873", detail.Code)
	assert.Equal(t, "No holding found.", detail.Message)
	assert.Empty(t, detail.TrackingID)
}

func TestExtractErrorDetail_XMLWrapped(t *testing.T) {
	body := []byte(`<web_service_result xmlns="http://com/exlibris/urm/general/xmlbeans">
		<errorsExist>true</errorsExist>
		<errorList>
			<error>
				<errorCode>INTERNAL_SERVER_ERROR</errorCode>
				<errorMessage>The web service failed.</errorMessage>
				<trackingId>E02-1701</trackingId>
			</error>
		</errorList>
	</web_service_result>`)

	detail, ok := ExtractErrorDetail(body)
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", detail.Code)
	assert.Equal(t, "The web service failed.", detail.Message)
	assert.Equal(t, "E02-1701", detail.TrackingID)
}

func TestExtractErrorDetail_XMLFlat(t *testing.T) {
	body := []byte(`<errorList><error><errorCode>401652</errorCode><errorMessage>General Error.</errorMessage></error></errorList>`)

	detail, ok := ExtractErrorDetail(body)
	require.True(t, ok)
	assert.Equal(t, "401652", detail.Code)
	assert.Equal(t, "General Error.", detail.Message)
}

func TestExtractErrorDetail_XMLTextOnlyError(t *testing.T) {
	body := []byte(`<errorList><error>Invalid API Key</error></errorList>`)

	detail, ok := ExtractErrorDetail(body)
	require.True(t, ok)
	assert.Equal(t, "Invalid API Key", detail.Message)
	assert.Empty(t, detail.Code)
}

func TestExtractErrorDetail_Unrecognized(t *testing.T) {
	for _, body := range []string{"", "plain text", `{"message":"nope"}`, `<html><body>502</body></html>`} {
		_, ok := ExtractErrorDetail([]byte(body))
		assert.False(t, ok, "body %q", body)
	}
}

func TestNewHTTPError(t *testing.T) {
	body := []byte(`{"errorList":{"error":[{"errorCode":"402203","errorMessage":"Not valid.","trackingId":"E01-1"}]}}`)

	err := NewHTTPError(http.StatusNotFound, "https://example.test/bibs/99", body)
	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Not valid.", err.Detail)
	assert.Equal(t, "402203", err.ErrorCode)
	assert.Equal(t, body, err.Body)

	msg := err.Error()
	assert.Contains(t, msg, "not_found")
	assert.Contains(t, msg, "404")
	assert.Contains(t, msg, "https://example.test/bibs/99")
	assert.Contains(t, msg, "Not valid.")
}

func TestNewHTTPError_UnparseableBody(t *testing.T) {
	body := []byte("upstream gateway said no")

	err := NewHTTPError(http.StatusBadGateway, "https://example.test/bibs", body)
	assert.Equal(t, KindAPI, err.Kind)
	assert.Empty(t, err.Detail)
	assert.Equal(t, body, err.Body)
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		kind      Kind
		predicate func(error) bool
	}{
		{KindConfiguration, IsConfiguration},
		{KindTransport, IsTransport},
		{KindAuthentication, IsAuthentication},
		{KindNotFound, IsNotFound},
		{KindInvalidInput, IsInvalidInput},
		{KindRateLimit, IsRateLimit},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.kind), func(t *testing.T) {
			err := &Error{Kind: testCase.kind}
			assert.True(t, testCase.predicate(err))

			wrapped := fmt.Errorf("outer context: %w", err)
			assert.True(t, testCase.predicate(wrapped))

			assert.False(t, testCase.predicate(errors.New("plain")))
			assert.False(t, testCase.predicate(nil))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Kind: KindConfiguration, Err: ErrAPIKeyRequired}
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestRegionBaseURL(t *testing.T) {
	url, ok := RegionEU.BaseURL()
	require.True(t, ok)
	assert.Equal(t, "https://api-eu.hosted.exlibrisgroup.com/almaws/v1", url)

	_, ok = Region("atlantis").BaseURL()
	assert.False(t, ok)

	assert.Len(t, Regions(), 5)
}
