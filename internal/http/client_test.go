package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio-io/alma-client/pkg/alma"
)

func TestClient_Do_SetsAuthAndFormatHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apikey secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "alma-client-go", r.Header.Get("User-Agent"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")

	resp, err := client.Get(context.Background(), "/bibs/123", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_Do_QueryAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/bibs/123", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("override_warning"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k")

	query := url.Values{}
	query.Set("override_warning", "true")

	resp, err := client.Put(context.Background(), "/bibs/123", query, []byte(`{"title":"x"}`), "application/json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClient_Do_CallerHeadersWin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json, application/xml;q=0.9", r.Header.Get("Accept"))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k")

	_, err := client.Do(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/analytics/reports",
		Headers: map[string]string{
			"Accept": "application/json, application/xml;q=0.9",
		},
	})
	require.NoError(t, err)
}

func TestClient_Do_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errorList":{"error":[{"errorCode":"402203","errorMessage":"Input parameters mmsId X is not valid.","trackingId":"E01-1234"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "k")

	resp, err := client.Get(context.Background(), "/bibs/X", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.True(t, alma.IsNotFound(err))

	almaErr := &alma.Error{}
	require.ErrorAs(t, err, &almaErr)
	assert.Equal(t, "402203", almaErr.ErrorCode)
	assert.Equal(t, "E01-1234", almaErr.TrackingID)
	assert.NotEmpty(t, almaErr.Body)
}

func TestClient_Do_XMLErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<web_service_result><errorList><error><errorCode>UNAUTHORIZED</errorCode><errorMessage>Invalid API Key</errorMessage></error></errorList></web_service_result>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")

	_, err := client.Get(context.Background(), "/bibs/1", nil)
	require.Error(t, err)

	almaErr := &alma.Error{}
	require.ErrorAs(t, err, &almaErr)
	assert.Equal(t, "Invalid API Key", almaErr.Detail)
	assert.Equal(t, "UNAUTHORIZED", almaErr.ErrorCode)
}

func TestClient_Do_UnfollowedRedirectIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k")

	resp, err := client.Get(context.Background(), "/bibs/1", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	almaErr := &alma.Error{}
	require.ErrorAs(t, err, &almaErr)
	assert.Equal(t, alma.KindAPI, almaErr.Kind)
	assert.Equal(t, http.StatusNotModified, almaErr.StatusCode)
}

func TestClient_Do_TransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "k")

	resp, err := client.Get(context.Background(), "/bibs/1", nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, alma.IsTransport(err))
}

func TestClient_Do_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/bibs/1", nil)
	require.Error(t, err)
	assert.True(t, alma.IsTransport(err))
}

type recordingLogger struct {
	debugCalls []string
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) {
	l.debugCalls = append(l.debugCalls, msg)
}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Warn(string, map[string]interface{})  {}
func (l *recordingLogger) Error(string, map[string]interface{}) {}

func TestClient_Do_DebugLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewClient(server.URL, "k", WithLogger(logger), WithDebug(true))

	_, err := client.Get(context.Background(), "/bibs/1", nil)
	require.NoError(t, err)
	assert.Contains(t, logger.debugCalls, "HTTP Request")
	assert.Contains(t, logger.debugCalls, "HTTP Response")
}

func TestClient_Options(t *testing.T) {
	client := NewClient("https://example.test/almaws/v1/", "k",
		WithUserAgent("my-agent/1.0"),
		WithTimeout(5*time.Second),
	)

	assert.Equal(t, "https://example.test/almaws/v1", client.BaseURL())
	assert.Equal(t, "my-agent/1.0", client.userAgent)
	assert.Equal(t, 5*time.Second, client.httpClient.HTTPClient.Timeout)
}
