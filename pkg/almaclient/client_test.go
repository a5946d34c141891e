package almaclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio-io/alma-client/pkg/alma"
	"github.com/biblio-io/alma-client/pkg/almaclient"
)

func TestNew(t *testing.T) {
	client, err := almaclient.New(&alma.Config{APIKey: "k", Region: alma.RegionEU})
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NotNil(t, client.Bibs())
	assert.NotNil(t, client.Analytics())
}

func TestNewWithAPIKey(t *testing.T) {
	client, err := almaclient.NewWithAPIKey("k", alma.RegionNA)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNew_UnsupportedRegion(t *testing.T) {
	client, err := almaclient.New(&alma.Config{APIKey: "k", Region: "mars"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, alma.IsConfiguration(err))
	assert.ErrorIs(t, err, alma.ErrUnsupportedRegion)
}

func TestNew_MissingAPIKey(t *testing.T) {
	client, err := almaclient.New(&alma.Config{Region: alma.RegionNA})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, alma.ErrAPIKeyRequired)
}

func TestNew_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apikey secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/bibs/9912345", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(alma.Bib{MMSID: "9912345", Title: "Ulysses"})
	}))
	defer server.Close()

	client, err := almaclient.New(&alma.Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	bib, err := client.Bibs().Get(context.Background(), "9912345", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ulysses", bib.Title)
}
