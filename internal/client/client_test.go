package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio-io/alma-client/pkg/alma"
)

func TestNew_ResolvesRegionBaseURL(t *testing.T) {
	tests := []struct {
		region  alma.Region
		baseURL string
	}{
		{alma.RegionNA, "https://api-na.hosted.exlibrisgroup.com/almaws/v1"},
		{alma.RegionEU, "https://api-eu.hosted.exlibrisgroup.com/almaws/v1"},
		{alma.RegionAP, "https://api-ap.hosted.exlibrisgroup.com/almaws/v1"},
		{alma.RegionCA, "https://api-ca.hosted.exlibrisgroup.com/almaws/v1"},
		{alma.RegionCN, "https://api-cn.hosted.exlibrisgroup.cn/almaws/v1"},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.region), func(t *testing.T) {
			client, err := New(&alma.Config{APIKey: "k", Region: testCase.region})
			require.NoError(t, err)
			assert.Equal(t, testCase.baseURL, client.BaseURL())
		})
	}
}

func TestNew_BaseURLOverridesRegion(t *testing.T) {
	client, err := New(&alma.Config{
		APIKey:  "k",
		Region:  alma.RegionNA,
		BaseURL: "http://localhost:8080/almaws/v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/almaws/v1", client.BaseURL())
}

func TestNew_NilConfig(t *testing.T) {
	client, err := New(nil)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, alma.IsConfiguration(err))
	assert.ErrorIs(t, err, alma.ErrConfigRequired)
}

func TestNew_MissingAPIKey(t *testing.T) {
	client, err := New(&alma.Config{Region: alma.RegionNA})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, alma.IsConfiguration(err))
	assert.ErrorIs(t, err, alma.ErrAPIKeyRequired)
}

func TestNew_MissingRegion(t *testing.T) {
	client, err := New(&alma.Config{APIKey: "k"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, alma.ErrRegionRequired)
}

func TestNew_UnsupportedRegion(t *testing.T) {
	client, err := New(&alma.Config{APIKey: "k", Region: "antarctica"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, alma.IsConfiguration(err))
	assert.ErrorIs(t, err, alma.ErrUnsupportedRegion)
	assert.Contains(t, err.Error(), "antarctica")
}

func TestClient_ResourceClientsShareTransport(t *testing.T) {
	client, err := New(&alma.Config{APIKey: "k", Region: alma.RegionEU})
	require.NoError(t, err)

	assert.NotNil(t, client.Bibs())
	assert.NotNil(t, client.Holdings())
	assert.NotNil(t, client.Items())
	assert.NotNil(t, client.Analytics())
}
