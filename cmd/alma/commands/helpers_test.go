package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblio-io/alma-client/pkg/alma"
)

func TestCreateClient_MissingKey(t *testing.T) {
	viper.Reset()

	client, err := CreateClient()
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrAPIKeyNotConfigured)
}

func TestCreateClient_MissingRegion(t *testing.T) {
	viper.Reset()
	viper.Set("api_key", "k")

	client, err := CreateClient()
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrRegionNotConfigured)
}

func TestCreateClient_FromConfig(t *testing.T) {
	viper.Reset()
	viper.Set("api_key", "k")
	viper.Set("region", "eu")

	client, err := CreateClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestCreateClient_BaseURLWithoutRegion(t *testing.T) {
	viper.Reset()
	viper.Set("api_key", "k")
	viper.Set("base_url", "http://localhost:8080/almaws/v1")

	client, err := CreateClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestLoadRecordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bib.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mms_id":"99","title":"T"}`), 0600))

	var bib alma.Bib
	require.NoError(t, loadRecordFile(path, &bib))
	assert.Equal(t, "99", bib.MMSID)
	assert.Equal(t, "T", bib.Title)
}

func TestLoadRecordFile_Missing(t *testing.T) {
	var bib alma.Bib

	err := loadRecordFile("", &bib)
	assert.ErrorIs(t, err, ErrRecordFileRequired)

	err = loadRecordFile(filepath.Join(t.TempDir(), "absent.json"), &bib)
	assert.Error(t, err)
}

func TestCodeDescValue(t *testing.T) {
	assert.Empty(t, codeDescValue(nil))
	assert.Equal(t, "Main Library", codeDescValue(&alma.CodeDesc{Value: "MAIN", Desc: "Main Library"}))
	assert.Equal(t, "MAIN", codeDescValue(&alma.CodeDesc{Value: "MAIN"}))
}
