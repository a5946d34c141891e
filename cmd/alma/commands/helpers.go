// Package commands implements the alma CLI command tree.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/biblio-io/alma-client/pkg/alma"
	"github.com/biblio-io/alma-client/pkg/almaclient"
)

const defaultJSONIndent = "  "

// Common static errors used throughout the commands package.
var (
	ErrAPIKeyNotConfigured = errors.New("no API key configured (set ALMA_API_KEY, use --api-key, or run 'alma config set-key')")
	ErrRegionNotConfigured = errors.New("no region configured (set ALMA_REGION, use --region, or run 'alma config set-region')")
	ErrRecordFileRequired  = errors.New("a record file is required (--file)")
)

// CreateClient builds an Alma client from the resolved CLI configuration.
func CreateClient() (alma.Client, error) {
	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return nil, ErrAPIKeyNotConfigured
	}

	region := viper.GetString("region")
	baseURL := viper.GetString("base_url")

	if region == "" && baseURL == "" {
		return nil, ErrRegionNotConfigured
	}

	config := &alma.Config{
		APIKey:  apiKey,
		Region:  alma.Region(region),
		BaseURL: baseURL,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = newZerologAdapter()
	}

	client, err := almaclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// zerologAdapter bridges the alma.Logger interface onto a zerolog console
// logger writing to stderr.
type zerologAdapter struct {
	logger zerolog.Logger
}

func newZerologAdapter() *zerologAdapter {
	output := zerolog.ConsoleWriter{Out: os.Stderr}

	return &zerologAdapter{
		logger: zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger(),
	}
}

func (a *zerologAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug().Fields(fields).Msg(msg)
}

func (a *zerologAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info().Fields(fields).Msg(msg)
}

func (a *zerologAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn().Fields(fields).Msg(msg)
}

func (a *zerologAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error().Fields(fields).Msg(msg)
}

// StandardJSONRenderer writes any value as indented JSON to stdout.
func StandardJSONRenderer(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", defaultJSONIndent)

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes any value as YAML to stdout.
func StandardYAMLRenderer(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return encoder.Close()
}

// loadRecordFile reads a JSON record file into the given destination.
func loadRecordFile(path string, dest interface{}) error {
	if path == "" {
		return ErrRecordFileRequired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading record file: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parsing record file: %w", err)
	}

	return nil
}

func codeDescValue(codeDesc *alma.CodeDesc) string {
	if codeDesc == nil {
		return ""
	}

	if codeDesc.Desc != "" {
		return codeDesc.Desc
	}

	return codeDesc.Value
}

func outputFormat() string {
	return viper.GetString("output")
}
