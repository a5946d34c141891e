package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/pkg/alma"
)

var errUnsupportedRegionValue = errors.New("unsupported region")

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the alma CLI configuration stored in $HOME/.alma/config.yml",
	}

	cmd.AddCommand(newConfigSetKeyCommand())
	cmd.AddCommand(newConfigSetRegionCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key",
		Short: "Store the API key",
		Long:  "Prompt for the Alma API key without echoing it and store it in the config file",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprint(os.Stderr, "API key: ")

			keyBytes, err := term.ReadPassword(syscall.Stdin)

			fmt.Fprintln(os.Stderr)

			if err != nil {
				return fmt.Errorf("reading API key: %w", err)
			}

			viper.Set("api_key", strings.TrimSpace(string(keyBytes)))

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Println("API key saved")

			return nil
		},
	}
}

func newConfigSetRegionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-region REGION",
		Short: "Store the Alma region",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			region := alma.Region(strings.ToLower(args[0]))
			if _, ok := region.BaseURL(); !ok {
				return fmt.Errorf("%w: %q (supported: %v)", errUnsupportedRegionValue, args[0], alma.Regions())
			}

			viper.Set("region", string(region))

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Region set to %s\n", region)

			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			apiKey := viper.GetString("api_key")
			masked := "(not set)"

			if apiKey != "" {
				masked = "***"
				if len(apiKey) > 4 {
					masked = "***" + apiKey[len(apiKey)-4:]
				}
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Setting", "Value")

			_ = table.Append("API Key", masked)
			_ = table.Append("Region", viper.GetString("region"))
			_ = table.Append("Base URL", viper.GetString("base_url"))
			_ = table.Append("Output", viper.GetString("output"))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()

	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}

		configDir := filepath.Join(home, ".alma")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// The file holds the API key; keep it owner-readable only.
	if err := os.Chmod(configFile, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("restricting config file permissions: %w", err)
	}

	return nil
}
