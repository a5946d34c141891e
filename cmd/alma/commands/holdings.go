package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// NewHoldingsCommand creates the holdings command group.
func NewHoldingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "holdings",
		Aliases: []string{"holding"},
		Short:   "Manage holding records",
		Long:    "List, get, create, update, and delete holdings of a bibliographic record",
	}

	cmd.AddCommand(newHoldingsListCommand())
	cmd.AddCommand(newHoldingsGetCommand())
	cmd.AddCommand(newHoldingsCreateCommand())
	cmd.AddCommand(newHoldingsUpdateCommand())
	cmd.AddCommand(newHoldingsDeleteCommand())

	return cmd
}

func newHoldingsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list MMS_ID",
		Short: "List holdings of a bib",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var opts *alma.ListOptions
			if limit > 0 {
				opts = &alma.ListOptions{Limit: limit}
			}

			holdings, err := client.Holdings().List(context.Background(), args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to list holdings: %w", err)
			}

			return outputHoldings(holdings)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records to fetch (0 = all)")

	return cmd
}

func newHoldingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get MMS_ID HOLDING_ID",
		Short: "Get a holding record",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			holding, err := client.Holdings().Get(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get holding: %w", err)
			}

			return outputHolding(holding)
		},
	}
}

func newHoldingsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create MMS_ID",
		Short: "Create a holding record",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var record alma.Holding
			if err := loadRecordFile(file, &record); err != nil {
				return err
			}

			holding, err := client.Holdings().Create(context.Background(), args[0], &record)
			if err != nil {
				return fmt.Errorf("failed to create holding: %w", err)
			}

			return outputHolding(holding)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON record file")

	return cmd
}

func newHoldingsUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update MMS_ID HOLDING_ID",
		Short: "Update a holding record",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var record alma.Holding
			if err := loadRecordFile(file, &record); err != nil {
				return err
			}

			holding, err := client.Holdings().Update(context.Background(), args[0], args[1], &record)
			if err != nil {
				return fmt.Errorf("failed to update holding: %w", err)
			}

			return outputHolding(holding)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON record file")

	return cmd
}

func newHoldingsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete MMS_ID HOLDING_ID",
		Short: "Delete a holding record",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Holdings().Delete(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to delete holding: %w", err)
			}

			fmt.Printf("Holding %s deleted\n", args[1])

			return nil
		},
	}
}

func outputHoldings(holdings []alma.Holding) error {
	switch outputFormat() {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(holdings)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(holdings)
	default:
		return renderHoldingsTable(holdings)
	}
}

func renderHoldingsTable(holdings []alma.Holding) error {
	if len(holdings) == 0 {
		_, _ = os.Stdout.WriteString("No holdings found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Holding ID", "Library", "Location", "Call Number")

	for _, holding := range holdings {
		_ = table.Append(holding.HoldingID,
			codeDescValue(holding.Library),
			codeDescValue(holding.Location),
			holding.CallNumber)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func outputHolding(holding *alma.Holding) error {
	switch outputFormat() {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(holding)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(holding)
	default:
		return renderHoldingTable(holding)
	}
}

func renderHoldingTable(holding *alma.Holding) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Holding ID", holding.HoldingID)
	_ = table.Append("Library", codeDescValue(holding.Library))
	_ = table.Append("Location", codeDescValue(holding.Location))
	_ = table.Append("Call Number", holding.CallNumber)

	if holding.CopyID != "" {
		_ = table.Append("Copy ID", holding.CopyID)
	}

	if holding.BibData != nil {
		_ = table.Append("Bib", fmt.Sprintf("%s (%s)", holding.BibData.Title, holding.BibData.MMSID))
	}

	_ = table.Append("Modified", holding.LastModifiedDate)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
