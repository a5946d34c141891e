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

// NewItemsCommand creates the items command group.
func NewItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Manage item records",
		Long:    "List, get, create, update, and delete physical items of a holding",
	}

	cmd.AddCommand(newItemsListCommand())
	cmd.AddCommand(newItemsGetCommand())
	cmd.AddCommand(newItemsBarcodeCommand())
	cmd.AddCommand(newItemsCreateCommand())
	cmd.AddCommand(newItemsUpdateCommand())
	cmd.AddCommand(newItemsDeleteCommand())

	return cmd
}

func newItemsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list MMS_ID HOLDING_ID",
		Short: "List items of a holding",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var opts *alma.ListOptions
			if limit > 0 {
				opts = &alma.ListOptions{Limit: limit}
			}

			items, err := client.Items().List(context.Background(), args[0], args[1], opts)
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			return outputItems(items)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records to fetch (0 = all)")

	return cmd
}

func newItemsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get MMS_ID HOLDING_ID ITEM_PID",
		Short: "Get an item record",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			item, err := client.Items().Get(context.Background(), args[0], args[1], args[2])
			if err != nil {
				return fmt.Errorf("failed to get item: %w", err)
			}

			return outputItem(item)
		},
	}
}

func newItemsBarcodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "barcode BARCODE",
		Short: "Look an item up by barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			item, err := client.Items().GetByBarcode(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get item by barcode: %w", err)
			}

			return outputItem(item)
		},
	}
}

func newItemsCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create MMS_ID HOLDING_ID",
		Short: "Create an item record",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var record alma.Item
			if err := loadRecordFile(file, &record); err != nil {
				return err
			}

			item, err := client.Items().Create(context.Background(), args[0], args[1], &record)
			if err != nil {
				return fmt.Errorf("failed to create item: %w", err)
			}

			return outputItem(item)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON record file")

	return cmd
}

func newItemsUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update MMS_ID HOLDING_ID ITEM_PID",
		Short: "Update an item record",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var record alma.Item
			if err := loadRecordFile(file, &record); err != nil {
				return err
			}

			item, err := client.Items().Update(context.Background(), args[0], args[1], args[2], &record)
			if err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}

			return outputItem(item)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON record file")

	return cmd
}

func newItemsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete MMS_ID HOLDING_ID ITEM_PID",
		Short: "Delete an item record",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client.Items().Delete(context.Background(), args[0], args[1], args[2]); err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}

			fmt.Printf("Item %s deleted\n", args[2])

			return nil
		},
	}
}

func outputItems(items []alma.Item) error {
	switch outputFormat() {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(items)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(items)
	default:
		return renderItemsTable(items)
	}
}

func renderItemsTable(items []alma.Item) error {
	if len(items) == 0 {
		_, _ = os.Stdout.WriteString("No items found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("PID", "Barcode", "Status", "Location", "Description")

	for _, item := range items {
		_ = table.Append(item.ItemData.PID,
			item.ItemData.Barcode,
			codeDescValue(item.ItemData.BaseStatus),
			codeDescValue(item.ItemData.Location),
			item.ItemData.Description)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func outputItem(item *alma.Item) error {
	switch outputFormat() {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(item)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(item)
	default:
		return renderItemTable(item)
	}
}

func renderItemTable(item *alma.Item) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("PID", item.ItemData.PID)
	_ = table.Append("Barcode", item.ItemData.Barcode)
	_ = table.Append("Status", codeDescValue(item.ItemData.BaseStatus))
	_ = table.Append("Material", codeDescValue(item.ItemData.PhysicalMaterialType))
	_ = table.Append("Library", codeDescValue(item.ItemData.Library))
	_ = table.Append("Location", codeDescValue(item.ItemData.Location))

	if item.ItemData.PublicNote != "" {
		_ = table.Append("Public Note", item.ItemData.PublicNote)
	}

	if item.HoldingData != nil {
		_ = table.Append("Holding", item.HoldingData.HoldingID)
	}

	if item.BibData != nil {
		_ = table.Append("Bib", fmt.Sprintf("%s (%s)", item.BibData.Title, item.BibData.MMSID))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
