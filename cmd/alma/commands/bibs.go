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

// NewBibsCommand creates the bibs command group.
func NewBibsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bibs",
		Aliases: []string{"bib"},
		Short:   "Manage bibliographic records",
		Long:    "Get, create, update, and delete Alma bibliographic records",
	}

	cmd.AddCommand(newBibsGetCommand())
	cmd.AddCommand(newBibsCreateCommand())
	cmd.AddCommand(newBibsUpdateCommand())
	cmd.AddCommand(newBibsDeleteCommand())

	return cmd
}

func newBibsGetCommand() *cobra.Command {
	var (
		view   string
		expand string
	)

	cmd := &cobra.Command{
		Use:   "get MMS_ID",
		Short: "Get a bibliographic record",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var opts *alma.GetBibOptions
			if view != "" || expand != "" {
				opts = &alma.GetBibOptions{View: view, Expand: expand}
			}

			bib, err := client.Bibs().Get(context.Background(), args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to get bib: %w", err)
			}

			return outputBib(bib)
		},
	}

	cmd.Flags().StringVar(&view, "view", "", "record view (full, brief)")
	cmd.Flags().StringVar(&expand, "expand", "", "expand computed fields (e.g. p_avail,requests)")

	return cmd
}

func newBibsCreateCommand() *cobra.Command {
	var (
		file    string
		xmlFile string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a bibliographic record",
		Long:  "Create a bibliographic record from a JSON record file or a MARCXML document",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			if xmlFile != "" {
				marcXML, err := os.ReadFile(xmlFile)
				if err != nil {
					return fmt.Errorf("reading MARCXML file: %w", err)
				}

				bib, err := client.Bibs().CreateFromXML(context.Background(), string(marcXML))
				if err != nil {
					return fmt.Errorf("failed to create bib: %w", err)
				}

				return outputBib(bib)
			}

			var record alma.Bib
			if err := loadRecordFile(file, &record); err != nil {
				return err
			}

			bib, err := client.Bibs().Create(context.Background(), &record)
			if err != nil {
				return fmt.Errorf("failed to create bib: %w", err)
			}

			return outputBib(bib)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON record file")
	cmd.Flags().StringVar(&xmlFile, "xml-file", "", "MARCXML record file")

	return cmd
}

func newBibsUpdateCommand() *cobra.Command {
	var (
		file            string
		overrideWarning bool
	)

	cmd := &cobra.Command{
		Use:   "update MMS_ID",
		Short: "Update a bibliographic record",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var record alma.Bib
			if err := loadRecordFile(file, &record); err != nil {
				return err
			}

			var opts *alma.UpdateBibOptions
			if overrideWarning {
				opts = &alma.UpdateBibOptions{OverrideWarning: true}
			}

			bib, err := client.Bibs().Update(context.Background(), args[0], &record, opts)
			if err != nil {
				return fmt.Errorf("failed to update bib: %w", err)
			}

			return outputBib(bib)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON record file")
	cmd.Flags().BoolVar(&overrideWarning, "override-warning", false, "force past cataloging warnings")

	return cmd
}

func newBibsDeleteCommand() *cobra.Command {
	var (
		overrideWarning bool
		reason          string
	)

	cmd := &cobra.Command{
		Use:   "delete MMS_ID",
		Short: "Delete a bibliographic record",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var opts *alma.DeleteBibOptions
			if overrideWarning || reason != "" {
				opts = &alma.DeleteBibOptions{OverrideWarning: overrideWarning, Reason: reason}
			}

			if err := client.Bibs().Delete(context.Background(), args[0], opts); err != nil {
				return fmt.Errorf("failed to delete bib: %w", err)
			}

			fmt.Printf("Bib %s deleted\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&overrideWarning, "override-warning", false, "force past deletion warnings")
	cmd.Flags().StringVar(&reason, "reason", "", "deletion reason code")

	return cmd
}

func outputBib(bib *alma.Bib) error {
	switch outputFormat() {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(bib)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(bib)
	default:
		return renderBibTable(bib)
	}
}

func renderBibTable(bib *alma.Bib) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("MMS ID", bib.MMSID)
	_ = table.Append("Title", bib.Title)
	_ = table.Append("Author", bib.Author)

	if bib.ISBN != "" {
		_ = table.Append("ISBN", bib.ISBN)
	}

	if bib.ISSN != "" {
		_ = table.Append("ISSN", bib.ISSN)
	}

	if bib.Publisher != "" {
		_ = table.Append("Publisher", bib.Publisher)
	}

	if bib.DateOfPublication != "" {
		_ = table.Append("Published", bib.DateOfPublication)
	}

	if bib.CatalogingLevel != nil {
		_ = table.Append("Cataloging Level", codeDescValue(bib.CatalogingLevel))
	}

	_ = table.Append("Modified", bib.LastModifiedDate)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
