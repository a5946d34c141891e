package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/biblio-io/alma-client/internal/constants"
	"github.com/biblio-io/alma-client/pkg/alma"
)

// NewAnalyticsCommand creates the analytics command group.
func NewAnalyticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Run Analytics reports",
		Long:  "Run Alma Analytics reports and browse the report catalog",
	}

	cmd.AddCommand(newAnalyticsReportCommand())
	cmd.AddCommand(newAnalyticsPathsCommand())

	return cmd
}

func newAnalyticsReportCommand() *cobra.Command {
	var (
		limit      int
		filter     string
		noColNames bool
	)

	cmd := &cobra.Command{
		Use:   "report PATH",
		Short: "Run a report",
		Long:  "Run the Analytics report at the given catalog path, following resumption tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			var opts *alma.ReportOptions
			if limit > 0 || filter != "" || noColNames {
				opts = &alma.ReportOptions{Limit: limit, Filter: filter, NoColumnNames: noColNames}
			}

			report, err := client.Analytics().GetReport(context.Background(), args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to run report: %w", err)
			}

			return outputReport(report)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "rows per fetch (25-1000, multiples of 25)")
	cmd.Flags().StringVar(&filter, "filter", "", "OBIEE XML filter")
	cmd.Flags().BoolVar(&noColNames, "no-col-names", false, "suppress column heading resolution")

	return cmd
}

func newAnalyticsPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths [FOLDER]",
		Short: "List reports and folders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			folder := ""
			if len(args) == 1 {
				folder = args[0]
			}

			paths, err := client.Analytics().ListPaths(context.Background(), folder)
			if err != nil {
				return fmt.Errorf("failed to list analytics paths: %w", err)
			}

			return outputPaths(paths)
		},
	}
}

func outputReport(report *alma.AnalyticsReportResults) error {
	switch outputFormat() {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(report)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(report)
	default:
		return renderReportTable(report)
	}
}

func renderReportTable(report *alma.AnalyticsReportResults) error {
	if len(report.Rows) == 0 {
		_, _ = os.Stdout.WriteString("Report returned no rows\n")

		return nil
	}

	columns := reportColumnKeys(report)

	header := make([]any, 0, len(columns))
	for _, column := range columns {
		header = append(header, column)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header...)

	for _, row := range report.Rows {
		cells := make([]any, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, row[column])
		}

		_ = table.Append(cells...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if !report.IsFinished {
		fmt.Printf("Partial result: %d rows fetched, resume with token %s\n",
			len(report.Rows), report.ResumptionToken)
	}

	return nil
}

// reportColumnKeys derives a stable column order: the row keys, sorted so
// the positional ColumnN names the vendor uses line up left to right.
func reportColumnKeys(report *alma.AnalyticsReportResults) []string {
	seen := map[string]bool{}
	columns := []string{}

	for _, row := range report.Rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true

				columns = append(columns, key)
			}
		}
	}

	sort.Strings(columns)

	return columns
}

func outputPaths(paths []alma.AnalyticsPath) error {
	switch outputFormat() {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(paths)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(paths)
	default:
		return renderPathsTable(paths)
	}
}

func renderPathsTable(paths []alma.AnalyticsPath) error {
	if len(paths) == 0 {
		_, _ = os.Stdout.WriteString("No paths found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Path", "Type", "Name")

	for _, path := range paths {
		_ = table.Append(path.Path, path.Type, path.Name)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
