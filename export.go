package main

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"civicreport-be/dashboard"
	"civicreport-be/export"
	"civicreport-be/query"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOut     string
	exportFilters []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write reports as CSV",
	Long: `Writes the stored reports as CSV, using the same filters as the
dashboard query string, e.g.

  civicreport export --filter municipality=sol-plaatje --filter status=pending --out pending.csv`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringArrayVarP(&exportFilters, "filter", "f", nil, "key=value listing filter, repeatable")
}

func runExport(cmd *cobra.Command, args []string) error {
	values := url.Values{}
	for _, f := range exportFilters {
		parsed, err := url.ParseQuery(f)
		if err != nil {
			return fmt.Errorf("filter %q: %w", f, err)
		}
		for k, v := range parsed {
			values[k] = append(values[k], v...)
		}
	}
	req, err := dashboard.ParseRequest(values)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close(ctx)

	all, err := b.reports.List(ctx)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	reports := query.Apply(all, dashboard.ReportSchema, req.Params)

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteCSV(w, reports); err != nil {
		return err
	}
	logger.Info("exported reports", zap.Int("count", len(reports)), zap.String("out", exportOut))
	return nil
}
