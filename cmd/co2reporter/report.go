package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhaniamnd/co2-reporter/internal/calculator"
	"github.com/dhaniamnd/co2-reporter/internal/config"
	"github.com/dhaniamnd/co2-reporter/internal/exporter"
	"github.com/dhaniamnd/co2-reporter/internal/importer"
	"github.com/dhaniamnd/co2-reporter/internal/util"
)

// reportOptions report 命令参数
type reportOptions struct {
	sheet   string
	year    int
	plant   string
	csvPath string
	xlsPath string
}

func newReportCmd(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report FILE...",
		Short: "Import workbooks and print emission totals",
		Long: `Imports one or more .xlsx workbooks in the order given, prints a per-file
ingestion report and the CO2 totals by plant, and optionally writes the
results as CSV and/or an XLSX report.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, logger, err := root.load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if opts.sheet == "" {
				opts.sheet = cfg.Import.Sheet
			}
			return runReport(cmd.Context(), cmd.OutOrStdout(), cfg, logger, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "sheet name to read (default is the first sheet)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "report year for the XLSX monthly sheet (default is the latest year in the data)")
	cmd.Flags().StringVar(&opts.plant, "plant", "", "restrict the XLSX monthly sheet to one plant")
	cmd.Flags().StringVar(&opts.csvPath, "csv", "", "write the computed records to this CSV file")
	cmd.Flags().StringVar(&opts.xlsPath, "xlsx", "", "write the XLSX report to this file")
	return cmd
}

func runReport(ctx context.Context, out io.Writer, cfg *config.AppConfig, logger *slog.Logger, files []string, opts *reportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	uploads := make([]importer.Upload, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		uploads = append(uploads, importer.Upload{Name: filepath.Base(path), Data: data})
	}

	factors := cfg.Factors.EmissionFactors()
	batch, err := importer.NewCoordinator(nil, nil, logger).Import(ctx, uploads, factors, importer.ImportOptions{SheetName: opts.sheet})
	if err != nil {
		return err
	}

	printBatch(out, batch)
	if len(batch.Records) == 0 {
		return fmt.Errorf("no valid records in %d file(s)", len(files))
	}

	if opts.csvPath != "" {
		if err := writeCSVFile(opts.csvPath, batch); err != nil {
			return err
		}
		fmt.Fprintf(out, "CSV written: %s\n", opts.csvPath)
	}
	if opts.xlsPath != "" {
		year := opts.year
		if year == 0 {
			year = calculator.LatestYear(batch.Records, 0)
		}
		report := exporter.NewMonthlyReport(batch.Records, factors, year, opts.plant)
		f, err := exporter.BuildWorkbook(batch.Records, report, nil)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(opts.xlsPath); err != nil {
			return fmt.Errorf("writing %s: %w", opts.xlsPath, err)
		}
		fmt.Fprintf(out, "XLSX written: %s\n", opts.xlsPath)
	}
	return nil
}

func printBatch(out io.Writer, batch *importer.Batch) {
	fmt.Fprintln(out, "Files:")
	fmt.Fprintln(out, "----------------------------------------------------------------")
	fmt.Fprintf(out, "%-28s  %-7s  %6s  %8s  %8s\n", "File", "Layout", "Read", "Accepted", "Rejected")
	fmt.Fprintln(out, "----------------------------------------------------------------")
	for _, r := range batch.Reports {
		fmt.Fprintf(out, "%-28s  %-7s  %6d  %8d  %8d\n", r.Filename, r.Strategy, r.RowsRead, r.RowsAccepted, r.RowsRejected())
		if len(r.Warnings) > 0 {
			fmt.Fprintf(out, "  warnings: %s\n", strings.Join(r.Warnings, ", "))
		}
	}
	for _, f := range batch.Failed {
		fmt.Fprintf(out, "%-28s  failed: %s\n", f.Filename, f.Error)
	}

	if len(batch.Records) == 0 {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Total CO2 by plant (t):")
	fmt.Fprintln(out, "----------------------------------------")
	for _, kt := range calculator.SumBy(batch.Records, calculator.DimensionPlant) {
		fmt.Fprintf(out, "%-24s  %14s\n", kt.Key, util.FormatTonnes(kt.TotalCO2))
	}
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "%-24s  %14s\n", "Grand total", util.FormatTonnes(calculator.GrandTotal(batch.Records)))
	fmt.Fprintf(out, "%d records\n", len(batch.Records))
}

func writeCSVFile(path string, batch *importer.Batch) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := exporter.WriteCSV(f, batch.Records); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
