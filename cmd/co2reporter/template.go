package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhaniamnd/co2-reporter/internal/exporter"
)

func newTemplateCmd() *cobra.Command {
	var (
		year  int
		plant string
		out   string
	)
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a blank 12-month input workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			f, err := exporter.BuildTemplate(year, plant)
			if err != nil {
				return err
			}
			defer f.Close()

			if out == "" {
				name := plant
				if name == "" {
					name = exporter.DefaultTemplatePlant
				}
				out = exporter.TemplateFilename(year, name)
			}
			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template written: %s\n", out)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "template year (default is the current year)")
	cmd.Flags().StringVar(&plant, "plant", "", "plant name to prefill")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default is co2-input-template_<plant>_<year>.xlsx)")
	return cmd
}
