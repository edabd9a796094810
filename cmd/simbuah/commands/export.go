package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/simbuah/go-api-http-client/warehouse"
	"github.com/spf13/cobra"
)

// ExportCommand downloads a report file
func ExportCommand(opts *globalOptions) *cobra.Command {
	var (
		format    string
		startDate string
		endDate   string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "export <penjualan|transaksi>",
		Short: "Download a report as pdf, excel or csv",
		Example: color.HiBlackString(`  # Sales report for May as Excel
  simbuah export penjualan --format=excel --start=2024-05-01 --end=2024-05-31`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(warehouse.ReportDateLayout, startDate)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			end, err := time.Parse(warehouse.ReportDateLayout, endDate)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}

			svc, closeStore, err := opts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()

			var buf bytes.Buffer
			filename, err := svc.ExportReport(cmd.Context(), args[0], format, start, end, &buf)
			if err != nil {
				return err
			}

			path := filepath.Join(outDir, filepath.Base(filename))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", color.HiCyanString(path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", warehouse.FormatPDF, "pdf, excel or csv")
	cmd.Flags().StringVar(&startDate, "start", "", "first day of the report, YYYY-MM-DD")
	cmd.Flags().StringVar(&endDate, "end", "", "last day of the report, YYYY-MM-DD")
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "directory to save the file in")
	return cmd
}
