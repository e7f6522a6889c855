package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pressdigest/internal/pipeline"
	"github.com/dgallion1/pressdigest/internal/report"
	"github.com/dgallion1/pressdigest/internal/summarize"
)

var (
	reportURL      string
	reportSelect   string
	reportOut      string
	reportDate     string
	reportMarkdown bool
)

var reportCmd = &cobra.Command{
	Use:   "report FILE",
	Short: "Summarize the articles of a press-digest PDF into a Word report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportURL, "url", "", "public URL of the PDF; titles link to their page")
	reportCmd.Flags().StringVarP(&reportSelect, "select", "s", "", `articles to summarize, e.g. "1,3,4" (default all)`)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output .docx path (default from the report date)")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "report date as YYYY-MM-DD (default today)")
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", false, "also print the report as Markdown")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.AnthropicAPIKey == "" {
		return errors.New("ANTHROPIC_API_KEY is required")
	}
	detectCfg, err := cfg.Detection()
	if err != nil {
		return err
	}

	date := time.Now()
	if reportDate != "" {
		date, err = time.ParseInLocation("2006-01-02", reportDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}
	out := reportOut
	if out == "" {
		out = report.FileName(date)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := summarize.NewClient(cfg.Summarizer())
	defer client.Close()

	job := &pipeline.Job{
		ID:        "cli",
		Filename:  args[0],
		HasCover:  hasCover,
		PDFURL:    reportURL,
		Selection: reportSelect,
		Status:    pipeline.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData(data)

	w := pipeline.NewWorker(client, pipeline.PDFOpener(pdfOptions(cfg)), detectCfg, newLogger(), cfg.MaxRetries)
	w.Process(ctx, job)

	snap := job.Snapshot()
	for _, e := range snap.Progress.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", e)
	}
	if len(snap.Items) == 0 {
		return fmt.Errorf("no summaries produced (%s)", snap.Status)
	}

	opts := report.Options{
		Date:       date,
		Department: cfg.Department,
		LogoPath:   cfg.LogoPath,
		PDFURL:     reportURL,
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.WriteDOCX(f, snap.Items, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	if reportMarkdown {
		fmt.Fprint(cmd.OutOrStdout(), report.Markdown(snap.Items, opts))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d of %d articles)\n", out, len(snap.Items), snap.Progress.Selected)
	return nil
}
