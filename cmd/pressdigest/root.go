package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pressdigest/internal/config"
	"github.com/dgallion1/pressdigest/internal/parser"
)

var (
	envFile      string
	templateFile string
	verbose      bool
	hasCover     bool
)

var rootCmd = &cobra.Command{
	Use:   "pressdigest",
	Short: "Turn a press-digest PDF into a summarized press report",
	Long: `pressdigest reads a press-digest PDF whose first page (or second, after a
cover) lists its articles, finds where each article starts, and writes a Word
report with one summary per article.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "environment file to load")
	rootCmd.PersistentFlags().StringVarP(&templateFile, "template", "t", "", "detection template (YAML), overrides TEMPLATE_FILE")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().BoolVar(&hasCover, "cover", false, "the document starts with a cover page before the index")
}

func loadConfig() config.Config {
	cfg := config.Load(envFile)
	if templateFile != "" {
		cfg.TemplateFile = templateFile
	}
	return cfg
}

func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func pdfOptions(cfg config.Config) parser.PDFOptions {
	return parser.PDFOptions{FallbackPdftotext: cfg.PDFFallbackPdftotext}
}

func indexPage() int {
	if hasCover {
		return 1
	}
	return 0
}
