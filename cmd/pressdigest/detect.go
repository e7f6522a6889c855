package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pressdigest/internal/digest"
	"github.com/dgallion1/pressdigest/internal/pipeline"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE",
	Short: "List the articles found in a press-digest PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	detectCfg, err := cfg.Detection()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}

	w := pipeline.NewWorker(nil, pipeline.PDFOpener(pdfOptions(cfg)), detectCfg, newLogger(), 1)
	res, err := w.Detect(data, indexPage())
	if err != nil {
		return err
	}

	printArticles(cmd.OutOrStdout(), res, digest.NewSourceSplitter(detectCfg.KnownSources))
	if err := res.Err(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (is the cover setting right?)\n", err)
	}
	return nil
}

func printArticles(out io.Writer, res *digest.Result, splitter *digest.SourceSplitter) {
	fmt.Fprintf(out, "%d pages, %d index lines, %d articles\n\n", res.PageCount, len(res.IndexLines), len(res.Articles))
	for _, info := range pipeline.DescribeArticles(res.Articles) {
		st := splitter.Split(info.Title)
		pages := fmt.Sprintf("pages %d-%d", info.StartPage, info.EndPage)
		if info.Empty {
			pages = "no pages"
		}
		fmt.Fprintf(out, "%2d. %s (%s)\n", info.Number, st.Headline, pages)
		if st.Source != "" {
			fmt.Fprintf(out, "    %s\n", st.Source)
		}
	}
}
