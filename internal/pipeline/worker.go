package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/pressdigest/internal/digest"
	"github.com/dgallion1/pressdigest/internal/parser"
	"github.com/dgallion1/pressdigest/internal/report"
	"github.com/dgallion1/pressdigest/internal/summarize"
)

// Summarizer condenses one article. *summarize.Client implements it.
type Summarizer interface {
	Summarize(ctx context.Context, articleText, titleHint string) (string, error)
}

var _ Summarizer = (*summarize.Client)(nil)

// Document is an opened upload.
type Document interface {
	digest.Pages
	Close() error
}

// DocumentOpener turns uploaded bytes into a Document.
type DocumentOpener func(data []byte) (Document, error)

// PDFOpener opens uploads with the PDF backend.
func PDFOpener(opts parser.PDFOptions) DocumentOpener {
	return func(data []byte) (Document, error) {
		doc, err := parser.OpenPDF(bytes.NewReader(data), opts)
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
}

// Worker processes a single digest job.
type Worker struct {
	sum      Summarizer
	open     DocumentOpener
	log      *slog.Logger
	detect   digest.Config
	splitter *digest.SourceSplitter

	maxAttempts int
	backoff     func(attempt int) time.Duration
}

func NewWorker(sum Summarizer, open DocumentOpener, detect digest.Config, log *slog.Logger, maxAttempts int) *Worker {
	if maxAttempts <= 0 {
		maxAttempts = MaxRetries
	}
	return &Worker{
		sum:         sum,
		open:        open,
		log:         log,
		detect:      detect,
		splitter:    digest.NewSourceSplitter(detect.KnownSources),
		maxAttempts: maxAttempts,
		backoff:     Backoff,
	}
}

// Detect opens the upload and finds its articles.
func (w *Worker) Detect(data []byte, indexPage int) (*digest.Result, error) {
	doc, err := w.open(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()
	return digest.Run(doc, indexPage, w.detect)
}

// Process runs detection and summarization for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Detect
	job.SetStatus(StatusDetecting, "detecting")
	res, err := w.Detect(job.FileData(), job.IndexPage())
	job.SetFileData(nil)
	if err != nil {
		log.Error("detection failed", "error", err)
		job.AddError(fmt.Sprintf("detect: %s", err))
		w.finish(job, StatusFailed, "detecting")
		return
	}
	articlesDetected.Observe(float64(len(res.Articles)))

	selected := digest.ParseSelection(job.Selection, len(res.Articles))
	job.SetArticles(res.Articles, len(selected))
	log.Info("detected articles", "articles", len(res.Articles), "selected", len(selected), "pages", res.PageCount)

	if err := res.Err(); err != nil {
		log.Warn("no titles detected")
		job.AddError(err.Error())
		w.finish(job, StatusFailed, "detecting")
		return
	}
	if len(selected) == 0 {
		job.AddError("selection matched no articles")
		w.finish(job, StatusFailed, "detecting")
		return
	}

	// Phase 2: Summarize selected articles in order.
	job.SetStatus(StatusSummarizing, "summarizing")
	summarized := 0
	hadErrors := false
	for _, idx := range selected {
		a := res.Articles[idx]
		if ctx.Err() != nil {
			job.AddError(fmt.Sprintf("article %d: %s", idx+1, ctx.Err()))
			hadErrors = true
			break
		}
		if a.Empty() || strings.TrimSpace(a.BodyText) == "" {
			log.Warn("article has no text", "article", idx+1, "title", a.Title)
			job.AddError(fmt.Sprintf("article %d: no text", idx+1))
			hadErrors = true
			continue
		}

		headline := w.splitter.Split(a.Title).Headline
		summary, err := w.summarize(ctx, log, idx, a.BodyText, headline)
		if err != nil {
			log.Error("summarization failed", "article", idx+1, "error", err)
			job.AddError(fmt.Sprintf("article %d: %s", idx+1, err))
			hadErrors = true
			continue
		}
		job.AddItem(report.NewItem(a, summary, w.splitter))
		summarized++
	}

	log.Info("summarization complete", "summarized", summarized, "selected", len(selected))

	switch {
	case hadErrors && summarized > 0:
		w.finish(job, StatusPartial, "done")
	case hadErrors:
		w.finish(job, StatusFailed, "summarizing")
	default:
		w.finish(job, StatusCompleted, "done")
	}
}

func (w *Worker) summarize(ctx context.Context, log *slog.Logger, idx int, text, headline string) (string, error) {
	return withRetry(ctx, w.maxAttempts, w.backoff,
		func(attempt int, err error) {
			log.Warn("retryable summarization error", "article", idx+1, "attempt", attempt, "error", err)
		},
		func() (string, error) { return w.sum.Summarize(ctx, text, headline) },
	)
}

func (w *Worker) finish(job *Job, status JobStatus, phase string) {
	job.SetStatus(status, phase)
	jobsTotal.WithLabelValues(string(status)).Inc()
}
