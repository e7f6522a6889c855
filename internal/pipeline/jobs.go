package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/pressdigest/internal/digest"
	"github.com/dgallion1/pressdigest/internal/report"
)

// JobStatus represents the state of a digest job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusDetecting   JobStatus = "detecting"
	StatusSummarizing JobStatus = "summarizing"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusPartial     JobStatus = "partial"
)

// Done reports whether the job reached a final state.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusPartial
}

// Job tracks the state of a single press digest.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	// HasCover means a cover page precedes the index page.
	HasCover  bool   `json:"has_cover"`
	PDFURL    string `json:"pdf_url,omitempty"`
	Selection string `json:"selection,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	articles []digest.Article
	items    []report.Item
	errors   []string
}

// Progress tracks summarization progress.
type Progress struct {
	TotalArticles int      `json:"total_articles"`
	Selected      int      `json:"selected"`
	Summarized    int      `json:"summarized"`
	Errors        []string `json:"errors"`
}

// IndexPage returns the zero-based page holding the article index.
func (j *Job) IndexPage() int {
	if j.HasCover {
		return 1
	}
	return 0
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetArticles records the detected articles and how many were selected.
func (j *Job) SetArticles(articles []digest.Article, selected int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.articles = articles
	j.Progress.TotalArticles = len(articles)
	j.Progress.Selected = selected
	j.UpdatedAt = time.Now()
}

// AddItem appends a summarized article.
func (j *Job) AddItem(it report.Item) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.items = append(j.items, it)
	j.Progress.Summarized++
	j.UpdatedAt = time.Now()
}

// Items returns a copy of the summarized articles.
func (j *Job) Items() []report.Item {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]report.Item(nil), j.items...)
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// ArticleInfo describes a detected article without its body text.
type ArticleInfo struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	Empty     bool   `json:"empty,omitempty"`
}

// DescribeArticles numbers articles from 1 and drops their body text.
func DescribeArticles(articles []digest.Article) []ArticleInfo {
	out := make([]ArticleInfo, len(articles))
	for i, a := range articles {
		out[i] = ArticleInfo{
			Number:    i + 1,
			Title:     a.Title,
			StartPage: a.StartPage,
			EndPage:   a.EndPage,
			Empty:     a.Empty(),
		}
	}
	return out
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string        `json:"job_id"`
	Status    JobStatus     `json:"status"`
	Phase     string        `json:"phase"`
	Filename  string        `json:"filename"`
	HasCover  bool          `json:"has_cover"`
	PDFURL    string        `json:"pdf_url,omitempty"`
	Progress  Progress      `json:"progress"`
	Articles  []ArticleInfo `json:"articles"`
	Items     []report.Item `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	items := append([]report.Item{}, j.items...)
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		HasCover: j.HasCover,
		PDFURL:   j.PDFURL,
		Progress: Progress{
			TotalArticles: j.Progress.TotalArticles,
			Selected:      j.Progress.Selected,
			Summarized:    j.Progress.Summarized,
			Errors:        errs,
		},
		Articles:  DescribeArticles(j.articles),
		Items:     items,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
