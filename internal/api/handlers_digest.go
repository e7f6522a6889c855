package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dgallion1/pressdigest/internal/digest"
	"github.com/dgallion1/pressdigest/internal/parser"
	"github.com/dgallion1/pressdigest/internal/pipeline"
	"github.com/dgallion1/pressdigest/internal/report"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// upload is a validated multipart PDF upload.
type upload struct {
	filename string
	data     []byte
	hasCover bool
}

// readUpload parses the multipart form and writes the error response itself
// when it returns false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	// Values stay readable after the temp files are gone.
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return upload{}, false
	}

	hasCover := false
	if v := r.FormValue("has_cover"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, "has_cover must be a boolean", http.StatusBadRequest)
			return upload{}, false
		}
		hasCover = b
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return upload{}, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return upload{}, false
	}

	return upload{filename: filename, data: data, hasCover: hasCover}, true
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	res, err := s.orchestrator.Detect(up.data, up.hasCover)
	if err != nil {
		s.log.Warn("detection failed", "filename", up.filename, "error", err)
		if errors.Is(err, digest.ErrPageOutOfRange) {
			err = fmt.Errorf("document has no index page: %w", err)
		}
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := map[string]any{
		"filename":    up.filename,
		"page_count":  res.PageCount,
		"index_page":  res.IndexPage,
		"index_lines": nonNil(res.IndexLines),
		"articles":    pipeline.DescribeArticles(res.Articles),
	}
	if err := res.Err(); err != nil {
		resp["warning"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateDigest(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	pdfURL := strings.TrimSpace(r.FormValue("pdf_url"))
	if pdfURL != "" {
		u, err := url.Parse(pdfURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			jsonError(w, "pdf_url must be an absolute http(s) URL", http.StatusBadRequest)
			return
		}
		u.Fragment = ""
		pdfURL = u.String()
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:          uuid.NewString(),
		Status:      pipeline.StatusQueued,
		Phase:       "queued",
		Filename:    up.filename,
		HasCover:    up.hasCover,
		PDFURL:      pdfURL,
		Selection:   r.FormValue("select"),
		ContentHash: pipeline.ContentHashHex(up.data),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	job.SetFileData(up.data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/digests/%s", job.ID),
	})
}

func (s *Server) handleGetDigest(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// finishedItems returns the items of a job that produced a report, writing
// the error response itself when it returns false.
func (s *Server) finishedItems(w http.ResponseWriter, r *http.Request) (*pipeline.Job, []report.Item, bool) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, nil, false
	}
	snap := job.Snapshot()
	if !snap.Status.Done() {
		jsonError(w, fmt.Sprintf("job is still %s", snap.Status), http.StatusConflict)
		return nil, nil, false
	}
	if len(snap.Items) == 0 {
		jsonError(w, "job produced no summaries", http.StatusConflict)
		return nil, nil, false
	}
	return job, snap.Items, true
}

func (s *Server) reportOptions(job *pipeline.Job, now time.Time) report.Options {
	return report.Options{
		Date:       now,
		Department: s.cfg.Department,
		LogoPath:   s.cfg.LogoPath,
		PDFURL:     job.PDFURL,
	}
}

func (s *Server) handleReportDOCX(w http.ResponseWriter, r *http.Request) {
	job, items, ok := s.finishedItems(w, r)
	if !ok {
		return
	}

	now := time.Now()
	var buf bytes.Buffer
	if err := report.WriteDOCX(&buf, items, s.reportOptions(job, now)); err != nil {
		s.log.Error("render docx failed", "job_id", job.ID, "error", err)
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": report.FileName(now),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	job, items, ok := s.finishedItems(w, r)
	if !ok {
		return
	}

	out, err := report.HTML(items, s.reportOptions(job, time.Now()))
	if err != nil {
		s.log.Error("render html failed", "job_id", job.ID, "error", err)
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
