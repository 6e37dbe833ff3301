package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"biglabo/internal/core"
	"biglabo/internal/record"
)

const maxUploadBytes = 1 << 20 // configuration files are a few KB at most

// handleIndex renders the full simulator page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	view := pageView{
		Groups: buildGroups(s.sim),
		Events: buildEventsView(s.sim),
		Report: buildReportView(s.sim),
	}
	s.mu.Unlock()

	s.render(w, r, "index.html", view)
}

// handleSimulate applies submitted field values and returns the refreshed
// report partial. Unknown keys in the form are ignored so extra form inputs
// (buttons, HTMX metadata) do not fail the update.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	for key, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(values[0]), 10, 64)
		if err != nil {
			continue
		}
		if err := s.sim.Set(key, n); err != nil {
			continue // not a field key
		}
	}
	view := buildReportView(s.sim)
	s.mu.Unlock()

	s.render(w, r, "report.html", view)
}

// handleReport returns the report partial without changing anything. HTMX
// re-fetches it after event mutations via the report:refresh trigger.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	view := buildReportView(s.sim)
	s.mu.Unlock()

	s.render(w, r, "report.html", view)
}

// handleAddEvent registers a custom event and returns the events partial.
func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := r.PostFormValue("name")
	income := parseAmount(r.PostFormValue("income"))
	expense := parseAmount(r.PostFormValue("expense"))
	memo := r.PostFormValue("memo")

	s.mu.Lock()
	err := s.sim.Events().Add(name, income, expense, memo)
	view := buildEventsView(s.sim)
	s.mu.Unlock()

	if err != nil {
		slog.WarnContext(r.Context(), "Rejected event", "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `<div class="error">イベント名を入力してください</div>`)
		return
	}

	w.Header().Set("HX-Trigger", "report:refresh")
	s.render(w, r, "events.html", view)
}

// handleRemoveEvent deletes the event at the submitted index.
func (s *Server) handleRemoveEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	index, err := strconv.Atoi(r.PostFormValue("index"))
	if err != nil {
		http.Error(w, "Invalid event index", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	removeErr := s.sim.Events().RemoveAt(index)
	view := buildEventsView(s.sim)
	s.mu.Unlock()

	if removeErr != nil {
		if errors.Is(removeErr, core.ErrIndexOutOfRange) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("HX-Trigger", "report:refresh")
	s.render(w, r, "events.html", view)
}

// handleReset restores every field and clears the events, then tells HTMX to
// reload the whole page.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	s.sim.Reset()
	s.mu.Unlock()

	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

// handleExportCSV streams the current result table as a BOM-prefixed CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	rows := core.ResultRows(s.sim)
	s.mu.Unlock()

	data, err := record.ResultCSV(rows)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build CSV export", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="simulation_result.csv"`)
	_, _ = w.Write(data)
}

// handleExportConfig downloads the current configuration as a JSON (default)
// or YAML file named <creator><YYYYMMDD>.<ext>.
func (s *Server) handleExportConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	creator := strings.TrimSpace(r.URL.Query().Get("creator"))
	format := record.FormatJSON
	if r.URL.Query().Get("format") == "yaml" {
		format = record.FormatYAML
	}

	now := time.Now()
	s.mu.Lock()
	rec := s.sim.Export(creator, now)
	s.mu.Unlock()

	data, err := record.Encode(rec, format)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode configuration", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	contentType := "application/json"
	if format == record.FormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Filename(creator, now, format)))
	_, _ = w.Write(data)
}

// handleImportConfig replaces the session state from an uploaded file. A
// malformed file leaves the session untouched and reports an error inline.
func (s *Server) handleImportConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, filename, err := readUpload(r, "file")
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected configuration upload", "error", err)
		writeImportError(w, "ファイルを読み込めませんでした")
		return
	}

	rec, err := record.Decode(data, record.FormatForName(filename))
	if err != nil {
		slog.WarnContext(r.Context(), "Malformed configuration file", "filename", filename, "error", err)
		writeImportError(w, "設定ファイルの形式が正しくありません")
		return
	}

	s.mu.Lock()
	s.sim.Import(rec)
	s.mu.Unlock()

	slog.InfoContext(r.Context(), "Imported configuration", "filename", filename, "creator", rec.Creator)
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusOK)
}

func writeImportError(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	fmt.Fprintf(w, `<div class="error">%s</div>`, msg)
}

// readUpload extracts one multipart file field with a size cap.
func readUpload(r *http.Request, field string) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", fmt.Errorf("parse multipart form: %w", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing upload field %q: %w", field, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	return data, header.Filename, nil
}

// parseAmount reads a yen amount from a form value, treating blanks and
// garbage as zero. Negative values are clamped by the event registry.
func parseAmount(v string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// render executes a template, logging instead of half-writing on failure.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render template", "template", name, "error", err)
	}
}
