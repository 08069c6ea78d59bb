// =============================================================================
// Daily Report Generator - HTTP Server
// =============================================================================
//
// This module exposes the report pipeline over HTTP for ad-hoc use: upload
// an export, see which production dates it contains, preview the grouped
// rows, or download the rendered PDF. Nothing is persisted; every request
// carries its own dataset and is forgotten once answered.
//
// ROUTES:
//   GET  /         Upload form
//   POST /dates    List normalized production dates in the upload
//   POST /preview  Aggregated report model as JSON
//   POST /report   Rendered PDF download
//
// All POST routes accept multipart form data with the export in the
// "file" field and an optional "date" field (defaults to the latest date
// found in the upload).
//
// =============================================================================

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/nas-daily-report/internal/aggregate"
	"github.com/ginjaninja78/nas-daily-report/internal/config"
	"github.com/ginjaninja78/nas-daily-report/internal/generator"
	"github.com/ginjaninja78/nas-daily-report/internal/types"
	"github.com/ginjaninja78/nas-daily-report/internal/validation"
)

// maxUploadBytes caps how much of an upload is held in memory before
// spilling to temp files.
const maxUploadBytes = 64 << 20

// =============================================================================
// SERVER
// =============================================================================

// Server is the HTTP front end over the report pipeline.
type Server struct {
	cfg    *config.Config
	gen    *generator.Generator
	logger *zap.Logger
}

// New creates a Server.
func New(cfg *config.Config, gen *generator.Generator, logger *zap.Logger) *Server {
	return &Server{cfg: cfg, gen: gen, logger: logger}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.logged("index", s.handleIndex))
	mux.HandleFunc("POST /dates", s.logged("dates", s.handleDates))
	mux.HandleFunc("POST /preview", s.logged("preview", s.handlePreview))
	mux.HandleFunc("POST /report", s.logged("report", s.handleReport))
	return mux
}

// ListenAndServe blocks serving requests on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.ServerAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http server listening", zap.String("addr", s.cfg.ServerAddr))
	return srv.ListenAndServe()
}

// logged wraps a handler with request logging.
func (s *Server) logged(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.logger.Info("request handled",
			zap.String("handler", name),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

// handleDates lists the normalized production dates in an upload.
func (s *Server) handleDates(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	dates := aggregate.Dates(ds.Records)
	latest := ""
	if len(dates) > 0 {
		latest = dates[len(dates)-1]
	}

	s.writeJSON(w, http.StatusOK, datesResponse{
		SourceFile: ds.SourceFile,
		Records:    ds.RowCount,
		Dates:      dates,
		Latest:     latest,
	})
}

// handlePreview returns the aggregated report model as JSON.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	report, err := s.gen.BuildReport(ds, r.FormValue("date"))
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	resp := previewResponse{Date: report.Date, Crafts: []craftSection{}}
	for _, craftDesc := range report.Crafts() {
		section := craftSection{Craft: craftDesc}
		for _, row := range report.Rows(craftDesc) {
			section.Rows = append(section.Rows, reportRow{
				Name:        row.Name,
				WorkOrder:   row.OrderNumber,
				SumOfHours:  row.SumOfHours,
				Type:        row.Type,
				Description: row.Description,
				Problem:     row.Problem,
			})
		}
		resp.Crafts = append(resp.Crafts, section)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleReport renders the report and returns it as a PDF download.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.parseUpload(w, r)
	if !ok {
		return
	}

	report, err := s.gen.BuildReport(ds, r.FormValue("date"))
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	doc, err := s.gen.RenderReport(report)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	name := s.gen.ReportFileName(report.Date)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(doc)))
	w.Write(doc)
}

// =============================================================================
// REQUEST AND RESPONSE PLUMBING
// =============================================================================

// parseUpload reads the multipart "file" field into a dataset. On
// failure it writes the error response itself and returns ok=false.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (*types.Dataset, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing upload field %q", "file"))
		return nil, false
	}
	defer file.Close()

	ds, err := s.gen.IngestReader(file, header.Filename)
	if err != nil {
		if _, isSchema := validation.AsSchemaError(err); isSchema {
			s.writeError(w, http.StatusUnprocessableEntity, err)
		} else {
			s.writeError(w, http.StatusBadRequest, err)
		}
		return nil, false
	}
	return ds, true
}

type datesResponse struct {
	SourceFile string   `json:"source_file"`
	Records    int      `json:"records"`
	Dates      []string `json:"dates"`
	Latest     string   `json:"latest"`
}

type previewResponse struct {
	Date   string         `json:"date"`
	Crafts []craftSection `json:"crafts"`
}

type craftSection struct {
	Craft string      `json:"craft"`
	Rows  []reportRow `json:"rows"`
}

type reportRow struct {
	Name        string  `json:"name"`
	WorkOrder   string  `json:"work_order"`
	SumOfHours  float64 `json:"sum_of_hours"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Problem     string  `json:"problem"`
}

type errorResponse struct {
	Error          string   `json:"error"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	if schemaErr, ok := validation.AsSchemaError(err); ok {
		resp.MissingColumns = schemaErr.Missing
	}
	s.writeJSON(w, status, resp)
}

// =============================================================================
// INDEX PAGE
// =============================================================================

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Daily Report Generator</title>
  <style>
    body { font-family: sans-serif; max-width: 40em; margin: 2em auto; }
    fieldset { margin-bottom: 1.5em; }
    label { display: block; margin: 0.5em 0; }
  </style>
</head>
<body>
  <h1>Daily Report Generator</h1>
  <p>Upload a work-order time export (.xlsx, .xlsm, or .csv).
     Leave the date blank to report on the latest date in the file.</p>
  <form method="post" enctype="multipart/form-data" action="/report">
    <fieldset>
      <legend>Generate report</legend>
      <label>Export file <input type="file" name="file" required></label>
      <label>Date (MM/DD/YYYY) <input type="text" name="date" placeholder="latest"></label>
      <button formaction="/dates">List dates</button>
      <button formaction="/preview">Preview</button>
      <button type="submit">Download PDF</button>
    </fieldset>
  </form>
</body>
</html>
`
