package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-order-pipeline/internal/metrics"
	"go-order-pipeline/internal/model"
	"go-order-pipeline/internal/pipeline"
	"go-order-pipeline/internal/store"
	"go-order-pipeline/pkg/utils"

	"github.com/google/uuid"
)

// Handler serves the batch endpoints. Every request runs on its own inputs;
// nothing is shared between requests except the store and the metrics.
type Handler struct {
	store   *store.DB
	metrics *metrics.Registry
	outputs *utils.OutputManager
	opts    pipeline.Options

	maxUpload int64
	timeout   time.Duration
}

// Settings configures a Handler.
type Settings struct {
	MaxUploadBytes int64
	RequestTimeout time.Duration
	Location       *time.Location
}

// New creates a Handler. Artifacts are always kept in the store; they are also
// written below outputs.BaseOutputDir when it is set.
func New(db *store.DB, reg *metrics.Registry, outputs *utils.OutputManager, s Settings) *Handler {
	if outputs == nil {
		outputs = utils.NewOutputManager("")
	}
	if s.MaxUploadBytes <= 0 {
		s.MaxUploadBytes = 32 << 20
	}
	if s.RequestTimeout <= 0 {
		s.RequestTimeout = 2 * time.Minute
	}
	return &Handler{
		store:     db,
		metrics:   reg,
		outputs:   outputs,
		opts:      pipeline.Options{Recorder: db, Location: s.Location},
		maxUpload: s.MaxUploadBytes,
		timeout:   s.RequestTimeout,
	}
}

// ArtifactLink points at a downloadable output file.
type ArtifactLink struct {
	FileName string `json:"file_name"`
	Kind     string `json:"kind"`
	URL      string `json:"url"`
	Size     int    `json:"size"`
}

// ShipmentResponse is the result of a shipment run.
type ShipmentResponse struct {
	RunID      string             `json:"run_id"`
	OrderCount int                `json:"order_count"`
	Files      []model.FileReport `json:"files"`
	Preview    []model.PreviewRow `json:"preview"`
	Artifacts  []ArtifactLink     `json:"artifacts"`
	Metrics    model.RunMetrics   `json:"metrics"`
}

// ManagementResponse is the result of a management run.
type ManagementResponse struct {
	RunID         string               `json:"run_id"`
	Mode          model.SummaryMode    `json:"mode"`
	Orders        int                  `json:"orders"`
	Matched       int                  `json:"matched"`
	Unmatched     int                  `json:"unmatched"`
	Files         []model.FileReport   `json:"files"`
	CarrierFiles  []model.FileReport   `json:"carrier_files"`
	ProductTotals []model.ProductTotal `json:"product_totals"`
	Artifacts     []ArtifactLink       `json:"artifacts"`
	Metrics       model.RunMetrics     `json:"metrics"`
}

// AnnotateResponse is the result of filling a carrier workbook.
type AnnotateResponse struct {
	RunID        string             `json:"run_id"`
	Matched      int                `json:"matched"`
	CarrierFiles []model.FileReport `json:"carrier_files"`
	Artifact     ArtifactLink       `json:"artifact"`
}

// PasteRequest is the body of a paste aggregation.
type PasteRequest struct {
	Text      string `json:"text" example:"상품\t수량\nOH, PH\t2"`
	Normalize bool   `json:"normalize"`
}

// ErrorResponse is returned for failed requests. Files is set when a batch
// produced nothing usable.
type ErrorResponse struct {
	Error string             `json:"error"`
	Files []model.FileReport `json:"files,omitempty"`
}

// RunDetail is a stored run with its errors and artifacts.
type RunDetail struct {
	store.RunInfo
	Errors    []store.RunError `json:"errors"`
	Artifacts []ArtifactLink   `json:"artifacts"`
}

// CreateShipments consolidates uploaded order files into the carrier upload workbook
// @Summary Consolidate shipments
// @Description Detect the marketplace of every uploaded order file and build the carrier upload workbook. Coupang workbooks also get a copy sorted by seller product code.
// @Tags runs
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Marketplace order exports (repeatable)"
// @Success 200 {object} ShipmentResponse
// @Failure 400 {object} ErrorResponse "Invalid upload"
// @Failure 422 {object} ErrorResponse "No file produced order lines"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /shipments [post]
func (h *Handler) CreateShipments(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	files, err := formFiles(r.MultipartForm, "files")
	if err != nil || len(files) == 0 {
		writeError(w, http.StatusBadRequest, fileFieldError("files", err), nil)
		return
	}

	runID := h.startRun(pipeline.KindShipment)
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	run, err := pipeline.RunShipments(ctx, runID, files, h.opts)
	h.metrics.ObserveRun(pipeline.KindShipment, run.Metrics, err)
	if err != nil {
		h.failRun(w, runID, err, run.Files)
		return
	}

	links, err := h.saveArtifacts(runID, run.Artifacts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	resp := ShipmentResponse{
		RunID:      runID,
		OrderCount: run.OrderCount(),
		Files:      run.Files,
		Preview:    run.Preview,
		Artifacts:  links,
		Metrics:    run.Metrics,
	}
	h.finishRun(runID, resp)
	writeJSON(w, http.StatusOK, resp)
}

// CreateManagement builds the order-management sheet
// @Summary Build order-management sheet
// @Description Consolidate order files per order, fill invoice numbers from carrier exports and total quantities per product.
// @Tags runs
// @Accept multipart/form-data
// @Produce json
// @Param orders formData file true "Marketplace order exports (repeatable)"
// @Param carriers formData file false "Carrier exports with 고객주문번호 and 운송장번호 (repeatable)"
// @Param mode formData string false "Product summary mode" Enums(classified, raw)
// @Success 200 {object} ManagementResponse
// @Failure 400 {object} ErrorResponse "Invalid upload"
// @Failure 422 {object} ErrorResponse "No file produced order lines"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /management [post]
func (h *Handler) CreateManagement(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	orders, err := formFiles(r.MultipartForm, "orders")
	if err != nil || len(orders) == 0 {
		writeError(w, http.StatusBadRequest, fileFieldError("orders", err), nil)
		return
	}
	carriers, err := formFiles(r.MultipartForm, "carriers")
	if err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	mode, err := parseMode(r.FormValue("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}

	runID := h.startRun(pipeline.KindManagement)
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	run, err := pipeline.RunManagement(ctx, runID, orders, carriers, mode, h.opts)
	h.metrics.ObserveRun(pipeline.KindManagement, run.Metrics, err)
	if err != nil {
		h.failRun(w, runID, err, run.Files)
		return
	}
	h.metrics.ObserveInvoices(run.Matched, run.Unmatched())

	links, err := h.saveArtifacts(runID, run.Artifacts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	resp := ManagementResponse{
		RunID:         runID,
		Mode:          run.Mode,
		Orders:        len(run.Records),
		Matched:       run.Matched,
		Unmatched:     run.Unmatched(),
		Files:         run.Files,
		CarrierFiles:  run.CarrierFiles,
		ProductTotals: run.ProductTotals,
		Artifacts:     links,
		Metrics:       run.Metrics,
	}
	h.finishRun(runID, resp)
	writeJSON(w, http.StatusOK, resp)
}

// AggregatePaste totals a pasted sales table per product
// @Summary Aggregate pasted sales table
// @Description Parse a pasted two-column product/quantity table and sum quantities per product. Comma-separated product cells always share their quantity evenly; normalize also classifies labels into categories.
// @Tags runs
// @Accept json
// @Produce json
// @Param paste body PasteRequest true "Pasted table"
// @Success 200 {object} model.PastedSalesSummary
// @Failure 400 {object} ErrorResponse "Invalid request payload"
// @Router /paste [post]
func (h *Handler) AggregatePaste(w http.ResponseWriter, r *http.Request) {
	var req PasteRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUpload)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON payload: %w", err), nil)
		return
	}
	summary := pipeline.ParsePasted(req.Text, req.Normalize)
	h.metrics.PasteEntries.Add(float64(len(summary.Entries)))
	writeJSON(w, http.StatusOK, summary)
}

// AnnotateCarrier fills invoice numbers into a carrier workbook
// @Summary Fill invoice numbers
// @Description Copy a carrier upload workbook and fill 운송장번호 per 고객주문번호 from carrier exports, keeping phone columns as text.
// @Tags runs
// @Accept multipart/form-data
// @Produce json
// @Param delivery formData file true "Carrier upload workbook"
// @Param carriers formData file true "Carrier exports (repeatable)"
// @Success 200 {object} AnnotateResponse
// @Failure 400 {object} ErrorResponse "Invalid upload"
// @Failure 422 {object} ErrorResponse "Workbook could not be annotated"
// @Router /carrier/annotate [post]
func (h *Handler) AnnotateCarrier(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	delivery, err := formFiles(r.MultipartForm, "delivery")
	if err != nil || len(delivery) != 1 {
		writeError(w, http.StatusBadRequest, errors.New("exactly one delivery file is required"), nil)
		return
	}
	carriers, err := formFiles(r.MultipartForm, "carriers")
	if err != nil || len(carriers) == 0 {
		writeError(w, http.StatusBadRequest, fileFieldError("carriers", err), nil)
		return
	}

	runID := h.startRun(pipeline.KindCarrier)
	artifact, matched, reports, err := pipeline.AnnotateCarrier(runID, delivery[0], carriers, h.opts)
	if err != nil {
		h.failRun(w, runID, err, reports)
		return
	}

	links, err := h.saveArtifacts(runID, []model.Artifact{artifact})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	resp := AnnotateResponse{RunID: runID, Matched: matched, CarrierFiles: reports, Artifact: links[0]}
	h.finishRun(runID, resp)
	writeJSON(w, http.StatusOK, resp)
}

// ListRuns lists stored runs
// @Summary List runs
// @Description Get all runs of this process, newest first
// @Tags runs
// @Produce json
// @Success 200 {array} store.RunInfo
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.ListRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to fetch runs: %w", err), nil)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun retrieves a run
// @Summary Get run
// @Description Retrieve a run with its summary, errors and downloadable artifacts
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} RunDetail
// @Failure 404 {object} ErrorResponse "Run not found"
// @Router /runs/{id} [get]
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimPrefix(r.URL.Path, "/api/v1/runs/")
	if runID == "" || strings.Contains(runID, "/") {
		writeError(w, http.StatusBadRequest, errors.New("run ID is required"), nil)
		return
	}

	run, err := h.store.GetRun(runID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err, nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	runErrors, err := h.store.GetRunErrors(runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	artifacts, err := h.store.ListArtifacts(runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}
	detail := RunDetail{RunInfo: *run, Errors: runErrors, Artifacts: make([]ArtifactLink, 0, len(artifacts))}
	for _, a := range artifacts {
		detail.Artifacts = append(detail.Artifacts, ArtifactLink{FileName: a.FileName, Kind: a.Kind, URL: h.outputs.GetDownloadURL(runID, a.FileName)})
	}
	writeJSON(w, http.StatusOK, detail)
}

// DownloadFile serves a generated file
// @Summary Download file
// @Description Download an output file of a run. Files can be downloaded repeatedly.
// @Tags files
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Run ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 400 {object} ErrorResponse "Invalid URL format"
// @Failure 404 {object} ErrorResponse "File not found"
// @Router /download/{id}/{filename} [get]
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	// URL format: /api/v1/download/runID/filename
	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) != 5 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid URL format: expected 5 parts, got %d", len(pathParts)), nil)
		return
	}
	runID, fileName := pathParts[3], pathParts[4]

	a, err := h.store.GetArtifact(runID, fileName)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err, nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, nil)
		return
	}

	w.Header().Set("Content-Disposition", contentDisposition(a.FileName))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Content)))
	_, _ = w.Write(a.Content)
}

func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return fmt.Errorf("invalid multipart upload: %w", err)
	}
	return nil
}

func (h *Handler) startRun(kind string) string {
	runID := uuid.New().String()
	if err := h.store.CreateRun(runID, kind); err != nil {
		log.Printf("⚠️ Failed to record run %s: %v", runID, err)
	}
	return runID
}

func (h *Handler) finishRun(runID string, summary interface{}) {
	if err := h.store.SaveRunSummary(runID, summary); err != nil {
		log.Printf("⚠️ Failed to save summary of run %s: %v", runID, err)
	}
}

// failRun maps a run error to its response. The tracker has already recorded
// the failure on the run.
func (h *Handler) failRun(w http.ResponseWriter, runID string, err error, files []model.FileReport) {
	log.Printf("❌ Run %s failed: %v", runID, err)
	switch {
	case errors.Is(err, pipeline.ErrEmptyBatch),
		errors.Is(err, pipeline.ErrMissingRequiredColumn),
		errors.Is(err, pipeline.ErrUnrecognizedSource):
		writeError(w, http.StatusUnprocessableEntity, err, files)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err, files)
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, err, files)
	default:
		writeError(w, http.StatusInternalServerError, err, files)
	}
}

// saveArtifacts stores the artifacts of a run and, when an output directory is
// configured, writes them there too.
func (h *Handler) saveArtifacts(runID string, artifacts []model.Artifact) ([]ArtifactLink, error) {
	links := make([]ArtifactLink, 0, len(artifacts))
	for _, a := range artifacts {
		if err := h.store.SaveArtifact(runID, a); err != nil {
			return nil, fmt.Errorf("save %s: %w", a.FileName, err)
		}
		if h.outputs.BaseOutputDir != "" {
			path, err := h.outputs.WriteFile(runID, a.FileName, a.Content)
			if err != nil {
				log.Printf("⚠️ %v", err)
			} else {
				log.Printf("💾 Wrote %s", path)
			}
		}
		links = append(links, ArtifactLink{FileName: a.FileName, Kind: a.Kind, URL: h.outputs.GetDownloadURL(runID, a.FileName), Size: len(a.Content)})
	}
	return links, nil
}

func formFiles(form *multipart.Form, field string) ([]model.SourceFile, error) {
	if form == nil {
		return nil, nil
	}
	var out []model.SourceFile
	for _, fh := range form.File[field] {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		out = append(out, model.SourceFile{Name: fh.Filename, Content: content})
	}
	return out, nil
}

func fileFieldError(field string, err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("at least one %q file is required", field)
}

func parseMode(v string) (model.SummaryMode, error) {
	switch model.SummaryMode(v) {
	case "", model.SummaryClassified:
		return model.SummaryClassified, nil
	case model.SummaryRaw:
		return model.SummaryRaw, nil
	default:
		return "", fmt.Errorf("unknown mode %q", v)
	}
}


// contentDisposition carries the Korean file name as RFC 5987 UTF-8.
func contentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=\"download.xlsx\"; filename*=UTF-8''%s", url.PathEscape(fileName))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error, files []model.FileReport) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Files: files})
}
