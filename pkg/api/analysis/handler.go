// Package analysis exposes the HTTP surface of the service: document
// extraction, full profile analysis and report retrieval.
package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"soldi_persi/pkg/core/agent"
	"soldi_persi/pkg/core/analyze"
	"soldi_persi/pkg/core/ingest"
	"soldi_persi/pkg/core/pipeline"
	"soldi_persi/pkg/core/report"
	"soldi_persi/pkg/core/store"
	"soldi_persi/pkg/models"
)

// Upload limits, overridable via MAX_FILES_PER_REQUEST / MAX_FILE_SIZE_MB.
var (
	MaxFilesPerRequest = 10
	MaxFileSizeMB      = 20
)

var agentManager *agent.Manager
var ingestor *ingest.Ingestor
var orchestrator *pipeline.Orchestrator
var reports *store.ReportRepository

func InitHandler(mgr *agent.Manager) {
	agentManager = mgr
	ingestor = ingest.NewIngestor(mgr)
	orchestrator = pipeline.NewOrchestrator(
		analyze.NewTaxOptimizer(mgr),
		analyze.NewCostBenchmarker(mgr),
		analyze.NewBenefitScout(mgr),
	)
	reports = store.NewReportRepository()

	if v, err := strconv.Atoi(os.Getenv("MAX_FILES_PER_REQUEST")); err == nil && v > 0 {
		MaxFilesPerRequest = v
	}
	if v, err := strconv.Atoi(os.Getenv("MAX_FILE_SIZE_MB")); err == nil && v > 0 {
		MaxFileSizeMB = v
	}
}

type AnalyzeResponse struct {
	Status            string              `json:"status"`
	ReportID          string              `json:"report_id"`
	Report            *models.FinalReport `json:"report"`
	ProcessingSeconds float64             `json:"processing_time_seconds"`
}

type ReportResponse struct {
	Status string              `json:"status"`
	Report *models.FinalReport `json:"report"`
}

type ExtractResponse struct {
	Status  string                   `json:"status"`
	Profile *models.FinancialProfile `json:"profile"`
}

func setCORS(w http.ResponseWriter, methods string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", methods+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleAnalyze runs the full pipeline: extract the uploaded documents,
// merge them into a profile, fan out the three analyses and store the report.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "POST")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	extra, paths, cleanup, ok := parseUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	profile, err := ingestor.ProcessFiles(r.Context(), paths, extra)
	if err != nil {
		http.Error(w, fmt.Sprintf("document processing failed: %v", err), http.StatusInternalServerError)
		return
	}

	finalReport, err := orchestrator.Analyze(r.Context(), profile)
	if err != nil {
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusInternalServerError)
		return
	}

	if err := reports.Save(r.Context(), finalReport); err != nil {
		fmt.Printf("[ANALYSIS] Failed to persist report %s: %v\n", finalReport.ReportID, err)
	}

	writeJSON(w, AnalyzeResponse{
		Status:            "completed",
		ReportID:          finalReport.ReportID,
		Report:            finalReport,
		ProcessingSeconds: math.Round(time.Since(start).Seconds()*10) / 10,
	})
}

// HandleExtract runs extraction and merge only, without the analysis
// branches. Useful for inspecting the profile the analyzers would see.
func HandleExtract(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "POST")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	extra, paths, cleanup, ok := parseUpload(w, r)
	if !ok {
		return
	}
	defer cleanup()

	profile, err := ingestor.ProcessFiles(r.Context(), paths, extra)
	if err != nil {
		http.Error(w, fmt.Sprintf("document processing failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, ExtractResponse{Status: "completed", Profile: profile})
}

// HandleReport serves GET /api/report/{id} and /api/report/{id}/summary.
// The summary is markdown by default; ?format=html converts it.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "GET")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/report/")
	id := rest
	wantSummary := false
	if strings.HasSuffix(rest, "/summary") {
		id = strings.TrimSuffix(rest, "/summary")
		wantSummary = true
	}
	if id == "" {
		http.Error(w, "missing report id", http.StatusBadRequest)
		return
	}

	stored, err := reports.Get(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("report lookup failed: %v", err), http.StatusInternalServerError)
		return
	}
	if stored == nil {
		http.Error(w, fmt.Sprintf("report not found: %s", id), http.StatusNotFound)
		return
	}

	if wantSummary {
		if r.URL.Query().Get("format") == "html" {
			html, err := report.RenderHTML(stored)
			if err != nil {
				http.Error(w, fmt.Sprintf("summary rendering failed: %v", err), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, html)
			return
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, report.RenderMarkdown(stored))
		return
	}

	writeJSON(w, ReportResponse{Status: "ok", Report: stored})
}

// HandleHealth reports service liveness and the active LLM provider.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	setCORS(w, "GET")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	writeJSON(w, map[string]interface{}{
		"status":   "ok",
		"version":  "0.1.0",
		"provider": agentManager.GetActiveProvider(),
	})
}

// parseUpload reads the multipart form: the uploaded files (saved to a temp
// directory) and the optional info_aggiuntive JSON field. A malformed
// override field fails the request before any document is processed.
func parseUpload(w http.ResponseWriter, r *http.Request) (*models.ExtraInfo, []string, func(), bool) {
	noop := func() {}

	if err := r.ParseMultipartForm(int64(MaxFileSizeMB) << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return nil, nil, noop, false
	}

	var extra *models.ExtraInfo
	if raw := r.FormValue("info_aggiuntive"); raw != "" {
		extra = &models.ExtraInfo{}
		if err := json.Unmarshal([]byte(raw), extra); err != nil {
			http.Error(w, fmt.Sprintf("invalid info_aggiuntive: %v", err), http.StatusBadRequest)
			return nil, nil, noop, false
		}
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return nil, nil, noop, false
	}
	if len(files) > MaxFilesPerRequest {
		http.Error(w, fmt.Sprintf("too many files: max %d per request", MaxFilesPerRequest), http.StatusBadRequest)
		return nil, nil, noop, false
	}

	tmpDir, err := os.MkdirTemp("", "soldi-persi-upload-*")
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to create workspace: %v", err), http.StatusInternalServerError)
		return nil, nil, noop, false
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	paths := make([]string, 0, len(files))
	for i, fh := range files {
		if fh.Size > int64(MaxFileSizeMB)<<20 {
			cleanup()
			http.Error(w, fmt.Sprintf("file too large: %s (max %d MB)", fh.Filename, MaxFileSizeMB), http.StatusBadRequest)
			return nil, nil, noop, false
		}

		src, err := fh.Open()
		if err != nil {
			cleanup()
			http.Error(w, fmt.Sprintf("failed to read upload %s: %v", fh.Filename, err), http.StatusBadRequest)
			return nil, nil, noop, false
		}

		// Index prefix keeps two uploads with the same name from
		// overwriting each other.
		dstPath := filepath.Join(tmpDir, fmt.Sprintf("%d_%s", i, filepath.Base(fh.Filename)))
		dst, err := os.Create(dstPath)
		if err != nil {
			src.Close()
			cleanup()
			http.Error(w, fmt.Sprintf("failed to save upload %s: %v", fh.Filename, err), http.StatusInternalServerError)
			return nil, nil, noop, false
		}
		_, copyErr := io.Copy(dst, src)
		src.Close()
		dst.Close()
		if copyErr != nil {
			cleanup()
			http.Error(w, fmt.Sprintf("failed to save upload %s: %v", fh.Filename, copyErr), http.StatusInternalServerError)
			return nil, nil, noop, false
		}
		paths = append(paths, dstPath)
	}

	return extra, paths, cleanup, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[ANALYSIS] Failed to encode response: %v\n", err)
	}
}
