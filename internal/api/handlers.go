package api

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Vasishta03/DataForge/internal/generator"
)

const apiVersion = "2.0.0"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// safeName rejects path components that could escape the datasets
// directory.
func safeName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count := 0
	if entries, err := os.ReadDir(s.datasetsDir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				count++
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"timestamp":          time.Now().Format(time.RFC3339),
		"version":            apiVersion,
		"datasets_available": count,
	})
}

type fileInfo struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url"`
}

type datasetInfo struct {
	Keyword        string     `json:"keyword"`
	Files          []fileInfo `json:"files"`
	FileCount      int        `json:"file_count"`
	TotalSize      int64      `json:"total_size"`
	ZipDownloadURL string     `json:"zip_download_url"`
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	var datasets []datasetInfo

	entries, err := os.ReadDir(s.datasetsDir)
	if err != nil && !os.IsNotExist(err) {
		s.logger.Error("listing datasets failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		keyword := e.Name()
		csvs, err := filepath.Glob(filepath.Join(s.datasetsDir, keyword, "*.csv"))
		if err != nil || len(csvs) == 0 {
			continue
		}
		ds := datasetInfo{
			Keyword:        keyword,
			ZipDownloadURL: "/api/download-zip/" + keyword,
		}
		for _, path := range csvs {
			st, err := os.Stat(path)
			if err != nil {
				continue
			}
			ds.Files = append(ds.Files, fileInfo{
				Filename:    filepath.Base(path),
				Size:        st.Size(),
				DownloadURL: fmt.Sprintf("/api/download/%s/%s", keyword, filepath.Base(path)),
			})
			ds.TotalSize += st.Size()
		}
		ds.FileCount = len(ds.Files)
		datasets = append(datasets, ds)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"datasets":       datasets,
		"total_keywords": len(datasets),
		"api_version":    apiVersion,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")
	file := r.PathValue("file")
	if !safeName(keyword) || !safeName(file) || !strings.HasSuffix(file, ".csv") {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	path := filepath.Join(s.datasetsDir, keyword, file)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+file)
	http.ServeFile(w, r, path)
}

func (s *Server) handleDownloadZip(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")
	if !safeName(keyword) {
		writeError(w, http.StatusBadRequest, "invalid keyword")
		return
	}

	csvs, err := filepath.Glob(filepath.Join(s.datasetsDir, keyword, "*.csv"))
	if err != nil || len(csvs) == 0 {
		writeError(w, http.StatusNotFound, "no datasets for keyword")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_datasets.zip", keyword))

	zw := zip.NewWriter(w)
	defer zw.Close()
	for _, path := range csvs {
		f, err := os.Open(path)
		if err != nil {
			s.logger.Warn("skipping unreadable file", zap.String("file", path), zap.Error(err))
			continue
		}
		entry, err := zw.Create(filepath.Base(path))
		if err == nil {
			_, err = io.Copy(entry, f)
		}
		f.Close()
		if err != nil {
			s.logger.Error("zip stream failed", zap.String("file", path), zap.Error(err))
			return
		}
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusNotImplemented, "run history not configured")
		return
	}
	records, err := s.runs.ListRuns(50)
	if err != nil {
		s.logger.Error("listing runs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": records})
}

type generateRequest struct {
	Keyword    string `json:"keyword"`
	Rows       int    `json:"rows"`
	Variations int    `json:"variations"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		writeError(w, http.StatusNotImplemented, "generation not configured")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Keyword = strings.TrimSpace(req.Keyword)
	if !safeName(req.Keyword) {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	// One run per process at a time.
	if !s.runSem.TryAcquire(1) {
		writeError(w, http.StatusConflict, "a generation run is already in progress")
		return
	}

	go func() {
		defer s.runSem.Release(1)
		res := s.runner.Run(context.Background(), generator.Request{
			Keyword:    req.Keyword,
			Rows:       req.Rows,
			Variations: req.Variations,
		}, nil)
		if s.runs != nil {
			if err := s.runs.SaveResult(res); err != nil {
				s.logger.Error("saving run failed", zap.String("run_id", res.ID), zap.Error(err))
			}
		}
		s.logger.Info("api-triggered run finished",
			zap.String("run_id", res.ID),
			zap.String("outcome", string(res.Outcome)))
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started", "keyword": req.Keyword})
}
