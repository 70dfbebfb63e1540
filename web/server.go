// Package web serves the upload and read API consumed by the metas
// dashboard frontend; responses are JSON and CORS is permissive.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"senametas/config"
	"senametas/extractor"
	"senametas/storage"
)

const maxUploadBytes = 64 << 20

type Server struct {
	store *storage.Store
	cfg   config.Config
	mux   *http.ServeMux
}

type collectionsResponse struct {
	Collections []storage.CollectionInfo `json:"collections"`
}

type recordsResponse struct {
	Collection      string `json:"collection"`
	TotalRecords    int    `json:"total_records"`
	ReturnedRecords int    `json:"returned_records"`
	Offset          int    `json:"offset"`
	Limit           *int   `json:"limit"`
	Data            []any  `json:"data"`
}

type uploadSheetResult struct {
	SheetName       string `json:"sheet_name"`
	Collection      string `json:"collection"`
	Layout          string `json:"layout"`
	RecordsInserted int    `json:"records_inserted"`
	SkippedColumns  int    `json:"skipped_columns"`
}

type uploadSheetError struct {
	SheetName string `json:"sheet_name"`
	Error     string `json:"error"`
}

type uploadResponse struct {
	OriginalName    string              `json:"original_name"`
	SheetsProcessed int                 `json:"sheets_processed"`
	Collections     []uploadSheetResult `json:"collections"`
	Errors          []uploadSheetError  `json:"errors"`
}

func NewServer(store *storage.Store, cfg config.Config) http.Handler {
	server := &Server{store: store, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", server.handleHealthz)
	mux.HandleFunc("GET /collections", server.handleCollections)
	mux.HandleFunc("GET /collections/{name}/records", server.handleRecords)
	mux.HandleFunc("POST /upload", server.handleUpload)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The dashboard is served from a different origin.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListCollections()
	if err != nil {
		http.Error(w, fmt.Sprintf("list collections: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, collectionsResponse{Collections: infos})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))

	offset, err := parseQueryInt(r.URL.Query().Get("offset"), 0)
	if err != nil || offset < 0 {
		http.Error(w, "invalid offset (expected integer >= 0)", http.StatusBadRequest)
		return
	}

	limit := -1
	var limitEcho *int
	if rawLimit := strings.TrimSpace(r.URL.Query().Get("limit")); rawLimit != "" {
		limit, err = parseQueryInt(rawLimit, -1)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit (expected integer >= 0)", http.StatusBadRequest)
			return
		}
		limitEcho = &limit
	}

	page, err := s.store.ReadPage(name, offset, limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("read collection %s: %v", name, err), http.StatusInternalServerError)
		return
	}

	data := make([]any, 0, len(page.Records))
	for _, record := range page.Records {
		data = append(data, record)
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Collection:      name,
		TotalRecords:    page.Total,
		ReturnedRecords: len(page.Records),
		Offset:          offset,
		Limit:           limitEcho,
		Data:            data,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !allowedUploadExtension(header.Filename) {
		http.Error(w, "unsupported file type (expected .xlsx or .xlsm)", http.StatusBadRequest)
		return
	}

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, fmt.Sprintf("close upload temp file: %v", err), http.StatusInternalServerError)
		return
	}

	workbook, err := excelize.OpenFile(tmpPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("open workbook: %v", err), http.StatusBadRequest)
		return
	}
	defer workbook.Close()

	result := extractor.ProcessWorkbook(workbook, extractor.Options{
		Period:           s.cfg.Period,
		CollectionPrefix: s.cfg.Ingest.CollectionPrefix,
		Sheets:           s.cfg.Ingest.Sheets,
	})

	resp := uploadResponse{
		OriginalName:    header.Filename,
		SheetsProcessed: result.SheetsProcessed,
		Collections:     make([]uploadSheetResult, 0, len(result.Results)),
		Errors:          make([]uploadSheetError, 0, len(result.Errors)),
	}
	for _, sheetErr := range result.Errors {
		resp.Errors = append(resp.Errors, uploadSheetError{
			SheetName: sheetErr.SheetName,
			Error:     sheetErr.Err.Error(),
		})
	}

	for i, snapshot := range result.Snapshots {
		inserted, err := s.store.ReplaceCollection(snapshot.Collection, snapshot.Records)
		if err != nil {
			http.Error(w, replaceErrorMessage(snapshot.Collection, err), http.StatusInternalServerError)
			return
		}
		resp.Collections = append(resp.Collections, uploadSheetResult{
			SheetName:       snapshot.SheetName,
			Collection:      snapshot.Collection,
			Layout:          result.Results[i].Layout.String(),
			RecordsInserted: inserted,
			SkippedColumns:  result.Results[i].Stats.SkippedColumns,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func replaceErrorMessage(collection string, err error) string {
	switch {
	case errors.Is(err, storage.ErrDeletePhase):
		return fmt.Sprintf("replace %s: previous snapshot could not be cleared: %v", collection, err)
	case errors.Is(err, storage.ErrInsertPhase):
		return fmt.Sprintf("replace %s: new snapshot could not be written (previous snapshot kept): %v", collection, err)
	default:
		return fmt.Sprintf("replace %s: %v", collection, err)
	}
}

func allowedUploadExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

func parseQueryInt(raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func tempUploadPattern(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." {
		return "upload-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "upload"
	}
	if ext == "" {
		return stem + "-*"
	}
	return stem + "-*" + ext
}
