package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/fundreport/internal/buildinfo"
	"github.com/cleared-dev/fundreport/internal/export"
	"github.com/cleared-dev/fundreport/internal/importer"
	"github.com/cleared-dev/fundreport/internal/report"
	"github.com/cleared-dev/fundreport/internal/sheet"
)

// Multipart field names of the two sheets.
const (
	FieldQuotaholders = "quotaholders"
	FieldTrialBalance = "trial_balance"
)

type handler struct {
	builder        *report.Builder
	registry       *importer.Registry
	maxUploadBytes int64
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// createReport accepts a multipart form with up to two files and returns
// the report as JSON, or the category export as CSV with ?format=csv.
func (h *handler) createReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	format := export.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := export.ParseFormat(q)
		if err != nil || f == export.FormatTable {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("format must be json or csv, got %q", q))
			return
		}
		format = f
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	quota, err := h.readUpload(r, FieldQuotaholders)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	tb, err := h.readUpload(r, FieldTrialBalance)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if quota == nil && tb == nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("upload at least one of %q or %q", FieldQuotaholders, FieldTrialBalance))
		return
	}

	rep := h.builder.Build(quota, tb)
	if err := rep.Err(); err != nil {
		logger.Warn().Err(err).Msg("partial report")
	}

	switch format {
	case export.FormatCSV:
		if rep.TrialBalance == nil {
			writeError(w, r, http.StatusUnprocessableEntity, rep.TrialBalanceErr)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="categorias.csv"`)
		if err := export.WriteCSV(w, rep); err != nil {
			logger.Error().Err(err).Msg("writing csv")
		}
	default:
		writeJSON(w, r, http.StatusOK, export.NewDocument(rep))
	}
}

// readUpload parses the file under field, returning nil when it is absent.
func (h *handler) readUpload(r *http.Request, field string) (*sheet.Table, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	t, err := h.registry.Read(header.Filename, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	zerolog.Ctx(r.Context()).Warn().Err(err).Int("status", status).Msg("request failed")
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}
