package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
	"github.com/m-mizutani/depdiff/pkg/report"
)

type scanHandler struct {
	scanUC       interfaces.ScanUseCase
	jobUC        interfaces.JobUseCase
	maxBodyBytes int64
}

// readInput builds a ScanInput from `format` and `ext` query parameters and
// the lockfile in the request body
func (h *scanHandler) readInput(w http.ResponseWriter, r *http.Request) (interfaces.ScanInput, error) {
	query := r.URL.Query()
	input := interfaces.ScanInput{
		Format:    query.Get("format"),
		Extension: query.Get("ext"),
	}
	if input.Format == "" {
		return input, goerr.New("format query parameter is required")
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return input, goerr.Wrap(err, "failed to read request body")
	}
	defer r.Body.Close()

	input.Lockfile = string(body)
	return input, nil
}

// Scan runs a scan synchronously. The `output` query parameter selects the
// report format; JSON by default.
func (h *scanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input, err := h.readInput(w, r)
	if err != nil {
		writeError(w, r, err, inputStatus(err))
		return
	}

	output := r.URL.Query().Get("output")
	if output == "" {
		output = string(report.FormatJSON)
	}
	writer, err := report.New(output)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	result, err := h.scanUC.Scan(ctx, input)
	if err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, result); err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if output == string(report.FormatJSON) {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		ctxlog.From(ctx).Error("Failed to write scan response", "error", err)
	}
}

// SubmitJob starts a scan in the background and responds with the job
func (h *scanHandler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	input, err := h.readInput(w, r)
	if err != nil {
		writeError(w, r, err, inputStatus(err))
		return
	}

	job, err := h.jobUC.Submit(r.Context(), input)
	if err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}

	w.Header().Set("Location", "/api/v1/jobs/"+job.ID)
	writeJSON(w, r, http.StatusAccepted, job)
}

// GetJob returns a job with its report once finished
func (h *scanHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, statusOf(err))
		return
	}

	writeJSON(w, r, http.StatusOK, job)
}

func inputStatus(err error) int {
	if status := statusOf(err); status != http.StatusInternalServerError {
		return status
	}
	return http.StatusBadRequest
}
