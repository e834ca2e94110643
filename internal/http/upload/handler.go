package upload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
	"github.com/sentra-hq/sentra-cms/internal/scripts"
	"github.com/sentra-hq/sentra-cms/internal/storage"
)

type Handler struct {
	store  storage.ObjectStore
	runner *scripts.Runner
}

func NewHandler(store storage.ObjectStore, runner *scripts.Runner) *Handler {
	return &Handler{store: store, runner: runner}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/generate-upload-url", h.generateUploadURL)
	r.Post("/fix-file-acl", h.fixFileACL)
	r.Post("/fix-all-files", h.fixAllFiles)
	r.Post("/run-script", h.runScript)
}

type generateUploadURLRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type generateUploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileName  string `json:"fileName"`
	PublicURL string `json:"publicUrl"`
}

func (h *Handler) generateUploadURL(w http.ResponseWriter, r *http.Request) {
	var req generateUploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.FileName == "" || req.FileType == "" {
		httpx.Error(w, http.StatusBadRequest, "fileName and fileType are required")
		return
	}

	up, err := h.store.GenerateUploadURL(r.Context(), req.FileName, req.FileType)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, generateUploadURLResponse{
		UploadURL: up.UploadURL,
		FileName:  up.FileName,
		PublicURL: up.PublicURL,
	})
}

type fixFileACLRequest struct {
	FileName string `json:"fileName"`
}

type fixFileACLResponse struct {
	Success bool   `json:"success"`
	FileURL string `json:"fileUrl"`
}

func (h *Handler) fixFileACL(w http.ResponseWriter, r *http.Request) {
	var req fixFileACLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.FileName == "" {
		httpx.Error(w, http.StatusBadRequest, "fileName is required")
		return
	}

	fileURL, err := h.store.FixObjectACL(r.Context(), req.FileName)
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, fixFileACLResponse{Success: true, FileURL: fileURL})
}

type fixAllFilesResponse struct {
	Success     bool `json:"success"`
	FixedCount  int  `json:"fixedCount"`
	FailedCount int  `json:"failedCount"`
	TotalFiles  int  `json:"totalFiles"`
}

func (h *Handler) fixAllFiles(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.FixAllObjectACLs(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.JSON(w, http.StatusOK, fixAllFilesResponse{
		Success:     true,
		FixedCount:  report.Fixed,
		FailedCount: report.Failed,
		TotalFiles:  report.Total,
	})
}

type runScriptRequest struct {
	Script string `json:"script"`
}

type runScriptResponse struct {
	Success     bool   `json:"success"`
	Output      string `json:"output"`
	FixedCount  *int   `json:"fixedCount,omitempty"`
	FailedCount *int   `json:"failedCount,omitempty"`
	TotalFiles  *int   `json:"totalFiles,omitempty"`
}

func (h *Handler) runScript(w http.ResponseWriter, r *http.Request) {
	var req runScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.runner.Run(r.Context(), req.Script)
	if err != nil {
		switch {
		case errors.Is(err, scripts.ErrUnknownScript):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			httpx.Error(w, http.StatusRequestTimeout, "script timed out")
		default:
			httpx.Error(w, http.StatusInternalServerError, err.Error())
		}

		return
	}

	resp := runScriptResponse{Success: true, Output: result.Output}
	if result.ACL != nil {
		resp.FixedCount = &result.ACL.Fixed
		resp.FailedCount = &result.ACL.Failed
		resp.TotalFiles = &result.ACL.Total
	}

	httpx.JSON(w, http.StatusOK, resp)
}
