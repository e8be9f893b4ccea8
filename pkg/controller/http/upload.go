package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/usecase"
)

const (
	uploadField      = "files"
	uploadMemoryLeft = 32 << 20
)

func (h *handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadFiles*usecase.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(uploadMemoryLeft); err != nil {
		h.writeError(w, r, goerr.Wrap(model.ErrInvalidInput, "invalid multipart upload", goerr.V("cause", err.Error())))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File[uploadField]
	if len(headers) == 0 {
		h.writeError(w, r, goerr.Wrap(model.ErrInvalidInput, "no files uploaded"))
		return
	}
	if len(headers) > usecase.MaxUploadFiles {
		h.writeError(w, r, goerr.Wrap(model.ErrInvalidInput, "too many files", goerr.V("count", len(headers))))
		return
	}

	// reject the whole request before storing anything
	for _, fh := range headers {
		if err := h.uc.CheckUpload(fh.Filename, fh.Size); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	files := make([]*model.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.uc.DiscardUploads(r.Context(), files)
			h.writeError(w, r, goerr.Wrap(err, "failed to open uploaded file", goerr.V("name", fh.Filename)))
			return
		}

		uploaded, err := h.uc.SaveUpload(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
		_ = f.Close()
		if err != nil {
			h.uc.DiscardUploads(r.Context(), files)
			h.writeError(w, r, err)
			return
		}
		files = append(files, uploaded)
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"success": true,
		"files":   files,
	})
}
