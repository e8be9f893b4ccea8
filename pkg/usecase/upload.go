package usecase

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"github.com/m-mizutani/jirabridge/pkg/utils/logging"
)

// Upload limits
const (
	MaxUploadSize  = 40 << 20
	MaxUploadFiles = 10
)

var allowedExtensions = map[string]bool{
	// images
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true, ".svg": true,
	// video
	".mp4": true, ".mov": true, ".avi": true, ".webm": true, ".mkv": true,
	// documents
	".pdf": true, ".txt": true, ".log": true, ".csv": true, ".json": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	// archives
	".zip": true, ".rar": true, ".7z": true, ".gz": true, ".tar": true,
}

type uploadUseCase struct {
	storage interfaces.FileStorage
}

// NewUpload creates the upload use case
func NewUpload(storage interfaces.FileStorage) *uploadUseCase {
	return &uploadUseCase{storage: storage}
}

// CheckUpload validates the name and size of a file before it is stored
func (uc *uploadUseCase) CheckUpload(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return goerr.Wrap(model.ErrInvalidInput, "file type is not allowed",
			goerr.V("name", name), goerr.V("ext", ext))
	}
	if size > MaxUploadSize {
		return goerr.Wrap(model.ErrInvalidInput, "file is too large",
			goerr.V("name", name), goerr.V("size", size), goerr.V("limit", MaxUploadSize))
	}
	return nil
}

// DiscardUploads deletes already stored files. Failures are logged only.
func (uc *uploadUseCase) DiscardUploads(ctx context.Context, files []*model.UploadedFile) {
	if uc.storage == nil {
		return
	}
	logger := logging.From(ctx)
	for _, f := range files {
		if err := uc.storage.Delete(ctx, f.Filename); err != nil {
			logger.Warn("failed to discard upload", "stored", f.Filename, "error", err)
		}
	}
}

// SaveUpload stores r under a random name keeping the original extension
func (uc *uploadUseCase) SaveUpload(ctx context.Context, name, contentType string, size int64, r io.Reader) (*model.UploadedFile, error) {
	if err := uc.CheckUpload(name, size); err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, goerr.New("upload storage is not configured")
	}

	ext := strings.ToLower(filepath.Ext(name))
	if contentType == "" || contentType == "application/octet-stream" {
		if t := mime.TypeByExtension(ext); t != "" {
			contentType = t
		}
	}

	stored := uuid.NewString() + ext
	url, err := uc.storage.Save(ctx, stored, contentType, r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store upload", goerr.V("name", name))
	}

	logging.From(ctx).Info("file uploaded", "name", name, "stored", stored, "size", size)
	return &model.UploadedFile{
		OriginalName: name,
		Filename:     stored,
		Size:         size,
		MimeType:     contentType,
		URL:          url,
	}, nil
}
