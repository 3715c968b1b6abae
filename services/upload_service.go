package services

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Govind-619/ebook-store/utils"
	"github.com/google/uuid"
)

// FileKind is the class an upload falls into, decided from its declared MIME type
type FileKind string

const (
	FileKindImage FileKind = "image"
	FileKindPDF   FileKind = "pdf"
	FileKindOther FileKind = "other"
)

// Subdirectories of the upload root, also used in public URLs
const (
	CoversDir = "covers"
	PDFsDir   = "pdfs"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadConfig locates stored files on disk and on the web
type UploadConfig struct {
	Dir           string
	PublicBaseURL string
}

// StoredFile describes a persisted upload
type StoredFile struct {
	URL      string   `json:"fileUrl"`
	Filename string   `json:"filename"`
	Size     int64    `json:"size"`
	MimeType string   `json:"mimetype"`
	Kind     FileKind `json:"-"`
	Path     string   `json:"-"`
}

// UploadService classifies and writes cover images and PDFs. The declared MIME
// type is trusted; file contents are not inspected.
type UploadService struct {
	cfg UploadConfig
	now func() time.Time
}

func NewUploadService(cfg UploadConfig) *UploadService {
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &UploadService{cfg: cfg, now: time.Now}
}

// Dir returns the upload root served under /uploads
func (s *UploadService) Dir() string {
	return s.cfg.Dir
}

// EnsureDirs creates the upload directories
func (s *UploadService) EnsureDirs() error {
	for _, dir := range []string{s.cfg.Dir, filepath.Join(s.cfg.Dir, CoversDir), filepath.Join(s.cfg.Dir, PDFsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}
	return nil
}

// Classify returns the kind of a file from its declared MIME type. Images only
// count as images when their extension agrees.
func Classify(mimeType, filename string) FileKind {
	mediaType := normalizeMIME(mimeType)
	switch {
	case mediaType == "application/pdf":
		return FileKindPDF
	case allowedImageTypes[mediaType] && allowedImageExts[strings.ToLower(filepath.Ext(filename))]:
		return FileKindImage
	}
	return FileKindOther
}

// Store validates and writes one upload of size bytes read from src
func (s *UploadService) Store(src io.Reader, size int64, mimeType, originalName string) (*StoredFile, error) {
	kind := Classify(mimeType, originalName)

	var limit int64
	var subdir string
	var tooLarge string
	switch kind {
	case FileKindImage:
		limit, subdir, tooLarge = utils.MaxImageSize, CoversDir, utils.ErrImageTooLarge
	case FileKindPDF:
		limit, subdir, tooLarge = utils.MaxPDFSize, PDFsDir, utils.ErrPDFTooLarge
	default:
		utils.LogInfo("Rejected upload %q with type %q", originalName, mimeType)
		return nil, utils.UnsupportedTypeError(mimeType)
	}
	if size > limit {
		utils.LogInfo("Rejected upload %q: %d bytes exceeds %d", originalName, size, limit)
		return nil, utils.TooLargeError(tooLarge)
	}

	filename := s.generateName(originalName, kind)
	dir := filepath.Join(s.cfg.Dir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, utils.InternalError("Failed to create upload directory", err)
	}
	path := filepath.Join(dir, filename)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, utils.InternalError("Failed to create destination file", err)
	}
	written, err := io.Copy(dst, io.LimitReader(src, limit+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > limit {
		err = utils.TooLargeError(tooLarge)
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			utils.LogWarn("Failed to remove partial upload %s: %v", path, rmErr)
		}
		if appErr := utils.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, utils.InternalError("Failed to save file", err)
	}

	stored := &StoredFile{
		URL:      fmt.Sprintf("%s/uploads/%s/%s", s.cfg.PublicBaseURL, subdir, filename),
		Filename: filename,
		Size:     written,
		MimeType: normalizeMIME(mimeType),
		Kind:     kind,
		Path:     path,
	}
	utils.LogInfo("Stored upload %s (%d bytes) at %s", filename, written, path)
	return stored, nil
}

// generateName builds "<sanitized base>-<unix millis>-<random><ext>"
func (s *UploadService) generateName(originalName string, kind FileKind) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" && kind == FileKindPDF {
		ext = ".pdf"
	}
	base := utils.SanitizeFilename(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)))
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s%s", base, s.now().UnixMilli(), random, ext)
}

func normalizeMIME(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mediaType
}
