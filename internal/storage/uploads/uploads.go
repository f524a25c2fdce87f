package uploads

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// MaxFileSize caps a single uploaded image.
	MaxFileSize = 5 << 20
	// MaxFileCount caps images per request.
	MaxFileCount = 10
	// MaxFieldSize caps a single multipart text field.
	MaxFieldSize = 1 << 20

	maxStemLen = 20
)

// Machine-readable rejection codes for upload failures.
const (
	CodeFileSize       = "LIMIT_FILE_SIZE"
	CodeFileCount      = "LIMIT_FILE_COUNT"
	CodeFieldValue     = "LIMIT_FIELD_VALUE"
	CodeUnexpectedFile = "LIMIT_UNEXPECTED_FILE"
)

// RejectError is a validation failure the client can act on.
type RejectError struct {
	Code    string
	Message string
}

func (e *RejectError) Error() string {
	return e.Message
}

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// Storage writes uploaded images under a single directory. Stored
// records reference files by the relative path it returns.
type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

// Validate accepts a file only when both its declared MIME type and its
// extension are on the image allow-list, and it is within the size cap.
func (s *Storage) Validate(fh *multipart.FileHeader) error {
	if fh.Size > MaxFileSize {
		return &RejectError{
			Code:    CodeFileSize,
			Message: fmt.Sprintf("File %q exceeds the %d MB limit", fh.Filename, MaxFileSize>>20),
		}
	}

	mime := fh.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedTypes[mime] || !allowedExts[ext] {
		return &RejectError{
			Code:    CodeUnexpectedFile,
			Message: fmt.Sprintf("File %q is not an allowed image type", fh.Filename),
		}
	}

	return nil
}

// SafeName derives a filesystem-safe, collision-resistant name:
// sanitized stem, millisecond timestamp, 8 random bytes, lowercased
// original extension. Uniqueness relies on entropy, not verification.
func SafeName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	stem := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	stem = unsafeChars.ReplaceAllString(stem, "_")
	if len(stem) > maxStemLen {
		stem = stem[:maxStemLen]
	}

	suffix := make([]byte, 8)
	rand.Read(suffix)

	return fmt.Sprintf("%s_%d_%s%s", stem, time.Now().UnixMilli(), hex.EncodeToString(suffix), ext)
}

// Save writes the file under a generated name and returns the relative
// path to store on the owning record.
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := SafeName(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("write file: %w", err)
	}

	return "uploads/" + name, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Storage) Remove(stored string) error {
	err := os.Remove(s.diskPath(stored))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Cleanup deletes files best-effort after a failed request. Failures
// are logged and never returned so they cannot mask the original error.
func (s *Storage) Cleanup(stored []string) {
	for _, p := range stored {
		if err := s.Remove(p); err != nil {
			log.Printf("cleanup: failed to remove %s: %v", p, err)
		}
	}
}

// Exists reports whether a stored path is still on disk.
func (s *Storage) Exists(stored string) bool {
	_, err := os.Stat(s.diskPath(stored))
	return err == nil
}

func (s *Storage) diskPath(stored string) string {
	return filepath.Join(s.dir, filepath.Base(stored))
}
