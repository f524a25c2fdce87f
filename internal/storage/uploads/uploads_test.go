package uploads_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"studio-backend/internal/storage/uploads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *uploads.Storage {
	t.Helper()
	s, err := uploads.New(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return s
}

func fileHeader(t *testing.T, filename, contentType, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestSafeName(t *testing.T) {
	t.Run("sanitizes and keeps extension", func(t *testing.T) {
		name := uploads.SafeName("my photo (1).JPG")

		assert.True(t, strings.HasSuffix(name, ".jpg"), "extension should be lowercased: %s", name)
		assert.True(t, strings.HasPrefix(name, "my_photo__1__"), "stem should be sanitized: %s", name)
		assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_]+_\d+_[0-9a-f]{16}\.jpg$`), name)
	})

	t.Run("truncates long stems", func(t *testing.T) {
		name := uploads.SafeName(strings.Repeat("a", 100) + ".png")
		stem := name[:strings.Index(name, "_")]
		assert.Len(t, stem, 20)
	})

	t.Run("two calls differ", func(t *testing.T) {
		assert.NotEqual(t, uploads.SafeName("a.png"), uploads.SafeName("a.png"))
	})
}

func TestValidate(t *testing.T) {
	s := newStorage(t)

	t.Run("accepts jpeg", func(t *testing.T) {
		fh := fileHeader(t, "pic.jpg", "image/jpeg", "data")
		assert.NoError(t, s.Validate(fh))
	})

	t.Run("rejects disallowed type", func(t *testing.T) {
		fh := fileHeader(t, "doc.pdf", "application/pdf", "data")
		err := s.Validate(fh)
		require.Error(t, err)

		re, ok := err.(*uploads.RejectError)
		require.True(t, ok)
		assert.Equal(t, uploads.CodeUnexpectedFile, re.Code)
	})

	t.Run("rejects image mime with wrong extension", func(t *testing.T) {
		fh := fileHeader(t, "pic.exe", "image/jpeg", "data")
		err := s.Validate(fh)
		require.Error(t, err)
		assert.Equal(t, uploads.CodeUnexpectedFile, err.(*uploads.RejectError).Code)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		fh := fileHeader(t, "big.jpg", "image/jpeg", "x")
		fh.Size = uploads.MaxFileSize + 1

		err := s.Validate(fh)
		require.Error(t, err)
		assert.Equal(t, uploads.CodeFileSize, err.(*uploads.RejectError).Code)
	})
}

func TestSaveRemoveCleanup(t *testing.T) {
	s := newStorage(t)

	t.Run("save writes under generated name", func(t *testing.T) {
		fh := fileHeader(t, "hero.jpg", "image/jpeg", "image bytes")

		stored, err := s.Save(fh)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(stored, "uploads/"), stored)
		assert.True(t, s.Exists(stored))

		data, err := os.ReadFile(filepath.Join(s.Dir(), filepath.Base(stored)))
		require.NoError(t, err)
		assert.Equal(t, "image bytes", string(data))
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		fh := fileHeader(t, "gone.png", "image/png", "x")
		stored, err := s.Save(fh)
		require.NoError(t, err)

		require.NoError(t, s.Remove(stored))
		assert.False(t, s.Exists(stored))
		assert.NoError(t, s.Remove(stored), "removing a missing file is not an error")
	})

	t.Run("cleanup removes everything it can", func(t *testing.T) {
		a, err := s.Save(fileHeader(t, "a.jpg", "image/jpeg", "a"))
		require.NoError(t, err)
		b, err := s.Save(fileHeader(t, "b.jpg", "image/jpeg", "b"))
		require.NoError(t, err)

		s.Cleanup([]string{a, "uploads/never_existed.jpg", b})

		assert.False(t, s.Exists(a))
		assert.False(t, s.Exists(b))
	})
}
