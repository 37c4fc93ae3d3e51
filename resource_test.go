package httpd

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFileResource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte("<html>Hello</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := FileResource{Path: path}.Load()
	if err != nil {
		t.Fatal(err)
	}
	expectEqual(t, "<html>Hello</html>", string(b))

	tests := []struct {
		name   string
		path   string
		status LoadStatus
	}{
		{"missing", filepath.Join(dir, "missing.html"), LoadNotFound},
		{"directory", dir, LoadIOError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FileResource{Path: tt.path}.Load()
			if !errors.Is(err, ErrResourceUnavailable) {
				t.Fatalf("err %v does not wrap ErrResourceUnavailable", err)
			}
			var re *ResourceError
			if !errors.As(err, &re) {
				t.Fatalf("err %v is not a *ResourceError", err)
			}
			if re.Status != tt.status || ClassifyLoadError(err) != tt.status {
				t.Errorf("status %s, want %s", re.Status, tt.status)
			}
		})
	}
}

func TestBytesResource(t *testing.T) {
	_, err := BytesResource(nil).Load()
	if !errors.Is(err, fs.ErrNotExist) || !errors.Is(err, ErrResourceUnavailable) {
		t.Errorf("unexpected error %v", err)
	}
	b, err := BytesResource{}.Load()
	if err != nil || len(b) != 0 {
		t.Errorf("empty document: %q, %v", b, err)
	}
}

func TestClassifyLoadError(t *testing.T) {
	if s := ClassifyLoadError(nil); s != LoadOK {
		t.Errorf("nil error classified as %s", s)
	}
	if s := ClassifyLoadError(fs.ErrPermission); s != LoadIOError {
		t.Errorf("permission error classified as %s", s)
	}
	if s := ClassifyLoadError(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}); s != LoadNotFound {
		t.Errorf("missing file classified as %s", s)
	}
}
