package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "test_dir")

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	t.Setenv("ANDROID_DATA", "")
	t.Setenv("ANDROID_ROOT", "")

	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}
	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	err := OpenFileInManager(filepath.Join(t.TempDir(), "nonexistent.pdf"))
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestOpenFileWithDefaultApp_EmptyPath(t *testing.T) {
	if err := OpenFileWithDefaultApp(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/book.pdf", true},
		{"http://example.com/book.pdf", true},
		{"/book.pdf", false},
		{"file:///tmp/book.pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsRemote(tt.ref); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestSaveDocument_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/book.pdf" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "Downloads")
	path, err := SaveDocument(context.Background(), srv.Client(), srv.URL+"/book.pdf", dir, "Manifesto.pdf")
	if err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	if path != filepath.Join(dir, "Manifesto.pdf") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved document: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("unexpected content %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the saved document, got %d entries", len(entries))
	}
}

func TestSaveDocument_RemoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := SaveDocument(context.Background(), srv.Client(), srv.URL+"/missing.pdf", t.TempDir(), "x.pdf")
	if !errors.Is(err, ErrDocumentUnavailable) {
		t.Errorf("expected ErrDocumentUnavailable, got %v", err)
	}
}

func TestSaveDocument_LocalCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(src, []byte("local"), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := SaveDocument(context.Background(), nil, src, dir, "")
	if err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	if filepath.Base(path) != "book.pdf" {
		t.Errorf("expected source name to be kept, got %s", path)
	}
}

func TestSaveDocument_LocalMissing(t *testing.T) {
	_, err := SaveDocument(context.Background(), nil, filepath.Join(t.TempDir(), "missing.pdf"), t.TempDir(), "x.pdf")
	if !errors.Is(err, ErrDocumentUnavailable) {
		t.Errorf("expected ErrDocumentUnavailable, got %v", err)
	}
}
