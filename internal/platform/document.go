package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrDocumentUnavailable is returned when the document source cannot be read
var ErrDocumentUnavailable = errors.New("document unavailable")

// IsRemote reports whether ref is an http(s) URL
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// SaveDocument copies the document at src into dir under name and returns
// the written path. Remote sources are downloaded with client. The file is
// written under a temporary name and renamed once complete.
func SaveDocument(ctx context.Context, client *http.Client, src, dir, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = filepath.Base(src)
	}
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	body, err := openDocument(ctx, client, src)
	if err != nil {
		return "", err
	}
	defer body.Close()

	target := filepath.Join(dir, filepath.Base(name))
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".part-*")
	if err != nil {
		return "", fmt.Errorf("create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := os.Chmod(tmpName, DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("move document into place: %w", err)
	}
	return target, nil
}

func openDocument(ctx context.Context, client *http.Client, src string) (io.ReadCloser, error) {
	if !IsRemote(src) {
		f, err := os.Open(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
		}
		return f, nil
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrDocumentUnavailable, resp.Status)
	}
	return resp.Body, nil
}
