package ebitenaudio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/audiobook-reader/internal/media"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		url         string
		contentType string
		expected    Format
	}{
		{"https://cdn.example.com/audio/ch01.mp3", "", FormatMP3},
		{"https://cdn.example.com/audio/CH01.MP3?token=abc", "", FormatMP3},
		{"https://cdn.example.com/audio/ch01.wav", "", FormatWAV},
		{"https://cdn.example.com/audio/ch01.oga", "", FormatVorbis},
		{"https://cdn.example.com/stream/1", "audio/mpeg", FormatMP3},
		{"https://cdn.example.com/stream/1", "audio/ogg; codecs=vorbis", FormatVorbis},
		{"https://cdn.example.com/stream/1", "audio/x-wav", FormatWAV},
		{"https://cdn.example.com/stream/1", "text/html; charset=utf-8", FormatUnknown},
		{"/home/user/book/ch02.mp3", "", FormatMP3},
	}

	for _, tt := range tests {
		if got := FormatOf(tt.url, tt.contentType); got != tt.expected {
			t.Errorf("FormatOf(%q, %q) = %q, want %q", tt.url, tt.contentType, got, tt.expected)
		}
	}
}

func mediaCode(t *testing.T, err error) media.ErrorCode {
	t.Helper()
	var me *media.Error
	require.True(t, errors.As(err, &me), "expected *media.Error, got %v", err)
	return me.Code
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.mp3":
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("ID3 payload"))
		case "/broken.mp3":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	f, err := fetch(context.Background(), server.Client(), server.URL+"/ok.mp3")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3 payload"), f.data)
	assert.Equal(t, "audio/mpeg", f.contentType)

	_, err = fetch(context.Background(), server.Client(), server.URL+"/missing.mp3")
	assert.Equal(t, media.ErrorCodeSrcNotSupported, mediaCode(t, err))

	_, err = fetch(context.Background(), server.Client(), server.URL+"/broken.mp3")
	assert.Equal(t, media.ErrorCodeNetwork, mediaCode(t, err))
}

func TestFetchCancelledIsAborted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetch(ctx, server.Client(), server.URL+"/slow.mp3")
	assert.Equal(t, media.ErrorCodeAborted, mediaCode(t, err))
}

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "ch01.wav")
	require.NoError(t, os.WriteFile(name, []byte("RIFF"), 0o644))

	f, err := fetch(context.Background(), http.DefaultClient, name)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), f.data)

	f, err = fetch(context.Background(), http.DefaultClient, "file://"+name)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), f.data)

	_, err = fetch(context.Background(), http.DefaultClient, filepath.Join(dir, "missing.wav"))
	assert.Equal(t, media.ErrorCodeSrcNotSupported, mediaCode(t, err))

	_, err = fetch(context.Background(), http.DefaultClient, "ftp://example.com/ch01.mp3")
	assert.Equal(t, media.ErrorCodeSrcNotSupported, mediaCode(t, err))
}

func TestDecodeFailures(t *testing.T) {
	_, err := decode(FormatUnknown, DefaultSampleRate, []byte("anything"))
	assert.Equal(t, media.ErrorCodeSrcNotSupported, mediaCode(t, err))

	_, err = decode(FormatWAV, DefaultSampleRate, []byte("definitely not a wave file"))
	assert.Equal(t, media.ErrorCodeDecode, mediaCode(t, err))
}
