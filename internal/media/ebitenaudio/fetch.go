package ebitenaudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/ytget/audiobook-reader/internal/media"
)

// Format is a supported container
type Format string

const (
	FormatUnknown Format = ""
	FormatMP3     Format = "mp3"
	FormatWAV     Format = "wav"
	FormatVorbis  Format = "ogg"
)

// MaxSourceBytes bounds the size of one fetched source
const MaxSourceBytes = 512 << 20

// FormatOf picks the decoder from the URL path, falling back to the content type
func FormatOf(rawURL, contentType string) Format {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".mp3":
		return FormatMP3
	case ".wav", ".wave":
		return FormatWAV
	case ".ogg", ".oga":
		return FormatVorbis
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatUnknown
	}
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return FormatMP3
	case "audio/wav", "audio/x-wav", "audio/wave":
		return FormatWAV
	case "audio/ogg", "application/ogg":
		return FormatVorbis
	}
	return FormatUnknown
}

// fetched is a source read fully into memory
type fetched struct {
	data        []byte
	contentType string
}

// fetch reads src over HTTP(S), or from disk for file URLs and plain paths.
// Failures are returned as *media.Error with the matching code.
func fetch(ctx context.Context, client *http.Client, src string) (*fetched, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, &media.Error{Code: media.ErrorCodeSrcNotSupported, Message: err.Error()}
	}

	switch u.Scheme {
	case "http", "https":
	case "file":
		return readFile(u.Path)
	case "":
		return readFile(src)
	default:
		return nil, &media.Error{Code: media.ErrorCodeSrcNotSupported, Message: "unsupported scheme " + u.Scheme}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, &media.Error{Code: media.ErrorCodeSrcNotSupported, Message: err.Error()}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, transferError(ctx, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &media.Error{Code: media.ErrorCodeNetwork, Message: resp.Status}
	case resp.StatusCode >= 400:
		return nil, &media.Error{Code: media.ErrorCodeSrcNotSupported, Message: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSourceBytes+1))
	if err != nil {
		return nil, transferError(ctx, err)
	}
	if len(data) > MaxSourceBytes {
		return nil, &media.Error{Code: media.ErrorCodeSrcNotSupported, Message: "source too large"}
	}
	return &fetched{data: data, contentType: resp.Header.Get("Content-Type")}, nil
}

func readFile(name string) (*fetched, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, &media.Error{Code: media.ErrorCodeSrcNotSupported, Message: err.Error()}
	}
	return &fetched{data: data}, nil
}

func transferError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return &media.Error{Code: media.ErrorCodeAborted, Message: "load superseded"}
	}
	return &media.Error{Code: media.ErrorCodeNetwork, Message: fmt.Sprintf("transfer failed: %v", err)}
}
