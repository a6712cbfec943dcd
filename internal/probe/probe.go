package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/platform"
)

const (
	// DefaultConcurrency bounds in-flight requests when Options leaves it unset
	DefaultConcurrency = 4
	// DefaultTimeout bounds one request when Options leaves it unset
	DefaultTimeout = 10 * time.Second
)

// ErrUnreachable marks a chapter whose asset answered with a non-2xx status
var ErrUnreachable = errors.New("asset unreachable")

// Options configure a probe run
type Options struct {
	Client      *http.Client
	Concurrency int
	Timeout     time.Duration
	Logger      *zap.Logger
}

// Result is the outcome for one chapter
type Result struct {
	Chapter     model.Chapter
	Status      int
	ContentType string
	Size        int64
	Elapsed     time.Duration
	Err         error
}

// OK reports whether the asset can be fetched
func (r Result) OK() bool {
	return r.Err == nil
}

// Run probes every chapter of catalog. Results keep catalog order. The
// returned error is non-nil only when ctx was cancelled.
func Run(ctx context.Context, catalog *model.Catalog, opts Options) ([]Result, error) {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, catalog.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, ch := range catalog.Chapters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = probeOne(gctx, opts, ch)
			if err := results[i].Err; err != nil {
				logger.Debug("probe failed",
					zap.Int("chapter", ch.ID),
					zap.String("url", ch.AudioURL),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// Failed returns the results that did not succeed
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

func probeOne(ctx context.Context, opts Options, ch model.Chapter) (res Result) {
	res = Result{Chapter: ch, Size: -1}
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	if !platform.IsRemote(ch.AudioURL) {
		info, err := os.Stat(strings.TrimPrefix(ch.AudioURL, "file://"))
		if err != nil {
			res.Err = err
			return res
		}
		res.Size = info.Size()
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	resp, err := request(ctx, opts.Client, http.MethodHead, ch.AudioURL)
	if err == nil && (resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented) {
		// Some hosts refuse HEAD; ask for the first byte instead.
		resp, err = request(ctx, opts.Client, http.MethodGet, ch.AudioURL)
	}
	if err != nil {
		res.Err = err
		return res
	}

	res.Status = resp.StatusCode
	res.ContentType = resp.Header.Get("Content-Type")
	res.Size = resp.ContentLength
	if resp.StatusCode == http.StatusPartialContent {
		res.Size = totalFromContentRange(resp.Header.Get("Content-Range"))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res.Err = fmt.Errorf("%w: %s", ErrUnreachable, resp.Status)
	}
	return res
}

func request(ctx context.Context, client *http.Client, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	return resp, nil
}

// totalFromContentRange extracts the full length from "bytes 0-0/12345"
func totalFromContentRange(v string) int64 {
	_, total, ok := strings.Cut(v, "/")
	if !ok {
		return -1
	}
	n, err := strconv.ParseInt(strings.TrimSpace(total), 10, 64)
	if err != nil {
		return -1
	}
	return n
}
