package remote_file_client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/init-pkg/report-parser/domain/app"
	"github.com/init-pkg/report-parser/internal/config"
	"github.com/init-pkg/report-parser/internal/errs"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cachePrefix = "report-parser:file:"

// RemoteFileClient downloads report files. Concurrent requests for the same
// URL share one download; results are cached in Redis when a client is
// configured. It never retries.
type RemoteFileClient struct {
	client   *http.Client
	maxBytes int64
	cache    *redis.Client
	cacheTTL time.Duration
	group    singleflight.Group
	log      *slog.Logger
}

var _ app.FileFetcher = &RemoteFileClient{}

// New accepts a nil cache.
func New(cfg *config.Config, cache *redis.Client, log *slog.Logger) *RemoteFileClient {
	client := &http.Client{
		Timeout: cfg.Fetch.Timeout,
	}
	return &RemoteFileClient{
		client:   client,
		maxBytes: cfg.Fetch.MaxBytes,
		cache:    cache,
		cacheTTL: cfg.Fetch.CacheTTL,
		log:      log,
	}
}

func (this *RemoteFileClient) Fetch(ctx context.Context, rawURL string) ([]byte, errs.Error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	if data, ok := this.cached(ctx, rawURL); ok {
		return data, nil
	}

	ch := this.group.DoChan(rawURL, func() (any, error) {
		// detached so one caller going away does not fail the others
		dctx := context.WithoutCancel(ctx)
		data, err := this.download(dctx, rawURL)
		if err != nil {
			return nil, err
		}
		this.store(dctx, rawURL, data)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, fetchFailed(rawURL, ctx.Err(), nil)
	case res := <-ch:
		if res.Err != nil {
			return nil, errs.WrapAppError(res.Err, &errs.ErrorOpts{})
		}
		return res.Val.([]byte), nil
	}
}

func (this *RemoteFileClient) download(ctx context.Context, rawURL string) ([]byte, errs.Error) {
	started := time.Now()

	req, e := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if e != nil {
		return nil, errs.BadRequest("invalid file url", map[string]any{"url": rawURL})
	}

	res, e := this.client.Do(req)
	if e != nil {
		return nil, fetchFailed(rawURL, e, nil)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fetchFailed(rawURL, fmt.Errorf("remote responded %d", res.StatusCode), map[string]any{
			"url":    rawURL,
			"status": res.StatusCode,
		})
	}
	if res.ContentLength > this.maxBytes {
		return nil, tooLarge(rawURL, this.maxBytes)
	}

	data, e := io.ReadAll(io.LimitReader(res.Body, this.maxBytes+1))
	if e != nil {
		return nil, fetchFailed(rawURL, e, nil)
	}
	if int64(len(data)) > this.maxBytes {
		return nil, tooLarge(rawURL, this.maxBytes)
	}

	this.log.Info("file downloaded", "url", rawURL, "bytes", len(data), "took", time.Since(started))
	return data, nil
}

func (this *RemoteFileClient) cached(ctx context.Context, rawURL string) ([]byte, bool) {
	if this.cache == nil {
		return nil, false
	}
	data, e := this.cache.Get(ctx, cacheKey(rawURL)).Bytes()
	if e != nil {
		if !errors.Is(e, redis.Nil) {
			this.log.Warn("file cache read failed", "url", rawURL, "error", e)
		}
		return nil, false
	}
	this.log.Debug("file cache hit", "url", rawURL, "bytes", len(data))
	return data, true
}

func (this *RemoteFileClient) store(ctx context.Context, rawURL string, data []byte) {
	if this.cache == nil || this.cacheTTL <= 0 {
		return
	}
	if e := this.cache.Set(ctx, cacheKey(rawURL), data, this.cacheTTL).Err(); e != nil {
		this.log.Warn("file cache write failed", "url", rawURL, "error", e)
	}
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return cachePrefix + hex.EncodeToString(sum[:])
}

func validateURL(rawURL string) errs.Error {
	u, e := url.Parse(rawURL)
	if e != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.BadRequest("file_url must be an absolute http(s) url", map[string]any{"url": rawURL})
	}
	return nil
}

func fetchFailed(rawURL string, e error, details map[string]any) errs.Error {
	if details == nil {
		details = map[string]any{"url": rawURL}
	}
	return errs.WrapAppError(e, &errs.ErrorOpts{
		Code:    errs.CodeFetchFailed,
		Status:  http.StatusBadGateway,
		Message: "download failed: " + e.Error(),
		Details: details,
	})
}

func tooLarge(rawURL string, limit int64) errs.Error {
	return errs.NewAppError(&errs.ErrorOpts{
		Code:    errs.CodeFetchFailed,
		Status:  http.StatusBadGateway,
		Message: fmt.Sprintf("file exceeds %d bytes", limit),
		Details: map[string]any{"url": rawURL, "max_bytes": limit},
	})
}
