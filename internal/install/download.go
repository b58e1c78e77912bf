package install

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
)

const userAgent = "godoxygen/1.0 (+https://github.com/hyperifyio/godoxygen)"

// download fetches url into a temporary file and returns its path. The
// caller owns the file. Transient failures (5xx, deadline) are retried with
// a short linear backoff; a 404 means the version simply is not published
// and is reported as ErrVersionUnavailable without retrying.
func (i *Installer) download(ctx context.Context, url string) (string, error) {
	resp, err := i.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "godoxygen-*.archive")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	hash := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, hash), resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save archive: %w", err)
	}

	i.Logger.Debug().
		Int64("bytes", n).
		Str("sha256", hex.EncodeToString(hash.Sum(nil))).
		Msg("archive downloaded")
	return tmp.Name(), nil
}

// get issues a GET with bounded retry and returns a response whose status is
// 200. The caller must close the body.
func (i *Installer) get(ctx context.Context, url string) (*http.Response, error) {
	attempts := i.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := i.tryGet(ctx, url)
		if err == nil {
			return resp, nil
		}
		if !isTransient(err) || attempt == attempts-1 {
			return nil, err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
	}
	return nil, lastErr
}

func (i *Installer) tryGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := i.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrVersionUnavailable, url)
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		resp.Body.Close()
		return nil, fmt.Errorf("server error: %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return resp, nil
}

// httpClient returns the configured client, or a download-tuned one whose
// timeout covers the whole exchange including the body read, so a stalled
// download cannot hang the run forever.
func (i *Installer) httpClient() *http.Client {
	if i.HTTPClient != nil {
		return i.HTTPClient
	}
	return newDownloadHTTPClient(i.RequestTimeout)
}

// isTransient treats 5xx responses and timeouts as retryable; everything
// else, notably a 404 for an unpublished version, fails immediately.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return strings.HasPrefix(err.Error(), "server error:")
}
