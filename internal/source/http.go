package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vfaronov/httpheader"

	"github.com/linescope/linescope/internal/utils"
)

const fetchAttempts = 3

var (
	retryDelay = 1 * time.Second
	// maxBodySize caps how much of a response is read.
	maxBodySize int64 = 64 << 20
)

var ua = "linescope/1 (+https://github.com/linescope/linescope)"

// fetch GETs rawurl and returns the body and its media type. Transport
// errors are retried; HTTP error statuses are not.
func fetch(ctx context.Context, rawurl string, timeout time.Duration) ([]byte, string, error) {
	utils.Debug("Fetching source: %s", rawurl)

	client := &http.Client{Timeout: timeout}

	var resp *http.Response
	var err error
	for i := 0; i < fetchAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(retryDelay):
			}
			utils.Debug("Retrying fetch... attempt %d", i+1)
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
		if reqErr != nil {
			return nil, "", fmt.Errorf("failed to create request: %w", reqErr)
		}
		req.Header.Set("User-Agent", ua)
		req.Header.Set("Accept", "application/json, text/csv;q=0.9, */*;q=0.5")

		resp, err = client.Do(req)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, "", fmt.Errorf("fetch failed after retries: %w", err)
	}

	defer func() {
		io.Copy(io.Discard, resp.Body) // Drain any remaining data
		resp.Body.Close()
	}()

	utils.Debug("Fetch response status: %d", resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusOK:
	default:
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > maxBodySize {
		return nil, "", fmt.Errorf("response exceeds %d bytes", maxBodySize)
	}

	mtype, _ := httpheader.ContentType(resp.Header)
	return body, mtype, nil
}
