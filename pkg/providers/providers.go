// Package providers implements clients for the external directory services
// that back the non-library search categories: a radio station directory and
// a podcast directory. Calls are bounded by the caller's context; failures
// are expected and degrade search to library-only results.
package providers

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

const (
	userAgent      = "Harmonia/1.0 (https://github.com/harmonia-music/harmonia)"
	defaultTimeout = 30 * time.Second

	// Directory responses are capped per category.
	searchLimit = 25
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, params url.Values, out interface{}) error {
	reqURL := rawURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("directory returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode directory response")
	}
	return nil
}
