package bankfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// contains http utils to deal with remote bank services

// StatusError is returned by GetJSON for non-2xx responses. The status code is
// decided here, at the transport boundary, so that callers classify failures
// structurally instead of inspecting error text.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http GET %s: %s", e.URL, http.StatusText(e.Status))
}

// RateLimited reports whether err is a transient capacity error (HTTP 429).
func RateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusTooManyRequests
}

// BadRequest reports whether err is a client error for invalid request
// parameters (HTTP 400), e.g. an unsupported date range.
func BadRequest(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusBadRequest
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure. Non-2xx responses yield a *StatusError.
func GetJSON(ctx context.Context, client *http.Client, addr string, header http.Header, query url.Values, data any) error {
	if len(query) > 0 {
		addr = addr + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot execute http request %q: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Status: resp.StatusCode, URL: addr}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return fmt.Errorf("cannot read http body from %q: %w", addr, err)
	}
	return json.Unmarshal(buf.Bytes(), data)
}
