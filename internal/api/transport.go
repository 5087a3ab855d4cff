package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Version is the library version reported in the User-Agent header
const Version = "0.3.0"

// UserAgent identifies this library to the bridge
const UserAgent = "philipshue/" + Version

// userAgentTransport stamps every outgoing request with a fixed User-Agent
type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(clone)
}

// NewHTTPClient creates the HTTP client used for every bridge call.
//
// Hue bridges serve a self-signed certificate, so chain verification is
// disabled. Only point this client at devices on a trusted local network.
// No timeout is set; callers bound requests through the context they pass.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &userAgentTransport{
			base: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
			agent: UserAgent,
		},
	}
}

// doRequest sends a request with an optional JSON body and returns the
// response body once the status is known to be 2xx. The caller must close it.
func doRequest(ctx context.Context, client *http.Client, method, url string, body any) (io.ReadCloser, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &RequestError{Method: method, URL: url, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &RequestError{Method: method, URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close() // Error ignored: status already decides the outcome
		return nil, &RequestError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	return resp.Body, nil
}

// getJSON performs a GET and decodes the bare JSON body into out
func getJSON(ctx context.Context, client *http.Client, url string, out any) (err error) {
	body, err := doRequest(ctx, client, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &RequestError{Method: http.MethodGet, URL: url, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
