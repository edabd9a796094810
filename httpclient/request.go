// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/simbuah/go-api-http-client/cookiejar"
	"github.com/simbuah/go-api-http-client/headers"
	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/response"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestOptions tunes a single request. A nil *RequestOptions means defaults.
type RequestOptions struct {
	Headers      http.Header
	Query        url.Values
	ContentType  string // Overrides the default application/json
	ResponseType ResponseType
	Anonymous    bool // Sends no credential; a 401 is returned as an HTTP error
}

// Response is a fully read 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Request    *RequestDescriptor

	log logger.Logger
}

// Decode unmarshals the body into out according to its Content-Type.
func (r *Response) Decode(out any) error {
	return response.HandleAPISuccessResponse(r.httpResponse(), out, r.log)
}

// Filename returns the attachment filename from Content-Disposition, if the server sent one.
func (r *Response) Filename() (string, bool) {
	return response.FilenameFromDisposition(r.Header.Get("Content-Disposition"))
}

// httpResponse rebuilds an *http.Response over the buffered body so the response
// package can read it as often as needed.
func (r *Response) httpResponse() *http.Response {
	return &http.Response{
		StatusCode: r.StatusCode,
		Header:     r.Header,
		Body:       io.NopCloser(bytes.NewReader(r.Body)),
	}
}

// Request sends method to path (relative to BaseURL) and returns the 2xx response.
//
// The stored access token, when present, is attached as a bearer credential. A 401 is
// recovered from once: the token is refreshed (or, when a refresh is already running, the
// request waits for it) and the request is replayed with the new token. The caller only
// sees the 401 as an *AuthExpiredError when recovery fails or the replay is rejected again.
//
// Errors:
//   - *NetworkError: no response was received (including ctx ending while queued)
//   - *AuthExpiredError: the session is gone, errors.Is(err, ErrAuthExpired) holds
//   - *response.HTTPError: any other non-2xx status, with the server's body
//
// Example:
//
//	resp, err := client.Request(ctx, http.MethodGet, "/master/buah", nil, nil)
//	if err != nil {
//	    // Handle error
//	}
//	var fruits []Fruit
//	err = resp.Decode(&fruits)
func (c *Client) Request(ctx context.Context, method, path string, body any, opts *RequestOptions) (*Response, error) {
	desc, err := c.newRequestDescriptor(method, path, body, opts)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, desc)
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, opts)
}

// Post sends a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, opts)
}

// Put sends a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, opts)
}

// Patch sends a PATCH request with body encoded as JSON.
func (c *Client) Patch(ctx context.Context, path string, body any, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, path, body, opts)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts *RequestOptions) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, opts)
}

// DoRequest sends the request and decodes a successful body into out. A nil out discards it.
func (c *Client) DoRequest(ctx context.Context, method, path string, body any, out any) (*Response, error) {
	resp, err := c.Request(ctx, method, path, body, nil)
	if err != nil {
		return nil, err
	}
	if err := resp.Decode(out); err != nil {
		return resp, err
	}
	return resp, nil
}

// Download fetches path in blob mode and copies the body to w.
func (c *Client) Download(ctx context.Context, path string, opts *RequestOptions, w io.Writer) (*Response, error) {
	blobOpts := RequestOptions{}
	if opts != nil {
		blobOpts = *opts
	}
	blobOpts.ResponseType = ResponseBlob

	resp, err := c.Request(ctx, http.MethodGet, path, nil, &blobOpts)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(resp.Body); err != nil {
		return resp, fmt.Errorf("writing download: %w", err)
	}
	return resp, nil
}

func (c *Client) newRequestDescriptor(method, path string, body any, opts *RequestOptions) (*RequestDescriptor, error) {
	normalized, err := normalizeMethod(method)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, method)
	}
	if opts == nil {
		opts = &RequestOptions{}
	}

	rawURL, err := c.resolveURL(path, opts.Query)
	if err != nil {
		return nil, err
	}

	encoded, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	header := opts.Headers.Clone()
	if opts.ContentType != "" {
		if header == nil {
			header = make(http.Header)
		}
		header.Set("Content-Type", opts.ContentType)
	}

	return &RequestDescriptor{
		Method:       normalized,
		URL:          rawURL,
		Header:       header,
		Body:         encoded,
		ResponseType: opts.ResponseType,
		Anonymous:    opts.Anonymous,
	}, nil
}

// resolveURL joins path onto BaseURL. Absolute http(s) URLs are used as given.
func (c *Client) resolveURL(path string, query url.Values) (string, error) {
	var raw string
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		raw = path
	} else {
		raw = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid request url %q: %w", raw, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// pathOf returns the path part of rawURL relative to BaseURL's path.
func (c *Client) pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	base, err := url.Parse(c.config.BaseURL)
	if err != nil || base.Host != u.Host {
		return u.Path
	}
	return "/" + strings.TrimLeft(strings.TrimPrefix(u.Path, strings.TrimRight(base.Path, "/")), "/")
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		return data, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		return data, nil
	}
}

// send performs one transport round trip under a concurrency permit. It never looks at
// the status code beyond logging; callers decide what a 401 means.
func (c *Client) send(ctx context.Context, desc *RequestDescriptor, bearer string) (*Response, error) {
	rawURL := desc.URL
	if c.redirects != nil && isSafeHTTPMethod(desc.Method) {
		rawURL = c.redirects.ResolvePermanentRedirect(rawURL)
	}

	var body io.Reader
	if len(desc.Body) > 0 {
		body = bytes.NewReader(desc.Body)
	}
	req, err := http.NewRequestWithContext(ctx, desc.Method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	c.applyHeaders(req, desc, bearer)

	permitCtx, requestID, err := c.Concurrency.AcquireConcurrencyPermit(ctx)
	if err != nil {
		return nil, &NetworkError{Method: desc.Method, URL: rawURL, Err: err}
	}
	defer c.Concurrency.ReleaseConcurrencyPermit(requestID)
	req = req.WithContext(permitCtx)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.LogError(c.Logger, "request_failed", desc.Method, rawURL, 0, err)
		return nil, &NetworkError{Method: desc.Method, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.LogError(c.Logger, "response_read_failed", desc.Method, rawURL, resp.StatusCode, err)
		return nil, &NetworkError{Method: desc.Method, URL: rawURL, Err: err}
	}

	logger.LogRequestEnd(c.Logger, requestID.String(), desc.Method, rawURL, resp.StatusCode, time.Since(start))
	if resp.Request == nil {
		resp.Request = req
	}
	headers.CheckDeprecationHeader(resp, c.Logger)
	if c.config.CookieJarEnabled {
		cookiejar.LogCookies("response", resp.Cookies(), rawURL, c.Logger)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       bodyBytes,
		Request:    desc,
		log:        c.Logger,
	}, nil
}

// httpError converts a non-2xx response into the caller-facing error.
func (c *Client) httpError(resp *Response) *response.HTTPError {
	apiErr := response.HandleAPIErrorResponse(resp.httpResponse(), c.Logger)
	apiErr.Method = resp.Request.Method
	apiErr.URL = resp.Request.URL
	return apiErr
}
