package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smartcampus/assistant-cli/internal/logging"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultUploadTimeout = 5 * time.Minute

	// non-2xx bodies are error envelopes; anything bigger is noise.
	maxErrorBodySize = 1 << 20
)

// TokenSource supplies the current bearer token, or "" when anonymous.
// The session store provides this; the transport never stores tokens itself.
type TokenSource func() string

// Options configures the HTTP client.
type Options struct {
	BaseURL string
	Token   TokenSource
	Logger  logging.Logger

	// Timeout bounds ordinary calls; UploadTimeout bounds multipart file
	// uploads, which may legitimately run for minutes.
	Timeout       time.Duration
	UploadTimeout time.Duration

	// HTTPClient overrides the underlying transport (used in tests).
	HTTPClient *http.Client
}

// HTTPClient implements Client over the backend REST API.
type HTTPClient struct {
	baseURL       string
	http          *http.Client
	token         TokenSource
	timeout       time.Duration
	uploadTimeout time.Duration
	log           logging.Logger
}

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("api: invalid base URL %q: %w", opts.BaseURL, err)
	}

	c := &HTTPClient{
		baseURL:       base,
		http:          opts.HTTPClient,
		token:         opts.Token,
		timeout:       opts.Timeout,
		uploadTimeout: opts.UploadTimeout,
		log:           opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.token == nil {
		c.token = func() string { return "" }
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.uploadTimeout <= 0 {
		c.uploadTimeout = defaultUploadTimeout
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// call describes one JSON request/response round trip.
type call struct {
	method   string
	path     string
	query    url.Values
	body     any
	skipAuth bool
	timeout  time.Duration
	out      any
}

// do performs the request and decodes a 2xx JSON body into cl.out.
// Non-2xx responses become *APIError; transport failures are classified
// into ErrTimeout / ErrUnreachable.
func (c *HTTPClient) do(ctx context.Context, cl call) error {
	timeout := cl.timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.requestURL(cl.path, cl.query), body)
	if err != nil {
		return err
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req, cl.skipAuth)

	return c.roundTrip(req, cl.out)
}

func (c *HTTPClient) requestURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *HTTPClient) authorize(req *http.Request, skipAuth bool) {
	if skipAuth {
		return
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (c *HTTPClient) roundTrip(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = classifyTransportError(err)
		c.log.Warn(req.Context(), "request failed",
			"method", req.Method, "path", req.URL.Path, "err", err)
		return err
	}
	defer resp.Body.Close()

	c.log.Debug(req.Context(), "request done",
		"method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return parseErrorBody(resp.StatusCode, b)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// uploadMultipart streams a single file as multipart/form-data under the
// long upload timeout. The multipart body is produced through a pipe so the
// whole file never sits in memory.
func (c *HTTPClient) uploadMultipart(ctx context.Context, path string, query url.Values, upload FileUpload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", upload.Name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := upload.Content
		if upload.Progress != nil {
			src = &countingReader{r: src, fn: upload.Progress}
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(path, query), pr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req, false)

	return c.roundTrip(req, out)
}

// countingReader reports the running byte count to fn after every read.
type countingReader struct {
	r  io.Reader
	n  int64
	fn func(int64)
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.n += int64(n)
		cr.fn(cr.n)
	}
	return n, err
}
