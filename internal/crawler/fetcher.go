package crawler

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
)

const (
	// RequestTimeout bounds one fetch including redirects and body read.
	RequestTimeout = 15 * time.Second
	// MaxRedirects is the number of redirect hops a fetch may follow.
	MaxRedirects = 5
	// UserAgent identifies the auditor to the audited site.
	UserAgent = "ScanURLBot/1.0 (+https://example.com)"

	maxBodyBytes = 10 << 20
)

var errTooManyRedirects = fmt.Errorf("maximum redirects (%d) exceeded", MaxRedirects)

// Fetcher retrieves a single page. Implementations never return an error:
// every failure is described by the returned FetchResult.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) FetchResult
}

// HTTPFetcher implements Fetcher with net/http.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher returns a fetcher with the fixed timeout, redirect limit and
// user-agent.
func NewHTTPFetcher() *HTTPFetcher {
	return newHTTPFetcher(RequestTimeout)
}

func newHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &HTTPFetcher{
		timeout: timeout,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > MaxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
	}
}

// Client exposes the underlying client for auxiliary requests such as
// robots.txt lookups.
func (f *HTTPFetcher) Client() *http.Client { return f.client }

// Fetch performs one GET request against rawURL.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) FetchResult {
	start := time.Now()
	fail := func(resp *http.Response, err error) FetchResult {
		res := FetchResult{
			Outcome:  OutcomeFailure,
			URL:      rawURL,
			FinalURL: rawURL,
			Headers:  Headers{},
			Latency:  time.Since(start),
			Err:      f.describe(ctx, err),
		}
		if resp != nil {
			res.Status = resp.StatusCode
			res.Headers = NewHeaders(resp.Header)
		}
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fail(nil, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.client.Do(req)
	if err != nil {
		return fail(resp, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return fail(resp, err)
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	contentType := resp.Header.Get("Content-Type")
	var text string
	if isTextual(contentType) {
		text = decodeText(body, contentType)
	}

	return FetchResult{
		Outcome:   OutcomeSuccess,
		URL:       rawURL,
		FinalURL:  finalURL,
		Status:    resp.StatusCode,
		Headers:   NewHeaders(resp.Header),
		HTML:      text,
		SizeBytes: len(body),
		Latency:   time.Since(start),
	}
}

// readBody decompresses the body according to Content-Encoding. The
// transport does not do it because Accept-Encoding is set explicitly, which
// keeps the Content-Encoding header visible to the analyzers.
func readBody(resp *http.Response) ([]byte, error) {
	reader := io.Reader(resp.Body)
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "deflate":
		rc, err := newDeflateReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("deflate decode: %w", err)
		}
		defer rc.Close()
		reader = rc
	}

	// Bodies beyond maxBodyBytes are truncated; the response still counts.
	body, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// newDeflateReader reads a "deflate" body. The encoding is zlib-wrapped,
// but some servers send raw DEFLATE, so the zlib header is checked first.
func newDeflateReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(2)
	if err != nil && len(head) < 2 {
		if errors.Is(err, io.EOF) {
			return io.NopCloser(br), nil
		}
		return nil, err
	}
	if isZlibHeader(head[0], head[1]) {
		return zlib.NewReader(br)
	}
	return flate.NewReader(br), nil
}

// isZlibHeader reports whether cmf and flg form a valid zlib header
// (RFC 1950: deflate method, FCHECK multiple of 31).
func isZlibHeader(cmf, flg byte) bool {
	return cmf&0x0f == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// isTextual reports whether a body with the given content type is text.
// A missing content type is treated as text.
func isTextual(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mt, "text/"):
		return true
	case strings.HasSuffix(mt, "+xml"), mt == "application/xml",
		mt == "application/json", mt == "application/javascript":
		return true
	}
	return false
}

// decodeText converts body to UTF-8 using the declared or sniffed charset.
func decodeText(body []byte, contentType string) string {
	r, err := charset.NewReader(strings.NewReader(string(body)), contentType)
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

// describe turns a transport error into a short message. When the caller's
// context ended the fetch, the message names that instead of the client
// timeout.
func (f *HTTPFetcher) describe(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, errTooManyRedirects) {
		return errTooManyRedirects.Error()
	}
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return "audit deadline exceeded"
	case context.Canceled:
		return "request canceled"
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Sprintf("timeout of %dms exceeded", f.timeout.Milliseconds())
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns lookup failed for " + dnsErr.Name
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return "connection refused"
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return "connection reset by peer"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
