package crawler

import (
	"net/http"
	"strings"
	"time"
)

// Outcome discriminates a successful fetch from a failed one.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
)

// String returns the lower-case outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Headers holds response headers keyed by lower-cased names.
type Headers map[string][]string

// NewHeaders copies h into a Headers map with lower-cased keys.
func NewHeaders(h http.Header) Headers {
	out := make(Headers, len(h))
	for k, v := range h {
		key := strings.ToLower(k)
		out[key] = append(out[key], v...)
	}
	return out
}

// Get returns the first value for name, matched case-insensitively.
func (h Headers) Get(name string) string {
	if v := h[strings.ToLower(name)]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Values returns every value recorded for name.
func (h Headers) Values(name string) []string {
	return h[strings.ToLower(name)]
}

// Has reports whether name was present at all, even with an empty value.
func (h Headers) Has(name string) bool {
	_, ok := h[strings.ToLower(name)]
	return ok
}

// FetchResult is produced for every attempted URL.
type FetchResult struct {
	Outcome   Outcome       `json:"outcome"`
	URL       string        `json:"url"`
	FinalURL  string        `json:"finalUrl"`
	Status    int           `json:"status"` // 0 when no response was received
	Headers   Headers       `json:"headers"`
	HTML      string        `json:"-"`
	SizeBytes int           `json:"sizeBytes"`
	Latency   time.Duration `json:"latency" swaggertype:"integer" format:"int64"` // nanoseconds
	Err       string        `json:"error,omitempty"`
}

// OK reports whether the fetch produced a response.
func (r FetchResult) OK() bool { return r.Outcome == OutcomeSuccess }

// CrawlError records a URL that failed to fetch or could not be expanded.
type CrawlError struct {
	URL    string `json:"url"`
	Error  string `json:"error"`
	Status *int   `json:"status"`
}

// Report is the output of one crawl run.
type Report struct {
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Pages      []FetchResult `json:"pages"`
	Errors     []CrawlError  `json:"errors"`
}
