package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrInvalidSeed is returned when the seed is not an absolute http(s) URL.
var ErrInvalidSeed = errors.New("seed must be an absolute http or https URL")

// LinkExtractor returns the href of every anchor in html, in document order.
type LinkExtractor func(html string) ([]string, error)

// ExtractLinks is the default LinkExtractor.
func ExtractLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		hrefs = append(hrefs, href)
	})
	return hrefs, nil
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithLogger sets the logger used for per-page and per-run messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Crawler) { c.log = l }
}

// WithRateLimit spaces fetches within one run to at most r per second.
// Zero or negative means unlimited.
func WithRateLimit(r float64) Option {
	return func(c *Crawler) {
		if r > 0 {
			c.rate = rate.Limit(r)
		}
	}
}

// WithLinkExtractor replaces the goquery anchor extraction.
func WithLinkExtractor(x LinkExtractor) Option {
	return func(c *Crawler) { c.extract = x }
}

// Crawler walks same-origin pages breadth-first from a seed. A Crawler holds
// no per-run state and may serve concurrent Crawl calls.
type Crawler struct {
	fetcher Fetcher
	extract LinkExtractor
	rate    rate.Limit
	log     logrus.FieldLogger
}

// New creates a Crawler that fetches through f.
func New(f Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher: f,
		extract: ExtractLinks,
		rate:    rate.Inf,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// crawlRun is the state of a single Crawl call.
type crawlRun struct {
	origin   string
	maxPages int
	frontier []*url.URL
	visited  map[string]struct{}
	pages    []FetchResult
	errors   []CrawlError
}

// admit appends u to the frontier unless it was seen before or the page
// budget is already spoken for.
func (r *crawlRun) admit(u *url.URL) bool {
	key := u.String()
	if _, ok := r.visited[key]; ok {
		return false
	}
	if len(r.frontier)+len(r.pages) >= r.maxPages {
		return false
	}
	r.visited[key] = struct{}{}
	r.frontier = append(r.frontier, u)
	return true
}

func (r *crawlRun) next() *url.URL {
	u := r.frontier[0]
	r.frontier[0] = nil
	r.frontier = r.frontier[1:]
	return u
}

func (r *crawlRun) fail(u string, msg string, status int) {
	e := CrawlError{URL: u, Error: msg}
	if status != 0 {
		s := status
		e.Status = &s
	}
	r.errors = append(r.errors, e)
}

// Crawl fetches up to maxPages successful pages reachable from seed without
// leaving the seed's origin. Per-URL failures are recorded in the report;
// the only error returned is ErrInvalidSeed. When ctx is done the run stops
// before the next fetch and the partial report is returned.
func (c *Crawler) Crawl(ctx context.Context, seed string, maxPages int) (*Report, error) {
	parsed, err := url.Parse(strings.TrimSpace(seed))
	if err != nil || parsed.Host == "" {
		return nil, ErrInvalidSeed
	}
	start, ok := Normalize(parsed, parsed.String())
	if !ok {
		return nil, ErrInvalidSeed
	}
	if maxPages < 1 {
		maxPages = 1
	}

	log := c.log.WithFields(logrus.Fields{"seed": start.String(), "max_pages": maxPages})
	report := &Report{StartedAt: time.Now().UTC()}
	run := &crawlRun{
		origin:   Origin(start),
		maxPages: maxPages,
		visited:  make(map[string]struct{}),
	}
	run.admit(start)
	limiter := rate.NewLimiter(c.rate, 1)

	for len(run.frontier) > 0 && len(run.pages) < maxPages {
		if ctx.Err() != nil {
			log.WithError(ctx.Err()).Warn("crawl interrupted")
			break
		}
		u := run.next()
		if err := limiter.Wait(ctx); err != nil {
			run.fail(u.String(), err.Error(), 0)
			break
		}

		res := c.fetcher.Fetch(ctx, u.String())
		if !res.OK() {
			log.WithFields(logrus.Fields{"url": u.String(), "status": res.Status}).
				Warnf("fetch failed: %s", res.Err)
			run.fail(u.String(), res.Err, res.Status)
			continue
		}
		run.pages = append(run.pages, res)
		log.WithFields(logrus.Fields{
			"url":     res.FinalURL,
			"status":  res.Status,
			"bytes":   res.SizeBytes,
			"latency": res.Latency.Truncate(time.Millisecond),
		}).Debug("page fetched")

		c.expand(run, u, res, log)
	}

	report.FinishedAt = time.Now().UTC()
	report.Pages = run.pages
	report.Errors = run.errors
	if report.Pages == nil {
		report.Pages = []FetchResult{}
	}
	if report.Errors == nil {
		report.Errors = []CrawlError{}
	}
	log.WithFields(logrus.Fields{
		"pages":    len(report.Pages),
		"errors":   len(report.Errors),
		"duration": report.FinishedAt.Sub(report.StartedAt).Truncate(time.Millisecond),
	}).Info("crawl finished")
	return report, nil
}

// expand admits the same-origin links of a fetched page, resolved against
// the page's post-redirect URL.
func (c *Crawler) expand(run *crawlRun, requested *url.URL, res FetchResult, log logrus.FieldLogger) {
	hrefs, err := c.extract(res.HTML)
	if err != nil {
		log.WithField("url", requested.String()).WithError(err).Warn("link extraction failed")
		run.fail(requested.String(), err.Error(), 0)
		return
	}

	base, err := url.Parse(res.FinalURL)
	if err != nil {
		base = requested
	}
	admitted := 0
	for _, href := range hrefs {
		link, ok := Normalize(base, href)
		if !ok || Origin(link) != run.origin {
			continue
		}
		if run.admit(link) {
			admitted++
		}
	}
	log.WithFields(logrus.Fields{"url": requested.String(), "links": len(hrefs), "admitted": admitted}).
		Debug("links expanded")
}
