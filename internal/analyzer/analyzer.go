package analyzer

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/model"
)

// Page is everything the analyzers may look at for one fetched page.
type Page struct {
	URL       string
	Status    int
	HTML      string
	Headers   crawler.Headers
	Latency   time.Duration
	SizeBytes int
	Robots    *robotstxt.RobotsData
}

// PageFromFetch builds a Page from a successful fetch. The page is keyed by
// its post-redirect URL.
func PageFromFetch(r crawler.FetchResult, robots *robotstxt.RobotsData) Page {
	return Page{
		URL:       r.FinalURL,
		Status:    r.Status,
		HTML:      r.HTML,
		Headers:   r.Headers,
		Latency:   r.Latency,
		SizeBytes: r.SizeBytes,
		Robots:    robots,
	}
}

// Analyzer scores a page on every audit dimension.
type Analyzer interface {
	Analyze(p Page) model.PageReport
}

// New returns the default analyzer set.
func New() Analyzer { return suite{} }

type suite struct{}

// Analyze parses the page once and runs the four analyzers on it.
func (suite) Analyze(p Page) model.PageReport {
	u := parseURL(p.URL)
	doc := parseHTML(p.HTML)
	return model.PageReport{
		URL:           p.URL,
		Status:        p.Status,
		ResponseMs:    p.Latency.Milliseconds(),
		SizeBytes:     p.SizeBytes,
		SEO:           seo(u, doc, p.Headers, p.Robots),
		Security:      security(u, p.Headers),
		Performance:   performance(doc, p.Headers, p.Latency, p.SizeBytes),
		Accessibility: accessibility(doc),
	}
}

// findings collects issues and their recommendations in order.
type findings struct {
	issues []model.Issue
	recs   []string
}

func (f *findings) add(sev model.Severity, msg, rec string) {
	f.issues = append(f.issues, model.Issue{Severity: sev, Message: msg})
	if rec != "" {
		f.recs = append(f.recs, rec)
	}
}

func (f *findings) result() model.SectionResult {
	return model.NewSectionResult(f.issues, f.recs)
}

func parseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

func parseHTML(src string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

// attr returns the trimmed value of an attribute, or "".
func attr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return strings.TrimSpace(v)
}

// metaContent returns the content of <meta name=...>, matched
// case-insensitively.
func metaContent(doc *goquery.Document, name string) (string, bool) {
	var content string
	found := false
	doc.Find("meta[name]").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		if strings.EqualFold(attr(m, "name"), name) {
			content = attr(m, "content")
			found = true
			return false
		}
		return true
	})
	return content, found
}

// hasRel reports whether any <link> carries rel token.
func hasRel(doc *goquery.Document, token string) bool {
	found := false
	doc.Find("link[rel]").EachWithBreak(func(_ int, l *goquery.Selection) bool {
		for _, r := range strings.Fields(attr(l, "rel")) {
			if strings.EqualFold(r, token) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
