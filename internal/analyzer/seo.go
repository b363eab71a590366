package analyzer

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/model"
)

const (
	minTitleLen       = 10
	maxTitleLen       = 60
	maxDescriptionLen = 160

	// robotsAgent is the crawler whose robots.txt group decides indexability.
	robotsAgent = "Googlebot"
)

// AnalyzeSEO checks on-page search engine basics. robots may be nil when the
// site has no usable robots.txt.
func AnalyzeSEO(pageURL, src string, headers crawler.Headers, robots *robotstxt.RobotsData) model.SectionResult {
	return seo(parseURL(pageURL), parseHTML(src), headers, robots)
}

func seo(u *url.URL, doc *goquery.Document, headers crawler.Headers, robots *robotstxt.RobotsData) model.SectionResult {
	var f findings

	title := strings.TrimSpace(doc.Find("title").First().Text())
	switch n := utf8.RuneCountInString(title); {
	case title == "":
		f.add(model.SeverityHigh, "Missing <title> tag",
			"Add a unique, descriptive <title> between 10 and 60 characters.")
	case n < minTitleLen:
		f.add(model.SeverityLow, fmt.Sprintf("Title is too short (%d characters)", n),
			"Expand the title so it describes the page content.")
	case n > maxTitleLen:
		f.add(model.SeverityLow, fmt.Sprintf("Title is too long (%d characters)", n),
			"Shorten the title to at most 60 characters so it is not truncated in results.")
	}

	desc, ok := metaContent(doc, "description")
	switch n := utf8.RuneCountInString(desc); {
	case !ok || desc == "":
		f.add(model.SeverityMedium, "Missing meta description",
			"Add a <meta name=\"description\"> summarizing the page in up to 160 characters.")
	case n > maxDescriptionLen:
		f.add(model.SeverityLow, fmt.Sprintf("Meta description is too long (%d characters)", n),
			"Trim the meta description to 160 characters.")
	}

	switch h1 := doc.Find("h1").Length(); {
	case h1 == 0:
		f.add(model.SeverityMedium, "No <h1> heading found",
			"Add a single <h1> that states the main topic of the page.")
	case h1 > 1:
		f.add(model.SeverityLow, fmt.Sprintf("Multiple <h1> headings (%d)", h1),
			"Keep one <h1> per page and use <h2>-<h6> for sub-sections.")
	}

	if !hasRel(doc, "canonical") {
		f.add(model.SeverityLow, "Missing canonical link",
			"Declare <link rel=\"canonical\"> to consolidate duplicate URLs.")
	}

	if _, ok := metaContent(doc, "viewport"); !ok {
		f.add(model.SeverityMedium, "Missing viewport meta tag",
			"Add <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"> for mobile-friendly rendering.")
	}

	metaRobots, _ := metaContent(doc, "robots")
	if containsToken(metaRobots, "noindex") || containsToken(headers.Get("x-robots-tag"), "noindex") {
		f.add(model.SeverityHigh, "Page is marked noindex",
			"Remove noindex from the robots meta tag or X-Robots-Tag header if the page should be searchable.")
	}

	if robots != nil && !robots.TestAgent(robotsPath(u), robotsAgent) {
		f.add(model.SeverityHigh, "Page is blocked by robots.txt",
			"Allow this path in robots.txt if it should appear in search results.")
	}

	if u.Scheme != "https" {
		f.add(model.SeverityMedium, "Page is not served over HTTPS",
			"Serve the site over HTTPS; search engines use it as a ranking signal.")
	}

	if detectHTMLVersion(doc) == "unknown" {
		f.add(model.SeverityLow, "Missing <!DOCTYPE html> declaration",
			"Start the document with <!DOCTYPE html> so browsers use standards mode.")
	}

	return f.result()
}

// detectHTMLVersion checks the doctype of the HTML document to determine its version.
func detectHTMLVersion(doc *goquery.Document) string {
	if len(doc.Nodes) == 0 {
		return "unknown"
	}
	for n := doc.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.DoctypeNode {
			continue
		}
		d := strings.ToLower(strings.TrimSpace(n.Data))
		if strings.HasPrefix(d, "html") {
			return "HTML 5"
		}
		return d
	}
	return "unknown"
}

func robotsPath(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}

// containsToken reports whether a comma or space separated directive list
// contains tok.
func containsToken(list, tok string) bool {
	for _, part := range strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == ' ' }) {
		if strings.EqualFold(part, tok) {
			return true
		}
	}
	return false
}
