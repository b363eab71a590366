package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/model"
)

const (
	slowResponse     = 800 * time.Millisecond
	verySlowResponse = 2 * time.Second

	heavyPage     = 500 << 10
	veryHeavyPage = 2 << 20

	compressMinBytes = 1 << 10
	maxScripts       = 15
	maxStylesheets   = 5
	lazyLoadMinImgs  = 5
)

// AnalyzePerformance checks response timing, payload and resource hints.
func AnalyzePerformance(pageURL, src string, headers crawler.Headers, latency time.Duration, sizeBytes int) model.SectionResult {
	return performance(parseHTML(src), headers, latency, sizeBytes)
}

func performance(doc *goquery.Document, headers crawler.Headers, latency time.Duration, size int) model.SectionResult {
	var f findings
	ms := latency.Milliseconds()

	switch {
	case latency > verySlowResponse:
		f.add(model.SeverityHigh, fmt.Sprintf("Very slow response (%d ms)", ms),
			"Profile the backend and add caching; aim for responses under 800 ms.")
	case latency > slowResponse:
		f.add(model.SeverityMedium, fmt.Sprintf("Slow response (%d ms)", ms),
			"Reduce server processing time or serve the page from a cache or CDN.")
	}

	switch kb := size >> 10; {
	case size > veryHeavyPage:
		f.add(model.SeverityHigh, fmt.Sprintf("Very large HTML document (%d KB)", kb),
			"Split the page or load content on demand to keep HTML under 500 KB.")
	case size > heavyPage:
		f.add(model.SeverityMedium, fmt.Sprintf("Large HTML document (%d KB)", kb),
			"Remove inline data and unused markup to reduce the document size.")
	}

	if size > compressMinBytes && headers.Get("content-encoding") == "" {
		f.add(model.SeverityMedium, "Response is not compressed",
			"Enable gzip or brotli compression for HTML responses.")
	}

	if headers.Get("cache-control") == "" && headers.Get("expires") == "" &&
		headers.Get("etag") == "" && headers.Get("last-modified") == "" {
		f.add(model.SeverityLow, "No caching headers",
			"Send Cache-Control plus an ETag or Last-Modified validator.")
	}

	if n := doc.Find("script[src]").Length(); n > maxScripts {
		f.add(model.SeverityMedium, fmt.Sprintf("Too many external scripts (%d)", n),
			"Bundle scripts and drop the ones the page does not need.")
	}

	blocking := 0
	doc.Find("head script[src]").Each(func(_ int, s *goquery.Selection) {
		_, async := s.Attr("async")
		_, deferred := s.Attr("defer")
		if !async && !deferred && !strings.EqualFold(attr(s, "type"), "module") {
			blocking++
		}
	})
	if blocking > 0 {
		f.add(model.SeverityLow, fmt.Sprintf("%d render-blocking script(s) in <head>", blocking),
			"Add defer or async to scripts in <head>, or move them to the end of <body>.")
	}

	sheets := 0
	doc.Find("link[rel]").Each(func(_ int, l *goquery.Selection) {
		for _, r := range strings.Fields(attr(l, "rel")) {
			if strings.EqualFold(r, "stylesheet") {
				sheets++
				return
			}
		}
	})
	if sheets > maxStylesheets {
		f.add(model.SeverityLow, fmt.Sprintf("Too many stylesheets (%d)", sheets),
			"Combine stylesheets and inline the critical CSS.")
	}

	imgs := doc.Find("img")
	unsized, lazy := 0, 0
	imgs.Each(func(_ int, img *goquery.Selection) {
		if attr(img, "width") == "" || attr(img, "height") == "" {
			unsized++
		}
		if strings.EqualFold(attr(img, "loading"), "lazy") {
			lazy++
		}
	})
	if unsized > 0 {
		f.add(model.SeverityLow, fmt.Sprintf("%d image(s) without explicit width and height", unsized),
			"Set width and height on images to avoid layout shifts.")
	}
	if imgs.Length() > lazyLoadMinImgs && lazy == 0 {
		f.add(model.SeverityInfo, "Images are not lazy-loaded",
			"Add loading=\"lazy\" to images below the fold.")
	}

	return f.result()
}
