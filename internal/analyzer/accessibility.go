package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Priyanka-kale21/webhack/internal/model"
)

// AnalyzeAccessibility runs basic WCAG checks that need only the markup.
func AnalyzeAccessibility(pageURL, src string) model.SectionResult {
	return accessibility(parseHTML(src))
}

func accessibility(doc *goquery.Document) model.SectionResult {
	var f findings

	if attr(doc.Find("html").First(), "lang") == "" {
		f.add(model.SeverityMedium, "Missing lang attribute on <html>",
			"Declare the page language, for example <html lang=\"en\">.")
	}

	missingAlt := doc.Find("img").FilterFunction(func(_ int, img *goquery.Selection) bool {
		_, ok := img.Attr("alt")
		return !ok
	}).Length()
	if missingAlt > 0 {
		f.add(model.SeverityHigh, fmt.Sprintf("%d image(s) missing alt text", missingAlt),
			"Give every image an alt attribute; use alt=\"\" for decorative images.")
	}

	if n := unlabeledControls(doc); n > 0 {
		f.add(model.SeverityMedium, fmt.Sprintf("%d form control(s) without a label", n),
			"Associate each form control with a <label> or an aria-label.")
	}

	emptyLinks := doc.Find("a[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return !hasAccessibleName(a)
	}).Length()
	if emptyLinks > 0 {
		f.add(model.SeverityMedium, fmt.Sprintf("%d link(s) without discernible text", emptyLinks),
			"Give links visible text or an aria-label describing their target.")
	}

	emptyButtons := doc.Find("button").FilterFunction(func(_ int, b *goquery.Selection) bool {
		return !hasAccessibleName(b)
	}).Length()
	if emptyButtons > 0 {
		f.add(model.SeverityMedium, fmt.Sprintf("%d button(s) without discernible text", emptyButtons),
			"Give buttons visible text or an aria-label.")
	}

	if skippedHeadingLevel(doc) {
		f.add(model.SeverityLow, "Heading levels are skipped",
			"Nest headings in order (h1, h2, h3) without skipping levels.")
	}

	if doc.Find("main, [role='main']").Length() == 0 {
		f.add(model.SeverityLow, "No <main> landmark",
			"Wrap the primary content in a <main> element.")
	}

	positive := doc.Find("[tabindex]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		n, err := strconv.Atoi(attr(s, "tabindex"))
		return err == nil && n > 0
	}).Length()
	if positive > 0 {
		f.add(model.SeverityLow, fmt.Sprintf("%d element(s) with positive tabindex", positive),
			"Use tabindex=\"0\" or \"-1\" and rely on document order for focus.")
	}

	return f.result()
}

// hasAccessibleName reports whether an element has text, an ARIA name, a
// title or an image with alt text inside.
func hasAccessibleName(s *goquery.Selection) bool {
	if strings.TrimSpace(s.Text()) != "" || attr(s, "aria-label") != "" ||
		attr(s, "aria-labelledby") != "" || attr(s, "title") != "" {
		return true
	}
	return s.Find("img[alt]").FilterFunction(func(_ int, img *goquery.Selection) bool {
		return attr(img, "alt") != ""
	}).Length() > 0
}

// unlabeledControls counts inputs, selects and textareas without a label.
func unlabeledControls(doc *goquery.Document) int {
	labelFor := map[string]struct{}{}
	doc.Find("label[for]").Each(func(_ int, l *goquery.Selection) {
		labelFor[attr(l, "for")] = struct{}{}
	})

	count := 0
	doc.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		switch strings.ToLower(attr(s, "type")) {
		case "hidden", "submit", "button", "reset", "image":
			return
		}
		if attr(s, "aria-label") != "" || attr(s, "aria-labelledby") != "" || attr(s, "title") != "" {
			return
		}
		if id := attr(s, "id"); id != "" {
			if _, ok := labelFor[id]; ok {
				return
			}
		}
		if s.ParentsFiltered("label").Length() > 0 {
			return
		}
		count++
	})
	return count
}

// skippedHeadingLevel reports a heading more than one level deeper than the
// previous one.
func skippedHeadingLevel(doc *goquery.Document) bool {
	prev := 0
	skipped := false
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		level := int(goquery.NodeName(h)[1] - '0')
		if prev > 0 && level > prev+1 {
			skipped = true
			return false
		}
		prev = level
		return true
	})
	return skipped
}
