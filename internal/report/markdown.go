package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/Priyanka-kale21/webhack/internal/model"
)

// MarkdownWriter renders an audit as a GitHub-flavored Markdown document.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

func (w *MarkdownWriter) Write(resp *model.AuditResponse) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, resp)
	w.writeSummary(md, resp)
	for i := range resp.Reports {
		w.writePage(md, &resp.Reports[i])
	}
	w.writeErrors(md, resp.Errors)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by webhack on %s*", resp.FinishedAt.UTC().Format(time.RFC3339))

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, resp *model.AuditResponse) {
	md.H1("Site Audit: " + resp.Input.URL)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Audit ID", "`" + resp.ID + "`"},
			{"Started", resp.StartedAt.UTC().Format("2006-01-02 15:04:05 MST")},
			{"Duration", resp.FinishedAt.Sub(resp.StartedAt).Truncate(time.Millisecond).String()},
			{"Page limit", strconv.Itoa(resp.Input.MaxPages)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, resp *model.AuditResponse) {
	s := resp.Summary
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Pages scanned", strconv.Itoa(s.PagesScanned)},
			{"Total bytes", strconv.FormatInt(s.TotalBytes, 10)},
			{"Average response", fmt.Sprintf("%d ms", s.AverageResponseMs)},
			{"Crawl errors", strconv.Itoa(s.ErrorCount)},
			{"SEO", scoreText(s.AverageScores.SEO)},
			{"Security", scoreText(s.AverageScores.Security)},
			{"Performance", scoreText(s.AverageScores.Performance)},
			{"Accessibility", scoreText(s.AverageScores.Accessibility)},
		},
	})
	md.PlainText("")

	counts := severityCounts(resp.Reports)
	if total := counts[model.SeverityHigh] + counts[model.SeverityMedium] + counts[model.SeverityLow] + counts[model.SeverityInfo]; total > 0 {
		chart := piechart.NewPieChart(io.Discard,
			piechart.WithTitle("Issues by severity"),
			piechart.WithShowData(true),
		)
		for _, sev := range []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow, model.SeverityInfo} {
			if n := counts[sev]; n > 0 {
				chart.LabelAndIntValue(string(sev), uint64(n))
			}
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case s.PagesScanned == 0:
		md.Cautionf("No page could be fetched. %d crawl error(s) recorded.", s.ErrorCount)
	case counts[model.SeverityHigh] > 0:
		md.Warningf("%d high severity issue(s) found across %d page(s).", counts[model.SeverityHigh], s.PagesScanned)
	case counts[model.SeverityMedium] > 0:
		md.Importantf("%d medium severity issue(s) found.", counts[model.SeverityMedium])
	default:
		md.Tip("No high or medium severity issues found.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writePage(md *markdown.Markdown, p *model.PageReport) {
	md.H2(p.URL)
	md.PlainText("")
	md.PlainTextf("Status %d, %d ms, %d bytes", p.Status, p.ResponseMs, p.SizeBytes)
	md.PlainText("")

	sections := []struct {
		name string
		res  model.SectionResult
	}{
		{"SEO", p.SEO},
		{"Security", p.Security},
		{"Performance", p.Performance},
		{"Accessibility", p.Accessibility},
	}
	for _, sec := range sections {
		md.H3(fmt.Sprintf("%s (%s)", sec.name, scoreText(sec.res.Score)))
		md.PlainText("")
		if len(sec.res.Issues) == 0 {
			md.PlainText("No issues found.")
			md.PlainText("")
			continue
		}
		rows := make([][]string, len(sec.res.Issues))
		for i, is := range sec.res.Issues {
			rows[i] = []string{string(is.Severity), is.Message}
		}
		md.Table(markdown.TableSet{Header: []string{"Severity", "Issue"}, Rows: rows})
		md.PlainText("")
		if len(sec.res.Recommendations) > 0 {
			md.BulletList(sec.res.Recommendations...)
			md.PlainText("")
		}
	}
}

func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, errs []model.CrawlErrorDTO) {
	if len(errs) == 0 {
		return
	}
	md.H2("Crawl errors")
	md.PlainText("")
	rows := make([][]string, len(errs))
	for i, e := range errs {
		status := "-"
		if e.Status != nil {
			status = strconv.Itoa(*e.Status)
		}
		rows[i] = []string{e.URL, status, e.Error}
	}
	md.Table(markdown.TableSet{Header: []string{"URL", "Status", "Error"}, Rows: rows})
	md.PlainText("")
}

func scoreText(score int) string {
	return strconv.Itoa(score) + "/100"
}

func severityCounts(pages []model.PageReport) map[model.Severity]int {
	counts := make(map[model.Severity]int)
	for _, p := range pages {
		for _, sec := range []model.SectionResult{p.SEO, p.Security, p.Performance, p.Accessibility} {
			for _, is := range sec.Issues {
				counts[is.Severity]++
			}
		}
	}
	return counts
}
