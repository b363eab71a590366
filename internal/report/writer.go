// Package report renders audit results for the command line.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Priyanka-kale21/webhack/internal/model"
)

// Formats accepted by NewWriter.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Writer renders one audit to its destination.
type Writer interface {
	Write(resp *model.AuditResponse) error
}

// NewWriter returns the writer for format ("json" or "markdown").
func NewWriter(format string, out io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSONWriter(out, WithPrettyPrint()), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(out), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want %s or %s)", format, FormatJSON, FormatMarkdown)
	}
}
