package formatter

import (
	"fmt"

	"github.com/yildizm/spamscope/internal/analyzer"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(screen analyzer.Screen) ([]byte, error)
}

// Formats lists the accepted format names
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
