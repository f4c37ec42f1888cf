package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/spamscope/internal/analyzer"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct {
	now func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{now: time.Now}
}

func (f *markdownFormatter) Format(screen analyzer.Screen) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# " + analyzer.Title + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	switch {
	case screen.Error != "":
		b.WriteString("> **Error:** " + screen.Error + "\n")
	case screen.Results != nil:
		f.writeResults(&b, screen.Results)
	default:
		fmt.Fprintf(&b, "_Status: %s_\n", screen.Phase)
	}

	return []byte(b.String()), nil
}

// writeResults writes the result cards as a table
func (f *markdownFormatter) writeResults(b *strings.Builder, cards *analyzer.ResultCards) {
	b.WriteString("## " + analyzer.ResultsHeading + "\n\n")
	b.WriteString("| Check | Result |\n")
	b.WriteString("|-------|--------|\n")

	label := escapeCell(cards.SpamLabel)
	if cards.SpamClass == analyzer.ClassSpam {
		label = "**" + label + "**"
	}
	fmt.Fprintf(b, "| %s | %s |\n", analyzer.SpamCardTitle, label)
	if cards.PredictionCode != nil {
		fmt.Fprintf(b, "| Prediction code | %d |\n", *cards.PredictionCode)
	}
	fmt.Fprintf(b, "| %s | %s |\n", analyzer.AICardTitle, escapeCell(cards.AILine))
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
