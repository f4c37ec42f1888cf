package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"
	"github.com/yildizm/spamscope/internal/analyzer"
	"github.com/yildizm/spamscope/internal/emoji"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(screen analyzer.Screen) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)

	switch {
	case screen.Error != "":
		f.writeError(&b, screen.Error)
	case screen.Results != nil:
		f.writeResults(&b, screen.Results)
	case screen.ButtonDisabled:
		b.WriteString(termfmt.GetEmoji("info", f.opts) + " " + screen.ButtonLabel + "\n")
	default:
		b.WriteString(termfmt.GetEmoji("info", f.opts) + " " + analyzer.Placeholder + "\n")
	}

	return []byte(b.String()), nil
}

// writeHeader writes the title box
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := analyzer.Title
	width := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

func (f *terminalFormatter) writeError(b *strings.Builder, message string) {
	b.WriteString(termfmt.GetEmoji("error", f.opts) + " " + message + "\n")
}

// writeResults writes both result cards as a tree using go-termfmt
func (f *terminalFormatter) writeResults(b *strings.Builder, cards *analyzer.ResultCards) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " " + analyzer.ResultsHeading + "\n")

	spamItem := termfmt.TreeItem{Label: analyzer.SpamCardTitle, Value: cards.SpamLabel}
	if cards.SpamClass == analyzer.ClassSpam {
		spamItem.Label = termfmt.GetEmoji("warning", f.opts) + " " + spamItem.Label
	}
	if cards.PredictionCode != nil {
		spamItem.Children = []termfmt.TreeItem{
			{Label: "Prediction code", Value: fmt.Sprintf("%d", *cards.PredictionCode), Last: true},
		}
	}

	aiItem := termfmt.TreeItem{Label: analyzer.AICardTitle, Value: "", Last: true}
	aiLine := cards.AILine
	if cards.AIPercentage != nil {
		aiLine = termfmt.CreateConfidenceBar(clampUnit(*cards.AIPercentage/100), f.opts) + " " + aiLine
	}
	aiItem.Children = []termfmt.TreeItem{{Label: aiLine, Value: "", Last: true}}

	tree := termfmt.TreeViewWithOptions([]termfmt.TreeItem{spamItem, aiItem}, f.opts)
	b.WriteString(tree + "\n")
}

// clampUnit keeps a ratio within [0, 1] for the bar
func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
