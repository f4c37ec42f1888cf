package formatter

import (
	"encoding/json"

	"github.com/yildizm/spamscope/internal/analyzer"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(screen analyzer.Screen) ([]byte, error) {
	data, err := json.MarshalIndent(screen, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
