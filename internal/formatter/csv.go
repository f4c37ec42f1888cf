package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/spamscope/internal/analyzer"
)

// csvHeaders are written before every record
var csvHeaders = []string{
	"Phase",
	"Spam Label",
	"Spam Class",
	"Prediction Code",
	"AI Score",
	"AI Score Kind",
	"Error",
}

// csvFormatter formats a screen as a single CSV record
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(screen analyzer.Screen) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	record := []string{screen.Phase, "", "", "", "", "", screen.Error}
	if cards := screen.Results; cards != nil {
		record[1] = cards.SpamLabel
		record[2] = string(cards.SpamClass)
		if cards.PredictionCode != nil {
			record[3] = strconv.Itoa(*cards.PredictionCode)
		}
		if cards.AIPercentage != nil {
			record[4] = strconv.FormatFloat(*cards.AIPercentage, 'f', -1, 64)
			record[5] = "numeric"
		} else {
			record[4] = strings.TrimPrefix(cards.AILine, "AI Score: ")
			record[5] = "diagnostic"
		}
	}

	if err := writer.Write(record); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
