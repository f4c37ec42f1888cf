package formatter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/spamscope/internal/analysis"
	"github.com/yildizm/spamscope/internal/analyzer"
)

func successScreen(label string, score analysis.AIScore) analyzer.Screen {
	return analyzer.Render(analyzer.Succeeded(&analysis.Result{
		SpamDetection: analysis.SpamDetection{Result: label},
		AIDetection:   analysis.AIDetection{Percentage: score},
	}))
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		f, err := New(format, false)
		if err != nil {
			t.Errorf("New(%q) returned error: %v", format, err)
		}
		if f == nil {
			t.Errorf("New(%q) returned nil formatter", format)
		}
	}
	if _, err := New("xml", false); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestTerminalFormatter_Success(t *testing.T) {
	out, err := NewTerminal(false).Format(successScreen("Spam", analysis.Numeric(87.5)))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		analyzer.Title,
		analyzer.ResultsHeading,
		analyzer.SpamCardTitle,
		"Spam",
		"This message is likely 87.5% written by AI.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestTerminalFormatter_Error(t *testing.T) {
	screen := analyzer.Render(analyzer.Failed(analyzer.FailureService, analyzer.ServiceFailureMessage))
	out, err := NewTerminal(false).Format(screen)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), analyzer.ServiceFailureMessage) {
		t.Errorf("Expected error message, got:\n%s", out)
	}
	if strings.Contains(string(out), analyzer.ResultsHeading) {
		t.Error("Error output must not contain results")
	}
}

func TestClampUnit(t *testing.T) {
	cases := map[float64]float64{-0.5: 0, 0: 0, 0.42: 0.42, 1: 1, 3.2: 1}
	for in, want := range cases {
		if got := clampUnit(in); got != want {
			t.Errorf("clampUnit(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON().Format(successScreen("Not Spam", analysis.Diagnostic("N/A")))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded analyzer.Screen
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.Phase != "success" {
		t.Errorf("Expected phase success, got %s", decoded.Phase)
	}
	if decoded.Results == nil || decoded.Results.AILine != "AI Score: N/A" {
		t.Errorf("Unexpected results %+v", decoded.Results)
	}
	if decoded.Error != "" {
		t.Errorf("Expected no error, got %s", decoded.Error)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	code := 1
	screen := successScreen("Spam", analysis.Numeric(12))
	screen.Results.PredictionCode = &code

	f := &markdownFormatter{now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }}
	out, err := f.Format(screen)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	text := string(out)
	for _, want := range []string{
		"# AI & Spam Detector",
		"Generated: 2024-01-02 03:04:05",
		"| SMS Spam Detection | **Spam** |",
		"| Prediction code | 1 |",
		"| AI Content Detection | This message is likely 12% written by AI. |",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected markdown to contain %q, got:\n%s", want, text)
		}
	}
}

func TestMarkdownFormatter_EscapesCells(t *testing.T) {
	out, err := NewMarkdown().Format(successScreen("a|b", analysis.Diagnostic("x\ny")))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), `a\|b`) {
		t.Errorf("Expected escaped pipe, got:\n%s", out)
	}
	if !strings.Contains(string(out), "AI Score: x y") {
		t.Errorf("Expected newline flattened, got:\n%s", out)
	}
}

func TestCSVFormatter(t *testing.T) {
	tests := []struct {
		name   string
		screen analyzer.Screen
		want   []string
	}{
		{
			name:   "numeric",
			screen: successScreen("Spam", analysis.Numeric(87.5)),
			want:   []string{"success", "Spam", "spam", "", "87.5", "numeric", ""},
		},
		{
			name:   "diagnostic",
			screen: successScreen("Not Spam", analysis.Diagnostic("Could not parse AI score")),
			want:   []string{"success", "Not Spam", "not-spam", "", "Could not parse AI score", "diagnostic", ""},
		},
		{
			name:   "error",
			screen: analyzer.Render(analyzer.Failed(analyzer.FailureValidation, analyzer.ValidationMessage)),
			want:   []string{"error", "", "", "", "", "", analyzer.ValidationMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewCSV().Format(tt.screen)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
			if err != nil {
				t.Fatalf("Output is not valid CSV: %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("Expected header and one record, got %d rows", len(records))
			}
			if strings.Join(records[1], "|") != strings.Join(tt.want, "|") {
				t.Errorf("Record = %v, want %v", records[1], tt.want)
			}
		})
	}
}
