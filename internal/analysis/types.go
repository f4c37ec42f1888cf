package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// SpamLabel is the label the service uses for spam content. Any other label
// is treated as not spam.
const SpamLabel = "Spam"

// Request is the body posted to the analysis endpoint
type Request struct {
	// Text is the user input, sent verbatim
	Text string `json:"text"`
}

// Result represents a successful analysis response
type Result struct {
	SpamDetection SpamDetection `json:"spam_detection"`
	AIDetection   AIDetection   `json:"ai_detection"`
}

// SpamDetection holds the spam classification label
type SpamDetection struct {
	// Result is the label, "Spam" or anything else
	Result string `json:"result"`

	// PredictionCode is the raw classifier output when the service reports it
	PredictionCode *int `json:"prediction_code,omitempty"`
}

// UnmarshalJSON decodes the label strictly and the prediction code leniently.
// A prediction code that is not an integral JSON number is dropped.
func (s *SpamDetection) UnmarshalJSON(data []byte) error {
	var wire struct {
		Result         string          `json:"result"`
		PredictionCode json.RawMessage `json:"prediction_code"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Result = wire.Result
	s.PredictionCode = parsePredictionCode(wire.PredictionCode)
	return nil
}

// maxPredictionCode bounds codes to integers a float64 represents exactly
const maxPredictionCode = 1 << 53

func parsePredictionCode(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return nil
	}
	value, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || value != math.Trunc(value) || math.Abs(value) > maxPredictionCode {
		return nil
	}
	code := int(value)
	return &code
}

// IsSpam reports whether the label is exactly "Spam"
func (s SpamDetection) IsSpam() bool {
	return s.Result == SpamLabel
}

// AIDetection holds the AI-content score
type AIDetection struct {
	Percentage AIScore `json:"percentage"`
}

// ScoreKind distinguishes the two shapes of an AI score
type ScoreKind int

const (
	// ScoreDiagnostic is a non-numeric value reported by the service
	ScoreDiagnostic ScoreKind = iota

	// ScoreNumeric is a percentage
	ScoreNumeric
)

// AIScore is either a numeric percentage or a diagnostic string. The shape
// is decided when the response is decoded. The zero value is an empty
// diagnostic.
type AIScore struct {
	kind  ScoreKind
	value float64
	text  string
}

// Numeric creates a numeric score
func Numeric(value float64) AIScore {
	return AIScore{kind: ScoreNumeric, value: value}
}

// Diagnostic creates a diagnostic score
func Diagnostic(text string) AIScore {
	return AIScore{kind: ScoreDiagnostic, text: text}
}

// Kind returns the score shape
func (s AIScore) Kind() ScoreKind {
	return s.kind
}

// IsNumeric reports whether the score is a percentage
func (s AIScore) IsNumeric() bool {
	return s.kind == ScoreNumeric
}

// Value returns the percentage and whether the score is numeric
func (s AIScore) Value() (float64, bool) {
	return s.value, s.kind == ScoreNumeric
}

// Text returns the diagnostic text, empty for numeric scores
func (s AIScore) Text() string {
	return s.text
}

// String formats numbers in shortest form (12, 12.5) and returns diagnostics as is
func (s AIScore) String() string {
	if s.kind == ScoreNumeric {
		return strconv.FormatFloat(s.value, 'f', -1, 64)
	}
	return s.text
}

// UnmarshalJSON decodes a number into a numeric score and anything else into
// a diagnostic. Strings keep their text, null and booleans become an empty
// diagnostic and other JSON kinds keep their raw encoding.
func (s *AIScore) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) ||
		bytes.Equal(raw, []byte("true")) || bytes.Equal(raw, []byte("false")) {
		*s = Diagnostic("")
		return nil
	}

	switch c := raw[0]; {
	case c == '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("invalid percentage string: %w", err)
		}
		*s = Diagnostic(text)
	case c == '-' || (c >= '0' && c <= '9'):
		value, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid percentage number: %w", err)
		}
		*s = Numeric(value)
	default:
		*s = Diagnostic(string(raw))
	}
	return nil
}

// MarshalJSON writes the score back in the shape it was received
func (s AIScore) MarshalJSON() ([]byte, error) {
	if s.kind == ScoreNumeric {
		return []byte(s.String()), nil
	}
	return json.Marshal(s.text)
}

// wireResult mirrors Result with pointers so missing sections can be detected
type wireResult struct {
	SpamDetection *SpamDetection `json:"spam_detection"`
	AIDetection   *AIDetection   `json:"ai_detection"`
}

// DecodeResult parses a response body. The body must hold exactly one JSON
// value and both detection sections must be present objects.
func DecodeResult(r io.Reader) (*Result, error) {
	dec := json.NewDecoder(r)

	var wire wireResult
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("response has data after the JSON value")
	}
	if wire.SpamDetection == nil {
		return nil, fmt.Errorf("response is missing spam_detection")
	}
	if wire.AIDetection == nil {
		return nil, fmt.Errorf("response is missing ai_detection")
	}
	return &Result{
		SpamDetection: *wire.SpamDetection,
		AIDetection:   *wire.AIDetection,
	}, nil
}
