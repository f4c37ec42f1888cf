package analyzer

import (
	"github.com/yildizm/spamscope/internal/analysis"
)

// Static copy of the analyzer page
const (
	Title          = "AI & Spam Detector"
	Subtitle       = "Check if a message is spam and detect AI-generated content."
	Placeholder    = "Enter SMS message or any text here..."
	ButtonIdle     = "Analyze Text"
	ButtonLoading  = "Analyzing..."
	ResultsHeading = "Analysis Results"
	SpamCardTitle  = "SMS Spam Detection"
	AICardTitle    = "AI Content Detection"
	Footer         = "Built with Go, Bubble Tea and Gin"
)

// SpamClass is the style applied to the spam label
type SpamClass string

const (
	ClassSpam    SpamClass = "spam"
	ClassNotSpam SpamClass = "not-spam"
)

// Screen is everything a front end needs to draw the view
type Screen struct {
	Phase          string       `json:"phase"`
	ButtonLabel    string       `json:"button_label"`
	ButtonDisabled bool         `json:"button_disabled"`
	Error          string       `json:"error,omitempty"`
	Results        *ResultCards `json:"results,omitempty"`
}

// ResultCards holds the two result cards of a successful submission
type ResultCards struct {
	SpamLabel      string    `json:"spam_label"`
	SpamClass      SpamClass `json:"spam_class"`
	PredictionCode *int      `json:"prediction_code,omitempty"`

	// AILine is the sentence shown on the AI card
	AILine string `json:"ai_line"`

	// AIPercentage is set only for numeric scores
	AIPercentage *float64 `json:"ai_percentage,omitempty"`

	// AIDiagnostic marks AILine as the raw diagnostic fallback
	AIDiagnostic bool `json:"ai_diagnostic"`
}

// Render maps a state to its screen. It has no side effects.
func Render(s State) Screen {
	screen := Screen{
		Phase:       s.Phase().String(),
		ButtonLabel: ButtonIdle,
	}

	switch s.Phase() {
	case PhaseLoading:
		screen.ButtonLabel = ButtonLoading
		screen.ButtonDisabled = true
	case PhaseError:
		screen.Error, _ = s.Message()
	case PhaseSuccess:
		result, _ := s.Result()
		screen.Results = renderCards(result)
	}

	return screen
}

func renderCards(result *analysis.Result) *ResultCards {
	cards := &ResultCards{
		SpamLabel:      result.SpamDetection.Result,
		SpamClass:      SpamClassFor(result.SpamDetection),
		PredictionCode: result.SpamDetection.PredictionCode,
	}

	score := result.AIDetection.Percentage
	cards.AILine = AILine(score)
	if value, ok := score.Value(); ok {
		cards.AIPercentage = &value
	} else {
		cards.AIDiagnostic = true
	}

	return cards
}

// SpamClassFor returns ClassSpam only for the exact "Spam" label
func SpamClassFor(d analysis.SpamDetection) SpamClass {
	if d.IsSpam() {
		return ClassSpam
	}
	return ClassNotSpam
}

// AILine renders the AI card sentence
func AILine(score analysis.AIScore) string {
	if score.IsNumeric() {
		return "This message is likely " + score.String() + "% written by AI."
	}
	return "AI Score: " + score.Text()
}
