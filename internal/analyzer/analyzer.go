package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/spamscope/internal/analysis"
	"github.com/yildizm/spamscope/internal/logger"
)

const (
	// ValidationMessage is shown when the input is blank
	ValidationMessage = "Please enter some text to analyze."

	// ServiceFailureMessage is shown for every service failure. The cause is
	// only logged.
	ServiceFailureMessage = "Failed to analyze. Please ensure the backend server is running and reachable."
)

// Service performs the remote analysis
type Service interface {
	Analyze(ctx context.Context, text string) (*analysis.Result, error)
}

// Ticket identifies one submission. Only the ticket of the latest
// submission may settle the view.
type Ticket struct {
	Seq     uint64
	ID      string
	Text    string
	Started time.Time
}

// Analyzer owns the view state and the submit operation
type Analyzer struct {
	mu      sync.Mutex
	service Service
	log     *logger.Logger
	seq     uint64
	state   State
}

// New creates an analyzer in the Idle state
func New(service Service, log *logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	return &Analyzer{
		service: service,
		log:     log.WithComponent("analyzer"),
		state:   Idle(),
	}
}

// State returns the current view state
func (a *Analyzer) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Begin starts a submission. Blank input moves the view to the validation
// error and returns a *analysis.ValidationError without a ticket; anything
// else moves it to Loading. Either way any older in-flight submission is
// superseded.
func (a *Analyzer) Begin(text string) (Ticket, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.seq++

	if IsBlank(text) {
		a.state = Failed(FailureValidation, ValidationMessage)
		return Ticket{}, analysis.NewValidationError("text", ValidationMessage)
	}

	a.state = Loading()
	ticket := Ticket{
		Seq:     a.seq,
		ID:      uuid.NewString(),
		Text:    text,
		Started: time.Now(),
	}
	a.log.DebugWithFields("submission started", []logger.Field{
		logger.Submission(ticket.ID),
		logger.F("length", len(text)),
	})
	return ticket, nil
}

// Execute performs the service call for a ticket without touching the state
func (a *Analyzer) Execute(ctx context.Context, t Ticket) (*analysis.Result, error) {
	return a.service.Analyze(ctx, t.Text)
}

// Settle applies the outcome of a ticket. It reports false and leaves the
// state alone when a newer submission has started since.
func (a *Analyzer) Settle(t Ticket, result *analysis.Result, err error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	fields := []logger.Field{
		logger.Submission(t.ID),
		logger.Duration(time.Since(t.Started)),
	}

	if t.Seq == 0 || t.Seq != a.seq {
		a.log.DebugWithFields("dropping stale completion", append(fields, logger.F("latest", a.seq), logger.F("seq", t.Seq)))
		return false
	}

	if err == nil && result == nil {
		err = analysis.NewServiceError(analysis.ErrTypeDecode, "empty result")
	}

	if err != nil {
		if code := analysis.StatusCode(err); code > 0 {
			fields = append(fields, logger.Status(code))
		}
		a.log.ErrorWithFields("analysis failed", append(fields, logger.Error(err)))
		a.state = Failed(FailureService, ServiceFailureMessage)
		return true
	}

	a.log.DebugWithFields("analysis complete", append(fields,
		logger.F("spam", result.SpamDetection.Result),
		logger.F("ai", result.AIDetection.Percentage.String()),
	))
	a.state = Succeeded(result)
	return true
}

// Submit runs a whole submission synchronously and returns the state the
// view is left in
func (a *Analyzer) Submit(ctx context.Context, text string) State {
	ticket, err := a.Begin(text)
	if err != nil {
		return a.State()
	}

	result, err := a.Execute(ctx, ticket)
	a.Settle(ticket, result, err)
	return a.State()
}
