package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/spamscope/internal/analysis"
	"github.com/yildizm/spamscope/internal/analyzer"
)

// analysisSettledMsg carries the outcome of one submission back to the model
type analysisSettledMsg struct {
	ticket analyzer.Ticket
	result *analysis.Result
	err    error
}

// CreateAnalysisCommand creates a tea command that performs the service call
// for a ticket. The state is only touched when the message is handled.
func CreateAnalysisCommand(ctx context.Context, a *analyzer.Analyzer, ticket analyzer.Ticket) tea.Cmd {
	return func() tea.Msg {
		result, err := a.Execute(ctx, ticket)
		return analysisSettledMsg{
			ticket: ticket,
			result: result,
			err:    err,
		}
	}
}
