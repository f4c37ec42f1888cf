package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/spamscope/internal/analyzer"
	"github.com/yildizm/spamscope/internal/emoji"
)

const (
	maxInputWidth = 80
	inputHeight   = 6
)

// Model is the interactive analyzer screen
type Model struct {
	ctx      context.Context
	analyzer *analyzer.Analyzer

	input   textarea.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  *Styles

	width    int
	quitting bool
}

// NewModel creates the analyzer screen around a
func NewModel(ctx context.Context, a *analyzer.Analyzer) *Model {
	styles := GetStyles()

	input := textarea.New()
	input.Placeholder = analyzer.Placeholder
	input.ShowLineNumbers = false
	input.SetWidth(maxInputWidth)
	input.SetHeight(inputHeight)
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &Model{
		ctx:      ctx,
		analyzer: a,
		input:    input,
		spinner:  s,
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   styles,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.handleSubmit()
		case key.Matches(msg, m.keys.Clear):
			m.input.Reset()
			return m, nil
		}

	case spinner.TickMsg:
		if !m.analyzer.State().IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case analysisSettledMsg:
		m.analyzer.Settle(msg.ticket, msg.result, msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.help.Width = msg.Width

	width := msg.Width - 4
	if width > maxInputWidth {
		width = maxInputWidth
	}
	if width > 10 {
		m.input.SetWidth(width)
	}
	return m, nil
}

// handleSubmit starts a submission unless one is already loading
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.analyzer.State().IsLoading() {
		return m, nil
	}

	ticket, err := m.analyzer.Begin(m.input.Value())
	if err != nil {
		// validation failure, the state already carries the message
		return m, nil
	}

	return m, tea.Batch(
		m.spinner.Tick,
		CreateAnalysisCommand(m.ctx, m.analyzer, ticket),
	)
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return m.styles.Muted.Render(emoji.Prefix("door")+"Bye!") + "\n"
	}

	screen := analyzer.Render(m.analyzer.State())

	sections := []string{
		m.styles.Title.Render(analyzer.Title),
		m.styles.Subtitle.Render(analyzer.Subtitle),
		"",
		m.styles.Input.Render(m.input.View()),
		m.renderButton(screen),
	}

	if screen.Error != "" {
		sections = append(sections, "", m.styles.ErrorBanner.Render(emoji.Prefix("error")+screen.Error))
	}

	if screen.Results != nil {
		sections = append(sections,
			m.styles.Heading.Render(analyzer.ResultsHeading),
			m.renderCards(screen.Results),
		)
	}

	sections = append(sections,
		"",
		m.help.View(m.keys),
		m.styles.Footer.Render(analyzer.Footer),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) renderButton(screen analyzer.Screen) string {
	if screen.ButtonDisabled {
		return m.spinner.View() + " " + m.styles.ButtonBusy.Render(screen.ButtonLabel)
	}
	return m.styles.Button.Render(screen.ButtonLabel)
}

func (m *Model) renderCards(cards *analyzer.ResultCards) string {
	labelStyle := m.styles.NotSpam
	icon := "not_spam"
	if cards.SpamClass == analyzer.ClassSpam {
		labelStyle = m.styles.Spam
		icon = "spam"
	}

	spam := strings.Join([]string{
		m.styles.CardTitle.Render(analyzer.SpamCardTitle),
		emoji.Prefix(icon) + labelStyle.Render(cards.SpamLabel),
	}, "\n")

	ai := strings.Join([]string{
		m.styles.CardTitle.Render(analyzer.AICardTitle),
		emoji.Prefix("robot") + m.styles.Score.Render(cards.AILine),
	}, "\n")

	if m.width > 0 && m.width < 60 {
		return lipgloss.JoinVertical(lipgloss.Left, m.styles.Card.Render(spam), m.styles.Card.Render(ai))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Card.Render(spam), m.styles.Card.Render(ai))
}

// Run starts the interactive analyzer and blocks until the user quits
func Run(ctx context.Context, a *analyzer.Analyzer, theme string, opts ...tea.ProgramOption) error {
	SetThemeByName(theme)

	model := NewModel(ctx, a)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)
	_, err := p.Run()
	return err
}
