package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given [light, dark] colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, foreground, muted, highlight [2]string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:  lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:     lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:    lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:    lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:      lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:     lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Foreground: lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:      lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Highlight:  lipgloss.AdaptiveColor{Light: highlight[0], Dark: highlight[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7C3AED", "#A855F7"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#111827", "#F9FAFB"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#FEF3C7", "#1F2937"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#FFFF00", "#444444"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#2D3748", "#F7FAFC"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#F7FAFC", "#2D3748"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles contains all the styled components of the analyzer screen
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Heading  lipgloss.Style
	Muted    lipgloss.Style

	// Input
	Input       lipgloss.Style
	Button      lipgloss.Style
	ButtonBusy  lipgloss.Style
	ErrorBanner lipgloss.Style
	Spinner     lipgloss.Style

	// Result cards
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Spam      lipgloss.Style
	NotSpam   lipgloss.Style
	Score     lipgloss.Style
	Footer    lipgloss.Style
}

// GetStyles builds the styles for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Heading: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginTop(1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 2),

		ButtonBusy: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Highlight).
			Padding(0, 2),

		ErrorBanner: lipgloss.NewStyle().
			Foreground(theme.Error).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Error).
			Bold(true).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			MarginRight(1),

		CardTitle: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Spam: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		NotSpam: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Score: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true).
			MarginTop(1),
	}
}
