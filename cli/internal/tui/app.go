// ABOUTME: Root bubbletea model for the interactive budget planner
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/client"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/debuglog"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/icons"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/results"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/styles"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenWizard Screen = iota
	ScreenLoading
	ScreenResults
)

// Layout constants
const (
	minFrameWidth  = 80 // Header and footer never render narrower than this
	panelPadding   = 4  // Horizontal border and padding of the results panel
	frameOverhead  = 4  // Header, footer, and the newlines around content
	panelOverhead  = 2  // Results panel top and bottom border
	requestTimeout = 30 * time.Second
)

// combinationsLoadedMsg is sent when the backend answers a budget request
type combinationsLoadedMsg struct {
	resp *models.CombinationsResponse
	err  error
}

// App is the root model for the TUI
type App struct {
	backend    client.Backend
	source     string // Where results come from, shown in the header
	screen     Screen
	width      int
	height     int
	err        error
	input      models.BudgetInput
	lastUpdate time.Time

	// Child models
	wizardScreen *wizard.Wizard
	results      *results.Results
}

// New creates a new TUI application starting at the budget wizard
func New(backend client.Backend, source string) *App {
	input := models.DefaultBudgetInput()
	return &App{
		backend:      backend,
		source:       source,
		screen:       ScreenWizard,
		input:        input,
		wizardScreen: wizard.New(input),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.wizardScreen != nil {
		return a.wizardScreen.Init()
	}
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.results != nil {
			a.results.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.wizardScreen != nil {
			return a.updateWizard(tea.WindowSizeMsg{Width: a.frameWidth(), Height: msg.Height})
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenResults:
			return a.updateResults(msg)
		}
		return a, nil

	case wizard.WizardCompleteMsg:
		a.input = msg.Input
		a.wizardScreen = nil
		a.err = nil
		a.screen = ScreenLoading
		return a, a.fetchCombinations(msg.Input)

	case wizard.WizardCancelledMsg:
		a.wizardScreen = nil
		if a.results == nil && a.err == nil {
			return a, tea.Quit
		}
		a.screen = ScreenResults
		return a, nil

	case combinationsLoadedMsg:
		a.screen = ScreenResults
		if msg.err != nil {
			debuglog.Error("combinations", msg.err)
			a.err = msg.err
			a.results = nil
			return a, nil
		}
		debuglog.Log("loaded %d of %d combinations", msg.resp.Count, msg.resp.Evaluated)
		a.err = nil
		a.lastUpdate = time.Now()
		a.results = results.New(a.input, msg.resp, a.contentWidth(), a.contentHeight())
		return a, nil

	default:
		// huh forms need their internal messages
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.runWizard()
	}

	if a.results == nil {
		return a, nil
	}
	model, cmd := a.results.Update(msg)
	a.results = model.(*results.Results)
	return a, cmd
}

// runWizard restarts the wizard with the last submitted input
func (a *App) runWizard() tea.Cmd {
	a.wizardScreen = wizard.New(a.input)
	a.wizardScreen.SetWidth(a.frameWidth())
	a.screen = ScreenWizard
	return a.wizardScreen.Init()
}

// fetchCombinations creates a command that ranks combinations for input
func (a *App) fetchCombinations(input models.BudgetInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := a.backend.Combinations(ctx, models.CombinationRequest{BudgetInput: input})
		return combinationsLoadedMsg{resp: resp, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenWizard:
		content = a.viewWizard()
	case ScreenLoading:
		content = styles.Subtitle.Render("Ranking combinations...")
	case ScreenResults:
		content = a.viewResults()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

func (a *App) viewResults() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n" +
			styles.Help.Render("Press r to edit the budget and try again")
	}
	if a.results == nil {
		return ""
	}
	// Width covers padding but not the border
	return styles.ActivePanel.Width(a.contentWidth() + 2).Render(a.results.View())
}

// frameWidth is the header and footer width. One column is left free so
// the closing corner never wraps.
func (a *App) frameWidth() int {
	return max(a.width-1, minFrameWidth)
}

// contentWidth is the width inside the results panel
func (a *App) contentWidth() int {
	return max(a.frameWidth()-panelPadding, minFrameWidth-panelPadding)
}

// contentHeight is the height inside the results panel
func (a *App) contentHeight() int {
	return max(a.height-frameOverhead-panelOverhead, 1)
}

// renderHeader creates the header bar with app branding and the result source
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftRendered := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Avatar Budget Analyzer"))

	rightRendered := ""
	if a.source != "" {
		rightRendered = " " + contextStyle.Render(a.source) + " "
	}

	// -4 for ╭─ and ─╮
	fillWidth := max(width-4-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 0)
	header := "╭─" + leftRendered + strings.Repeat("─", fillWidth) + rightRendered + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenWizard:
		shortcuts = []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case ScreenLoading:
		shortcuts = []string{"ctrl+c Quit"}
	case ScreenResults:
		filter := "f Fits-only"
		if a.results != nil && a.results.FitsOnly() {
			filter = "f Show-all"
		}
		shortcuts = []string{"↑↓ Scroll", filter, "r Restart", "q Quit"}
	}

	var styled []string
	for _, s := range shortcuts {
		key, label, _ := strings.Cut(s, " ")
		styled = append(styled, keyStyle.Render(key)+" "+labelStyle.Render(label))
	}

	leftText := " " + strings.Join(styled, "  ") + " "
	leftPlainText := " " + strings.Join(shortcuts, "  ") + " "

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenResults {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = " " + statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = " Updated " + elapsed + " "
	}

	// -4 for ╰─ and ─╯
	fillWidth := max(width-4-lipgloss.Width(leftPlainText)-lipgloss.Width(rightPlainText), 0)
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI. Set AVATAR_BUDGET_DEBUG=1 to log to the config directory.
func Run(backend client.Backend, source string) error {
	if os.Getenv("AVATAR_BUDGET_DEBUG") == "1" {
		if err := debuglog.Init(debuglog.DefaultConfigDir()); err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer debuglog.Close()
	}

	p := tea.NewProgram(
		New(backend, source),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
