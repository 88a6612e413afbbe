// ABOUTME: Budget input wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
	"github.com/markalston/avatar-budget-analyzer/backend/services"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/icons"
	"github.com/markalston/avatar-budget-analyzer/cli/internal/tui/styles"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Input models.BudgetInput
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard collects a budget input over three huh forms
type Wizard struct {
	input models.BudgetInput
	form  *huh.Form
	step  int
	width int
	err   error

	// Form field values (strings for huh)
	budget      string
	apiPct      string
	hostingPct  string
	users       string
	concurrency string
	minutes     string
	voiceAgent  bool
}

// Step names for progress indicator
var stepNames = []string{"Budget", "Usage", "Voice"}

// createTheme returns the planner's huh theme
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	purple := lipgloss.Color("#7C3AED")
	purpleLight := lipgloss.Color("#A78BFA")
	blue := lipgloss.Color("#3B82F6")
	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(purple)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(purpleLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(purple)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(purple)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

// New creates a wizard pre-filled with input
func New(input models.BudgetInput) *Wizard {
	w := &Wizard{
		input:       input,
		step:        1,
		budget:      formatFloat(input.MonthlyBudget),
		apiPct:      formatFloat(input.APIAllocationPct),
		hostingPct:  formatFloat(input.HostingAllocationPct),
		users:       strconv.Itoa(input.Users),
		concurrency: strconv.Itoa(input.ConcurrentSessions),
		minutes:     strconv.Itoa(input.MinutesPerMonth),
		voiceAgent:  input.UseVoiceAgent,
	}

	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget (₹)").
				Placeholder("e.g., 100000").
				CharLimit(12).
				Value(&w.budget).
				Validate(validateAmount),
			huh.NewInput().
				Title("API allocation (%)").
				Description("Avatar and voice agent costs").
				CharLimit(6).
				Value(&w.apiPct).
				Validate(validatePercentage),
			huh.NewInput().
				Title("Hosting allocation (%)").
				Description("Must add up to 100 with the API allocation").
				CharLimit(6).
				Value(&w.hostingPct).
				Validate(validatePercentage),
		).Title("Step 1: Budget").
			Description("How much can you spend each month, and how is it split?"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Users").
				Placeholder("e.g., 50").
				CharLimit(7).
				Value(&w.users).
				Validate(validateCount),
			huh.NewInput().
				Title("Concurrent sessions").
				Description("Plans with a lower concurrency limit are skipped").
				CharLimit(6).
				Value(&w.concurrency).
				Validate(validateCount),
			huh.NewInput().
				Title("Minutes per month").
				Placeholder("e.g., 3500").
				CharLimit(8).
				Value(&w.minutes).
				Validate(validateCount),
		).Title("Step 2: Usage").
			Description("Expected usage across all users"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use a separate voice agent?").
				Description("Inbuilt voice prices each avatar plan on its own").
				Affirmative("Voice agent").
				Negative("Inbuilt voice").
				Value(&w.voiceAgent),
		).Title("Step 3: Voice").
			Description("Choose how the avatar speaks"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		budget, _ := strconv.ParseFloat(w.budget, 64)
		apiPct, _ := strconv.ParseFloat(w.apiPct, 64)
		hostingPct, _ := strconv.ParseFloat(w.hostingPct, 64)

		// Field validators cannot see each other, so the sum is checked here
		if err := validateAllocation(apiPct, hostingPct); err != nil {
			w.err = err
			w.form = w.createStep1Form()
			return w, w.form.Init()
		}

		w.err = nil
		w.input.MonthlyBudget = budget
		w.input.APIAllocationPct = apiPct
		w.input.HostingAllocationPct = hostingPct
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.input.Users, _ = strconv.Atoi(w.users)
		w.input.ConcurrentSessions, _ = strconv.Atoi(w.concurrency)
		w.input.MinutesPerMonth, _ = strconv.Atoi(w.minutes)
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.input.UseVoiceAgent = w.voiceAgent
		input := w.input
		return w, func() tea.Msg {
			return WizardCompleteMsg{Input: input}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.err != nil {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + w.err.Error()))
		sb.WriteString("\n\n")
	}

	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	styledTitle := titleStyle.Render("Progress")
	topFillWidth := max(0, width-5-lipgloss.Width("Progress"))
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + filledBar + emptyBar + " │"

	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// GetInput returns the collected budget input
func (w *Wizard) GetInput() models.BudgetInput {
	return w.input
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("must be a non-negative amount")
	}
	return nil
}

func validateCount(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a whole number, 0 or more")
	}
	return nil
}

func validatePercentage(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v >= 0 && v <= 100) {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

func validateAllocation(apiPct, hostingPct float64) error {
	if total := apiPct + hostingPct; math.Abs(total-100) > services.AllocationTolerance {
		return fmt.Errorf("allocations must add up to 100%%, got %s%%", formatFloat(total))
	}
	return nil
}
