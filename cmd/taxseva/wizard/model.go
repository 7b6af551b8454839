// Package wizard provides the interactive TUI for the property-tax flow.
// It is a thin adapter over session.Controller: every key maps to a
// controller method and the view re-renders from controller state. The
// wizard is split across files:
//   - model.go: types, construction, Init, Run
//   - update.go: the Update loop, keyed on the controller's step
//   - view.go: rendering functions
package wizard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"taxseva/cmd/taxseva/ui"
	"taxseva/internal/config"
	"taxseva/internal/logging"
	"taxseva/internal/payment"
	"taxseva/internal/session"
)

// Search field indexes into Model.inputs.
const (
	fieldMobile = iota
	fieldAadhaar
	fieldBuildingID
	fieldCount
)

// paymentDoneMsg carries a resolved payment submission back into Update.
type paymentDoneMsg struct {
	outcome payment.Outcome
	err     error
}

// Model is the bubbletea model for the wizard.
type Model struct {
	ctrl   *session.Controller
	styles ui.Styles

	// Search step inputs
	inputs     []textinput.Model
	focusIndex int

	// Payment step input
	vpa textinput.Model

	spinner  spinner.Model
	renderer *glamour.TermRenderer

	// Per-step transient display state
	searchErr  string
	summaryErr string
	payErr     string
	qr         string
	receipt    string

	width  int
	height int
}

// New builds the wizard model over an initialized controller.
func New(ctrl *session.Controller, styles ui.Styles) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = 40
		ti.Prompt = "│ "
		ti.PromptStyle = styles.Prompt
		inputs[i] = ti
	}
	inputs[fieldMobile].Placeholder = "10-digit mobile number"
	inputs[fieldAadhaar].Placeholder = "Aadhaar number"
	inputs[fieldBuildingID].Placeholder = "Building ID (e.g. KSB-1021)"
	inputs[fieldMobile].Focus()

	vpa := textinput.New()
	vpa.Placeholder = "yourname@upi (try fail@upi to decline)"
	vpa.CharLimit = 64
	vpa.Width = 40
	vpa.Prompt = "│ "
	vpa.PromptStyle = styles.Prompt

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(72),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(72),
		)
	}

	return Model{
		ctrl:     ctrl,
		styles:   styles,
		inputs:   inputs,
		vpa:      vpa,
		spinner:  sp,
		renderer: renderer,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// confirmCmd submits the payment identifier off the UI goroutine. The
// controller guards re-entry and discards completions from reset sessions.
func (m Model) confirmCmd(paymentID string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		out, err := ctrl.ConfirmPayment(paymentID)
		return paymentDoneMsg{outcome: out, err: err}
	}
}

// Run loads styles from config and drives the wizard to completion.
func Run(ctrl *session.Controller, cfg config.Config) error {
	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
	logging.UI("Launching wizard TUI (theme=%s)", cfg.UI.Theme)

	p := tea.NewProgram(New(ctrl, styles), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard terminated: %w", err)
	}
	return nil
}
