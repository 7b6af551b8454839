package wizard

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taxseva/internal/logging"
	"taxseva/internal/records"
	"taxseva/internal/session"
	"taxseva/internal/upi"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinnerTickMsg:
		if !m.ctrl.IsProcessing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg.tick)
		return m, wrapSpinnerCmd(cmd)

	case paymentDoneMsg:
		return m.handlePaymentDone(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			logging.UI("Wizard exiting")
			return m, tea.Quit
		}
		switch m.ctrl.Step() {
		case session.StepSearch:
			return m.updateSearch(msg)
		case session.StepTaxSummary:
			return m.updateSummary(msg)
		case session.StepPayment:
			return m.updatePayment(msg)
		case session.StepResult:
			return m.updateResult(msg)
		}
	}

	return m, nil
}

// -----------------------------------------------------------------------------
// SEARCH
// -----------------------------------------------------------------------------

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return m.focusSearchField(m.focusIndex + 1), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusSearchField(m.focusIndex - 1), nil
	case tea.KeyEnter:
		return m.submitSearch()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// focusSearchField moves focus, wrapping at both ends.
func (m Model) focusSearchField(idx int) Model {
	m.focusIndex = ((idx % fieldCount) + fieldCount) % fieldCount
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	criteria := records.Criteria{
		Mobile:     m.inputs[fieldMobile].Value(),
		Aadhaar:    m.inputs[fieldAadhaar].Value(),
		BuildingID: m.inputs[fieldBuildingID].Value(),
	}

	if _, err := m.ctrl.Search(criteria); err != nil {
		m.searchErr = searchErrorMessage(err)
		return m, nil
	}
	m.searchErr = ""
	m.summaryErr = ""
	return m, nil
}

// searchErrorMessage maps lookup failures to the portal's user-facing copy.
func searchErrorMessage(err error) string {
	switch {
	case records.IsValidation(err):
		return "Enter at least one search field."
	case errors.Is(err, records.ErrNotFound):
		return "No building record found."
	case errors.Is(err, records.ErrEmptyTaxHistory):
		return "No tax records for this building."
	default:
		return err.Error()
	}
}

// -----------------------------------------------------------------------------
// TAX SUMMARY
// -----------------------------------------------------------------------------

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "p", "enter":
		if err := m.ctrl.ProceedToPayment(); err != nil {
			var se *session.StateError
			if errors.As(err, &se) {
				m.summaryErr = se.Reason
			} else {
				m.summaryErr = err.Error()
			}
			return m, nil
		}
		return m.enterPaymentStep(), nil
	case "n":
		return m.resetWizard(), nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// enterPaymentStep prepares the payment view: fresh VPA input and QR block.
func (m Model) enterPaymentStep() Model {
	m.summaryErr = ""
	m.payErr = ""
	m.vpa.SetValue("")
	m.vpa.Focus()

	uri := m.ctrl.PayURI()
	qr, err := upi.QR(uri)
	if err != nil {
		logging.UI("QR render failed: %v", err)
		qr = ""
	}
	m.qr = qr
	return m
}

// -----------------------------------------------------------------------------
// PAYMENT
// -----------------------------------------------------------------------------

func (m Model) updatePayment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keys are swallowed while the simulated round trip is in flight; the
	// controller would reject re-entry anyway.
	if m.ctrl.IsProcessing() {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.confirm(m.vpa.Value())
	case tea.KeyCtrlS:
		// Simulated QR scan: fill a succeeding VPA and submit.
		m.vpa.SetValue("success@upi")
		return m.confirm("success@upi")
	case tea.KeyEsc:
		m.payErr = ""
		m.ctrl.Back()
		return m, nil
	}

	var cmd tea.Cmd
	m.vpa, cmd = m.vpa.Update(msg)
	return m, cmd
}

func (m Model) confirm(paymentID string) (tea.Model, tea.Cmd) {
	m.payErr = ""
	return m, tea.Batch(wrapSpinnerCmd(m.spinner.Tick), m.confirmCmd(paymentID))
}

func (m Model) handlePaymentDone(msg paymentDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, session.ErrStaleSession):
			// The session was reset while the payment was in flight; the
			// completion is detached and must not touch the new session.
			logging.UI("Dropped stale payment completion")
			return m, nil
		case errors.Is(msg.err, session.ErrPaymentInProgress):
			return m, nil
		case records.IsValidation(msg.err):
			m.payErr = "Enter a UPI ID to proceed."
			return m, nil
		default:
			m.payErr = msg.err.Error()
			return m, nil
		}
	}

	m.receipt = m.renderReceipt(msg.outcome)
	return m, nil
}

// -----------------------------------------------------------------------------
// RESULT
// -----------------------------------------------------------------------------

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "n", "enter":
		return m.resetWizard(), nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// resetWizard returns the controller and every transient view buffer to the
// initial search state.
func (m Model) resetWizard() Model {
	m.ctrl.Reset()
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m = m.focusSearchField(fieldMobile)
	m.vpa.SetValue("")
	m.searchErr = ""
	m.summaryErr = ""
	m.payErr = ""
	m.qr = ""
	m.receipt = ""
	return m
}

// -----------------------------------------------------------------------------
// SPINNER PLUMBING
// -----------------------------------------------------------------------------

// spinnerTickMsg wraps spinner ticks so Update can gate them on the
// controller's processing flag.
type spinnerTickMsg struct {
	tick tea.Msg
}

func wrapSpinnerCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return spinnerTickMsg{tick: cmd()}
	}
}
