package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taxseva/internal/money"
	"taxseva/internal/payment"
	"taxseva/internal/records"
	"taxseva/internal/session"
)

var stepTitles = []string{"Search", "Tax Summary", "Payment", "Result"}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.ctrl.Step() {
	case session.StepSearch:
		body = m.viewSearch()
	case session.StepTaxSummary:
		body = m.viewSummary()
	case session.StepPayment:
		body = m.viewPayment()
	case session.StepResult:
		body = m.viewResult()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.styles.Content.Render(body),
	)
}

// viewHeader renders the banner and the four-step indicator.
func (m Model) viewHeader() string {
	active := int(m.ctrl.Step())
	steps := make([]string, len(stepTitles))
	for i, title := range stepTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if i == active {
			steps[i] = m.styles.StepActive.Render(label)
		} else {
			steps[i] = m.styles.StepInactive.Render(label)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("TaxSeva · Municipal Property Tax"),
		lipgloss.JoinHorizontal(lipgloss.Top, steps...),
	)
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Find your building"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Search by any one field."))
	b.WriteString("\n\n")

	labels := []string{"Mobile number", "Aadhaar number", "Building ID"}
	for i, input := range m.inputs {
		b.WriteString(m.styles.Label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	if m.searchErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.searchErr))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Footer.Render("tab: next field · enter: search · ctrl+c: quit"))
	return b.String()
}

func (m Model) viewSummary() string {
	building, ok := m.ctrl.SelectedBuilding()
	tax := m.ctrl.DisplayTax()
	if !ok || tax == nil {
		return m.styles.Error.Render("No tax record selected.")
	}

	row := func(label, value string) string {
		return m.styles.Label.Render(label) + m.styles.Value.Render(value)
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		row("Owner", building.OwnerName),
		row("Building ID", building.BuildingID),
		row("Ward", building.Ward),
		row("Address", building.Address),
		m.styles.RenderDivider(44),
		row("Tax amount", money.FormatINR(tax.TaxAmount)),
		row("Penalty", money.FormatINR(tax.Penalty)),
		row("Due date", tax.DueDate),
		row("Total payable", money.FormatINR(tax.Total())),
		row("Status", m.statusBadge(tax.Status)),
	)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Tax summary"))
	b.WriteString("\n")
	b.WriteString(m.styles.Card.Render(card))
	b.WriteString("\n")

	if tax.Status == records.StatusPaid {
		b.WriteString(m.styles.Success.Render("This tax is already paid. Nothing due."))
		b.WriteString("\n")
	}
	if m.summaryErr != "" {
		b.WriteString(m.styles.Warning.Render(m.summaryErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if tax.Status == records.StatusPaid {
		b.WriteString(m.styles.Footer.Render("n: new search · q: quit"))
	} else {
		b.WriteString(m.styles.Footer.Render("p: pay now · n: new search · q: quit"))
	}
	return b.String()
}

func (m Model) viewPayment() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Pay " + money.FormatINR(m.ctrl.PayableTotal())))
	b.WriteString("\n")

	if m.qr != "" {
		b.WriteString(m.styles.QR.Render(m.qr))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(m.ctrl.PayURI()))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Label.Render("UPI ID"))
	b.WriteString("\n")
	b.WriteString(m.vpa.View())
	b.WriteString("\n")

	if m.ctrl.IsProcessing() {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Info.Render(" Contacting your bank... do not close this window."))
		b.WriteString("\n")
	} else if m.payErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.payErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("enter: confirm · ctrl+s: simulate QR scan · esc: back · ctrl+c: quit"))
	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder
	if m.receipt != "" {
		b.WriteString(m.receipt)
	} else if out := m.ctrl.Outcome(); out != nil {
		b.WriteString(m.renderReceipt(*out))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("n: new search · q: quit"))
	return b.String()
}

func (m Model) statusBadge(status records.TaxStatus) string {
	if status == records.StatusPaid {
		return m.styles.BadgePaid.Render(status.Label())
	}
	return m.styles.BadgePending.Render(status.Label())
}

// renderReceipt builds the result-step receipt as markdown and renders it
// through glamour, falling back to the raw text when no renderer exists.
func (m Model) renderReceipt(out payment.Outcome) string {
	title := "Payment Successful"
	if !out.Succeeded() {
		title = "Payment Failed"
	}

	buildingID := ""
	if building, ok := m.ctrl.SelectedBuilding(); ok {
		buildingID = building.BuildingID
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n%s\n\n", title, out.Message)
	fmt.Fprintf(&md, "- **Building**: %s\n", buildingID)
	fmt.Fprintf(&md, "- **Status**: %s\n", m.ctrl.StatusLabel())
	fmt.Fprintf(&md, "- **Amount**: %s\n", money.FormatINR(m.ctrl.PayableTotal()))
	if out.ReferenceID != "" {
		fmt.Fprintf(&md, "- **Reference**: %s\n", out.ReferenceID)
	}

	if m.renderer == nil {
		return md.String()
	}
	rendered, err := m.renderer.Render(md.String())
	if err != nil {
		return md.String()
	}
	return rendered
}
