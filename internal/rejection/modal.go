package rejection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/BloodDesk/internal/models"
	"github.com/Rorical/BloodDesk/ui/styles"
)

const (
	submitLabel     = "Reject Request"
	submittingLabel = "Rejecting..."
)

// ConfirmDoneMsg is delivered when a confirmation started by the modal returns.
type ConfirmDoneMsg struct {
	Code string
	Err  error

	workflow *Workflow
}

// Modal presents a Workflow for the selected request. It renders nothing and
// ignores input while closed.
type Modal struct {
	ctx        context.Context
	confirmFor func(code string) Confirmer
	notifier   Notifier
	logger     *slog.Logger

	open     bool
	request  models.BloodRequest
	workflow *Workflow
	input    textarea.Model
	width    int
}

// NewModal creates a closed modal. Each opened request gets a workflow whose
// confirmer comes from confirmFor; validation notices go to notifier.
func NewModal(ctx context.Context, confirmFor func(code string) Confirmer, notifier Notifier, logger *slog.Logger) *Modal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Modal{
		ctx:        ctx,
		confirmFor: confirmFor,
		notifier:   notifier,
		logger:     logger,
		input:      newReasonInput(),
		width:      72,
	}
}

func newReasonInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Explain why this request is rejected..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(4)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	// enter submits, so newlines need a modifier
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	return ta
}

// Open shows the modal for req with an empty draft.
func (m *Modal) Open(req models.BloodRequest) {
	var confirmer Confirmer
	if m.confirmFor != nil {
		confirmer = m.confirmFor(req.Code)
	}
	m.request = req
	m.workflow = NewWorkflow(req.Code, confirmer, CloseFunc(m.hide), m.notifier, m.logger)
	m.input.Reset()
	m.input.Focus()
	m.open = true
}

// Close hides the modal through the workflow, clearing the draft.
func (m *Modal) Close() {
	if m.workflow == nil {
		m.hide()
		return
	}
	m.workflow.Cancel()
}

func (m *Modal) hide() {
	m.open = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Modal) IsOpen() bool { return m.open }

// Workflow returns the workflow of the most recently opened request.
func (m *Modal) Workflow() *Workflow { return m.workflow }

func (m *Modal) Request() models.BloodRequest { return m.request }

func (m *Modal) SetWidth(width int) {
	w := width - 8
	if w > 80 {
		w = 80
	}
	if w < 30 {
		w = 30
	}
	m.width = w
	m.input.SetWidth(w - 6)
}

// Update handles input for the open modal. Confirmation results are always
// applied to the workflow that started them, even after the modal was closed.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	if done, ok := msg.(ConfirmDoneMsg); ok {
		m.finish(done)
		return nil
	}

	if !m.open || m.workflow == nil {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// cursor blink and similar textarea housekeeping
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	// every control is disabled while the confirmation is in flight
	if m.workflow.Submitting() {
		return nil
	}

	switch keyMsg.String() {
	case "esc":
		m.workflow.Cancel()
		return nil
	case "enter", "ctrl+s":
		return m.submit()
	case "alt+1", "f1":
		return m.quick(InsufficientStock)
	case "alt+2", "f2":
		return m.quick(IncorrectBloodGroup)
	case "alt+3", "f3":
		return m.quick(ExceedsApprovedLimits)
	case "alt+4", "f4":
		return m.quick(CannotFulfill)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	m.workflow.UpdateDraft(m.input.Value())
	return cmd
}

func (m *Modal) quick(q QuickReason) tea.Cmd {
	if m.workflow.SelectQuickReason(q) {
		m.input.SetValue(m.workflow.Draft())
	}
	return nil
}

func (m *Modal) submit() tea.Cmd {
	wf := m.workflow
	reason, err := wf.BeginSubmit()
	if err != nil {
		return nil
	}
	m.input.Blur()
	return confirmCmd(m.ctx, wf, reason)
}

func confirmCmd(ctx context.Context, wf *Workflow, reason string) tea.Cmd {
	return func() tea.Msg {
		err := wf.confirm(ctx, reason)
		return ConfirmDoneMsg{Code: wf.requestCode, Err: err, workflow: wf}
	}
}

func (m *Modal) finish(done ConfirmDoneMsg) {
	wf := done.workflow
	if wf == nil {
		return
	}
	wf.CompleteSubmit(done.Err)
	if wf != m.workflow || !m.open {
		return
	}
	m.input.SetValue(wf.Draft())
	m.input.Focus()
}

// View renders the modal, or "" when it is closed.
func (m *Modal) View() string {
	if !m.open || m.workflow == nil {
		return ""
	}
	submitting := m.workflow.Submitting()

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle().Render("Reject Blood Request"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Request %s", m.request.Code))
	if m.request.Hospital != "" {
		b.WriteString(styles.MutedStyle().Render(fmt.Sprintf("  %s · %s · %d units",
			m.request.Hospital, m.request.BloodGroup, m.request.Units)))
	}
	b.WriteString("\n\n")

	b.WriteString("Reason for rejection\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	count := utf8.RuneCountInString(m.workflow.Draft())
	b.WriteString(styles.CounterStyle(count > DisplayLimit).Render(fmt.Sprintf("%d/%d", count, DisplayLimit)))
	b.WriteString("\n\n")

	b.WriteString("Quick reasons\n")
	for i, text := range QuickReasons() {
		b.WriteString(styles.QuickReasonStyle(submitting).Render(fmt.Sprintf("  alt+%d  %s", i+1, text)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	label := submitLabel
	if submitting {
		label = submittingLabel
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ButtonStyle(false, submitting).Render("Cancel (esc)"),
		styles.ButtonStyle(true, !m.workflow.CanSubmit()).Render(label+" (enter)"),
	)
	b.WriteString(buttons)

	return styles.ModalStyle(m.width).Render(b.String())
}
