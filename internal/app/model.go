package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/BloodDesk/internal/update"
	"github.com/Rorical/BloodDesk/ui/components"
)

const activityLines = 6

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, m.modal, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, m.modal, msg, eventBus)

	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderHeader(m.appModel.ProfileName, m.appModel.Operator, m.appModel.Width))
	b.WriteString("\n\n")

	if m.modal.IsOpen() {
		modal := m.modal.View()
		if m.appModel.Width > 0 {
			modal = lipgloss.PlaceHorizontal(m.appModel.Width, lipgloss.Center, modal)
		}
		b.WriteString(modal)
		b.WriteString("\n")
	} else {
		b.WriteString(components.RenderRequests(m.appModel.Requests, m.appModel.Cursor, time.Now()))
		b.WriteString("\n")
		b.WriteString(components.RenderActivity(m.appModel.Activity, activityLines))
	}

	b.WriteString(components.RenderNotice(m.appModel.Notice))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.Loading, m.appModel.LoadingDots, m.modal.IsOpen(), m.appModel.Width))

	return b.String()
}
