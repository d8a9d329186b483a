package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/BloodDesk/internal/eventbus"
	"github.com/Rorical/BloodDesk/internal/models"
	"github.com/Rorical/BloodDesk/internal/rejection"
)

func HandleUpdateWithEventBus(appModel *models.AppModel, modal *rejection.Modal, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(appModel, modal, msg, eb)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, modal, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel, time.Time(msg))
	case CoreEventMsg:
		return HandleCoreEvent(appModel, modal, msg)
	default:
		// confirmation results and textarea housekeeping
		return modal.Update(msg)
	}
}
