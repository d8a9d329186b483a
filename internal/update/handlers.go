package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/BloodDesk/internal/eventbus"
	"github.com/Rorical/BloodDesk/internal/models"
	"github.com/Rorical/BloodDesk/internal/rejection"
)

const noticeTTL = 3 * time.Second

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, modal *rejection.Modal, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}

	// The open modal owns the keyboard
	if modal.IsOpen() {
		return modal.Update(keyMsg)
	}

	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if appModel.Cursor > 0 {
			appModel.Cursor--
		}
	case "down", "j":
		if appModel.Cursor < len(appModel.Requests)-1 {
			appModel.Cursor++
		}
	case "r":
		if err := eb.SendToCore(eventbus.RefreshRequestsEvent{}); err != nil {
			appModel.Status = "Error requesting refresh: " + err.Error()
		}
	case "x", "enter":
		req, ok := appModel.Selected()
		if !ok {
			ShowNotice(appModel, "No request selected", true)
			return nil
		}
		modal.Open(req)
	}
	return nil
}

// ShowNotice sets the toast shown under the request list
func ShowNotice(appModel *models.AppModel, text string, isError bool) {
	appModel.Notice = &models.Notice{
		Text:    text,
		IsError: isError,
		Expires: time.Now().Add(noticeTTL),
	}
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, modal *rejection.Modal, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Requests = event.Requests
		appModel.Activity = append(appModel.Activity, event.Activity...)
		appModel.Loading = event.IsProcessing
		appModel.ClampCursor()

		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			appModel.Status = "Processing"
		} else {
			appModel.Status = "Ready"
		}
	case eventbus.RequestRejectedEvent:
		// Closing after a successful rejection belongs to the confirm side
		if modal.IsOpen() && modal.Request().Code == event.Code {
			modal.Close()
		}
		ShowNotice(appModel, "Request "+event.Code+" rejected", false)
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, modal *rejection.Modal, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	modal.SetWidth(sizeMsg.Width)
}

func HandleTickMsg(appModel *models.AppModel, now time.Time) tea.Cmd {
	// Only handle UI animations - loading dots and notice expiry
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	if appModel.Notice != nil && now.After(appModel.Notice.Expires) {
		appModel.Notice = nil
	}
	return TickCmd()
}
