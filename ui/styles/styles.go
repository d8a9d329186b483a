package styles

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent   = lipgloss.Color("62")
	colorMuted    = lipgloss.Color("241")
	colorDanger   = lipgloss.Color("160")
	colorSuccess  = lipgloss.Color("72")
	colorWarning  = lipgloss.Color("214")
	colorDisabled = lipgloss.Color("238")
)

func HeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("88")).
		Padding(0, 1).
		Width(width)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorMuted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func RowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1)
}

func SelectedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(colorAccent).
		Padding(0, 1)
}

func UrgencyStyle(urgency string) lipgloss.Style {
	switch urgency {
	case "emergency":
		return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	case "urgent":
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted)
	}
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorMuted)
}

func ActivityStyle(kind int) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 2)
	switch kind {
	case 1:
		return style.Foreground(colorSuccess)
	case 2:
		return style.Foreground(colorDanger)
	default:
		return style.Foreground(lipgloss.Color("245"))
	}
}

func NoticeStyle(isError bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		MarginLeft(2).
		Border(lipgloss.NormalBorder(), false, false, false, true)
	if isError {
		return style.Foreground(colorDanger).BorderForeground(colorDanger)
	}
	return style.Foreground(colorSuccess).BorderForeground(colorSuccess)
}

func ModalStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDanger).
		Padding(1, 2).
		Width(width)
}

func ModalTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(colorDanger).
		MarginBottom(1)
}

func QuickReasonStyle(disabled bool) lipgloss.Style {
	if disabled {
		return lipgloss.NewStyle().Foreground(colorDisabled)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
}

func ButtonStyle(primary, disabled bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(2)
	switch {
	case disabled:
		return style.Foreground(lipgloss.Color("244")).Background(colorDisabled)
	case primary:
		return style.Foreground(lipgloss.Color("231")).Background(colorDanger).Bold(true)
	default:
		return style.Foreground(lipgloss.Color("231")).Background(lipgloss.Color("240"))
	}
}

func CounterStyle(over bool) lipgloss.Style {
	if over {
		return lipgloss.NewStyle().Foreground(colorWarning)
	}
	return lipgloss.NewStyle().Foreground(colorMuted)
}
