package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rorical/BloodDesk/internal/models"
	"github.com/Rorical/BloodDesk/ui/styles"
)

func RenderHeader(profile, operator string, width int) string {
	title := fmt.Sprintf("BloodDesk · pending blood requests · %s@%s", operator, profile)
	return styles.HeaderStyle(width).Render(title)
}

func RenderRequests(requests []models.BloodRequest, cursor int, now time.Time) string {
	if len(requests) == 0 {
		return styles.MutedStyle().Render("  No pending requests") + "\n"
	}

	var b strings.Builder
	b.WriteString(styles.MutedStyle().Render(fmt.Sprintf("  %-10s %-28s %-6s %5s  %-10s %s",
		"CODE", "HOSPITAL", "GROUP", "UNITS", "URGENCY", "WAITING")))
	b.WriteString("\n")

	for i, r := range requests {
		row := fmt.Sprintf("%-10s %-28s %-6s %5d  %s %s",
			r.Code,
			truncate(r.Hospital, 28),
			r.BloodGroup,
			r.Units,
			styles.UrgencyStyle(string(r.Urgency)).Render(fmt.Sprintf("%-10s", r.Urgency)),
			waiting(r.RequestedAt, now),
		)
		if i == cursor {
			b.WriteString(styles.SelectedRowStyle().Render(row))
		} else {
			b.WriteString(styles.RowStyle().Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func waiting(since, now time.Time) string {
	if since.IsZero() {
		return "-"
	}
	d := now.Sub(since)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
