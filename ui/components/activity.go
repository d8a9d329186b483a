package components

import (
	"strings"

	"github.com/Rorical/BloodDesk/internal/models"
	"github.com/Rorical/BloodDesk/ui/styles"
)

// RenderActivity renders the last `limit` activity entries
func RenderActivity(activity []models.Activity, limit int) string {
	if limit > 0 && len(activity) > limit {
		activity = activity[len(activity)-limit:]
	}

	var b strings.Builder
	for _, a := range activity {
		b.WriteString(styles.ActivityStyle(int(a.Type)).Render(a.Content) + "\n")
	}
	return b.String()
}

func RenderNotice(notice *models.Notice) string {
	if notice == nil {
		return ""
	}
	return styles.NoticeStyle(notice.IsError).Render(notice.Text) + "\n"
}
