package models

import "time"

// Notice is a short-lived user-facing message (validation notices, results)
type Notice struct {
	Text    string
	IsError bool
	Expires time.Time
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Requests         []BloodRequest // Pending requests as last pushed by core
	Activity         []Activity     // Activity log, newest last
	Cursor           int            // Selected row in the request list
	Notice           *Notice        // Current toast, nil when none
	Status           string         // Status bar text
	Loading          bool           // Loading state from core
	LoadingDots      int            // Animation counter for loading dots
	Width            int            // Terminal width
	Height           int            // Terminal height
	Operator         string         // Operator name from the active profile
	ProfileName      string
	BackendAvailable bool
}

// Selected returns the request under the cursor
func (m *AppModel) Selected() (BloodRequest, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Requests) {
		return BloodRequest{}, false
	}
	return m.Requests[m.Cursor], true
}

// ClampCursor keeps the cursor inside the request list after it changes
func (m *AppModel) ClampCursor() {
	if m.Cursor >= len(m.Requests) {
		m.Cursor = len(m.Requests) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
