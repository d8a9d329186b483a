package models

import "time"

type ActivityType int

const (
	Info ActivityType = iota
	Success
	Failure
)

// Activity is a line in the desk's activity log
type Activity struct {
	Content string
	Type    ActivityType
	At      time.Time
}
