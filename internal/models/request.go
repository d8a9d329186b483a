package models

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// BloodRequest is a hospital's request for blood units as served by the backend
type BloodRequest struct {
	Code            string        `json:"request_code"`
	Hospital        string        `json:"hospital"`
	BloodGroup      string        `json:"blood_group"`
	Units           int           `json:"units"`
	Urgency         Urgency       `json:"urgency"`
	Status          RequestStatus `json:"status"`
	RequestedAt     time.Time     `json:"requested_at"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
}

func (r BloodRequest) IsPending() bool {
	return r.Status == StatusPending
}
