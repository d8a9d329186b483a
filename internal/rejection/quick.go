package rejection

// QuickReason identifies one of the canned rejection reasons.
type QuickReason int

const (
	InsufficientStock QuickReason = iota
	IncorrectBloodGroup
	ExceedsApprovedLimits
	CannotFulfill
)

var quickReasons = [...]string{
	InsufficientStock:     "Insufficient blood stock available",
	IncorrectBloodGroup:   "Incorrect blood group specified",
	ExceedsApprovedLimits: "Request exceeds approved limits",
	CannotFulfill:         "Cannot fulfill at this time",
}

// QuickReasons returns the canned reasons in display order.
func QuickReasons() []string {
	out := make([]string, len(quickReasons))
	copy(out, quickReasons[:])
	return out
}

// Text returns the canned string, or "" for an unknown preset.
func (q QuickReason) Text() string {
	if !q.Valid() {
		return ""
	}
	return quickReasons[q]
}

func (q QuickReason) Valid() bool {
	return q >= 0 && int(q) < len(quickReasons)
}
