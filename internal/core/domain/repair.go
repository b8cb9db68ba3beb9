package domain

// RepairStatus is the lifecycle state of a repair request. The request
// lifecycle is managed outside this service; only the terminal set matters
// to the change detector.
type RepairStatus string

const (
	RepairResolved RepairStatus = "resolved"
	RepairClosed   RepairStatus = "closed"
)

// Terminal reports whether the status is one of the fixed terminal values.
func (s RepairStatus) Terminal() bool {
	return s == RepairResolved || s == RepairClosed
}

// RepairRequest is the before/after snapshot of a repair-request record as
// delivered by the write hook. Field names match the document schema the
// client apps write.
type RepairRequest struct {
	AssignedEngineerID string       `json:"assignedEngineerId,omitempty"`
	Status             RepairStatus `json:"status,omitempty"`
	ReportedByUserID   string       `json:"reportedByUserId,omitempty"`
}
