package domain

// Intent type values carried in the data payload for client-side routing.
const (
	NotifyRepairAssigned  = "repair_assigned"
	NotifyRepairCompleted = "repair_completed"
	NotifyMaintenanceDue  = "maintenance_due"
)

// NotificationIntent is an in-memory request to notify one recipient. It is
// never persisted; it lives only for the duration of one dispatch cycle.
type NotificationIntent struct {
	RecipientUID string
	Title        string
	Body         string
	// Data is the typed key/value payload used for client-side routing.
	// Data["type"] is always one of the Notify* constants.
	Data map[string]string
	// CorrelationID ties the intent back to the record that produced it
	// (repair request id or schedule id) and keys deduplication.
	CorrelationID string
}

// Type returns the routing type from the data payload.
func (n NotificationIntent) Type() string {
	return n.Data["type"]
}
