package domain

import (
	"math"
	"time"
)

// MaintenanceSchedule is a read-only view of a scheduled maintenance task.
// Lifecycle (creation, completion) is managed outside this service.
type MaintenanceSchedule struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	AssignedTo string    `json:"assigned_to" bson:"assigned_to"`
	DueDate    time.Time `json:"due_date" bson:"due_date"`
	Completed  bool      `json:"completed" bson:"completed"`
}

// OverdueDays returns how many whole or partial days the schedule is past
// due at the given instant, never negative. A schedule due later the same
// instant (or in the future) yields 0.
func (m MaintenanceSchedule) OverdueDays(now time.Time) int {
	d := now.Sub(m.DueDate)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}
