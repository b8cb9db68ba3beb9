package ports

import (
	"context"
	"time"

	"github.com/facilityops/access-system/internal/core/domain"
)

// MaintenanceRepository reads the maintenance-schedule collection. This
// service never writes it.
type MaintenanceRepository interface {
	// FindDue returns all schedules with completed=false and dueDate <= now.
	FindDue(ctx context.Context, now time.Time) ([]domain.MaintenanceSchedule, error)
}
