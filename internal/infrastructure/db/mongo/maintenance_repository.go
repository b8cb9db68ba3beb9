package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/facilityops/access-system/internal/core/domain"
)

const collectionMaintenanceSchedules = "maintenance_schedules"

// MaintenanceRepository implements the read-only schedule query. The
// collection is owned and written by the scheduling flows outside this
// service.
type MaintenanceRepository struct {
	col *mongo.Collection
}

func NewMaintenanceRepository(db *mongo.Database) *MaintenanceRepository {
	return &MaintenanceRepository{col: db.Collection(collectionMaintenanceSchedules)}
}

// FindDue returns all schedules with completed=false and due_date <= now.
func (r *MaintenanceRepository) FindDue(ctx context.Context, now time.Time) ([]domain.MaintenanceSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"completed": false,
		"due_date":  bson.M{"$lte": now.UTC()},
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var schedules []domain.MaintenanceSchedule
	if err := cur.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// EnsureIndexes creates the compound index backing FindDue.
func (r *MaintenanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "completed", Value: 1}, {Key: "due_date", Value: 1}},
	})
	return err
}
