package trending

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"communityhub/internal/models"
)

// Snapshot is the read-only view of one content item's cumulative
// counters at a point in time. The scoring pass only ever reads
// snapshots and writes trending records; content documents are never
// mutated by this service.
type Snapshot struct {
	ID        primitive.ObjectID
	CreatedAt time.Time
	Totals    models.EngagementTotals
}
