package jobs

import (
	"context"
	"log"
	"time"

	"communityhub/internal/models"
	"communityhub/internal/services"
	"communityhub/internal/trending"
)

// TrendingRecomputeJob runs one full scoring pass: for every content
// item of every type it tracks engagement deltas against the stored
// record, computes the age-decayed score, upserts the trending record,
// and finally prunes orphans. The pass is a full-collection rescan each
// cycle; that is the known scaling ceiling of this design.
type TrendingRecomputeJob struct {
	store   *services.TrendingStore
	content *services.ContentService
	metrics *services.Metrics
}

// NewTrendingRecomputeJob creates a new trending recompute job
func NewTrendingRecomputeJob(store *services.TrendingStore, content *services.ContentService, metrics *services.Metrics) *TrendingRecomputeJob {
	return &TrendingRecomputeJob{store: store, content: content, metrics: metrics}
}

// Run executes one recomputation cycle. A failure on one item is logged
// and skipped; the cycle continues with the remaining items. A failure
// to list a whole content type skips that type for this cycle.
func (j *TrendingRecomputeJob) Run(ctx context.Context) error {
	now := time.Now().UTC()
	start := time.Now()

	for _, contentType := range models.AllContentTypes {
		snapshots, err := j.content.Snapshots(ctx, contentType)
		if err != nil {
			log.Printf("⚠️ [TRENDING] Failed to snapshot %s collection: %v", contentType, err)
			continue
		}

		scored := 0
		for _, snapshot := range snapshots {
			if err := j.scoreItem(ctx, contentType, snapshot, now); err != nil {
				log.Printf("⚠️ [TRENDING] Skipping %s %s: %v", contentType, snapshot.ID.Hex(), err)
				if j.metrics != nil {
					j.metrics.TrendingItemErrors.WithLabelValues(string(contentType)).Inc()
				}
				continue
			}
			scored++
		}

		if j.metrics != nil {
			j.metrics.TrendingItemsScored.WithLabelValues(string(contentType)).Add(float64(scored))
		}
		log.Printf("📈 [TRENDING] Scored %d/%d %s items", scored, len(snapshots), contentType)
	}

	pruned, err := j.store.PruneOrphans(ctx, j.content)
	if err != nil {
		log.Printf("⚠️ [TRENDING] Orphan pruning failed: %v", err)
	} else if pruned > 0 {
		log.Printf("🧹 [TRENDING] Pruned %d orphaned trending records", pruned)
		if j.metrics != nil {
			j.metrics.TrendingOrphansPruned.Add(float64(pruned))
		}
	}

	if j.metrics != nil {
		j.metrics.TrendingCycleDuration.Observe(time.Since(start).Seconds())
	}
	return nil
}

// scoreItem scores a single content item against its stored record
func (j *TrendingRecomputeJob) scoreItem(ctx context.Context, contentType models.ContentType, snapshot trending.Snapshot, now time.Time) error {
	existing, err := j.store.Find(ctx, contentType, snapshot.ID)
	if err != nil {
		return err
	}

	var lastTotals *models.EngagementTotals
	if existing != nil {
		lastTotals = &existing.LastTotals
	}

	breakdown := trending.TrackDeltas(snapshot.Totals, lastTotals)
	breakdown.WeightedEngagement = trending.ComputeWeightedEngagement(contentType, breakdown)

	ageHours := now.Sub(snapshot.CreatedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	score := trending.ScoreWithAge(breakdown.WeightedEngagement, ageHours)

	return j.store.Upsert(ctx, contentType, snapshot.ID, score, snapshot.Totals, breakdown, now)
}
