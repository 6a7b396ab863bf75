package jobs

import (
	"context"
	"log"
	"time"

	"medicaidgov/internal/datasets"
	"medicaidgov/internal/medicaid"
)

// DatasetRefreshJob re-warms the small cacheable datasets on a fixed
// interval so interactive queries rarely pay a cold fetch. The large NADAC
// file is deliberately excluded; it is loaded on demand.
type DatasetRefreshJob struct {
	service  *medicaid.Service
	interval time.Duration
	lastRun  time.Time
}

// NewDatasetRefreshJob creates a new dataset refresh job.
// interval: how often to re-warm (e.g., 6 hours)
func NewDatasetRefreshJob(service *medicaid.Service, interval time.Duration) *DatasetRefreshJob {
	return &DatasetRefreshJob{
		service:  service,
		interval: interval,
	}
}

// Run warms each small dataset. A failed warm logs and moves on; the cache
// keeps serving whatever it already holds and the next run retries.
func (j *DatasetRefreshJob) Run(ctx context.Context) error {
	j.lastRun = time.Now()

	if _, err := j.service.EnrollmentData(ctx); err != nil {
		log.Printf("❌ [DATASET-REFRESH] Enrollment warm failed: %v", err)
	}

	for _, d := range datasets.ByCategory("state_formulary") {
		if !d.Available() {
			continue
		}
		if _, err := j.service.FormularyData(ctx, d.State); err != nil {
			log.Printf("❌ [DATASET-REFRESH] %s formulary warm failed: %v", d.State, err)
			continue
		}
		log.Printf("🔥 [DATASET-REFRESH] Warmed %s", d.Key)
	}

	return nil
}

// GetNextRunTime returns when this job should next execute.
func (j *DatasetRefreshJob) GetNextRunTime() time.Time {
	if j.lastRun.IsZero() {
		// First run: 2 minutes after startup (give time for server to init)
		return time.Now().Add(2 * time.Minute)
	}
	return j.lastRun.Add(j.interval)
}
