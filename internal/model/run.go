package model

import (
	"time"

	"github.com/lib/pq"
)

// GenerationRun records one pipeline execution.
type GenerationRun struct {
	ID             int           `db:"id" json:"id"`
	Year           int           `db:"year" json:"year"`
	WeekStart      string        `db:"week_start" json:"week_start"`
	Digest         string        `db:"digest" json:"sha1"`
	DayCount       int           `db:"day_count" json:"day_count"`
	WeekCount      int           `db:"week_count" json:"week_count"`
	DocumentCount  int           `db:"document_count" json:"document_count"`
	SkippedMonths  pq.Int64Array `db:"skipped_months" json:"skipped_months"`
	DroppedEvents  int           `db:"dropped_events" json:"dropped_events"`
	DroppedHadiths int           `db:"dropped_hadiths" json:"dropped_hadiths"`
	Changed        bool          `db:"changed" json:"changed"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}
