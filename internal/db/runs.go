// internal/db/runs.go
package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

const runColumns = `id, year, week_start, digest, day_count, week_count, document_count,
	skipped_months, dropped_events, dropped_hadiths, changed, created_at`

// inserts a run and returns it with id and created_at filled in.
func (s *pgStore) RecordRun(run model.GenerationRun) (model.GenerationRun, error) {
	var out model.GenerationRun
	const q = `
	INSERT INTO generation_runs (year, week_start, digest, day_count, week_count, document_count,
	                             skipped_months, dropped_events, dropped_hadiths, changed, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
	RETURNING ` + runColumns + `;`
	err := s.db.Get(&out, q,
		run.Year, run.WeekStart, run.Digest, run.DayCount, run.WeekCount, run.DocumentCount,
		run.SkippedMonths, run.DroppedEvents, run.DroppedHadiths, run.Changed)
	if err != nil {
		log.Error().Err(err).Int("year", run.Year).Msg("RecordRun failed")
		return model.GenerationRun{}, err
	}
	return out, nil
}

// returns nil, nil when the year was never generated.
func (s *pgStore) LatestRun(year int) (*model.GenerationRun, error) {
	var run model.GenerationRun
	q := `SELECT ` + runColumns + `
	  FROM generation_runs
	 WHERE year = $1
	 ORDER BY created_at DESC, id DESC
	 LIMIT 1;`
	if err := s.db.Get(&run, q, year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Int("year", year).Msg("LatestRun failed")
		return nil, err
	}
	return &run, nil
}

// lists the newest runs of year, or of every year when year is 0.
func (s *pgStore) ListRuns(year int, limit int) ([]model.GenerationRun, error) {
	if limit <= 0 {
		limit = 50
	}
	out := []model.GenerationRun{}
	q := `SELECT ` + runColumns + `
	  FROM generation_runs
	 WHERE ($1 = 0 OR year = $1)
	 ORDER BY created_at DESC, id DESC
	 LIMIT $2;`
	if err := s.db.Select(&out, q, year, limit); err != nil {
		log.Error().Err(err).Int("year", year).Msg("ListRuns failed")
		return nil, err
	}
	return out, nil
}
