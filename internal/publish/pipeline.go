// Package publish runs a full generation: load, generate, write, record, notify.
package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/loader"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/storage"
)

type RunRecorder interface {
	RecordRun(run model.GenerationRun) (model.GenerationRun, error)
}

type DigestCache interface {
	LastDigest(ctx context.Context, year int) (string, error)
	RememberDigest(ctx context.Context, year int, digest string) error
}

type Notifier interface {
	PublishDigest(notice model.DigestNotice) error
}

// Pipeline wires the optional collaborators around the calendar core. Any of
// them may be nil; a nil Storage means nothing is written.
type Pipeline struct {
	Storage  storage.Storage
	Runs     RunRecorder
	Cache    DigestCache
	Notifier Notifier

	now func() time.Time
}

type Report struct {
	Year           int       `json:"year"`
	Digest         string    `json:"sha1"`
	Days           int       `json:"days"`
	Weeks          int       `json:"weeks"`
	Documents      int       `json:"documents"`
	SkippedMonths  []int     `json:"skipped_months"`
	DroppedEvents  int       `json:"dropped_events"`
	DroppedHadiths int       `json:"dropped_hadiths"`
	Changed        bool      `json:"changed"`
	Notified       bool      `json:"notified"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Run executes one generation. Loading, generation and writing errors abort
// the run; recording, caching and notification failures are logged and
// reported but leave the written documents in place.
func (p *Pipeline) Run(ctx context.Context, gen config.Generation) (*Report, *calendar.Result, error) {
	if err := gen.Validate(); err != nil {
		return nil, nil, err
	}
	now := time.Now
	if p.now != nil {
		now = p.now
	}

	ds, err := loader.Load(gen.Source())
	if err != nil {
		return nil, nil, err
	}

	res, err := calendar.Generate(calendar.Options{
		Year:          gen.Year,
		WeekStart:     gen.WeekStart,
		Granularities: gen.Granularities,
	}, ds.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("generate %d: %w", gen.Year, err)
	}

	report := &Report{
		Year:           gen.Year,
		Digest:         res.Digest,
		Days:           res.Diagnostics.DayCount,
		Weeks:          res.Diagnostics.WeekCount,
		SkippedMonths:  res.Diagnostics.SkippedMonths,
		DroppedEvents:  ds.DroppedEvents,
		DroppedHadiths: ds.DroppedHadiths,
		Changed:        true,
		GeneratedAt:    now().UTC(),
	}
	if len(report.SkippedMonths) > 0 {
		log.Warn().Int("year", gen.Year).Ints("months", report.SkippedMonths).Msg("months missing from input")
	}

	if p.Storage != nil {
		n, err := storage.WriteResult(ctx, p.Storage, gen.OutputVersion, res)
		if err != nil {
			return nil, nil, fmt.Errorf("write %d: %w", gen.Year, err)
		}
		report.Documents = n
	}

	if p.Cache != nil {
		last, err := p.Cache.LastDigest(ctx, gen.Year)
		if err != nil {
			log.Error().Err(err).Int("year", gen.Year).Msg("digest cache read failed")
		} else if last == res.Digest {
			report.Changed = false
		}
	}

	if p.Runs != nil {
		skipped := make(pq.Int64Array, 0, len(report.SkippedMonths))
		for _, m := range report.SkippedMonths {
			skipped = append(skipped, int64(m))
		}
		if _, err := p.Runs.RecordRun(model.GenerationRun{
			Year:           gen.Year,
			WeekStart:      strings.ToLower(gen.WeekStart.String()),
			Digest:         res.Digest,
			DayCount:       report.Days,
			WeekCount:      report.Weeks,
			DocumentCount:  report.Documents,
			SkippedMonths:  skipped,
			DroppedEvents:  report.DroppedEvents,
			DroppedHadiths: report.DroppedHadiths,
			Changed:        report.Changed,
		}); err != nil {
			log.Error().Err(err).Int("year", gen.Year).Msg("failed to record generation run")
		}
	}

	if report.Changed && p.Notifier != nil {
		err := p.Notifier.PublishDigest(model.DigestNotice{
			Year:        gen.Year,
			SHA1:        res.Digest,
			Days:        report.Days,
			GeneratedAt: report.GeneratedAt,
		})
		if err != nil {
			log.Error().Err(err).Int("year", gen.Year).Msg("failed to publish digest notice")
		} else {
			report.Notified = true
		}
	}

	// only remember the digest once screens have been told, so a failed notice is retried next run
	if report.Changed && p.Cache != nil && (p.Notifier == nil || report.Notified) {
		if err := p.Cache.RememberDigest(ctx, gen.Year, res.Digest); err != nil {
			log.Error().Err(err).Int("year", gen.Year).Msg("digest cache write failed")
		}
	}

	log.Info().
		Int("year", report.Year).
		Str("sha1", report.Digest).
		Int("days", report.Days).
		Int("documents", report.Documents).
		Bool("changed", report.Changed).
		Msg("generation finished")

	return report, res, nil
}
