package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const jobTimeout = 5 * time.Minute

// Job is one scheduled regeneration.
type Job func(ctx context.Context) error

// SetupCron registers job under a six-field (seconds-first) spec and starts
// the scheduler. Overlapping firings are skipped while a run is in progress.
func SetupCron(spec string, job Job) (*cron.Cron, error) {
	cronService := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := cronService.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			log.Error().Err(err).Str("spec", spec).Msg("scheduled regeneration failed")
			return
		}
		log.Info().Str("spec", spec).Dur("took", time.Since(start)).Msg("scheduled regeneration finished")
	})
	if err != nil {
		return nil, err
	}

	cronService.Start()
	log.Info().Str("spec", spec).Msg("regeneration scheduled")
	return cronService, nil
}
