package loader

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
)

type Source struct {
	Dir        string
	Format     Format
	EventsFile string
	HadithFile string
}

// Dataset is the calendar input plus the counts of dropped side-table rows.
type Dataset struct {
	calendar.Input
	DroppedEvents  int
	DroppedHadiths int
}

func Load(src Source) (*Dataset, error) {
	months, err := LoadMonths(src.Dir, src.Format)
	if err != nil {
		return nil, fmt.Errorf("load months: %w", err)
	}
	events, droppedEvents, err := LoadEvents(src.EventsFile)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	hadiths, droppedHadiths, err := LoadHadiths(src.HadithFile)
	if err != nil {
		return nil, fmt.Errorf("load hadiths: %w", err)
	}

	log.Info().
		Str("dir", src.Dir).
		Int("months", len(months)).
		Int("events", len(events)).
		Int("hadiths", len(hadiths)).
		Int("dropped_events", droppedEvents).
		Int("dropped_hadiths", droppedHadiths).
		Msg("input loaded")

	return &Dataset{
		Input:          calendar.Input{Months: months, Events: events, Hadiths: hadiths},
		DroppedEvents:  droppedEvents,
		DroppedHadiths: droppedHadiths,
	}, nil
}
