package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// Keys of the published tree, relative to the version prefix.
func DayKey(year, month, day int) string {
	return fmt.Sprintf("day/%d/%02d/%02d.json", year, month, day)
}

func MonthKey(year, month int) string {
	return fmt.Sprintf("month/%d/%02d.json", year, month)
}

func WeekKey(year, week int) string {
	return fmt.Sprintf("week/%d/%02d.json", year, week)
}

// WeekCollectionKey moves under year/weeks/ once hadith readings are attached.
func WeekCollectionKey(year int, withHadith bool) string {
	if withHadith {
		return fmt.Sprintf("year/weeks/%d.json", year)
	}
	return fmt.Sprintf("week/%d.json", year)
}

func YearKey(year int) string {
	return fmt.Sprintf("year/%d.json", year)
}

func DigestKey(year int) string {
	return fmt.Sprintf("year/%d.sha1.json", year)
}

// WriteResult persists every document the run was asked for and returns how
// many were written. The first failure aborts the write.
func WriteResult(ctx context.Context, st Storage, version string, res *calendar.Result) (int, error) {
	w := &resultWriter{ctx: ctx, st: st, version: version}
	year := res.Year

	if res.Granularities.Has(calendar.GranularityDay) {
		for month := 1; month <= 12; month++ {
			for _, d := range res.DayViews[month] {
				w.put(DayKey(year, month, int(d.ID%100)), d)
			}
		}
	}

	if res.Granularities.Has(calendar.GranularityWeek) && res.WeekCollection != nil {
		for i, wv := range res.WeekCollection.Weeks {
			w.put(WeekKey(year, i+1), wv)
		}
		w.put(WeekCollectionKey(year, res.HasHadith), res.WeekCollection)
	}

	if res.Granularities.Has(calendar.GranularityMonth) {
		for month := 1; month <= 12; month++ {
			if mv, ok := res.MonthViews[month]; ok {
				w.put(MonthKey(year, month), mv)
			}
		}
	}

	if res.Granularities.Has(calendar.GranularityYear) && res.YearView != nil {
		w.put(YearKey(year), res.YearView)
	}

	w.put(DigestKey(year), model.DigestDocument{SHA1: res.Digest})

	if w.err != nil {
		return w.count, w.err
	}
	log.Info().Int("year", year).Int("documents", w.count).Str("version", version).Msg("documents written")
	return w.count, nil
}

type resultWriter struct {
	ctx     context.Context
	st      Storage
	version string
	count   int
	err     error
}

func (w *resultWriter) put(key string, doc any) {
	if w.err != nil {
		return
	}
	body, err := json.Marshal(doc)
	if err != nil {
		w.err = fmt.Errorf("%w: %s: %v", calendar.ErrSerialization, key, err)
		return
	}
	if _, err := w.st.SaveDocument(w.ctx, path.Join(w.version, key), body); err != nil {
		w.err = fmt.Errorf("save %s: %w", key, err)
		return
	}
	w.count++
}
