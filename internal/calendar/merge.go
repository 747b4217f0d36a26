package calendar

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// EventKey builds the "<day>/<month>" lookup key used by the event table.
func EventKey(day, month int) string {
	return fmt.Sprintf("%d/%d", day, month)
}

// Merge joins the month files of year with the event table into one ordered
// day sequence. Months are walked 1..12, rows in file order; the running
// index is never reserved for absent months. The returned slice lists the
// months that had no rows.
func Merge(year int, months []model.MonthRows, events map[string]model.Event) ([]model.DailyRecord, []int, error) {
	if year < MinYear || year > MaxYear {
		return nil, nil, &DateError{Year: year, Month: 1, Day: 1}
	}

	byMonth := make(map[int]model.MonthRows, len(months))
	for _, m := range months {
		if m.Month < 1 || m.Month > 12 {
			return nil, nil, &DateError{Year: year, Month: m.Month, Day: 1}
		}
		if _, dup := byMonth[m.Month]; dup {
			return nil, nil, fmt.Errorf("%w: %d", ErrDuplicateMonth, m.Month)
		}
		byMonth[m.Month] = m
	}

	var (
		days    []model.DailyRecord
		skipped []int
		index   = 1
	)
	for month := 1; month <= 12; month++ {
		m, ok := byMonth[month]
		if !ok || len(m.Rows) == 0 {
			skipped = append(skipped, month)
			continue
		}
		for i, row := range m.Rows {
			if _, ok := Weekday(year, month, row.Day); !ok {
				return nil, nil, &DateError{Year: year, Month: month, Day: row.Day, Row: i + 1}
			}

			rec := model.DailyRecord{
				Date: model.GregorianDate{
					Year:  uint16(year),
					Month: uint8(month),
					Day:   uint8(row.Day),
					Index: index,
				},
				Hijri:       row.Hijri,
				PrayerTimes: row.PrayerTimes,
			}
			if ev, ok := events[EventKey(row.Day, month)]; ok {
				ev := ev
				rec.Event = &ev
			}
			days = append(days, rec)
			index++
		}
	}

	if len(skipped) > 0 {
		log.Debug().Int("year", year).Ints("months", skipped).Msg("months without rows skipped")
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days, skipped, nil
}
