package calendar

import (
	"time"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// WeeksPerYear is the number of week buckets emitted for every year.
const WeeksPerYear = 53

// WeekBucket groups up to seven days of one week. Slots are indexed by time.Weekday.
type WeekBucket struct {
	ID     uint32
	Index  int
	Slots  [7]*model.DailyRecord
	Hadith *model.Hadith
}

// Len is the number of filled slots.
func (b *WeekBucket) Len() int {
	n := 0
	for _, s := range b.Slots {
		if s != nil {
			n++
		}
	}
	return n
}

// WeekAssignment maps a day's global index to its week id.
type WeekAssignment map[int]uint32

func (a WeekAssignment) Lookup(index int) (uint32, bool) {
	id, ok := a[index]
	return id, ok
}

// WeekID composes year*100 + weekIndex.
func WeekID(year, weekIndex int) uint32 {
	return uint32(year*100 + weekIndex)
}

// Partition walks days once and groups them into week buckets anchored on start.
// A bucket closes after the last weekday of the configured week, once it holds
// seven days, or before a weekday slot would be filled twice. At least
// WeeksPerYear buckets are returned; a leap year that opens on the last day of
// the week needs a 54th. days is only read.
func Partition(year int, days []model.DailyRecord, start time.Weekday, hadiths map[int]model.Hadith) ([]WeekBucket, WeekAssignment, error) {
	last := LastDayOfWeek(start)
	buckets := make([]WeekBucket, 0, WeeksPerYear)
	assignment := make(WeekAssignment, len(days))

	cur := WeekBucket{ID: WeekID(year, 1), Index: 1}
	filled := 0
	flush := func() {
		buckets = append(buckets, cur)
		next := cur.Index + 1
		cur = WeekBucket{ID: WeekID(year, next), Index: next}
		filled = 0
	}

	for i := range days {
		d := &days[i]
		wd, ok := Weekday(int(d.Date.Year), int(d.Date.Month), int(d.Date.Day))
		if !ok {
			return nil, nil, &DateError{Year: int(d.Date.Year), Month: int(d.Date.Month), Day: int(d.Date.Day)}
		}
		if cur.Slots[wd] != nil {
			flush()
		}
		cur.Slots[wd] = d
		filled++
		assignment[d.Date.Index] = cur.ID

		if wd == last || filled == 7 {
			flush()
		}
	}
	if filled > 0 {
		flush()
	}
	for len(buckets) < WeeksPerYear {
		flush()
	}

	for i := range buckets {
		if h, ok := hadiths[buckets[i].Index]; ok {
			h := h
			buckets[i].Hadith = &h
		}
	}
	return buckets, assignment, nil
}
