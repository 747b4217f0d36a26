package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// DayID is the decimal YYYYMMDD form of a date, 0 if it cannot be parsed.
func DayID(d model.GregorianDate) uint32 {
	id, err := strconv.ParseUint(fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(id)
}

// FormatHijri zero-pads a "D/M/YYYY" hijri date to "DD/MM/YYYY".
// Anything that is not exactly three numeric components is returned unchanged.
func FormatHijri(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return s
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return s
		}
		nums[i] = n
	}
	return fmt.Sprintf("%02d/%02d/%04d", nums[0], nums[1], nums[2])
}

// ProjectDay builds the published view of rec, reading its week id from weeks.
func ProjectDay(rec model.DailyRecord, weeks WeekAssignment) model.DayView {
	v := model.DayView{
		ID:          DayID(rec.Date),
		Gregorian:   rec.Date.String(),
		Hijri:       FormatHijri(rec.Hijri),
		PrayerTimes: rec.PrayerTimes,
	}
	if id, ok := weeks.Lookup(rec.Date.Index); ok {
		id := id
		v.WeekID = &id
	}
	if rec.Event != nil {
		v.Event = &model.EventView{Ar: rec.Event.Primary, En: rec.Event.Secondary}
	}
	return v
}

// ProjectDays projects every record in order.
func ProjectDays(days []model.DailyRecord, weeks WeekAssignment) []model.DayView {
	out := make([]model.DayView, 0, len(days))
	for _, d := range days {
		out = append(out, ProjectDay(d, weeks))
	}
	return out
}

func ProjectWeek(b WeekBucket, weeks WeekAssignment) model.WeekView {
	v := model.WeekView{ID: b.ID}
	for wd, rec := range b.Slots {
		if rec == nil {
			continue
		}
		day := ProjectDay(*rec, weeks)
		v.SetSlot(time.Weekday(wd), &day)
	}
	if b.Hadith != nil {
		v.Hadith = &model.HadithView{Text: b.Hadith.Text, Note: b.Hadith.Note}
	}
	return v
}

// ProjectMonth collects the days of month in ascending day order.
func ProjectMonth(year, month int, days []model.DailyRecord, weeks WeekAssignment) model.MonthView {
	var selected []model.DailyRecord
	for _, d := range days {
		if int(d.Date.Month) == month {
			selected = append(selected, d)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Date.Day < selected[j].Date.Day
	})
	return model.MonthView{
		Year:  year,
		Month: month,
		Days:  ProjectDays(selected, weeks),
	}
}
