package calendar

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

func monthRows(year, month int) model.MonthRows {
	n := DaysIn(year, time.Month(month))
	rows := make([]model.RawDayRow, 0, n)
	for d := 1; d <= n; d++ {
		rows = append(rows, model.RawDayRow{
			Day:   d,
			Hijri: fmt.Sprintf("%d/%d/1445", d, month),
			PrayerTimes: model.PrayerTimes{
				Fajr:    "05:10",
				Sunrise: "06:30",
				Dhuhr:   "12:15",
				Asr:     "15:40",
				Maghrib: "18:05",
				Isha:    "19:30",
			},
		})
	}
	return model.MonthRows{Month: month, Rows: rows}
}

func fullYear(year int) []model.MonthRows {
	months := make([]model.MonthRows, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, monthRows(year, m))
	}
	return months
}
