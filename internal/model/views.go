package model

import "time"

type EventView struct {
	Ar string `json:"ar"`
	En string `json:"en,omitempty"`
}

type HadithView struct {
	Text string `json:"text"`
	Note string `json:"note,omitempty"`
}

// DayView is the published shape of one day. Field order is part of the digest.
type DayView struct {
	ID          uint32      `json:"id"`
	Gregorian   string      `json:"gregorian"`
	Hijri       string      `json:"hijri"`
	PrayerTimes PrayerTimes `json:"prayerTimes"`
	WeekID      *uint32     `json:"weekId,omitempty"`
	Event       *EventView  `json:"event,omitempty"`
}

// WeekView is one week bucket; empty slots serialize as null.
type WeekView struct {
	ID     uint32      `json:"id"`
	Sun    *DayView    `json:"sun"`
	Mon    *DayView    `json:"mon"`
	Tue    *DayView    `json:"tue"`
	Wed    *DayView    `json:"wed"`
	Thu    *DayView    `json:"thu"`
	Fri    *DayView    `json:"fri"`
	Sat    *DayView    `json:"sat"`
	Hadith *HadithView `json:"hadith,omitempty"`
}

func (w *WeekView) slot(wd time.Weekday) **DayView {
	switch wd {
	case time.Sunday:
		return &w.Sun
	case time.Monday:
		return &w.Mon
	case time.Tuesday:
		return &w.Tue
	case time.Wednesday:
		return &w.Wed
	case time.Thursday:
		return &w.Thu
	case time.Friday:
		return &w.Fri
	default:
		return &w.Sat
	}
}

func (w *WeekView) SetSlot(wd time.Weekday, day *DayView) {
	*w.slot(wd) = day
}

func (w *WeekView) Slot(wd time.Weekday) *DayView {
	return *w.slot(wd)
}

type MonthView struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Days  []DayView `json:"days"`
}

type YearView struct {
	Year int       `json:"year"`
	SHA1 string    `json:"sha1"`
	Days []DayView `json:"days"`
}

type WeekCollection struct {
	Year  int        `json:"year"`
	SHA1  string     `json:"sha1"`
	Weeks []WeekView `json:"weeks"`
}

// DigestDocument is the standalone integrity document for a year.
type DigestDocument struct {
	SHA1 string `json:"sha1"`
}

// DigestNotice is broadcast to screens when a year's digest changes.
type DigestNotice struct {
	Type        string    `json:"type"`
	Year        int       `json:"year"`
	SHA1        string    `json:"sha1"`
	Days        int       `json:"days"`
	GeneratedAt time.Time `json:"generated_at"`
}
