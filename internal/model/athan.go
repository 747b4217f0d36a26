package model

import "fmt"

// PrayerTimes holds the six daily times exactly as published, e.g. "05:12".
type PrayerTimes struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// GregorianDate is a calendar day plus its 1-based position in the processed year.
// Index is the only ordering key.
type GregorianDate struct {
	Year  uint16
	Month uint8
	Day   uint8
	Index int
}

// String formats the date as "DD/MM/YYYY".
func (d GregorianDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

func (d GregorianDate) Before(other GregorianDate) bool {
	return d.Index < other.Index
}

// Event annotates a single calendar day. Secondary is empty when absent.
type Event struct {
	Primary   string
	Secondary string
}

// Hadith is the weekly reading attached to a week of the year.
type Hadith struct {
	Text string
	Note string
}

// RawDayRow is one day as it arrives from a month file.
type RawDayRow struct {
	Day   int
	Hijri string
	PrayerTimes
}

// MonthRows are the rows of one month file, in file order.
type MonthRows struct {
	Month int
	Rows  []RawDayRow
}

// DailyRecord is one merged day of the year.
type DailyRecord struct {
	Date        GregorianDate
	Hijri       string
	PrayerTimes PrayerTimes
	Event       *Event
}

// Prayer is a single row of the athan screen.
type Prayer struct {
	Name   string `json:"name"`   // "FAJR", "DHUHR", ...
	Time   string `json:"time"`   // "05:12"
	Period string `json:"period"` // "AM" or "PM"
}

type AthanPageData struct {
	City    string   `json:"city"`
	Date    string   `json:"date"` // "AUGUST 5, 2025"
	Hijri   string   `json:"hijri"`
	Event   string   `json:"event,omitempty"`
	Prayers []Prayer `json:"prayers"`
}
