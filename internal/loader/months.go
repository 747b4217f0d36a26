// Package loader reads month files and side tables from disk.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown input format %q", s)
}

// RowError points at a row that could not be parsed.
type RowError struct {
	File string
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// jsonDay accepts the flat layout (fajr..isha), the legacy spelling
// (fajer, ishaa) and the nested prayerTimes object.
type jsonDay struct {
	Day         int                `json:"day"`
	Hijri       string             `json:"hijri"`
	Fajr        string             `json:"fajr"`
	Fajer       string             `json:"fajer"`
	Sunrise     string             `json:"sunrise"`
	Dhuhr       string             `json:"dhuhr"`
	Asr         string             `json:"asr"`
	Maghrib     string             `json:"maghrib"`
	Isha        string             `json:"isha"`
	Ishaa       string             `json:"ishaa"`
	PrayerTimes *model.PrayerTimes `json:"prayerTimes"`
}

func (d jsonDay) row() model.RawDayRow {
	if d.PrayerTimes != nil {
		return model.RawDayRow{Day: d.Day, Hijri: d.Hijri, PrayerTimes: *d.PrayerTimes}
	}
	return model.RawDayRow{
		Day:   d.Day,
		Hijri: d.Hijri,
		PrayerTimes: model.PrayerTimes{
			Fajr:    firstNonEmpty(d.Fajr, d.Fajer),
			Sunrise: d.Sunrise,
			Dhuhr:   d.Dhuhr,
			Asr:     d.Asr,
			Maghrib: d.Maghrib,
			Isha:    firstNonEmpty(d.Isha, d.Ishaa),
		},
	}
}

// LoadMonths reads <dir>/<m>.<format> for m = 1..12. A missing file is a
// skipped month, a malformed row fails the whole load.
func LoadMonths(dir string, format Format) ([]model.MonthRows, error) {
	var months []model.MonthRows
	for m := 1; m <= 12; m++ {
		path, ok := monthFile(dir, m, format)
		if !ok {
			log.Debug().Int("month", m).Str("dir", dir).Msg("no month file")
			continue
		}

		var (
			rows []model.RawDayRow
			err  error
		)
		switch format {
		case FormatCSV:
			rows, err = readCSVMonth(path)
		default:
			rows, err = readJSONMonth(path)
		}
		if err != nil {
			return nil, err
		}
		months = append(months, model.MonthRows{Month: m, Rows: rows})
	}
	return months, nil
}

func monthFile(dir string, month int, format Format) (string, bool) {
	for _, name := range []string{fmt.Sprintf("%d.%s", month, format), fmt.Sprintf("%02d.%s", month, format)} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func readJSONMonth(path string) ([]model.RawDayRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open month file: %w", err)
	}
	defer f.Close()

	var days []jsonDay
	if err := json.NewDecoder(f).Decode(&days); err != nil {
		return nil, &RowError{File: path, Err: err}
	}
	rows := make([]model.RawDayRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, d.row())
	}
	return rows, nil
}

var monthColumns = map[string]string{
	"day": "day", "hijri": "hijri",
	"fajr": "fajr", "fajer": "fajr",
	"sunrise": "sunrise", "dhuhr": "dhuhr", "asr": "asr", "maghrib": "maghrib",
	"isha": "isha", "ishaa": "isha",
}

func readCSVMonth(path string) ([]model.RawDayRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open month file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, &RowError{File: path, Line: 1, Err: fmt.Errorf("read header: %w", err)}
	}
	cols := map[string]int{}
	for i, h := range header {
		if canon, ok := monthColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[canon] = i
		}
	}
	for _, need := range []string{"day", "hijri", "fajr", "sunrise", "dhuhr", "asr", "maghrib", "isha"} {
		if _, ok := cols[need]; !ok {
			return nil, &RowError{File: path, Line: 1, Err: fmt.Errorf("missing column %q", need)}
		}
	}

	var rows []model.RawDayRow
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{File: path, Line: line, Err: err}
		}
		get := func(name string) string {
			if i := cols[name]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		day, err := strconv.Atoi(get("day"))
		if err != nil {
			return nil, &RowError{File: path, Line: line, Err: fmt.Errorf("day: %w", err)}
		}
		rows = append(rows, model.RawDayRow{
			Day:   day,
			Hijri: get("hijri"),
			PrayerTimes: model.PrayerTimes{
				Fajr:    get("fajr"),
				Sunrise: get("sunrise"),
				Dhuhr:   get("dhuhr"),
				Asr:     get("asr"),
				Maghrib: get("maghrib"),
				Isha:    get("isha"),
			},
		})
	}
	return rows, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
