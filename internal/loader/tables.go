package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// LoadEvents reads a "date,ar,en" CSV keyed by "<day>/<month>". Malformed or
// duplicate rows are dropped and counted. An empty path yields no events.
func LoadEvents(path string) (map[string]model.Event, int, error) {
	events := map[string]model.Event{}
	if path == "" {
		return events, 0, nil
	}
	dropped := 0
	err := eachRow(path, "date", func(rec []string) error {
		if len(rec) < 2 {
			return errors.New("expected at least date and text")
		}
		key, err := checkEventKey(rec[0])
		if err != nil {
			return err
		}
		primary := strings.TrimSpace(rec[1])
		if primary == "" {
			return errors.New("empty event text")
		}
		if _, dup := events[key]; dup {
			return fmt.Errorf("duplicate event for %s", key)
		}
		ev := model.Event{Primary: primary}
		if len(rec) > 2 {
			ev.Secondary = optional(rec[2])
		}
		events[key] = ev
		return nil
	}, &dropped)
	if err != nil {
		return nil, 0, err
	}
	return events, dropped, nil
}

// LoadHadiths reads a "week,text,note" CSV. Malformed rows are dropped and counted.
func LoadHadiths(path string) (map[int]model.Hadith, int, error) {
	hadiths := map[int]model.Hadith{}
	if path == "" {
		return hadiths, 0, nil
	}
	dropped := 0
	err := eachRow(path, "week", func(rec []string) error {
		if len(rec) < 2 {
			return errors.New("expected at least week and text")
		}
		week, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return fmt.Errorf("week: %w", err)
		}
		if week < 1 || week > calendar.WeeksPerYear {
			return fmt.Errorf("week %d out of range", week)
		}
		text := strings.TrimSpace(rec[1])
		if text == "" {
			return errors.New("empty hadith text")
		}
		if _, dup := hadiths[week]; dup {
			return fmt.Errorf("duplicate hadith for week %d", week)
		}
		h := model.Hadith{Text: text}
		if len(rec) > 2 {
			h.Note = optional(rec[2])
		}
		hadiths[week] = h
		return nil
	}, &dropped)
	if err != nil {
		return nil, 0, err
	}
	return hadiths, dropped, nil
}

// eachRow feeds every CSV record of path to fn. A first row whose first cell
// equals header is skipped. Rows rejected by fn or by the CSV parser are
// logged and counted in dropped; only I/O failures are returned.
func eachRow(path, header string, fn func(rec []string) error, dropped *int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open side table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	for row := 1; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return fmt.Errorf("read side table: %w", err)
			}
		} else if row == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), header) {
			continue
		} else {
			err = fn(rec)
		}
		if err != nil {
			*dropped++
			log.Warn().Err(&RowError{File: path, Line: row, Err: err}).Msg("side table row dropped")
		}
	}
}

// checkEventKey validates a "<day>/<month>" key and returns it trimmed but
// otherwise as written; the merger matches keys exactly.
func checkEventKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		return "", fmt.Errorf("event date %q is not day/month", raw)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("event day in %q", raw)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("event month in %q", raw)
	}
	return key, nil
}

func optional(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}
