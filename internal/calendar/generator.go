// Package calendar turns a year of monthly prayer time rows into day, week,
// month and year documents with a digest over the whole year.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// Granularity selects which documents a run produces.
type Granularity uint8

const (
	GranularityDay Granularity = 1 << iota
	GranularityWeek
	GranularityMonth
	GranularityYear

	AllGranularities = GranularityDay | GranularityWeek | GranularityMonth | GranularityYear
)

func (g Granularity) Has(other Granularity) bool { return g&other != 0 }

func (g Granularity) String() string {
	var names []string
	for _, n := range []struct {
		g    Granularity
		name string
	}{{GranularityDay, "day"}, {GranularityWeek, "week"}, {GranularityMonth, "month"}, {GranularityYear, "year"}} {
		if g.Has(n.g) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseGranularities reads a comma separated list such as "day,year". Empty means all.
func ParseGranularities(s string) (Granularity, error) {
	if strings.TrimSpace(s) == "" {
		return AllGranularities, nil
	}
	var g Granularity
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "day", "days":
			g |= GranularityDay
		case "week", "weeks":
			g |= GranularityWeek
		case "month", "months":
			g |= GranularityMonth
		case "year", "years":
			g |= GranularityYear
		case "all":
			g |= AllGranularities
		case "":
		default:
			return 0, fmt.Errorf("unknown granularity %q", part)
		}
	}
	return g, nil
}

type Options struct {
	Year          int
	WeekStart     time.Weekday
	Granularities Granularity
}

type Input struct {
	Months  []model.MonthRows
	Events  map[string]model.Event
	Hadiths map[int]model.Hadith
}

type Diagnostics struct {
	DayCount      int
	WeekCount     int
	SkippedMonths []int
}

// Result is everything one run derived from a single merged day sequence.
type Result struct {
	Year          int
	WeekStart     time.Weekday
	Granularities Granularity

	Days       []model.DailyRecord
	Weeks      []WeekBucket
	Assignment WeekAssignment
	Digest     string

	// Day views per month, filled when day output is requested.
	DayViews       map[int][]model.DayView
	MonthViews     map[int]model.MonthView
	WeekViews      []model.WeekView
	WeekCollection *model.WeekCollection
	YearView       *model.YearView

	HasHadith   bool
	Diagnostics Diagnostics
}

// Generate merges the input, partitions it into weeks, projects the requested
// views and embeds the year digest. Week partitioning always runs before any
// day view is built so that every view carries its week id.
func Generate(opts Options, in Input) (*Result, error) {
	if opts.Granularities == 0 {
		opts.Granularities = AllGranularities
	}

	days, skipped, err := Merge(opts.Year, in.Months, in.Events)
	if err != nil {
		return nil, err
	}

	weeks, assignment, err := Partition(opts.Year, days, opts.WeekStart, in.Hadiths)
	if err != nil {
		return nil, err
	}

	yearDays := ProjectDays(days, assignment)
	digest, err := Digest(yearDays)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Year:          opts.Year,
		WeekStart:     opts.WeekStart,
		Granularities: opts.Granularities,
		Days:          days,
		Weeks:         weeks,
		Assignment:    assignment,
		Digest:        digest,
		HasHadith:     len(in.Hadiths) > 0,
		Diagnostics: Diagnostics{
			DayCount:      len(days),
			WeekCount:     len(weeks),
			SkippedMonths: skipped,
		},
	}

	if opts.Granularities.Has(GranularityDay) {
		res.DayViews = make(map[int][]model.DayView, 12)
		for i, v := range yearDays {
			month := int(days[i].Date.Month)
			res.DayViews[month] = append(res.DayViews[month], v)
		}
	}

	if opts.Granularities.Has(GranularityMonth) {
		res.MonthViews = make(map[int]model.MonthView, 12)
		for month := 1; month <= 12; month++ {
			mv := ProjectMonth(opts.Year, month, days, assignment)
			if len(mv.Days) == 0 {
				continue
			}
			res.MonthViews[month] = mv
		}
	}

	if opts.Granularities.Has(GranularityWeek) {
		res.WeekViews = make([]model.WeekView, 0, len(weeks))
		for _, b := range weeks {
			res.WeekViews = append(res.WeekViews, ProjectWeek(b, assignment))
		}
		res.WeekCollection = &model.WeekCollection{Year: opts.Year, SHA1: digest, Weeks: res.WeekViews}
	}

	if opts.Granularities.Has(GranularityYear) {
		res.YearView = &model.YearView{Year: opts.Year, SHA1: digest, Days: yearDays}
	}

	log.Debug().
		Int("year", opts.Year).
		Int("days", len(days)).
		Int("weeks", len(weeks)).
		Str("sha1", digest).
		Str("granularities", opts.Granularities.String()).
		Msg("calendar generated")

	return res, nil
}

// Day returns the projected view of month/day.
func (r *Result) Day(month, day int) (model.DayView, bool) {
	for _, d := range r.Days {
		if int(d.Date.Month) == month && int(d.Date.Day) == day {
			return ProjectDay(d, r.Assignment), true
		}
	}
	return model.DayView{}, false
}

func (r *Result) Month(month int) (model.MonthView, bool) {
	if mv, ok := r.MonthViews[month]; ok {
		return mv, true
	}
	mv := ProjectMonth(r.Year, month, r.Days, r.Assignment)
	return mv, len(mv.Days) > 0
}

// Week returns the bucket with the given 1-based index.
func (r *Result) Week(index int) (model.WeekView, bool) {
	if index < 1 || index > len(r.Weeks) {
		return model.WeekView{}, false
	}
	if len(r.WeekViews) == len(r.Weeks) {
		return r.WeekViews[index-1], true
	}
	return ProjectWeek(r.Weeks[index-1], r.Assignment), true
}

// YearDocument returns the year view, building it from the merged days if needed.
func (r *Result) YearDocument() model.YearView {
	if r.YearView != nil {
		return *r.YearView
	}
	return model.YearView{Year: r.Year, SHA1: r.Digest, Days: ProjectDays(r.Days, r.Assignment)}
}

// WeekDocument returns the week collection, building it if needed.
func (r *Result) WeekDocument() model.WeekCollection {
	if r.WeekCollection != nil {
		return *r.WeekCollection
	}
	views := make([]model.WeekView, 0, len(r.Weeks))
	for _, b := range r.Weeks {
		views = append(views, ProjectWeek(b, r.Assignment))
	}
	return model.WeekCollection{Year: r.Year, SHA1: r.Digest, Weeks: views}
}
