package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/catalog"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	var rows []model.RawDayRow
	for d := 1; d <= 31; d++ {
		rows = append(rows, model.RawDayRow{
			Day:   d,
			Hijri: fmt.Sprintf("%d/6/1445", d),
			PrayerTimes: model.PrayerTimes{
				Fajr: "05:10", Sunrise: "06:30", Dhuhr: "12:15", Asr: "15:40", Maghrib: "18:05", Isha: "19:30",
			},
		})
	}
	res, err := calendar.Generate(calendar.Options{Year: 2024, WeekStart: time.Saturday}, calendar.Input{
		Months: []model.MonthRows{{Month: 1, Rows: rows}},
		Events: map[string]model.Event{"1/1": {Primary: "رأس السنة", Secondary: "New Year"}},
	})
	require.NoError(t, err)

	cat := catalog.New()
	cat.Put(res)
	return cat
}

func newRouter(cat *catalog.Catalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: ""}, HealthModule(cat))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/v1"}, CalendarModule(cat))
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/tv"}, IntegrationsModule(cat, "Chicago"))
	return r
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthAndYears(t *testing.T) {
	r := newRouter(sampleCatalog(t))

	w := get(t, r, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","years":[2024]}`, w.Body.String())

	w = get(t, r, "/api/v1/years/2024")
	require.Equal(t, http.StatusOK, w.Code)
	var summary map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "saturday", summary["week_start"])
	assert.EqualValues(t, 31, summary["days"])
}

func TestGetDay(t *testing.T) {
	r := newRouter(sampleCatalog(t))

	w := get(t, r, "/api/v1/day/2024/1/1")
	require.Equal(t, http.StatusOK, w.Code)

	var day model.DayView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, uint32(20240101), day.ID)
	assert.Equal(t, "01/06/1445", day.Hijri)
	require.NotNil(t, day.Event)
	assert.Equal(t, "New Year", day.Event.En)
	require.NotNil(t, day.WeekID)
}

func TestGetDayErrors(t *testing.T) {
	r := newRouter(sampleCatalog(t))

	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/v1/day/2024/2/1").Code)
	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/v1/day/2023/1/1").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/day/2024/13/1").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/day/x/1/1").Code)
}

func TestYearAndDigestAgree(t *testing.T) {
	cat := sampleCatalog(t)
	r := newRouter(cat)
	res, _ := cat.Get(2024)

	w := get(t, r, "/api/v1/year/2024")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, strconv.Quote(res.Digest), w.Header().Get("ETag"))
	var year model.YearView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &year))
	assert.Len(t, year.Days, 31)

	w = get(t, r, "/api/v1/year/2024/sha1")
	require.Equal(t, http.StatusOK, w.Code)
	var doc model.DigestDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, year.SHA1, doc.SHA1)

	w = get(t, r, "/api/v1/week/2024")
	require.Equal(t, http.StatusOK, w.Code)
	var weeks model.WeekCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &weeks))
	assert.Equal(t, year.SHA1, weeks.SHA1)
	assert.GreaterOrEqual(t, len(weeks.Weeks), calendar.WeeksPerYear)
}

func TestGetWeekAndMonth(t *testing.T) {
	r := newRouter(sampleCatalog(t))

	// 1 January 2024 is a Monday; the first Saturday-start week runs Monday through Friday
	w := get(t, r, "/api/v1/week/2024/1")
	require.Equal(t, http.StatusOK, w.Code)
	var week map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &week))
	assert.Nil(t, week["sat"])
	assert.NotNil(t, week["mon"])
	assert.NotNil(t, week["fri"])

	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/week/2024/0").Code)

	w = get(t, r, "/api/v1/month/2024/1")
	require.Equal(t, http.StatusOK, w.Code)
	var month model.MonthView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &month))
	assert.Len(t, month.Days, 31)

	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/v1/month/2024/6").Code)
}

func TestAthanIntegration(t *testing.T) {
	r := newRouter(sampleCatalog(t))

	w := get(t, r, "/api/tv/integrations/athan?date=2024-01-01")
	require.Equal(t, http.StatusOK, w.Code)
	var page model.AthanPageData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "CHICAGO", page.City)
	assert.Equal(t, "JANUARY 1, 2024", page.Date)
	assert.Equal(t, "New Year", page.Event)
	require.Len(t, page.Prayers, 6)
	assert.Equal(t, model.Prayer{Name: "MAGHRIB", Time: "06:05", Period: "PM"}, page.Prayers[4])

	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/tv/integrations/athan?date=01/01/2024").Code)
	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/tv/integrations/athan?date=2024-03-01").Code)
	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/tv/integrations/weather").Code)
}

func TestAthanIntegrationDefaultsToToday(t *testing.T) {
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }

	w := get(t, newRouter(sampleCatalog(t)), "/api/tv/integrations/athan")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "JANUARY 15, 2024")
}

func TestTo12Hour(t *testing.T) {
	cases := []struct{ in, time, period string }{
		{"05:10", "05:10", "AM"},
		{"12:15", "12:15", "PM"},
		{"17:30", "05:30", "PM"},
		{"00:20", "12:20", "AM"},
		{"5:1", "5:1", ""},
		{"--", "--", ""},
		{"25:00", "25:00", ""},
	}
	for _, tc := range cases {
		got, period := to12Hour(tc.in)
		assert.Equal(t, tc.time, got, tc.in)
		assert.Equal(t, tc.period, period, tc.in)
	}
}
