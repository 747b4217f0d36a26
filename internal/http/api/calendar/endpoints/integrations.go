package endpoints

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/athan/internal/catalog"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

var now = time.Now

// IntegrationsModule mounts the screen integrations backed by generated data.
func IntegrationsModule(cat *catalog.Catalog, city string) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/integrations/:name", func(ctx *gin.Context) (any, *api.APIError) {
			switch ctx.Param("name") {
			case "athan":
				return athanPage(ctx, cat, city)
			default:
				return nil, api.NotFound("integration not found")
			}
		})
	})
}

// GET /api/tv/integrations/athan?date=2006-01-02
func athanPage(ctx *gin.Context, cat *catalog.Catalog, city string) (any, *api.APIError) {
	day := now()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, api.BadRequest("date must be YYYY-MM-DD")
		}
		day = parsed
	}

	res, ok := cat.Get(day.Year())
	if !ok {
		return nil, api.NotFound(fmt.Sprintf("year %d not generated", day.Year()))
	}
	view, ok := res.Day(int(day.Month()), day.Day())
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no prayer times for " + day.Format(time.DateOnly)}
	}

	order := []struct{ name, time string }{
		{"FAJR", view.PrayerTimes.Fajr},
		{"SUNRISE", view.PrayerTimes.Sunrise},
		{"DHUHR", view.PrayerTimes.Dhuhr},
		{"ASR", view.PrayerTimes.Asr},
		{"MAGHRIB", view.PrayerTimes.Maghrib},
		{"ISHA", view.PrayerTimes.Isha},
	}
	prayers := make([]model.Prayer, len(order))
	for i, p := range order {
		t12, period := to12Hour(p.time)
		prayers[i] = model.Prayer{Name: p.name, Time: t12, Period: period}
	}

	data := model.AthanPageData{
		City:    strings.ToUpper(city),
		Date:    strings.ToUpper(day.Format("January 2, 2006")),
		Hijri:   view.Hijri,
		Prayers: prayers,
	}
	if view.Event != nil {
		data.Event = view.Event.Ar
		if view.Event.En != "" {
			data.Event = view.Event.En
		}
	}
	return data, nil
}

// to12Hour converts "17:30" to ("05:30", "PM"). Values that are not HH:MM
// are returned unchanged with no period.
func to12Hour(t24 string) (string, string) {
	parts := strings.Split(strings.TrimSpace(t24), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return t24, ""
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return t24, ""
	}
	if m, err := strconv.Atoi(parts[1]); err != nil || m < 0 || m > 59 {
		return t24, ""
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
		if h > 12 {
			h -= 12
		}
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%s", h, parts[1]), period
}
