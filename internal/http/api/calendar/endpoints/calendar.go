package endpoints

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/catalog"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/calendar/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

type CalendarController struct {
	catalog *catalog.Catalog
}

func newCalendarController(cat *catalog.Catalog) *CalendarController {
	return &CalendarController{catalog: cat}
}

// HealthModule mounts /healthz.
func HealthModule(cat *catalog.Catalog) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/healthz", func(ctx *gin.Context) (any, *api.APIError) {
			return packets.HealthResponse{Status: "ok", Years: cat.Years()}, nil
		})
	})
}

// CalendarModule mounts the read-only calendar documents.
func CalendarModule(cat *catalog.Catalog) api.Module {
	ctl := newCalendarController(cat)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/years", ctl.listYears)
		c.PUBLIC_GET("/years/:year", ctl.getSummary)

		c.PUBLIC_GET("/day/:year/:month/:day", ctl.getDay)
		c.PUBLIC_GET("/month/:year/:month", ctl.getMonth)
		c.PUBLIC_GET("/week/:year", ctl.getWeeks)
		c.PUBLIC_GET("/week/:year/:week", ctl.getWeek)
		c.PUBLIC_GET("/year/:year", ctl.getYear)
		c.PUBLIC_GET("/year/:year/sha1", ctl.getDigest)
	})
}

// GET /api/v1/years
func (cc *CalendarController) listYears(ctx *gin.Context) (any, *api.APIError) {
	return packets.YearsResponse{Years: cc.catalog.Years()}, nil
}

// GET /api/v1/years/:year
func (cc *CalendarController) getSummary(ctx *gin.Context) (any, *api.APIError) {
	res, apiErr := cc.result(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	skipped := res.Diagnostics.SkippedMonths
	if skipped == nil {
		skipped = []int{}
	}
	return packets.YearSummary{
		Year:          res.Year,
		SHA1:          res.Digest,
		WeekStart:     strings.ToLower(res.WeekStart.String()),
		Days:          res.Diagnostics.DayCount,
		Weeks:         res.Diagnostics.WeekCount,
		SkippedMonths: skipped,
	}, nil
}

// GET /api/v1/day/:year/:month/:day
func (cc *CalendarController) getDay(ctx *gin.Context) (any, *api.APIError) {
	res, apiErr := cc.result(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	month, apiErr := intParam(ctx, "month", 1, 12)
	if apiErr != nil {
		return nil, apiErr
	}
	day, apiErr := intParam(ctx, "day", 1, 31)
	if apiErr != nil {
		return nil, apiErr
	}

	view, ok := res.Day(month, day)
	if !ok {
		return nil, api.NotFound(fmt.Sprintf("no data for %02d/%02d/%d", day, month, res.Year))
	}
	return view, nil
}

// GET /api/v1/month/:year/:month
func (cc *CalendarController) getMonth(ctx *gin.Context) (any, *api.APIError) {
	res, apiErr := cc.result(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	month, apiErr := intParam(ctx, "month", 1, 12)
	if apiErr != nil {
		return nil, apiErr
	}

	view, ok := res.Month(month)
	if !ok {
		return nil, api.NotFound(fmt.Sprintf("no data for month %d of %d", month, res.Year))
	}
	return view, nil
}

// GET /api/v1/week/:year
func (cc *CalendarController) getWeeks(ctx *gin.Context) (any, *api.APIError) {
	res, apiErr := cc.result(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	setDigestHeader(ctx, res.Digest)
	return res.WeekDocument(), nil
}

// GET /api/v1/week/:year/:week
func (cc *CalendarController) getWeek(ctx *gin.Context) (any, *api.APIError) {
	res, apiErr := cc.result(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	week, apiErr := intParam(ctx, "week", 1, len(res.Weeks))
	if apiErr != nil {
		return nil, apiErr
	}

	view, ok := res.Week(week)
	if !ok {
		return nil, api.NotFound(fmt.Sprintf("no week %d in %d", week, res.Year))
	}
	return view, nil
}

// GET /api/v1/year/:year
func (cc *CalendarController) getYear(ctx *gin.Context) (any, *api.APIError) {
	res, apiErr := cc.result(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	setDigestHeader(ctx, res.Digest)
	return res.YearDocument(), nil
}

// GET /api/v1/year/:year/sha1
func (cc *CalendarController) getDigest(ctx *gin.Context) (any, *api.APIError) {
	res, apiErr := cc.result(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	setDigestHeader(ctx, res.Digest)
	return model.DigestDocument{SHA1: res.Digest}, nil
}

func (cc *CalendarController) result(ctx *gin.Context) (*calendar.Result, *api.APIError) {
	year, apiErr := intParam(ctx, "year", calendar.MinYear, calendar.MaxYear)
	if apiErr != nil {
		return nil, apiErr
	}
	res, ok := cc.catalog.Get(year)
	if !ok {
		return nil, api.NotFound(fmt.Sprintf("year %d not generated", year))
	}
	return res, nil
}

func intParam(ctx *gin.Context, name string, lo, hi int) (int, *api.APIError) {
	raw := ctx.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, api.BadRequest(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return v, nil
}

// screens compare the digest header before fetching the full documents
func setDigestHeader(ctx *gin.Context, digest string) {
	ctx.Header("ETag", strconv.Quote(digest))
	ctx.Header("X-Content-ETag", digest)
}
