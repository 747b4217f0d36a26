package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/loader"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/publish"
)

type Regenerator interface {
	Regenerate(ctx context.Context, year int) (*publish.Report, error)
}

type RunLister interface {
	LatestRun(year int) (*model.GenerationRun, error)
	ListRuns(year int, limit int) ([]model.GenerationRun, error)
}

type GenerationController struct {
	regen Regenerator
	runs  RunLister
}

// GenerationModule mounts the authenticated regeneration endpoints. runs may
// be nil when no database is configured.
func GenerationModule(regen Regenerator, runs RunLister) api.Module {
	ctl := &GenerationController{regen: regen, runs: runs}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/regenerate", ctl.regenerate)
		c.GET("/runs", ctl.listRuns)
		c.GET("/runs/:year/latest", ctl.latestRun)
	})
}

// POST /api/admin/regenerate
func (g *GenerationController) regenerate(ctx *gin.Context, operator string) (any, *api.APIError) {
	var request packets.RegenerateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, api.BadRequest(err.Error())
		}
	}
	if request.Year != 0 && (request.Year < calendar.MinYear || request.Year > calendar.MaxYear) {
		return nil, api.BadRequest(fmt.Sprintf("year %d out of range", request.Year))
	}

	log.Info().Str("operator", operator).Int("year", request.Year).Msg("regeneration requested")
	report, err := g.regen.Regenerate(ctx.Request.Context(), request.Year)
	if err != nil {
		var rowErr *loader.RowError
		if errors.Is(err, calendar.ErrInvalidDate) || errors.Is(err, calendar.ErrDuplicateMonth) || errors.As(err, &rowErr) {
			return nil, &api.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()}
		}
		log.Error().Err(err).Msg("regeneration failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "regeneration failed"}
	}
	return report, nil
}

// GET /api/admin/runs?year=2024&limit=20
func (g *GenerationController) listRuns(ctx *gin.Context, operator string) (any, *api.APIError) {
	if g.runs == nil {
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "run history is not configured"}
	}
	year, err := queryInt(ctx, "year")
	if err != nil {
		return nil, api.BadRequest("invalid year")
	}
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return nil, api.BadRequest("invalid limit")
	}

	runs, err := g.runs.ListRuns(year, limit)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list runs"}
	}
	return packets.RunsResponse{Runs: runs}, nil
}

// GET /api/admin/runs/:year/latest
func (g *GenerationController) latestRun(ctx *gin.Context, operator string) (any, *api.APIError) {
	if g.runs == nil {
		return nil, &api.APIError{Code: http.StatusServiceUnavailable, Message: "run history is not configured"}
	}
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return nil, api.BadRequest("invalid year")
	}

	run, err := g.runs.LatestRun(year)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load run"}
	}
	if run == nil {
		return nil, api.NotFound(fmt.Sprintf("no runs for %d", year))
	}
	return run, nil
}

func queryInt(ctx *gin.Context, name string) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
