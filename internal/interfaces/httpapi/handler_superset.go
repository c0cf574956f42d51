package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
	"github.com/riskibarqy/fpl-superset/internal/usecase"
)

func (h *Handler) ListColumns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListColumns")
	defer span.End()

	season := r.PathValue("season")
	columns, err := h.queryService.Columns(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list columns failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, columns)
}

func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOptions")
	defer span.End()

	season := r.PathValue("season")
	options, err := h.queryService.Options(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get options failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, options)
}

type seasonReportDTO struct {
	Season   string          `json:"season"`
	Rows     int             `json:"rows"`
	LoadedAt string          `json:"loaded_at"`
	Report   superset.Report `json:"report"`
}

func (h *Handler) GetSeasonReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonReport")
	defer span.End()

	season := r.PathValue("season")
	load, err := h.supersetService.Season(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get season report failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonReportDTO{
		Season:   load.Table.Season,
		Rows:     load.Table.Len(),
		LoadedAt: load.LoadedAt.Format(time.RFC3339),
		Report:   load.Report,
	})
}

func (h *Handler) GetScatter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScatter")
	defer span.End()

	round, err := queryInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := usecase.ScatterQuery{
		Season:   r.PathValue("season"),
		Fields:   queryList(r, "fields"),
		Round:    round,
		Teams:    queryList(r, "team"),
		Position: r.URL.Query().Get("position"),
	}
	result, err := h.queryService.Scatter(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "scatter query failed", "season", query.Season, "fields", query.Fields, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GetPlayerSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSeries")
	defer span.End()

	season := r.PathValue("season")
	playerID, err := pathInt(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	series, err := h.queryService.PlayerSeries(ctx, season, playerID, queryList(r, "fields"))
	if err != nil {
		h.logger.WarnContext(ctx, "player series failed", "season", season, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, series)
}

func (h *Handler) ListUnderstatSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUnderstatSummary")
	defer span.End()

	season := r.PathValue("season")
	rows, err := h.supersetService.Summary(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "understat summary failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) ExploreModel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExploreModel")
	defer span.End()

	season := r.PathValue("season")
	model := r.PathValue("model")
	run, err := h.modelService.Explore(ctx, season, model)
	if err != nil {
		h.logger.WarnContext(ctx, "explore model failed", "season", season, "model", model, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, run)
}

func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListModels")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.modelService.Models())
}

func (h *Handler) ReloadSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadSeason")
	defer span.End()

	season := r.PathValue("season")
	load, err := h.supersetService.Reload(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "reload season failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonReportDTO{
		Season:   load.Table.Season,
		Rows:     load.Table.Len(),
		LoadedAt: load.LoadedAt.Format(time.RFC3339),
		Report:   load.Report,
	})
}
