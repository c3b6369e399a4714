package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/KPfeil25/world-cup-26-predictions/internal/usecase"
)

func (h *Handler) PredictMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictMatch")
	defer span.End()

	var req predictMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	prediction, err := h.predictionService.PredictMatch(ctx, usecase.MatchRequest{
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		StadiumID:   req.StadiumID,
		Temperature: req.Temperature,
		Gender:      req.Gender,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "predict match failed", "home_team", req.HomeTeam, "away_team", req.AwayTeam, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchPredictionDTO{
		Outcome:        string(prediction.Outcome),
		Confidence:     prediction.Confidence,
		CityName:       prediction.CityName,
		HomeTeamRank:   prediction.HomeTeamRank,
		AwayTeamRank:   prediction.AwayTeamRank,
		HomeTeamAwards: prediction.HomeTeamAwards,
		AwayTeamAwards: prediction.AwayTeamAwards,
	})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.predictionService.Teams(ctx, r.URL.Query().Get("gender"))
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	team := strings.TrimSpace(r.PathValue("team"))
	gender := r.URL.Query().Get("gender")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = 2026
	}

	roster, err := h.predictionService.Roster(ctx, team, gender, year)
	if err != nil {
		h.logger.WarnContext(ctx, "team roster failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roster)
}

func (h *Handler) GetTeamYears(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamYears")
	defer span.End()

	team := strings.TrimSpace(r.PathValue("team"))
	years, err := h.predictionService.Years(ctx, team, r.URL.Query().Get("gender"))
	if err != nil {
		h.logger.WarnContext(ctx, "team years failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, years)
}

func (h *Handler) ListStadiums(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStadiums")
	defer span.End()

	stadiums, err := h.predictionService.Stadiums(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list stadiums failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]stadiumDTO, 0, len(stadiums))
	for _, stadium := range stadiums {
		items = append(items, stadiumDTO{ID: stadium.ID, Name: stadium.Name})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ReloadData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadData")
	defer span.End()

	h.analyticsService.InvalidateData(ctx)
	h.logger.InfoContext(ctx, "dataset cache invalidated")
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func (h *Handler) ReloadModel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadModel")
	defer span.End()

	if err := h.predictionService.Reload(ctx); err != nil {
		h.logger.ErrorContext(ctx, "model reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "model artifact reloaded")
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type predictMatchRequest struct {
	HomeTeam    string  `json:"homeTeam" validate:"required"`
	AwayTeam    string  `json:"awayTeam" validate:"required"`
	StadiumID   string  `json:"stadiumId" validate:"required"`
	Temperature float64 `json:"temperature"`
	Gender      string  `json:"gender" validate:"required,oneof=Men Women"`
}

type matchPredictionDTO struct {
	Outcome        string  `json:"outcome"`
	Confidence     float64 `json:"confidence"`
	CityName       string  `json:"cityName"`
	HomeTeamRank   float64 `json:"homeTeamRank"`
	AwayTeamRank   float64 `json:"awayTeamRank"`
	HomeTeamAwards int     `json:"homeTeamAwards"`
	AwayTeamAwards int     `json:"awayTeamAwards"`
}

type stadiumDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
