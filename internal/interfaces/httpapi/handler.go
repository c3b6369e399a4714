package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/logging"
	"github.com/KPfeil25/world-cup-26-predictions/internal/stats"
	"github.com/KPfeil25/world-cup-26-predictions/internal/usecase"
)

type Handler struct {
	analyticsService  *usecase.AnalyticsService
	predictionService *usecase.PredictionService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	analyticsService *usecase.AnalyticsService,
	predictionService *usecase.PredictionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		analyticsService:  analyticsService,
		predictionService: predictionService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func playerFilterFromQuery(r *http.Request) usecase.PlayerFilter {
	return usecase.PlayerFilter{
		Gender:    r.URL.Query().Get("gender"),
		Continent: r.URL.Query().Get("continent"),
		Position:  r.URL.Query().Get("position"),
	}
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	rows, err := h.analyticsService.PlayerStats(ctx, playerFilterFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, playerStatsToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	kind := r.PathValue("kind")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.analyticsService.Leaderboard(ctx, kind, playerFilterFromQuery(r), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			PlayerID: entry.PlayerID,
			FullName: entry.FullName,
			TeamName: entry.TeamName,
			Value:    entry.Value,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamRecords")
	defer span.End()

	gender := r.URL.Query().Get("gender")
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	records, err := h.analyticsService.TeamRecords(ctx, gender, year)
	if err != nil {
		h.logger.ErrorContext(ctx, "team records failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, teamRecordDTO{
			TeamName:    record.TeamName,
			Wins:        record.Wins,
			Draws:       record.Draws,
			Losses:      record.Losses,
			TotalGoals:  record.TotalGoals,
			GoalsByYear: record.GoalsByYear,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

type playerStatsDTO struct {
	PlayerID             string  `json:"playerId"`
	FullName             string  `json:"fullName"`
	Female               bool    `json:"female"`
	Goalkeeper           bool    `json:"goalkeeper"`
	Defender             bool    `json:"defender"`
	Midfielder           bool    `json:"midfielder"`
	Forward              bool    `json:"forward"`
	BirthYear            int     `json:"birthYear,omitempty"`
	TotalAppearances     int     `json:"totalAppearances"`
	TotalGoals           int     `json:"totalGoals"`
	KnockoutGoals        int     `json:"knockoutGoals"`
	GoalsPerAppearance   float64 `json:"goalsPerAppearance"`
	TotalCards           int     `json:"totalCards"`
	CardsPerAppearance   float64 `json:"cardsPerAppearance"`
	PenaltyAttempts      int     `json:"penaltyAttempts"`
	PenaltyConverted     int     `json:"penaltyConverted"`
	PenaltyConversion    float64 `json:"penaltyConversion"`
	TotalAwards          int     `json:"totalAwards"`
	TimesSubbedOn        int     `json:"timesSubbedOn"`
	TimesSubbedOff       int     `json:"timesSubbedOff"`
	SubbedOnGoals        int     `json:"subbedOnGoals"`
	ClutchGoals          int     `json:"clutchGoals"`
	PrimaryTeamName      string  `json:"primaryTeamName"`
	PrimaryTeamCode      string  `json:"primaryTeamCode"`
	PrimaryConfederation string  `json:"primaryConfederation"`
	Continent            string  `json:"continent"`
}

func playerStatsToDTO(p stats.PlayerStats) playerStatsDTO {
	return playerStatsDTO{
		PlayerID:             p.PlayerID,
		FullName:             p.FullName,
		Female:               p.Female,
		Goalkeeper:           p.Goalkeeper,
		Defender:             p.Defender,
		Midfielder:           p.Midfielder,
		Forward:              p.Forward,
		BirthYear:            p.BirthYear,
		TotalAppearances:     p.TotalAppearances,
		TotalGoals:           p.TotalGoals,
		KnockoutGoals:        p.KnockoutGoals,
		GoalsPerAppearance:   p.GoalsPerAppearance,
		TotalCards:           p.TotalCards,
		CardsPerAppearance:   p.CardsPerAppearance,
		PenaltyAttempts:      p.PenaltyAttempts,
		PenaltyConverted:     p.PenaltyConverted,
		PenaltyConversion:    p.PenaltyConversion,
		TotalAwards:          p.TotalAwards,
		TimesSubbedOn:        p.TimesSubbedOn,
		TimesSubbedOff:       p.TimesSubbedOff,
		SubbedOnGoals:        p.SubbedOnGoals,
		ClutchGoals:          p.ClutchGoals,
		PrimaryTeamName:      p.PrimaryTeamName,
		PrimaryTeamCode:      p.PrimaryTeamCode,
		PrimaryConfederation: p.PrimaryConfederation,
		Continent:            p.Continent,
	}
}

type leaderboardEntryDTO struct {
	PlayerID string  `json:"playerId"`
	FullName string  `json:"fullName"`
	TeamName string  `json:"teamName"`
	Value    float64 `json:"value"`
}

type teamRecordDTO struct {
	TeamName    string      `json:"teamName"`
	Wins        int         `json:"wins"`
	Draws       int         `json:"draws"`
	Losses      int         `json:"losses"`
	TotalGoals  int         `json:"totalGoals"`
	GoalsByYear map[int]int `json:"goalsByYear"`
}
