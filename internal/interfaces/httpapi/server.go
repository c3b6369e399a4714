package httpapi

import (
	"net/http"

	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	internalOpsToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerAnalyticsRoutes(mux, handler)
	registerPredictionRoutes(mux, handler)
	registerInternalOpsRoutes(mux, handler, internalOpsToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAnalyticsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /api/v1/players/leaderboards/{kind}", handler.GetLeaderboard)
	mux.HandleFunc("GET /api/v1/teams/records", handler.ListTeamRecords)
}

func registerPredictionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/v1/teams/{team}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /api/v1/teams/{team}/years", handler.GetTeamYears)
	mux.HandleFunc("GET /api/v1/stadiums", handler.ListStadiums)
	mux.HandleFunc("POST /api/v1/predictions/match", handler.PredictMatch)
}

func registerInternalOpsRoutes(mux *http.ServeMux, handler *Handler, internalOpsToken string) {
	mux.Handle("POST /internal/v1/data/reload", RequireInternalOpsToken(internalOpsToken, http.HandlerFunc(handler.ReloadData)))
	mux.Handle("POST /internal/v1/model/reload", RequireInternalOpsToken(internalOpsToken, http.HandlerFunc(handler.ReloadModel)))
}
