package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{season}", handler.GetSeasonReport)
	mux.HandleFunc("POST /v1/seasons/{season}/reload", handler.ReloadSeason)
	mux.HandleFunc("GET /v1/seasons/{season}/columns", handler.ListColumns)
	mux.HandleFunc("GET /v1/seasons/{season}/options", handler.GetOptions)
	mux.HandleFunc("GET /v1/seasons/{season}/scatter", handler.GetScatter)
	mux.HandleFunc("GET /v1/seasons/{season}/players/{playerID}/series", handler.GetPlayerSeries)
	mux.HandleFunc("GET /v1/seasons/{season}/understat/summary", handler.ListUnderstatSummary)
}

func registerModelRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/models", handler.ListModels)
	mux.HandleFunc("GET /v1/seasons/{season}/models/{model}/explore", handler.ExploreModel)
	mux.HandleFunc("GET /v1/hyperparameters", handler.GetHyperparameters)
	mux.HandleFunc("PUT /v1/hyperparameters", handler.UpdateHyperparameters)
	// Restores hyperparams.Default().
	mux.HandleFunc("POST /v1/hyperparameters/reset", handler.ResetHyperparameters)
}
