package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
	"github.com/riskibarqy/fpl-superset/internal/usecase"
)

type Handler struct {
	supersetService       *usecase.SupersetService
	queryService          *usecase.QueryService
	modelService          *usecase.ModelService
	hyperparameterService *usecase.HyperparameterService
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	supersetService *usecase.SupersetService,
	queryService *usecase.QueryService,
	modelService *usecase.ModelService,
	hyperparameterService *usecase.HyperparameterService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		supersetService:       supersetService,
		queryService:          queryService,
		modelService:          modelService,
		hyperparameterService: hyperparameterService,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type seasonDTO struct {
	Season string `json:"season"`
	Latest bool   `json:"latest"`
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	latest := h.supersetService.LatestSeason()
	seasons := h.supersetService.Seasons()
	items := make([]seasonDTO, 0, len(seasons))
	for _, season := range seasons {
		items = append(items, seasonDTO{Season: season, Latest: season == latest})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
