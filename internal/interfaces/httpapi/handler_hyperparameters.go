package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/fpl-superset/internal/usecase"
)

func (h *Handler) GetHyperparameters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHyperparameters")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.hyperparameterService.Get(ctx))
}

// UpdateHyperparameters decodes onto the current bag, so omitted fields keep
// their values.
func (h *Handler) UpdateHyperparameters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateHyperparameters")
	defer span.End()

	req := h.hyperparameterService.Get(ctx)
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	bag, err := h.hyperparameterService.Update(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "update hyperparameters failed", "alpha_mark", req.AlphaMark, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bag)
}

func (h *Handler) ResetHyperparameters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetHyperparameters")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.hyperparameterService.Reset(ctx))
}
