package httpapi

import (
	"net/http"

	"github.com/riskibarqy/prediction-league/internal/usecase"
)

type submitPredictionRequest struct {
	FixtureID string `json:"fixture_id" validate:"required,max=64"`
	Choice    string `json:"choice" validate:"required,max=8"`
}

func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPredictionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	mode := pathMode(r)
	item, err := h.predictionService.Submit(ctx, usecase.SubmitPredictionInput{
		UserID:    principal.UserID,
		Mode:      mode,
		FixtureID: req.FixtureID,
		Choice:    req.Choice,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit prediction failed",
			"user_id", principal.UserID,
			"mode", mode,
			"fixture_id", req.FixtureID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(item))
}

func (h *Handler) ListMyPredictionsByWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictionsByWeek")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	mode := pathMode(r)
	items, err := h.predictionService.ListByWeek(ctx, principal.UserID, mode, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "user_id", principal.UserID, "mode", mode, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ResetPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetPredictions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	mode := pathMode(r)
	removed, err := h.predictionService.Reset(ctx, principal.UserID, mode)
	if err != nil {
		h.logger.ErrorContext(ctx, "reset predictions failed", "user_id", principal.UserID, "mode", mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "predictions reset", "user_id", principal.UserID, "mode", mode, "removed", removed)
	writeSuccess(ctx, w, http.StatusOK, resetDTO{Mode: mode, Removed: removed})
}
