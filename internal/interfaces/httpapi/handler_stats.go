package httpapi

import (
	"net/http"
)

func (h *Handler) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyStats")
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
	stats, err := h.statsService.GetWeeklyStats(ctx, principal.UserID, mode, week)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly stats failed", "user_id", principal.UserID, "mode", mode, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyStatsToDTO(stats))
}

func (h *Handler) CanRevealWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CanRevealWeek")
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
	gate, err := h.statsService.CanRevealWeek(ctx, principal.UserID, mode, week)
	if err != nil {
		h.logger.WarnContext(ctx, "evaluate reveal gate failed", "user_id", principal.UserID, "mode", mode, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gateDTO{
		Week:                 gate.TargetWeek,
		Allowed:              gate.Allowed,
		BlockingWeek:         gate.BlockingWeek,
		RequiredPredictions:  gate.RequiredPredictions,
		CompletedPredictions: gate.CompletedPredictions,
	})
}

func (h *Handler) ListWeekProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekProgress")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	mode := pathMode(r)
	items, err := h.statsService.ListWeekProgress(ctx, principal.UserID, mode)
	if err != nil {
		h.logger.WarnContext(ctx, "list week progress failed", "user_id", principal.UserID, "mode", mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]weekProgressDTO, 0, len(items))
	for _, item := range items {
		out = append(out, weekProgressDTO{
			Week:                 item.Week,
			FixtureCount:         item.FixtureCount,
			PredictableCount:     item.PredictableCount,
			TotalPredictions:     item.TotalPredictions,
			SkippedCount:         item.SkippedCount,
			RequiredPredictions:  item.RequiredPredictions,
			QuotaMet:             item.QuotaMet,
			Revealable:           item.Revealable,
			BlockingWeek:         item.BlockingWeek,
			CompletedPredictions: item.CompletedPredictions,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetOverallSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverallSummary")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	mode := pathMode(r)
	summary, err := h.statsService.GetOverallSummary(ctx, principal.UserID, mode)
	if err != nil {
		h.logger.WarnContext(ctx, "get overall summary failed", "user_id", principal.UserID, "mode", mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(summary))
}
