package httpapi

import (
	"net/http"
)

func (h *Handler) ListFixturesByWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesByWeek")
	defer span.End()

	mode := pathMode(r)
	week, err := pathWeek(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.fixtureService.ListByWeek(ctx, mode, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "mode", mode, "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
