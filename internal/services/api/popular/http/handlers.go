// Package http provides http transport for popular queries
package http

import (
	stdhttp "net/http"

	"scribe/internal/modkit/httpkit"
	"scribe/internal/services/api/popular/domain"
	svc "scribe/internal/services/api/popular/service"
)

// Register mounts popular endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.PopularInput](r, "/", h.popular)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /popular Popular popularList
// @Summary Most frequent searches in the recent window
// @Tags Popular
// @Produce json
// @Param limit query int false "Max rows (1-50)"
// @Success 200 {object} domain.PopularResult "ok"
// @Router /popular [get]
func (h *handlers) popular(r *stdhttp.Request, in domain.PopularInput) (any, error) {
	return h.svc.Popular(r.Context(), in)
}
