// Package http provides http transport for search
package http

import (
	stdhttp "net/http"

	"scribe/internal/modkit/httpkit"
	"scribe/internal/services/api/search/domain"
	svc "scribe/internal/services/api/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.SearchInput](r, "/", h.search)
	httpkit.PostJSON[domain.SearchInput](r, "/", h.search)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /search Search searchGet
// @Summary Search transcripts
// @Tags Search
// @Produce json
// @Param q query string true "Query"
// @Param strict query bool false "Require every term somewhere in the video"
// @Success 200 {object} domain.SearchResult "ok"
// @Failure 503 "store unavailable"
// @Router /search [get]
//
// swagger:route POST /search Search searchPost
// @Summary Search transcripts with a JSON body
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 {object} domain.SearchResult "ok"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}
