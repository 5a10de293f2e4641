package handler

import (
	"net/http"

	"github.com/readmate/readmate/internal/ui"
	"github.com/readmate/readmate/internal/ui/pages"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(pages.NewBase(r.Context(), "Not found")))
}
