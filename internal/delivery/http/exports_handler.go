package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hytech-racing/car-search-webserver/internal/models"
)

// ExportLister lists the exports kept in the archive.
type ExportLister interface {
	ListExports(ctx context.Context) ([]models.ArchivedExport, error)
}

type exportsHandler struct {
	archive ExportLister
}

// NewExportsHandler registers the archive routes. archive may be nil when archiving is disabled.
func NewExportsHandler(r chi.Router, archive ExportLister) {
	handler := &exportsHandler{
		archive: archive,
	}

	r.Route("/exports", func(r chi.Router) {
		r.Get("/", HandlerFunc(handler.GetExports).ServeHTTP)
	})
}

func (h *exportsHandler) GetExports(w http.ResponseWriter, r *http.Request) *HandlerError {
	if h.archive == nil {
		return NewHandlerError("export archive is not configured", http.StatusNotFound)
	}

	exports, err := h.archive.ListExports(r.Context())
	if err != nil {
		return NewHandlerError(err.Error(), http.StatusBadGateway)
	}

	data := make(map[string]interface{})
	data["data"] = exports
	data["message"] = fmt.Sprintf("found %d archived exports", len(exports))
	render.JSON(w, r, data)
	return nil
}
