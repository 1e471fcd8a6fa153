package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/catatusaha/internal/http/api"
	"github.com/MrJamesThe3rd/catatusaha/internal/report"
)

type Handler struct {
	svc  *report.Service
	gate *api.Gate
}

func NewHandler(svc *report.Service, gate *api.Gate) *Handler {
	return &Handler{svc: svc, gate: gate}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/financial", h.gate.Wrap(h.financial))
	r.Get("/top-products", h.gate.Wrap(h.topProducts))
	r.Get("/hpp", h.gate.Wrap(h.hpp))
	r.Get("/bep", h.gate.Wrap(h.bep))
}

func (h *Handler) financial(w http.ResponseWriter, r *http.Request, userKey string) {
	f, err := h.svc.Financial(r.Context(), userKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toFinancialResponse(f))
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request, userKey string) {
	limit, err := api.QueryInt(r, "limit")
	if err != nil {
		api.Error(w, err)
		return
	}

	rows, err := h.svc.TopProducts(r.Context(), userKey, limit)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toProductSalesList(rows))
}

func (h *Handler) hpp(w http.ResponseWriter, r *http.Request, userKey string) {
	rows, err := h.svc.HPP(r.Context(), userKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toHPPList(rows))
}

func (h *Handler) bep(w http.ResponseWriter, r *http.Request, userKey string) {
	rows, err := h.svc.BEP(r.Context(), userKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toBEPList(rows))
}
