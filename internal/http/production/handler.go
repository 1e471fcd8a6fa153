package production

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/http/api"
	"github.com/MrJamesThe3rd/catatusaha/internal/production"
)

type Handler struct {
	svc  *production.Service
	gate *api.Gate
	loc  *time.Location
}

func NewHandler(svc *production.Service, gate *api.Gate, loc *time.Location) *Handler {
	return &Handler{svc: svc, gate: gate, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.gate.Wrap(h.list))
	r.Post("/", h.gate.Wrap(h.create))
}

type materialRequest struct {
	MaterialName string          `json:"materialName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

type createBatchRequest struct {
	Date        string            `json:"date"`
	ProductName string            `json:"productName"`
	Quantity    int               `json:"quantity"`
	Materials   []materialRequest `json:"materials"`
	Notes       *string           `json:"notes,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, userKey string) {
	var req createBatchRequest
	if !api.Decode(w, r, &req) {
		return
	}

	date, err := api.Date("date", req.Date, h.loc)
	if err != nil {
		api.Error(w, err)
		return
	}

	materials := make([]production.MaterialParams, 0, len(req.Materials))
	for _, m := range req.Materials {
		materials = append(materials, production.MaterialParams{
			MaterialName: m.MaterialName,
			Quantity:     m.Quantity,
			Unit:         m.Unit,
		})
	}

	batch, err := h.svc.Create(r.Context(), userKey, production.CreateParams{
		Date:        date,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Materials:   materials,
		Notes:       req.Notes,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(batch))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, userKey string) {
	batches, err := h.svc.List(r.Context(), userKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	responses := make([]batchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, toResponse(b))
	}

	api.JSON(w, http.StatusOK, responses)
}
