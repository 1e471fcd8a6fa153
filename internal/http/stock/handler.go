package stock

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/http/api"
	"github.com/MrJamesThe3rd/catatusaha/internal/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

type Handler struct {
	svc  *stock.Service
	gate *api.Gate
	loc  *time.Location
}

func NewHandler(svc *stock.Service, gate *api.Gate, loc *time.Location) *Handler {
	return &Handler{svc: svc, gate: gate, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.gate.Wrap(h.list))
	r.Get("/low", h.gate.Wrap(h.low))
	r.Post("/movement", h.gate.Wrap(h.recordMovement))
	r.Get("/{id}/movements", h.gate.Wrap(h.movements))
}

type movementRequest struct {
	ItemName     string          `json:"itemName"`
	Type         stock.Kind      `json:"type"`
	Unit         string          `json:"unit"`
	MovementType stock.Direction `json:"movementType"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
	Date         string          `json:"date"`
	Notes        *string         `json:"notes,omitempty"`
}

func (h *Handler) recordMovement(w http.ResponseWriter, r *http.Request, userKey string) {
	var req movementRequest
	if !api.Decode(w, r, &req) {
		return
	}

	date, err := api.Date("date", req.Date, h.loc)
	if err != nil {
		api.Error(w, err)
		return
	}

	mv, item, err := h.svc.RecordMovement(r.Context(), userKey, stock.MovementParams{
		ItemName:     req.ItemName,
		Type:         req.Type,
		Unit:         req.Unit,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		Date:         date,
		Notes:        req.Notes,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, recordedResponse{
		movementResponse: toMovementResponse(mv),
		Item:             toItemResponse(item),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, userKey string) {
	items, err := h.svc.Items(r.Context(), userKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toItemList(items))
}

func (h *Handler) low(w http.ResponseWriter, r *http.Request, userKey string) {
	threshold, err := api.QueryDecimal(r, "threshold")
	if err != nil {
		api.Error(w, err)
		return
	}

	items, err := h.svc.LowStock(r.Context(), userKey, threshold)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toItemList(items))
}

func (h *Handler) movements(w http.ResponseWriter, r *http.Request, userKey string) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, validate.Field("id", "must be a valid UUID"))
		return
	}

	mvs, err := h.svc.Movements(r.Context(), userKey, id)
	if err != nil {
		api.Error(w, err)
		return
	}

	responses := make([]movementResponse, 0, len(mvs))
	for _, m := range mvs {
		responses = append(responses, toMovementResponse(m))
	}

	api.JSON(w, http.StatusOK, responses)
}
