package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/http/api"
	"github.com/MrJamesThe3rd/catatusaha/internal/report"
)

type Handler struct {
	svc  *report.Service
	gate *api.Gate
	now  func() time.Time
}

func NewHandler(svc *report.Service, gate *api.Gate) *Handler {
	return &Handler{svc: svc, gate: gate, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.gate.Wrap(h.summary))
}

type summaryResponse struct {
	TodayIncome   decimal.Decimal `json:"todayIncome"`
	TodayExpenses decimal.Decimal `json:"todayExpenses"`
	ProductsSold  int             `json:"productsSold"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request, userKey string) {
	d, err := h.svc.Dashboard(r.Context(), userKey, h.now())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, summaryResponse{
		TodayIncome:   d.TodayIncome,
		TodayExpenses: d.TodayExpenses,
		ProductsSold:  d.ProductsSold,
	})
}
