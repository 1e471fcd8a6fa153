package transaction

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/catatusaha/internal/export"
	"github.com/MrJamesThe3rd/catatusaha/internal/http/api"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction"
	"github.com/MrJamesThe3rd/catatusaha/internal/transaction/csvimport"
)

// maxImportBytes caps CSV uploads.
const maxImportBytes = 10 << 20

type Handler struct {
	svc      *transaction.Service
	parser   *csvimport.Parser
	exporter *export.Service
	gate     *api.Gate
	loc      *time.Location
}

func NewHandler(
	svc *transaction.Service,
	parser *csvimport.Parser,
	exporter *export.Service,
	gate *api.Gate,
	loc *time.Location,
) *Handler {
	return &Handler{svc: svc, parser: parser, exporter: exporter, gate: gate, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.gate.Wrap(h.list))
	r.Get("/recent", h.gate.Wrap(h.recent))
	r.Get("/export", h.gate.Wrap(h.exportCSV))
	r.Post("/", h.gate.Wrap(h.create))
	r.Post("/import", h.gate.Wrap(h.importCSV))
}

type createTransactionRequest struct {
	Date          string           `json:"date"`
	Type          transaction.Type `json:"type"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	PaymentMethod string           `json:"paymentMethod"`
	Notes         *string          `json:"notes,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, userKey string) {
	var req createTransactionRequest
	if !api.Decode(w, r, &req) {
		return
	}

	date, err := api.Date("date", req.Date, h.loc)
	if err != nil {
		api.Error(w, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), userKey, transaction.CreateParams{
		Date:          date,
		Type:          req.Type,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, userKey string) {
	filter, err := h.filter(r, userKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request, userKey string) {
	limit, err := api.QueryInt(r, "limit")
	if err != nil {
		api.Error(w, err)
		return
	}

	txs, err := h.svc.Recent(r.Context(), userKey, limit)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request, userKey string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		api.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		api.Error(w, err)
		return
	}

	if len(params) == 0 {
		api.BadRequest(w, "file contains no transactions")
		return
	}

	txs, err := h.svc.CreateBatch(r.Context(), userKey, params)
	if err != nil {
		api.Error(w, err)
		return
	}

	slog.Info("imported transactions", "count", len(txs))

	api.JSON(w, http.StatusCreated, importResponse{
		Imported:     len(txs),
		Transactions: toResponseList(txs),
	})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request, userKey string) {
	filter, err := h.filter(r, userKey)
	if err != nil {
		api.Error(w, err)
		return
	}

	// Buffer so a failure halfway still produces a proper error response.
	var buf bytes.Buffer
	if _, err := h.exporter.WriteCSV(r.Context(), &buf, filter); err != nil {
		api.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"transaksi_%s.csv\"", time.Now().In(h.loc).Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) filter(r *http.Request, userKey string) (transaction.ListFilter, error) {
	start, end, err := api.QueryRange(r, h.loc)
	if err != nil {
		return transaction.ListFilter{}, err
	}

	return transaction.ListFilter{UserKey: userKey, StartDate: start, EndDate: end}, nil
}
