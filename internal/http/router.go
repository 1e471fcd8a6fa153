package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/catatusaha/internal/http/api"
	"github.com/MrJamesThe3rd/catatusaha/internal/http/dashboard"
	"github.com/MrJamesThe3rd/catatusaha/internal/http/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/http/report"
	"github.com/MrJamesThe3rd/catatusaha/internal/http/stock"
	"github.com/MrJamesThe3rd/catatusaha/internal/http/transaction"
)

func New(
	allowedOrigins []string,
	dashboardH *dashboard.Handler,
	transactionsH *transaction.Handler,
	productionsH *production.Handler,
	stockH *stock.Handler,
	reportsH *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/dashboard", dashboardH.Routes)

		// Import takes multipart, so the content type is left to the handler.
		r.Route("/transactions", transactionsH.Routes)

		r.Route("/productions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			productionsH.Routes(r)
		})

		r.Route("/stock", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			stockH.Routes(r)
		})

		r.Route("/reports", reportsH.Routes)
	})

	return router
}
