// Package http exposes the dashboard's JSON API over gorilla/mux.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"scaffoldrent-backend/internal/security"
	"scaffoldrent-backend/internal/service"
)

// Services bundles everything the router serves.
type Services struct {
	Auth      service.AuthService
	Inventory service.InventoryService
	Customers service.CustomerService
	Rentals   service.RentalService
	Purchases service.PurchaseService
	Dashboard service.DashboardService
	Insights  service.InsightService
}

// NewRouter assembles the full route table. Everything under /api/v1 except
// login and token refresh sits behind bearer auth.
func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	root := mux.NewRouter()
	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authHandler := NewAuthHandler(svcs.Auth)
	root.HandleFunc("/api/v1/login", authHandler.Login).Methods(http.MethodPost)
	root.HandleFunc("/api/v1/token/refresh", authHandler.Refresh).Methods(http.MethodPost)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	inventoryHandler := NewInventoryHandler(svcs.Inventory)
	api.HandleFunc("/inventory", inventoryHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/inventory", inventoryHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/inventory/{id}", inventoryHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/inventory/{id}", inventoryHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/inventory/{id}", inventoryHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/inventory/{id}/repair", inventoryHandler.Repair).Methods(http.MethodPost)
	api.HandleFunc("/inventory/{id}/discard", inventoryHandler.Discard).Methods(http.MethodPost)

	customerHandler := NewCustomerHandler(svcs.Customers)
	api.HandleFunc("/customers", customerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/customers", customerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", customerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", customerHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", customerHandler.Delete).Methods(http.MethodDelete)

	rentalHandler := NewRentalHandler(svcs.Rentals)
	api.HandleFunc("/rentals", rentalHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rentals", rentalHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}", rentalHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id}", rentalHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/rentals/{id}/extend", rentalHandler.Extend).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/return", rentalHandler.Return).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/cancel", rentalHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id}/payment", rentalHandler.UpdatePayment).Methods(http.MethodPut)

	purchaseHandler := NewPurchaseHandler(svcs.Purchases)
	api.HandleFunc("/purchases", purchaseHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/purchases", purchaseHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/purchases/{id}", purchaseHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/purchases/{id}/payment", purchaseHandler.UpdatePayment).Methods(http.MethodPut)

	dashboardHandler := NewDashboardHandler(svcs.Dashboard, svcs.Insights)
	api.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/alerts", dashboardHandler.Alerts).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/insights", dashboardHandler.Insights).Methods(http.MethodGet)

	return root
}
