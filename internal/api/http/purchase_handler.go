package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/service"
)

type PurchaseHandler struct {
	purchases service.PurchaseService
}

func NewPurchaseHandler(purchases service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchases.ListPurchases(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, purchases)
}

// createPurchaseRequest optionally carries a new catalog entry. When NewItem
// is present the purchase introduces an item the fleet has never carried;
// otherwise ItemID must reference an existing one.
type createPurchaseRequest struct {
	Purchase domain.Purchase       `json:"purchase"`
	NewItem  *domain.InventoryItem `json:"new_item,omitempty"`
}

func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.purchases.CreatePurchase(r.Context(), &req.Purchase, req.NewItem)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.purchases.DeletePurchase(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PurchaseHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	purchase, err := h.purchases.UpdatePaymentStatus(r.Context(), mux.Vars(r)["id"], req.PaymentStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, purchase)
}
