package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"scaffoldrent-backend/internal/domain"
	"scaffoldrent-backend/internal/service"
	"scaffoldrent-backend/internal/settlement"
)

type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentals.ListRentals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.GetRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rental domain.Rental
	if err := decodeJSON(r, &rental); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.rentals.CreateRental(r.Context(), &rental)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type extendRequest struct {
	NewEndDate string `json:"new_end_date"`
}

// extendResponse pairs the updated rental with the cost breakdown so the
// dashboard can show the operator what the extension changed.
type extendResponse struct {
	Rental     *domain.Rental              `json:"rental"`
	Settlement *settlement.ExtensionResult `json:"settlement"`
}

func (h *RentalHandler) Extend(w http.ResponseWriter, r *http.Request) {
	var req extendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rental, result, err := h.rentals.ExtendRental(r.Context(), mux.Vars(r)["id"], req.NewEndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, extendResponse{Rental: rental, Settlement: result})
}

type returnRequest struct {
	ActualReturnDate  string                 `json:"actual_return_date"`
	LateFeeMultiplier float64                `json:"late_fee_multiplier,omitempty"`
	Conditions        []domain.ItemCondition `json:"conditions"`
	RefundCents       int64                  `json:"refund_cents"`
}

type returnResponse struct {
	Rental     *domain.Rental           `json:"rental"`
	Settlement *settlement.ReturnResult `json:"settlement"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rental, result, err := h.rentals.ReturnRental(r.Context(), mux.Vars(r)["id"], service.ReturnParams{
		ActualReturnDate:  req.ActualReturnDate,
		LateFeeMultiplier: req.LateFeeMultiplier,
		Conditions:        req.Conditions,
		RefundCents:       req.RefundCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, returnResponse{Rental: rental, Settlement: result})
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.CancelRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.rentals.DeleteRental(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type paymentRequest struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

func (h *RentalHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.UpdatePaymentStatus(r.Context(), mux.Vars(r)["id"], req.PaymentStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
