package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/auth"
	"github.com/honeynil/BlackMarketService/internal/models"
	service "github.com/honeynil/BlackMarketService/internal/services"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_engine.go -package=mocks github.com/honeynil/BlackMarketService/internal/services MarketplaceEngine

type Handler struct {
	engine          service.MarketplaceEngine
	defaultPageSize int
	rotationBatch   int
}

func NewHandler(engine service.MarketplaceEngine, defaultPageSize, rotationBatch int) *Handler {
	return &Handler{engine: engine, defaultPageSize: defaultPageSize, rotationBatch: rotationBatch}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pkgerrors.ErrTransferFailed):
		return http.StatusInternalServerError
	case errors.Is(err, pkgerrors.ErrListingUnavailable), errors.Is(err, pkgerrors.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, pkgerrors.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, pkgerrors.ErrListingNotFound), errors.Is(err, pkgerrors.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkgerrors.ErrNotListingOwner):
		return http.StatusForbidden
	case errors.Is(err, pkgerrors.ErrInvalidInput), errors.Is(err, pkgerrors.ErrInvalidPrice),
		errors.Is(err, pkgerrors.ErrInvalidPage), errors.Is(err, pkgerrors.ErrInvalidTier),
		errors.Is(err, pkgerrors.ErrNilListing):
		return http.StatusBadRequest
	case errors.Is(err, pkgerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/listings", h.Browse).Methods(http.MethodGet)
}

func (h *Handler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/listings", h.Sell).Methods(http.MethodPost)
	r.HandleFunc("/listings/{id}", h.Withdraw).Methods(http.MethodDelete)
	r.HandleFunc("/listings/{id}/purchase", h.Purchase).Methods(http.MethodPost)
	r.HandleFunc("/transactions", h.History).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{id}", h.Transaction).Methods(http.MethodGet)
	r.HandleFunc("/inventory", h.Inventory).Methods(http.MethodGet)
	r.HandleFunc("/blackmarket/refresh", h.RefreshBlackMarket).Methods(http.MethodPost)
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID, ok := auth.AccountFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, errors.New("account not authenticated"))
	}
	return accountID, ok
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.ErrInvalidInput
	}
	return v, nil
}

func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	tier := models.Tier(r.URL.Query().Get("tier"))
	if tier == "" {
		tier = models.TierNormal
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("page must be an integer"))
		return
	}
	size, err := queryInt(r, "size", h.defaultPageSize)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("size must be an integer"))
		return
	}

	result, err := h.engine.Browse(r.Context(), tier, page, size)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := h.account(w, r)
	if !ok {
		return
	}

	var req struct {
		Item  string          `json:"item"`
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	listing, err := h.engine.Sell(r.Context(), sellerID, []byte(req.Item), req.Price)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusCreated, listing)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := h.account(w, r)
	if !ok {
		return
	}

	version, err := strconv.ParseInt(r.URL.Query().Get("version"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("version query parameter is required"))
		return
	}

	listing, err := h.engine.Withdraw(r.Context(), mux.Vars(r)["id"], version, sellerID)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, listing)
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := h.account(w, r)
	if !ok {
		return
	}

	var req struct {
		Version *int64 `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Version == nil {
		h.writeError(w, http.StatusBadRequest, errors.New("version is required"))
		return
	}

	result, err := h.engine.Purchase(r.Context(), mux.Vars(r)["id"], *req.Version, buyerID)
	if err != nil {
		status := statusFor(err)
		if result == nil {
			h.writeError(w, status, err)
			return
		}
		h.writeJSON(w, status, struct {
			Error  string                  `json:"error"`
			Result *service.PurchaseResult `json:"result"`
		}{err.Error(), result})
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.account(w, r)
	if !ok {
		return
	}

	history, err := h.engine.History(r.Context(), accountID)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

// Transaction only shows a record to its buyer or seller.
func (h *Handler) Transaction(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.account(w, r)
	if !ok {
		return
	}

	tx, err := h.engine.Transaction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	if tx.BuyerID != accountID && tx.SellerID != accountID {
		h.writeError(w, http.StatusNotFound, pkgerrors.ErrTransactionNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.account(w, r)
	if !ok {
		return
	}

	items, err := h.engine.Inventory(r.Context(), accountID)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item)
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"items": out})
}

func (h *Handler) RefreshBlackMarket(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.account(w, r); !ok {
		return
	}

	moved, err := h.engine.Rotate(r.Context(), h.rotationBatch)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"rotated": moved})
}
