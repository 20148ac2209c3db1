package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/ngthanhdat/chitieubot/internal/summary"
)

type transactionResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
	Kind   string          `json:"kind"`
	Date   time.Time       `json:"date"`
}

// pathUserID extracts the user_id path variable and verifies the token is
// scoped to that user. A token for one user cannot read another's ledger.
func (a *API) pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims := r.Context().Value(claimsContextKey).(*Claims)

	userID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid user_id", http.StatusBadRequest)
		return 0, false
	}
	if claims.UserID != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return 0, false
	}
	return userID, true
}

func (a *API) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := a.pathUserID(w, r)
	if !ok {
		return
	}

	balance, err := a.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to get balance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user_id": userID,
		"balance": balance,
	})
}

func (a *API) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := a.pathUserID(w, r)
	if !ok {
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > 50 {
		limit = 50
	}

	txs, err := a.ledger.Recent(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, "failed to list transactions", http.StatusInternalServerError)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionResponse{
			Amount: tx.Amount,
			Reason: tx.Reason,
			Kind:   string(tx.Kind),
			Date:   tx.Date,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := a.pathUserID(w, r)
	if !ok {
		return
	}

	rng, err := summary.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, "invalid range", http.StatusBadRequest)
		return
	}

	total, err := a.summary.SumPreset(r.Context(), userID, rng, time.Now())
	if err != nil {
		http.Error(w, "failed to sum expenses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user_id": userID,
		"range":   string(rng),
		"label":   rng.Label(),
		"kind":    string(ledger.KindExpense),
		"total":   total,
	})
}
