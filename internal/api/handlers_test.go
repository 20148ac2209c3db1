package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngthanhdat/chitieubot/internal/config"
	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/ngthanhdat/chitieubot/internal/ledger/ledgertest"
	"github.com/ngthanhdat/chitieubot/internal/summary"
)

func newTestAPI(t *testing.T) (*API, *ledgertest.Store) {
	t.Helper()
	store := ledgertest.New()
	cfg := &config.Config{
		JWTSecret: "test-secret",
		APIKey:    "test-api-key",
	}
	return New(cfg, ledger.NewService(store), summary.NewService(store)), store
}

func issueToken(t *testing.T, api *API, userID string) string {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(`{"user_id": `+userID+`}`))
	req.Header.Set("X-Api-Key", "test-api-key")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("token issuance failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	return resp.Token
}

func TestIssueTokenRejectsBadKey(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(`{"user_id": 1}`))
	req.Header.Set("X-Api-Key", "wrong")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest("GET", "/api/users/1/balance", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestGetBalance(t *testing.T) {
	api, store := newTestAPI(t)
	if err := store.SetBalance(context.Background(), 1, decimal.NewFromInt(150000)); err != nil {
		t.Fatalf("SetBalance: %v", err)
	}

	token := issueToken(t, api, "1")
	req := httptest.NewRequest("GET", "/api/users/1/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		UserID  int64           `json:"user_id"`
		Balance decimal.Decimal `json:"balance"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("balance = %s, want 150000", resp.Balance)
	}
}

func TestTokenIsScopedToUser(t *testing.T) {
	api, _ := newTestAPI(t)

	token := issueToken(t, api, "2")
	req := httptest.NewRequest("GET", "/api/users/1/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestListTransactions(t *testing.T) {
	api, store := newTestAPI(t)
	err := store.RecordTransaction(context.Background(), ledger.Transaction{
		UserID: 1,
		Amount: decimal.NewFromInt(50000),
		Reason: "ăn sáng",
		Kind:   ledger.KindExpense,
		Date:   time.Now(),
	})
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	token := issueToken(t, api, "1")
	req := httptest.NewRequest("GET", "/api/users/1/transactions?limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp []transactionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("got %d transactions, want 1", len(resp))
	}
	if resp[0].Reason != "ăn sáng" || resp[0].Kind != "chi" {
		t.Errorf("unexpected transaction: %+v", resp[0])
	}
}

func TestSummaryDefaultsToToday(t *testing.T) {
	api, store := newTestAPI(t)
	err := store.RecordTransaction(context.Background(), ledger.Transaction{
		UserID: 1,
		Amount: decimal.NewFromInt(30000),
		Reason: "cà phê",
		Kind:   ledger.KindExpense,
		Date:   time.Now(),
	})
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	token := issueToken(t, api, "1")
	req := httptest.NewRequest("GET", "/api/users/1/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Range string          `json:"range"`
		Total decimal.Decimal `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Range != "ngay" {
		t.Errorf("range = %q, want %q", resp.Range, "ngay")
	}
	if !resp.Total.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("total = %s, want 30000", resp.Total)
	}
}

func TestSummaryRejectsUnknownRange(t *testing.T) {
	api, _ := newTestAPI(t)

	token := issueToken(t, api, "1")
	req := httptest.NewRequest("GET", "/api/users/1/summary?range=nam", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
