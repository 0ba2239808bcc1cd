package visitors_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ghostorshell-backend/internal/shared/config"
	"ghostorshell-backend/internal/shared/server"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	}
	return server.NewRouter(cfg, nil)
}

type creditPayload struct {
	VisitorID        string `json:"visitorId"`
	CreditsRemaining int    `json:"creditsRemaining"`
	TotalPurchased   int    `json:"totalPurchased"`
}

func getCredits(t *testing.T, router *gin.Engine, agent string) creditPayload {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/credits", nil)
	req.Header.Set("User-Agent", agent)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload creditPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode credits: %v", err)
	}
	return payload
}

func TestBalanceGrantsFreeCreditOnFirstSight(t *testing.T) {
	router := testRouter(t)

	payload := getCredits(t, router, "balance-test-agent")
	if payload.CreditsRemaining != 1 {
		t.Fatalf("expected 1 free credit, got %d", payload.CreditsRemaining)
	}
	if payload.VisitorID == "" {
		t.Fatal("expected a visitor id in the response")
	}

	// The balance check must not spend anything.
	again := getCredits(t, router, "balance-test-agent")
	if again.CreditsRemaining != 1 {
		t.Fatalf("balance check spent a credit: %d remaining", again.CreditsRemaining)
	}
	if again.VisitorID != payload.VisitorID {
		t.Fatalf("visitor id not stable: %s vs %s", payload.VisitorID, again.VisitorID)
	}
}

func TestPurchaseIncreasesBalance(t *testing.T) {
	router := testRouter(t)

	body := strings.NewReader(`{"credits": 5, "paymentRef": "pay_123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/credits/purchase", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "purchase-test-agent")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload creditPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode purchase: %v", err)
	}
	if payload.CreditsRemaining != 6 {
		t.Fatalf("expected free credit plus 5 purchased, got %d", payload.CreditsRemaining)
	}
	if payload.TotalPurchased != 5 {
		t.Fatalf("expected 5 purchased, got %d", payload.TotalPurchased)
	}
}

func TestPurchaseRejectsNonPositiveAmount(t *testing.T) {
	router := testRouter(t)

	for _, body := range []string{`{"credits": 0}`, `{"credits": -3}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/credits/purchase", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, resp.Code)
		}
	}
}
