package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"splitzy/internal/auth"
	"splitzy/internal/service"
	"splitzy/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-for-tests-only", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := NewServer(
		service.NewAuthService(authenticator, jwtManager),
		service.NewUserService(store),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewSettlementService(store),
		jwtManager,
	)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, map[string]any, []any) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	var obj map[string]any
	var arr []any
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &arr); err != nil {
			t.Fatalf("failed to decode array response: %v", err)
		}
	} else {
		if err := json.Unmarshal(raw, &obj); err != nil {
			t.Fatalf("failed to decode object response: %v", err)
		}
	}
	return resp.StatusCode, obj, arr
}

func signupUser(t *testing.T, ts *httptest.Server, name string) (userID, token string) {
	t.Helper()
	status, body, _ := doRequest(t, ts, http.MethodPost, "/auth/signup", "", map[string]any{
		"username": name,
		"email":    name + "@example.com",
		"phone":    "91-" + name,
		"password": "password123",
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: status %d, body %v", name, status, body)
	}
	user, _ := body["user"].(map[string]any)
	token, _ = body["token"].(string)
	if user == nil || token == "" {
		t.Fatalf("signup %s: missing user or token in %v", name, body)
	}
	return user["userId"].(string), token
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)

	signupUser(t, ts, "alice")

	status, body, _ := doRequest(t, ts, http.MethodPost, "/auth/login", "", map[string]any{
		"identifier": "alice@example.com",
		"password":   "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("login: status %d, body %v", status, body)
	}
	if body["token"] == "" {
		t.Fatal("login: expected token")
	}

	status, body, _ = doRequest(t, ts, http.MethodPost, "/auth/login", "", map[string]any{
		"identifier": "alice@example.com",
		"password":   "wrongpassword",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, body %v", status, body)
	}
	if body["message"] != "Invalid credentials" {
		t.Fatalf("bad login: unexpected message %v", body["message"])
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	signupUser(t, ts, "alice")

	status, body, _ := doRequest(t, ts, http.MethodPost, "/auth/signup", "", map[string]any{
		"username": "alice2",
		"email":    "alice@example.com",
		"phone":    "91-alice2",
		"password": "password123",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate signup: status %d, body %v", status, body)
	}
	if body["message"] != "User is already registered with this email" {
		t.Fatalf("duplicate signup: unexpected message %v", body["message"])
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	status, body, _ := doRequest(t, ts, http.MethodGet, "/users/some-id", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d (%v)", status, body)
	}

	status, _, _ = doRequest(t, ts, http.MethodGet, "/users/some-id", "not-a-jwt", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", status)
	}
}

func TestExpenseAndBalanceFlow(t *testing.T) {
	ts := newTestServer(t)

	aliceID, aliceToken := signupUser(t, ts, "alice")
	bobID, _ := signupUser(t, ts, "bob")

	status, group, _ := doRequest(t, ts, http.MethodPost, "/group", aliceToken, map[string]any{
		"name":    "Trip",
		"userIds": []string{aliceID, bobID},
	})
	if status != http.StatusCreated {
		t.Fatalf("create group: status %d, body %v", status, group)
	}
	groupID := group["groupid"].(string)
	if users, ok := group["users"].([]any); !ok || len(users) != 2 {
		t.Fatalf("create group: expected 2 users, got %v", group["users"])
	}

	status, expense, _ := doRequest(t, ts, http.MethodPost, "/group/"+groupID+"/expenses", aliceToken, map[string]any{
		"amount":       100,
		"description":  "Dinner",
		"paidBy":       aliceID,
		"participants": []string{aliceID, bobID},
		"splitType":    "EQUAL",
	})
	if status != http.StatusCreated {
		t.Fatalf("add expense: status %d, body %v", status, expense)
	}
	expenseID := expense["expenseid"].(string)
	if expense["amount"].(float64) != 100 {
		t.Fatalf("add expense: unexpected amount %v", expense["amount"])
	}

	status, _, splits := doRequest(t, ts, http.MethodGet,
		"/group/"+groupID+"/expenses/"+expenseID+"/splits", aliceToken, nil)
	if status != http.StatusOK || len(splits) != 2 {
		t.Fatalf("get splits: status %d, splits %v", status, splits)
	}
	for _, raw := range splits {
		sp := raw.(map[string]any)
		if sp["amount"].(float64) != 50 {
			t.Fatalf("get splits: unexpected split %v", sp)
		}
	}

	status, _, balances := doRequest(t, ts, http.MethodGet, "/group/"+groupID+"/balances", aliceToken, nil)
	if status != http.StatusOK || len(balances) != 1 {
		t.Fatalf("get balances: status %d, balances %v", status, balances)
	}
	balance := balances[0].(map[string]any)
	if balance["debtor"] != bobID || balance["creditor"] != aliceID {
		t.Fatalf("get balances: unexpected direction %v", balance)
	}
	if balance["display"] != "bob owes alice ₹50.00" {
		t.Fatalf("get balances: unexpected display %v", balance["display"])
	}

	status, settlement, _ := doRequest(t, ts, http.MethodPost, "/group/"+groupID+"/settlements", aliceToken, map[string]any{
		"paidby": bobID,
		"paidto": aliceID,
		"amount": 50,
	})
	if status != http.StatusCreated {
		t.Fatalf("create settlement: status %d, body %v", status, settlement)
	}

	status, _, balances = doRequest(t, ts, http.MethodGet, "/group/"+groupID+"/balances", aliceToken, nil)
	if status != http.StatusOK || len(balances) != 0 {
		t.Fatalf("expected settled balances, got %v", balances)
	}
}

func TestExpenseValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	aliceID, aliceToken := signupUser(t, ts, "alice")
	bobID, _ := signupUser(t, ts, "bob")

	_, group, _ := doRequest(t, ts, http.MethodPost, "/group", aliceToken, map[string]any{
		"name":    "Trip",
		"userIds": []string{aliceID, bobID},
	})
	groupID := group["groupid"].(string)

	status, body, _ := doRequest(t, ts, http.MethodPost, "/group/"+groupID+"/expenses", aliceToken, map[string]any{
		"amount":       100,
		"description":  "Dinner",
		"paidBy":       aliceID,
		"participants": []string{aliceID, bobID},
		"splitType":    "PERCENTAGE",
		"values":       []float64{70, 40},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", status, body)
	}
	if body["message"] != "Percentages must sum to 100." {
		t.Fatalf("unexpected message %v", body["message"])
	}

	status, body, _ = doRequest(t, ts, http.MethodGet, "/group/no-such-group/expenses", aliceToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%v)", status, body)
	}
	if body["message"] != "Group not found" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestUserAccountRoutes(t *testing.T) {
	ts := newTestServer(t)

	aliceID, aliceToken := signupUser(t, ts, "alice")
	bobID, bobToken := signupUser(t, ts, "bob")

	status, body, _ := doRequest(t, ts, http.MethodGet, "/users/"+bobID, aliceToken, nil)
	if status != http.StatusOK || body["username"] != "bob" {
		t.Fatalf("get user: status %d, body %v", status, body)
	}

	// Profile mutation is limited to the account owner.
	status, body, _ = doRequest(t, ts, http.MethodPut, "/users/"+bobID, aliceToken, map[string]any{
		"username": "hijacked",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("cross-account update: status %d, body %v", status, body)
	}

	status, body, _ = doRequest(t, ts, http.MethodPut, "/users/"+bobID, bobToken, map[string]any{
		"username": "bobby",
	})
	if status != http.StatusOK || body["username"] != "bobby" {
		t.Fatalf("update user: status %d, body %v", status, body)
	}

	status, body, _ = doRequest(t, ts, http.MethodPost, "/users/resolve-ids", aliceToken, map[string]any{
		"emails": []string{"bob@example.com", "alice@example.com"},
	})
	if status != http.StatusOK {
		t.Fatalf("resolve ids: status %d, body %v", status, body)
	}
	ids, _ := body["userIds"].([]any)
	if len(ids) != 2 || ids[0] != bobID || ids[1] != aliceID {
		t.Fatalf("resolve ids: unexpected %v", body["userIds"])
	}

	status, body, _ = doRequest(t, ts, http.MethodDelete, "/users/"+bobID, bobToken, nil)
	if status != http.StatusOK {
		t.Fatalf("delete user: status %d, body %v", status, body)
	}
	status, _, _ = doRequest(t, ts, http.MethodGet, "/users/"+bobID, aliceToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted user, got %d", status)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	status, body, _ := doRequest(t, ts, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz: status %d, body %v", status, body)
	}
}
