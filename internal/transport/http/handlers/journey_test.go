package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/remonnashat24-blip/HR-Follow-Up/internal/app/server"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/domain/auth"
	"github.com/remonnashat24-blip/HR-Follow-Up/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		FrontendDir:        "frontend/dist",
		MigrationsDir:      "../../../../migrations",
		Environment:        "test",
		SeedAdminName:      "admin",
		SeedAdminPassword:  "ChangeMe123!",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		MaxImportBytes:     10485760,
		MaxImportRows:      2000,
		RateLimitPerMinute: 1000,
	}
}

func TestFollowUpJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	token := login(t, client, ts.URL, cfg.SeedAdminName, cfg.SeedAdminPassword)

	number := fmt.Sprintf("JRN-%d", time.Now().UnixNano())
	employeeID := postForID(t, client, ts.URL+"/api/v1/employees", token, map[string]any{
		"employeeNumber": number,
		"name":           "Journey Employee",
		"department":     "Engineering",
		"hireDate":       "2024-01-15",
	})

	probationID := postForID(t, client, ts.URL+"/api/v1/probations", token, map[string]any{
		"employeeId": employeeID,
		"startDate":  "2024-01-15",
	})

	status := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/probations/"+probationID+"/evaluate", token, map[string]any{
		"status":             "passed",
		"taskPerformance":    "good",
		"taskCompletionRate": 90,
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("evaluate: expected 200, got %d", status)
	}

	contractID := postForID(t, client, ts.URL+"/api/v1/contracts", token, map[string]any{
		"employeeId": employeeID,
		"startDate":  "2024-01-15",
		"endDate":    "2025-01-14",
	})

	var renewed struct {
		ID             string `json:"id"`
		ContractNumber string `json:"contractNumber"`
		Status         string `json:"status"`
	}
	status = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/contracts/"+contractID+"/renew", token, map[string]any{
		"startDate": "2025-01-15",
		"endDate":   "2026-01-14",
	}, &renewed)
	if status != http.StatusCreated {
		t.Fatalf("renew: expected 201, got %d", status)
	}
	if renewed.ID == contractID {
		t.Fatal("renewal must create a new contract row")
	}
	if renewed.ContractNumber != number+"-2" {
		t.Fatalf("renewal number: expected %s-2, got %s", number, renewed.ContractNumber)
	}

	var old struct {
		Status string `json:"status"`
	}
	status = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/contracts/"+contractID, token, nil, &old)
	if status != http.StatusOK {
		t.Fatalf("get old contract: expected 200, got %d", status)
	}
	if old.Status != "renewed" {
		t.Fatalf("old contract: expected renewed, got %s", old.Status)
	}

	var stats struct {
		TotalEmployees int `json:"totalEmployees"`
	}
	status = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/dashboard", token, nil, &stats)
	if status != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", status)
	}
	if stats.TotalEmployees < 1 {
		t.Fatalf("dashboard should count the created employee, got %d", stats.TotalEmployees)
	}
}

func TestPermissionDenialJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	// A standard user with no permission record is denied every mutation.
	userToken, err := auth.GenerateToken(cfg.JWTSecret, auth.Claims{
		UserID: "u-journey", Name: fmt.Sprintf("nobody-%d", time.Now().UnixNano()), Role: auth.RoleUser,
	}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	status := doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/employees", userToken, map[string]any{
		"employeeNumber": "DENY-1",
		"name":           "Should Not Exist",
		"hireDate":       "2024-01-15",
	}, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for user without flag, got %d", status)
	}

	// Bulk delete stays admin-only even for flagged users.
	status = doJSON(t, client, http.MethodDelete, ts.URL+"/api/v1/employees", userToken, nil, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin bulk delete, got %d", status)
	}

	// Reads stay open to authenticated users.
	status = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees", userToken, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for list, got %d", status)
	}
}

func login(t *testing.T, client *http.Client, baseURL, name, password string) string {
	t.Helper()
	var data struct {
		Token string `json:"token"`
	}
	status := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]any{
		"name":     name,
		"password": password,
	}, &data)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	if data.Token == "" {
		t.Fatal("login returned no token")
	}
	return data.Token
}

func postForID(t *testing.T, client *http.Client, url, token string, payload map[string]any) string {
	t.Helper()
	var data struct {
		ID string `json:"id"`
	}
	status := doJSON(t, client, http.MethodPost, url, token, payload, &data)
	if status != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d", url, status)
	}
	if data.ID == "" {
		t.Fatalf("POST %s: no id in response", url)
	}
	return data.ID
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload map[string]any, out any) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if out != nil && resp.StatusCode < 300 {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode envelope: %v (%s)", err, raw)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (%s)", err, env.Data)
		}
	}
	return resp.StatusCode
}
