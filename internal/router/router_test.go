package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mem "pet-playground/internal/adapters/storage/memory"
	"pet-playground/internal/domain/panel"
	"pet-playground/internal/domain/session"
	"pet-playground/internal/platform/config"
	"pet-playground/internal/router"
)

func testConfig() config.Config {
	return config.Config{
		ViewportWidth:   800,
		PetSize:         "small",
		DefaultPetType:  "dog",
		DefaultPetColor: "akita",
	}
}

func newServer(t *testing.T, repo session.Repository) *httptest.Server {
	t.Helper()
	app, err := router.New(context.Background(), router.Options{Config: testConfig(), Repo: repo})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	ts := httptest.NewServer(app.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_SessionSurvivesRestart(t *testing.T) {
	repo := mem.NewSessionRepo()
	ts := newServer(t, repo)

	// 1) Sesión nueva: arranca con la mascota por defecto
	{
		st, body := doReq(t, ts.URL, "GET", "/pets", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var items []panel.PetSummary
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].Species != "dog" || items[0].Color != "akita" {
			t.Fatalf("expected default akita dog, got %s", string(body))
		}
	}

	// 2) Spawn de un zorro
	{
		st, body := doReq(t, ts.URL, "POST", "/pets", map[string]any{
			"type":  "fox",
			"color": "white",
			"name":  "Foxy",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 spawn, got %d body=%s", st, string(body))
		}
	}

	// 3) Ready + tick
	{
		st, _ := doReq(t, ts.URL, "POST", "/session/ready", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 ready, got %d", st)
		}
		st, body := doReq(t, ts.URL, "POST", "/tick", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"ran":true`) {
			t.Fatalf("expected tick to run, got %d body=%s", st, string(body))
		}
	}

	// 4) Reinicio: la población se recupera del store
	restarted := newServer(t, repo)
	{
		st, body := doReq(t, restarted.URL, "GET", "/pets?format=text", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list after restart, got %d", st)
		}
		if !strings.Contains(string(body), "fox,Foxy,white") || strings.Count(string(body), "\n") != 1 {
			t.Fatalf("expected both pets recovered, got %q", string(body))
		}
	}

	// 5) Métricas expuestas
	{
		st, body := doReq(t, restarted.URL, "GET", "/metrics", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "pets_population 2") {
			t.Fatalf("expected population gauge, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health %d %q", st, string(body))
	}
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	ts := newServer(t, nil)

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "Pet Playground API") {
		t.Fatalf("unexpected swagger doc %d %s", st, string(body))
	}
}

func TestHTTP_InvalidDefaultTypeFallsBackToCat(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultPetType = "dragon"
	app, err := router.New(context.Background(), router.Options{Config: cfg})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	items := app.Panel.List()
	if len(items) != 1 || items[0].Species != "cat" || items[0].Color != "black" {
		t.Fatalf("expected first-palette cat, got %+v", items)
	}
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}
