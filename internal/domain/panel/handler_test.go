package panel

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *fixture) {
	t.Helper()
	f := startEmpty(t)

	r := chi.NewRouter()
	RegisterRoutes(r, f.svc)
	r.Get("/ws", WSHandler(f.svc, nil))

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, f
}

func doReq(t *testing.T, base, method, path string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, base+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func TestHTTP_SpawnListDelete(t *testing.T) {
	ts, _ := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/pets", map[string]any{"type": "dog", "color": "akita", "name": "Milo"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, body)
	}
	var v PetView
	if err := json.Unmarshal(body, &v); err != nil || v.Name != "Milo" {
		t.Fatalf("unexpected spawn body %s", body)
	}

	st, body = doReq(t, ts.URL, "POST", "/pets", map[string]any{"type": "dog", "color": "purple", "name": "Bad"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid color, got %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/pets?format=text", nil)
	if st != http.StatusOK || string(body) != "dog,Milo,akita" {
		t.Fatalf("unexpected text list %d %q", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/pets/roll-call", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "Milo (akita dog): woof!") {
		t.Fatalf("unexpected roll call %d %s", st, body)
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/pets/dog/brown/Milo", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for wrong color, got %d", st)
	}
	st, body = doReq(t, ts.URL, "DELETE", "/pets/dog/akita/Milo", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "Removed pet Milo") {
		t.Fatalf("unexpected delete %d %s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/pets", nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected empty list, got %d %s", st, body)
	}
}

func TestHTTP_SessionAndTick(t *testing.T) {
	ts, f := newTestServer(t)

	doReq(t, ts.URL, "POST", "/pets", map[string]any{"type": "fox", "color": "red", "name": "Foxy"})

	st, body := doReq(t, ts.URL, "POST", "/tick", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"ran":false`) {
		t.Fatalf("tick before ready must not run: %d %s", st, body)
	}

	if st, _ := doReq(t, ts.URL, "POST", "/session/ready", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 on ready, got %d", st)
	}
	st, body = doReq(t, ts.URL, "POST", "/tick", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"ran":true`) {
		t.Fatalf("expected tick to run: %d %s", st, body)
	}

	doReq(t, ts.URL, "POST", "/session/pause", nil)
	if f.svc.Counter() != 1 {
		t.Fatalf("expected counter 1 after pause")
	}
	doReq(t, ts.URL, "POST", "/session/resume", nil)

	if st, _ := doReq(t, ts.URL, "POST", "/pets/reset", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 on reset, got %d", st)
	}
	if f.svc.Counter() != 0 || len(f.svc.List()) != 0 {
		t.Fatalf("expected empty panel after reset")
	}
}

func TestHTTP_BallAndPointer(t *testing.T) {
	ts, _ := newTestServer(t)

	_, body := doReq(t, ts.URL, "POST", "/pets", map[string]any{"type": "dog", "color": "brown", "name": "Milo"})
	var v PetView
	_ = json.Unmarshal(body, &v)

	st, body := doReq(t, ts.URL, "POST", "/collisions/"+v.CollisionID+"/pointer-over", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"handled":true`) {
		t.Fatalf("expected pointer-over handled: %d %s", st, body)
	}

	st, _ = doReq(t, ts.URL, "POST", "/ball/throw", map[string]any{"x": 200})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 while mouse throw disabled, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PUT", "/ball/throw-with-mouse", map[string]any{"enabled": true}); st != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", st)
	}
	st, body = doReq(t, ts.URL, "POST", "/ball/throw", map[string]any{"x": 200})
	if st != http.StatusOK || !strings.Contains(string(body), `"chasers"`) {
		t.Fatalf("unexpected throw %d %s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/render", nil)
	var rv RenderView
	if st != http.StatusOK || json.Unmarshal(body, &rv) != nil || len(rv.Pets) != 1 || rv.Ball == nil {
		t.Fatalf("unexpected render %d %s", st, body)
	}
}

func TestWS_CommandChannel(t *testing.T) {
	ts, _ := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	send := func(c Command) Message {
		t.Helper()
		if err := conn.WriteJSON(c); err != nil {
			t.Fatalf("write: %v", err)
		}
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			t.Fatalf("read: %v", err)
		}
		return m
	}

	if m := send(Command{Command: "spawn-pet", Type: "cat", Color: "black", Name: "Tom"}); m.Command != MessageInfo {
		t.Fatalf("unexpected spawn reply %+v", m)
	}
	if m := send(Command{Command: "list-pets"}); m.Text != "cat,Tom,black" {
		t.Fatalf("unexpected list reply %+v", m)
	}
	if m := send(Command{Command: "delete-pet", Type: "cat", Color: "black", Name: "Tom"}); m.Text != "👋 Removed pet Tom" {
		t.Fatalf("unexpected delete reply %+v", m)
	}
	if m := send(Command{Command: "nope"}); m.Command != MessageError {
		t.Fatalf("expected error reply, got %+v", m)
	}
}
