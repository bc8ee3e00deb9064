package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/engramlabs/engram-go-sdk/engine"
	"github.com/engramlabs/engram-go-sdk/memory"
	"github.com/engramlabs/engram-go-sdk/memory/embedder/mock"
	modelmock "github.com/engramlabs/engram-go-sdk/model/mock"
	"github.com/engramlabs/engram-go-sdk/server"
)

type nopStore struct{}

func (nopStore) EnsureCollection(ctx context.Context) error           { return nil }
func (nopStore) Insert(ctx context.Context, rec *memory.Record) error { return nil }
func (nopStore) Query(ctx context.Context, vector []float32, ownerID string, limit int) ([]*memory.Record, error) {
	return nil, nil
}
func (nopStore) Close() error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	manager := memory.NewManager(nopStore{}, mock.New(384), nil)
	eng := engine.New(manager, modelmock.New("canned reply"))
	ts := httptest.NewServer(server.New(eng).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestWebsocketChat(t *testing.T) {
	ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(server.Request{OwnerID: "alice", Message: "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp server.Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.Reply != "canned reply" {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestWebsocketErrorKeepsConnection(t *testing.T) {
	ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Empty message fails validation but must not close the connection.
	if err := conn.WriteJSON(server.Request{OwnerID: "alice", Message: "  "}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp server.Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected an error frame")
	}

	if err := conn.WriteJSON(server.Request{OwnerID: "alice", Message: "hello again"}); err != nil {
		t.Fatalf("write after error: %v", err)
	}
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read after error: %v", err)
	}
	if resp.Reply != "canned reply" {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}
