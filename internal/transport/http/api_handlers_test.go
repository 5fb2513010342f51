package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roomcast/roomcast/internal/core"
)

func TestListRooms(t *testing.T) {
	ts, hub := startTestServer(t)

	// Empty registry first.
	req := httptest.NewRequest(http.MethodGet, ts.URL+"/api/rooms", nil)
	resp := httptest.NewRecorder()
	// The httptest server and the recorder share the same handler.
	ts.Config.Handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var rooms []RoomResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %+v", rooms)
	}

	// Populate a room through the hub.
	alice := core.NewClient("a")
	hub.RegisterClient(alice)
	hub.Dispatch(core.Command{Kind: core.CommandJoin, Client: alice, User: "alice"})
	waitForRooms(t, hub, 1)

	resp = httptest.NewRecorder()
	ts.Config.Handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, ts.URL+"/api/rooms", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected one room, got %+v", rooms)
	}
	if rooms[0].ID != "room-1" || rooms[0].Count != 1 || rooms[0].Members[0] != "alice" {
		t.Fatalf("unexpected room payload: %+v", rooms[0])
	}
	if rooms[0].Messages != 1 {
		t.Fatalf("expected the join notice in the log, got %d messages", rooms[0].Messages)
	}
}

func waitForRooms(t *testing.T, hub *core.Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := hub.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(snap) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d rooms", want)
}
