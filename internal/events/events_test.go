package events_test

import (
	"encoding/json"
	"testing"

	"leadgen-engine/internal/events"
)

func TestMakeEvent(t *testing.T) {
	raw := events.MakeEvent("req-1", events.TypeRunFinished, events.RunFinished{Leads: 4, Candidates: 9})

	var e events.Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Type != events.TypeRunFinished || e.RequestID != "req-1" || e.Version != 1 {
		t.Errorf("event = %+v", e)
	}
	var data events.RunFinished
	if err := json.Unmarshal(e.Data, &data); err != nil {
		t.Fatalf("data: %v", err)
	}
	if data.Leads != 4 || data.Candidates != 9 {
		t.Errorf("data = %+v", data)
	}
}

func TestMakeEventWithoutData(t *testing.T) {
	var e map[string]any
	if err := json.Unmarshal([]byte(events.MakeEvent("", events.TypePing, nil)), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := e["data"]; ok {
		t.Errorf("ping carries data: %v", e)
	}
}

func TestHubFanOut(t *testing.T) {
	h := events.NewHub()
	a, b := h.Subscribe(), h.Subscribe()
	h.Publish("x")
	if got := <-a; got != "x" {
		t.Errorf("a got %q", got)
	}
	if got := <-b; got != "x" {
		t.Errorf("b got %q", got)
	}

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	if n := h.Subscribers(); n != 1 {
		t.Errorf("Subscribers = %d, want 1", n)
	}
	if _, ok := <-a; ok {
		t.Error("unsubscribed channel still open")
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := events.NewHub()
	ch := h.Subscribe()
	for range 100 {
		h.Publish("e")
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered = %d, want %d", len(ch), cap(ch))
	}
}
