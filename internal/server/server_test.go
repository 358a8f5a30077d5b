// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MGough/sensorhub/internal/poller"
	"github.com/MGough/sensorhub/internal/reading"
	"github.com/MGough/sensorhub/internal/reading/readingtest"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"periph.io/x/conn/v3/physic"
)

func newTestServer() (*Server, *poller.Poller, *readingtest.Hub) {
	hub := &readingtest.Hub{
		Temp:     readingtest.Celsius(22),
		RH:       45 * physic.PercentRH,
		Pressure: 101020 * physic.Pascal,
	}
	p := poller.New(hub, time.Hour)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("sensorhub_temperature 22\n"))
	})
	return New(p, metrics), p, hub
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadings(t *testing.T) {
	s, p, _ := newTestServer()
	if rec := get(t, s, "/api/readings"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d before the first poll", rec.Code)
	}
	want := p.Poll()
	rec := get(t, s, "/api/readings")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var got reading.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.Sensors, got.Sensors); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s, _, _ := newTestServer()
	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}
	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "sensorhub_temperature 22") {
		t.Fatalf("metrics %d %q", rec.Code, rec.Body.String())
	}
}

func TestCard(t *testing.T) {
	s, p, _ := newTestServer()
	p.Poll()
	rec := get(t, s, "/card.png?w=128&h=64")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Fatalf("bounds %v", b)
	}
	for _, q := range []string{"w=0", "h=abc", "w=100000"} {
		if rec := get(t, s, "/card.png?"+q); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", q, rec.Code)
		}
	}
}

func TestWebsocket(t *testing.T) {
	s, p, hub := newTestServer()
	p.Poll()
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first reading.Snapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}
	if v, _ := first.Get(reading.SensorTemperature); v != 22 {
		t.Fatalf("first temperature %v", v)
	}

	hub.Set(func(h *readingtest.Hub) { h.Temp = readingtest.Celsius(23) })
	// The subscription is registered after the upgrade; poll until the
	// update shows up.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		p.Poll()
		var next reading.Snapshot
		if err := conn.ReadJSON(&next); err != nil {
			t.Fatal(err)
		}
		if v, _ := next.Get(reading.SensorTemperature); v == 23 {
			return
		}
	}
	t.Fatal("update not pushed")
}
