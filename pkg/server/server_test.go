package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/retain/internal/demo"
	"github.com/vango-dev/retain/pkg/component"
	"github.com/vango-dev/retain/pkg/dom"
	"github.com/vango-dev/retain/pkg/protocol"
	"github.com/vango-dev/retain/pkg/telemetry"
)

func counterRoot() component.Prefab {
	return component.Root[demo.CounterMsg, demo.CounterChanged](demo.NewCounter, demo.CounterProps{Step: 1})
}

func newTestServer(t *testing.T, cfg Config, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(counterRoot, cfg, opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Sessions().CloseAll()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", mt)
	}
	f, err := protocol.DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	return f
}

func readPatches(t *testing.T, conn *websocket.Conn) *protocol.Patches {
	t.Helper()
	f := readFrame(t, conn)
	if f.Type != protocol.FramePatches {
		t.Fatalf("frame type = %s, want patches", f.Type)
	}
	p, err := protocol.DecodePatches(f.Payload)
	if err != nil {
		t.Fatalf("DecodePatches() error = %v", err)
	}
	return p
}

func sendEvent(t *testing.T, conn *websocket.Conn, ev *protocol.Event) {
	t.Helper()
	data, err := protocol.NewFrame(protocol.FrameEvent, protocol.EncodeEvent(ev)).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
}

func findAttr(ops []protocol.Mutation, name, value string) dom.Handle {
	for _, m := range ops {
		if m.Op == dom.OpSetAttr && m.Name == name && m.Value == value {
			return m.Target
		}
	}
	return 0
}

func hasText(ops []protocol.Mutation, text string) bool {
	for _, m := range ops {
		if m.Op == dom.OpCreateText && m.Value == text {
			return true
		}
	}
	return false
}

func TestLiveSession(t *testing.T) {
	srv, ts := newTestServer(t, Config{})
	conn := dial(t, ts)

	f := readFrame(t, conn)
	if f.Type != protocol.FrameHandshake {
		t.Fatalf("first frame = %s, want handshake", f.Type)
	}
	hello, err := protocol.DecodeHandshake(f.Payload)
	if err != nil {
		t.Fatalf("DecodeHandshake() error = %v", err)
	}
	if hello.Version != protocol.Version {
		t.Errorf("Version = %d, want %d", hello.Version, protocol.Version)
	}
	if len(hello.Session) != 26 {
		t.Errorf("Session = %q, want a 26 character ULID", hello.Session)
	}
	if hello.Root == 0 {
		t.Error("Root = 0, want a handle")
	}

	first := readPatches(t, conn)
	if first.Seq != 1 {
		t.Errorf("Seq = %d, want 1", first.Seq)
	}
	if !hasText(first.Ops, "0") {
		t.Errorf("first patches missing text 0: %v", first.Ops)
	}
	inc := findAttr(first.Ops, "class", "inc")
	if inc == 0 {
		t.Fatalf("no class=inc in %v", first.Ops)
	}

	sendEvent(t, conn, &protocol.Event{Seq: 1, Target: inc, Name: "click"})
	next := readPatches(t, conn)
	if next.Seq != 2 {
		t.Errorf("Seq = %d, want 2", next.Seq)
	}
	if !hasText(next.Ops, "1") {
		t.Errorf("patches after click missing text 1: %v", next.Ops)
	}
	for _, m := range next.Ops {
		if m.Op == dom.OpCreateElement {
			t.Errorf("click created element %v, want text swap only", m)
		}
	}

	if s := srv.Sessions().Get(hello.Session); s == nil {
		t.Error("session not registered")
	} else if got := s.Stats().Events; got != 1 {
		t.Errorf("Stats().Events = %d, want 1", got)
	}
}

func TestBadFrameGetsErrorReply(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	conn := dial(t, ts)
	readFrame(t, conn) // handshake
	readPatches(t, conn)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x7f, 0, 0}); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	f := readFrame(t, conn)
	if f.Type != protocol.FrameError {
		t.Fatalf("frame type = %s, want error", f.Type)
	}
	msg, err := protocol.DecodeErrorMessage(f.Payload)
	if err != nil {
		t.Fatalf("DecodeErrorMessage() error = %v", err)
	}
	if msg.Code != "E101" || msg.Fatal {
		t.Errorf("error = %+v, want non-fatal E101", msg)
	}

	// The session survives a rejected frame.
	sendEvent(t, conn, &protocol.Event{Target: 9999, Name: "click"})
	sendEvent(t, conn, &protocol.Event{Target: 9999, Name: "nope"})
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("unexpected frame for events without listeners")
	}
}

func TestSessionLimit(t *testing.T) {
	srv, ts := newTestServer(t, Config{MaxSessions: 1})
	conn := dial(t, ts)
	readFrame(t, conn)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("second Dial() succeeded, want rejection")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %v, want 503", resp)
	}
	if got := srv.Sessions().Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestSessionRemovedOnDisconnect(t *testing.T) {
	srv, ts := newTestServer(t, Config{})
	conn := dial(t, ts)
	readFrame(t, conn)
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for srv.Sessions().Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Len() = %d after disconnect, want 0", srv.Sessions().Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := srv.Sessions().Total(); got != 1 {
		t.Errorf("Total() = %d, want 1", got)
	}
}

func TestPage(t *testing.T) {
	_, ts := newTestServer(t, Config{Title: "Count <it>"})
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	for _, want := range []string{
		"<title>Count &lt;it&gt;</title>",
		`data-live="/live"`,
		`<span class="count">0</span>`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("page missing %q:\n%s", want, body)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
	_, ts := newTestServer(t, Config{}, WithMetrics(m, reg))

	conn := dial(t, ts)
	readFrame(t, conn)
	readPatches(t, conn)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	var health struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if health.Status != "ok" || health.Sessions != 1 {
		t.Errorf("health = %+v, want ok with 1 session", health)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{"retain_passes_total", "retain_sessions_active 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestNoMetricsRouteWithoutGatherer(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCheckOrigin(t *testing.T) {
	cfg := Config{AllowedOrigins: []string{"https://app.example"}}
	tests := []struct {
		origin string
		host   string
		want   bool
	}{
		{"", "a", true},
		{"https://app.example", "b", true},
		{"http://same:3000", "same:3000", true},
		{"http://evil", "same:3000", false},
		{"::bad", "same", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/live", nil)
		r.Host = tt.host
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := cfg.checkOrigin(r); got != tt.want {
			t.Errorf("checkOrigin(%q, %q) = %v, want %v", tt.origin, tt.host, got, tt.want)
		}
	}
}

func TestSessionIDsAreOrdered(t *testing.T) {
	a, b := newSessionID(), newSessionID()
	if len(a) != 26 || a >= b {
		t.Errorf("ids %q, %q, want increasing ULIDs", a, b)
	}
}
