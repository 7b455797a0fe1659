package watch

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/teslashibe/go-moodcam/pkg/emotion"
	"github.com/teslashibe/go-moodcam/pkg/recorder"
	"github.com/teslashibe/go-moodcam/pkg/session"
	"github.com/teslashibe/go-moodcam/pkg/web"
)

// fakeServer serves the subset of the moodcam API the dashboard reads.
type fakeServer struct {
	mu        sync.Mutex
	capturing bool
	recording bool
	toggles   []bool
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, Health{Status: "ok", Camera: "ok", Capturing: f.capturing})
	})
	mux.HandleFunc("GET /emotion_data", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, web.EmotionData{
			Emotion:     emotion.Happy,
			Confidence:  82,
			AllEmotions: map[emotion.Label]float64{emotion.Happy: 82, emotion.Neutral: 18},
		})
	})
	mux.HandleFunc("GET /emotions_history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, session.Export{
			SessionID: "0123456789abcdef",
			Emotions:  []session.ExportEntry{{Emotion: emotion.Sad}, {Emotion: emotion.Happy}},
		})
	})
	mux.HandleFunc("GET /audio/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, recorder.Status{IsRecording: f.recording})
	})
	mux.HandleFunc("POST /toggle_capture", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Capturing bool `json:"capturing"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.capturing = req.Capturing
		f.toggles = append(f.toggles, req.Capturing)
		f.mu.Unlock()
		writeJSON(w, map[string]bool{"success": true, "capturing": req.Capturing})
	})
	mux.HandleFunc("POST /audio/start_recording", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.recording {
			writeJSON(w, ActionResult{Success: false, Message: "Ya hay una grabación en curso"})
			return
		}
		f.recording = true
		writeJSON(w, ActionResult{Success: true, Message: "Grabación iniciada"})
	})
	mux.HandleFunc("POST /audio/stop_recording", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.recording = false
		writeJSON(w, ActionResult{Success: true, Message: "Grabación detenida"})
	})
	return mux
}

func newTestModel(t *testing.T) (Model, *fakeServer) {
	t.Helper()
	fs := &fakeServer{capturing: true}
	srv := httptest.NewServer(fs.handler())
	t.Cleanup(srv.Close)
	m := New(NewClient(srv.URL+"/", srv.Client()), 0)
	m.width = 80
	m.height = 24
	return m, fs
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)
	if m.connected {
		t.Error("new model should not be connected")
	}
	if m.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", m.interval, DefaultInterval)
	}
	if !strings.HasPrefix(m.statusText, "Connecting") {
		t.Errorf("statusText = %q", m.statusText)
	}
	if got := m.client.BaseURL(); strings.HasSuffix(got, "/") {
		t.Errorf("BaseURL kept trailing slash: %q", got)
	}
}

func TestPollUpdatesSnapshot(t *testing.T) {
	m, _ := newTestModel(t)
	m = run(t, m, pollCmd(m.client))

	if !m.connected {
		t.Fatalf("should be connected, error = %q", m.errorMessage)
	}
	if m.snapshot.Emotion.Emotion != emotion.Happy {
		t.Errorf("emotion = %q, want happy", m.snapshot.Emotion.Emotion)
	}
	if len(m.snapshot.History.Emotions) != 2 {
		t.Errorf("history = %d entries, want 2", len(m.snapshot.History.Emotions))
	}
	if m.statusText != "" {
		t.Errorf("statusText should clear after connecting, got %q", m.statusText)
	}

	view := m.View()
	for _, want := range []string{"happy", "History (2)", "01234567", "capturing"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSnapshotError(t *testing.T) {
	m, _ := newTestModel(t)
	m.connected = true

	updated, _ := m.Update(SnapshotMsg{Err: errors.New("connection refused")})
	m = updated.(Model)
	if m.connected {
		t.Error("should be disconnected after a failed poll")
	}
	if !strings.Contains(m.View(), "connection refused") {
		t.Error("view should show the poll error")
	}
}

func TestToggleCapture(t *testing.T) {
	m, fs := newTestModel(t)
	m = run(t, m, pollCmd(m.client))

	updated, cmd := m.Update(key(KeySpace))
	m = updated.(Model)
	if !m.busy {
		t.Error("should be busy while the toggle is in flight")
	}

	// A second press is ignored until the reply arrives.
	if _, again := m.Update(key(KeySpace)); again != nil {
		t.Error("second toggle should be ignored while busy")
	}

	m = run(t, m, cmd)
	if m.busy {
		t.Error("busy should clear after the reply")
	}
	if len(fs.toggles) != 1 || fs.toggles[0] {
		t.Fatalf("toggles = %v, want [false]", fs.toggles)
	}
	if m.statusText != "Captura pausada" {
		t.Errorf("statusText = %q", m.statusText)
	}
}

func TestToggleIgnoredWhenDisconnected(t *testing.T) {
	m, _ := newTestModel(t)
	if _, cmd := m.Update(key(KeySpace)); cmd != nil {
		t.Error("toggle should do nothing before the first poll")
	}
}

func TestRecordKeyStartsAndStops(t *testing.T) {
	m, fs := newTestModel(t)
	m = run(t, m, pollCmd(m.client))

	updated, cmd := m.Update(key(KeyRecord))
	m = run(t, updated.(Model), cmd)
	if !fs.recording {
		t.Fatal("server should be recording")
	}
	if m.statusText != "Grabación iniciada" {
		t.Errorf("statusText = %q", m.statusText)
	}

	m = run(t, m, pollCmd(m.client))
	if !m.snapshot.Recording.IsRecording {
		t.Fatal("snapshot should report recording")
	}
	if !strings.Contains(m.View(), "REC") {
		t.Error("view should show the recording indicator")
	}

	updated, cmd = m.Update(key(KeyRecord))
	run(t, updated.(Model), cmd)
	if fs.recording {
		t.Error("server should have stopped recording")
	}
}

func TestActionFailureShowsMessage(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(ActionMsg{Result: ActionResult{Success: false, Message: "Ya hay una grabación en curso"}})
	m = updated.(Model)
	if m.errorMessage != "Ya hay una grabación en curso" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	for _, k := range []tea.KeyMsg{key(KeyQuit), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%q: expected quit command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: expected tea.QuitMsg", k.String())
		}
	}
}

func TestWindowSize(t *testing.T) {
	m := New(NewClient("http://localhost:8080", nil), 0)
	if m.View() != "Initializing..." {
		t.Error("view before sizing should be the placeholder")
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)
	if m.width != 100 || m.height != 30 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		score float64
		full  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-3, 0},
	}
	for _, tt := range tests {
		got := bar(tt.score, 10)
		if n := strings.Count(got, "█"); n != tt.full {
			t.Errorf("bar(%v) has %d full cells, want %d", tt.score, n, tt.full)
		}
		if n := len([]rune(got)); n != 10 {
			t.Errorf("bar(%v) width = %d, want 10", tt.score, n)
		}
	}
}

func TestClientErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":false,"error":"audio recording unavailable"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.StartRecording(t.Context())
	if err == nil || !strings.Contains(err.Error(), "audio recording unavailable") {
		t.Fatalf("err = %v", err)
	}
}
