package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/teslashibe/go-moodcam/internal/httpc"
	"github.com/teslashibe/go-moodcam/pkg/recorder"
	"github.com/teslashibe/go-moodcam/pkg/session"
	"github.com/teslashibe/go-moodcam/pkg/web"
)

// Health is the /health payload.
type Health struct {
	Status      string  `json:"status"`
	Camera      string  `json:"camera"`
	JSONLogging string  `json:"json_logging"`
	SessionFile string  `json:"session_file"`
	Capturing   bool    `json:"capturing"`
	Timestamp   float64 `json:"timestamp"`
}

// Snapshot is one poll of the server.
type Snapshot struct {
	Health    Health
	Emotion   web.EmotionData
	History   session.Export
	Recording recorder.Status
}

// ActionResult is the reply of a control endpoint.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client reads the moodcam JSON API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL (e.g. http://localhost:8080).
func NewClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpc.Pick(hc, 5*time.Second),
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Snapshot polls health, emotion, history and recording status.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	if err := c.get(ctx, "/health", &s.Health); err != nil {
		return s, err
	}
	if err := c.get(ctx, "/emotion_data", &s.Emotion); err != nil {
		return s, err
	}
	if err := c.get(ctx, "/emotions_history", &s.History); err != nil {
		return s, err
	}
	// Recording is optional on the server.
	if err := c.get(ctx, "/audio/status", &s.Recording); err != nil {
		s.Recording = recorder.Status{}
	}
	return s, nil
}

// ToggleCapture pauses or resumes capture.
func (c *Client) ToggleCapture(ctx context.Context, capturing bool) (ActionResult, error) {
	var out ActionResult
	err := c.post(ctx, "/toggle_capture", map[string]bool{"capturing": capturing}, &out)
	if err == nil && out.Message == "" {
		if capturing {
			out.Message = "Captura reanudada"
		} else {
			out.Message = "Captura pausada"
		}
	}
	return out, err
}

// StartRecording starts an audio recording.
func (c *Client) StartRecording(ctx context.Context) (ActionResult, error) {
	var out ActionResult
	err := c.post(ctx, "/audio/start_recording", nil, &out)
	return out, err
}

// StopRecording stops the audio recording.
func (c *Client) StopRecording(ctx context.Context) (ActionResult, error) {
	var out ActionResult
	err := c.post(ctx, "/audio/stop_recording", nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var e ActionResult
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s: %s", req.URL.Path, e.Error)
		}
		return fmt.Errorf("%s: HTTP %d", req.URL.Path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", req.URL.Path, err)
	}
	return nil
}
