// Package watch is a terminal dashboard for a running moodcam server.
// It polls the JSON API and exposes the capture and recording toggles.
package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teslashibe/go-moodcam/pkg/emotion"
)

const (
	// DefaultInterval is the poll period.
	DefaultInterval = time.Second

	requestTimeout = 5 * time.Second
	historyShown   = 12
	barWidth       = 24
)

// Model is the root bubbletea model for the moodcam dashboard.
type Model struct {
	client   *Client
	interval time.Duration

	// Last poll
	snapshot  Snapshot
	connected bool
	polledAt  time.Time

	// Pending control request
	busy bool

	// Messages
	errorMessage string
	statusText   string

	width  int
	height int
}

// New creates a Model polling client every interval.
func New(client *Client, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Model{
		client:     client,
		interval:   interval,
		statusText: "Connecting to " + client.BaseURL() + "...",
	}
}

// Init polls right away and starts the ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(pollCmd(m.client), tickCmd(m.interval))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func pollCmd(c *Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		s, err := c.Snapshot(ctx)
		return SnapshotMsg{Snapshot: s, Err: err}
	}
}

func actionCmd(fn func(context.Context) (ActionResult, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		r, err := fn(ctx)
		return ActionMsg{Result: r, Err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m, tea.Batch(pollCmd(m.client), tickCmd(m.interval))

	case SnapshotMsg:
		m.polledAt = time.Now()
		if msg.Err != nil {
			m.connected = false
			m.errorMessage = msg.Err.Error()
			return m, nil
		}
		m.connected = true
		m.errorMessage = ""
		m.snapshot = msg.Snapshot
		if strings.HasPrefix(m.statusText, "Connecting") {
			m.statusText = ""
		}
		return m, nil

	case ActionMsg:
		m.busy = false
		switch {
		case msg.Err != nil:
			m.errorMessage = msg.Err.Error()
		case !msg.Result.Success:
			m.errorMessage = msg.Result.Message
		default:
			m.errorMessage = ""
			m.statusText = msg.Result.Message
		}
		return m, pollCmd(m.client)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit

	case KeySpace:
		if !m.connected || m.busy {
			return m, nil
		}
		m.busy = true
		want := !m.snapshot.Health.Capturing
		return m, actionCmd(func(ctx context.Context) (ActionResult, error) {
			return m.client.ToggleCapture(ctx, want)
		})

	case KeyRecord, KeyRecordUpper:
		if !m.connected || m.busy {
			return m, nil
		}
		m.busy = true
		if m.snapshot.Recording.IsRecording {
			return m, actionCmd(m.client.StopRecording)
		}
		return m, actionCmd(m.client.StartRecording)

	case KeyRefresh:
		return m, pollCmd(m.client)
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sections := []string{m.renderHeader(), m.renderStatusBar()}
	if m.connected {
		sections = append(sections,
			PanelStyle.Render(m.renderEmotion()),
			PanelStyle.Render(m.renderHistory()),
		)
	}
	if m.errorMessage != "" {
		sections = append(sections, ErrorStyle.Render("Error: ")+m.errorMessage)
	} else if m.statusText != "" {
		sections = append(sections, NoticeStyle.Render(m.statusText))
	}
	sections = append(sections, HelpStyle.Render("space capture  r record  f refresh  q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("moodcam")
	addr := StatusStyle.Render(m.client.BaseURL())
	return title + "  " + addr
}

func (m Model) renderStatusBar() string {
	if !m.connected {
		return IdleDotStyle.Render("○") + " disconnected"
	}
	h := m.snapshot.Health

	capture := "paused"
	if h.Capturing {
		capture = "capturing"
	}
	rec := IdleDotStyle.Render("○") + " idle"
	if m.snapshot.Recording.IsRecording {
		rec = RecordingDotStyle.Render("●") + fmt.Sprintf(" REC %.1fs", m.snapshot.Recording.Duration)
	}
	parts := []string{
		"camera " + h.Camera,
		capture,
		rec,
		"session " + shortID(m.snapshot.History.SessionID),
	}
	return StatusStyle.Render(strings.Join(parts, " | "))
}

func (m Model) renderEmotion() string {
	e := m.snapshot.Emotion
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Current"))
	b.WriteString("  ")
	b.WriteString(EmotionStyle(e.Emotion).Render(string(e.Emotion)))
	fmt.Fprintf(&b, " %.0f%%\n", e.Confidence)

	for _, label := range emotion.Labels {
		score := e.AllEmotions[label]
		fmt.Fprintf(&b, "%-9s %s %5.1f\n", label, bar(score, barWidth), score)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderHistory() string {
	entries := m.snapshot.History.Emotions
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render(fmt.Sprintf("History (%d)", len(entries))))
	if len(entries) == 0 {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render("no observations yet"))
		return b.String()
	}

	start := max(0, len(entries)-historyShown)
	labels := make([]string, 0, len(entries)-start)
	for _, e := range entries[start:] {
		labels = append(labels, EmotionStyle(e.Emotion).Render(string(e.Emotion)))
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(labels, " "))
	return b.String()
}

// bar draws score (0-100) as a block bar of the given width.
func bar(score float64, width int) string {
	score = min(max(score, 0), 100)
	n := int(score / 100 * float64(width))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}
