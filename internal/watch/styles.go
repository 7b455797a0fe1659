package watch

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/teslashibe/go-moodcam/pkg/emotion"
)

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorBlue    = lipgloss.Color("#5F87FF")
	ColorOrange  = lipgloss.Color("#FF8700")
	ColorGray    = lipgloss.Color("#666666")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// emotionColors matches the overlay colours of the stream.
var emotionColors = map[emotion.Label]lipgloss.Color{
	emotion.Angry:    ColorRed,
	emotion.Disgust:  ColorGreen,
	emotion.Fear:     ColorMagenta,
	emotion.Happy:    ColorYellow,
	emotion.Sad:      ColorBlue,
	emotion.Surprise: ColorOrange,
	emotion.Neutral:  ColorWhite,
}

// Base styles reused by the view.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	RecordingDotStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	IdleDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)
)

// EmotionStyle returns the bold style for label.
func EmotionStyle(label emotion.Label) lipgloss.Style {
	c, ok := emotionColors[label]
	if !ok {
		c = ColorWhite
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
