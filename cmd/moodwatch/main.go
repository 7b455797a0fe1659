// moodwatch - terminal dashboard for a running moodcam server.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/teslashibe/go-moodcam/internal/watch"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "moodcam server address")
	interval := flag.Duration("interval", watch.DefaultInterval, "Poll interval")
	flag.Parse()

	m := watch.New(watch.NewClient(*url, nil), *interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "moodwatch: %v\n", err)
		os.Exit(1)
	}
}
