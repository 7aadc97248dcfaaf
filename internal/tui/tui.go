package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mverstraete/mp4merge/pkg/merge"
	"github.com/mverstraete/mp4merge/pkg/models"
	"github.com/mverstraete/mp4merge/pkg/probe"
)

// --- Styles ---
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---

// eventMsg wraps one merge event pulled off the channel
type eventMsg struct {
	event merge.Event
}

// closedMsg signals the event channel was closed (result delivered)
type closedMsg struct{}

// Model renders merge progress from the engine's event channel
type Model struct {
	request *models.MergeRequest
	events  <-chan merge.Event

	bar       progress.Model
	fraction  float64
	completed int
	total     int
	lastFile  string
	bytes     int64

	result *models.MergeResult
}

// New creates a model consuming the given event channel
func New(request *models.MergeRequest, events <-chan merge.Event) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 48

	return Model{
		request: request,
		events:  events,
		bar:     bar,
		total:   len(request.Inputs),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// waitForEvent blocks on the merge event channel and feeds the next
// event into the update loop; progress updates arrive in the order
// they were produced, followed by exactly one result event.
func waitForEvent(events <-chan merge.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case eventMsg:
		switch ev := msg.event.(type) {
		case merge.ProgressEvent:
			m.fraction = ev.Progress.Fraction
			m.completed = ev.Progress.FilesCompleted
			m.lastFile = ev.Progress.Path
			m.bytes = ev.Progress.BytesWritten
		case merge.ResultEvent:
			result := ev.Result
			m.result = &result
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Merging %d files → %s", m.total, m.request.OutputPath)))
	b.WriteString("\n\n")

	if m.result == nil {
		b.WriteString(m.bar.ViewAs(m.fraction))
		b.WriteString(fmt.Sprintf("\n\n%d/%d files · %s written",
			m.completed, m.total, probe.FormatSize(m.bytes)))
		if m.lastFile != "" {
			b.WriteString(faintStyle.Render(fmt.Sprintf("\nlast: %s", m.lastFile)))
		}
		b.WriteString("\n")
		return b.String()
	}

	if m.result.Success() {
		b.WriteString(m.bar.ViewAs(1.0))
		b.WriteString("\n\n")
		b.WriteString(successStyle.Render("Merge complete"))
		b.WriteString(fmt.Sprintf("\n  %s (%s)\n", m.result.OutputPath, probe.FormatSize(m.result.BytesWritten)))
		if m.result.Checksum != "" {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  sha256 %s", m.result.Checksum)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(errorStyle.Render("Merge failed"))
		b.WriteString(fmt.Sprintf("\n  %v\n", m.result.Err))
		if m.result.BytesWritten > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  partial output left at %s", m.result.OutputPath)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Run drives the display until the merge delivers its result. The
// returned result is the one carried by the terminal event; quitting
// the display early returns an error instead.
func Run(request *models.MergeRequest, events <-chan merge.Event) (*models.MergeResult, error) {
	p := tea.NewProgram(New(request, events))

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(Model)
	if !ok || m.result == nil {
		return nil, fmt.Errorf("display closed before the merge finished")
	}

	return m.result, nil
}
