// Package dashboard is a terminal view of a receiver's hook tensions.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mooring/internal/monitor"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HookSource is where the dashboard reads hook state from
type HookSource interface {
	Hooks(ctx context.Context) ([]monitor.HookStatus, error)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	infoStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	tableBorder   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

var columns = []table.Column{
	{Title: "Hook", Width: 24},
	{Title: "Tension", Width: 8},
	{Title: "%", Width: 7},
	{Title: "Rate", Width: 6},
	{Title: "Line", Width: 8},
	{Title: "Fault", Width: 6},
	{Title: "Level", Width: 7},
}

type hooksMsg struct {
	hooks []monitor.HookStatus
	err   error
	at    time.Time
}

type tickMsg time.Time

// Model is the bubbletea model polling a HookSource
type Model struct {
	source    HookSource
	interval  time.Duration
	attention float64
	critical  float64

	table   table.Model
	help    help.Model
	hooks   []monitor.HookStatus
	err     error
	updated time.Time
}

// New creates a dashboard polling source every interval. Rows at or over
// the attention and critical percentages are highlighted.
func New(source HookSource, interval time.Duration, attention, critical float64) Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return Model{
		source:    source,
		interval:  interval,
		attention: attention,
		critical:  critical,
		table:     t,
		help:      help.New(),
	}
}

// Run starts the dashboard in the terminal and blocks until it quits
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	source := m.source
	timeout := m.interval
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		hooks, err := source.Hooks(ctx)
		return hooksMsg{hooks: hooks, err: err, at: time.Now()}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return m, m.fetch()
		}
	case tea.WindowSizeMsg:
		if h := msg.Height - 6; h > 3 {
			m.table.SetHeight(h)
		}
	case tickMsg:
		return m, m.fetch()
	case hooksMsg:
		m.err = msg.err
		if msg.err == nil {
			m.hooks = msg.hooks
			m.updated = msg.at
			m.table.SetRows(m.rows())
		}
		return m, m.tick()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.hooks))
	for _, h := range m.hooks {
		rows = append(rows, table.Row{
			h.Key,
			intOrDash(h.Tension),
			percentOrDash(h.Percent),
			fmt.Sprintf("%+d", h.RateOfChange),
			lineOrDash(h),
			faultMark(h.Faulted),
			string(h.Level),
		})
	}
	return rows
}

// counts returns hooks at or over the attention and critical thresholds
func (m Model) counts() (attention, critical int) {
	for _, h := range m.hooks {
		if h.Percent == nil {
			continue
		}
		if *h.Percent >= m.critical {
			critical++
		} else if *h.Percent >= m.attention {
			attention++
		}
	}
	return attention, critical
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mooring hooks"))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render("fetch error: " + m.err.Error()))
	case m.updated.IsZero():
		b.WriteString(infoStyle.Render("waiting for receiver..."))
	default:
		attention, critical := m.counts()
		b.WriteString(infoStyle.Render(fmt.Sprintf("%d hooks, updated %s  ", len(m.hooks), m.updated.Format("15:04:05"))))
		if critical > 0 {
			b.WriteString(criticalStyle.Render(fmt.Sprintf("%d critical ", critical)))
		}
		if attention > 0 {
			b.WriteString(warnStyle.Render(fmt.Sprintf("%d attention", attention)))
		}
	}
	b.WriteString("\n")
	b.WriteString(tableBorder.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func percentOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *v)
}

func lineOrDash(h monitor.HookStatus) string {
	if h.AttachedLine == nil {
		return "-"
	}
	return string(*h.AttachedLine)
}

func faultMark(faulted bool) string {
	if faulted {
		return "yes"
	}
	return ""
}
