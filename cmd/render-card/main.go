package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mtilvans/flightboard/pkg/card"
	"github.com/mtilvans/flightboard/pkg/config"
	"github.com/mtilvans/flightboard/pkg/hass"
)

// render-card renders the flight table card from a host state snapshot
// file. By default it watches the file and re-renders in the terminal;
// with -html it prints the markup fragment once and exits.

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	statePath := flag.String("state", "state.json", "Path to host state snapshot file")
	htmlOut := flag.Bool("html", false, "Print the HTML fragment once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	flightCard, err := card.New(cfg.Card, nil)
	if err != nil {
		log.Fatalf("Invalid card configuration: %v", err)
	}

	time.Sleep(flightCard.SettleDelay())

	if *htmlOut {
		state, err := loadStateFile(*statePath)
		if err != nil {
			log.Fatalf("Failed to load state file: %v", err)
		}
		fmt.Println(flightCard.Render(state).HTML())
		return
	}

	m := model{
		flightCard: flightCard,
		statePath:  *statePath,
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

type model struct {
	flightCard *card.Card
	statePath  string
	table      card.Table
	rowCount   int
	updated    time.Time
	err        error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tickMsg:
		state, err := loadStateFile(m.statePath)
		if err != nil {
			m.err = err
		} else {
			m.err = nil
			m.table = m.flightCard.Render(state)
			m.rowCount = len(m.table.Rows)
			m.updated = time.Time(msg)
		}
		return m, tick()
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	widths := columnWidths(m.table)

	b.WriteString(renderRow(m.table.Header, widths, headerStyle))
	b.WriteString("\n")
	for _, row := range m.table.Rows {
		b.WriteString(renderRow(row, widths, cellStyle))
		b.WriteString("\n")
	}
	if m.rowCount == 0 {
		b.WriteString(footerStyle.Render("(no aircraft)"))
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("%d aircraft · height hint %d",
		m.rowCount, m.flightCard.PreferredHeight(m.rowCount))
	if !m.updated.IsZero() {
		footer += " · updated " + m.updated.Format("15:04:05")
	}
	footer += " · q to quit"
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(footer))
	b.WriteString("\n")

	return b.String()
}

// renderRow renders one table row padded to the column widths
func renderRow(row card.Row, widths []int, style lipgloss.Style) string {
	parts := make([]string, 0, len(row.Cells))
	for i, cell := range row.Cells {
		width := 0
		if i < len(widths) {
			width = widths[i]
		}
		parts = append(parts, style.Render(fmt.Sprintf("%-*s", width, displayText(cell))))
	}
	return strings.Join(parts, "  ")
}

// columnWidths computes the display width of every column
func columnWidths(t card.Table) []int {
	widths := make([]int, len(t.Header.Cells))
	measure := func(row card.Row) {
		for i, cell := range row.Cells {
			if i >= len(widths) {
				break
			}
			if n := len([]rune(displayText(cell))); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}
	return widths
}

// displayText flattens a cell to terminal text. Markup cells carry
// HTML fragments, so only their asset reference survives.
func displayText(cell card.Cell) string {
	if !cell.Markup {
		return cell.Content
	}
	if i := strings.Index(cell.Content, `src="`); i >= 0 {
		rest := cell.Content[i+len(`src="`):]
		if j := strings.Index(rest, `"`); j >= 0 {
			return rest[:j]
		}
	}
	if i := strings.Index(cell.Content, "icon-"); i >= 0 {
		rest := cell.Content[i+len("icon-"):]
		if j := strings.Index(rest, `"`); j >= 0 {
			return rest[:j]
		}
	}
	return ""
}

// stateFileEntity is the on-disk form of one entity state
type stateFileEntity struct {
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// loadStateFile reads a host state snapshot, a JSON object keyed by
// entity ID with state and attributes per entity
func loadStateFile(path string) (hass.StateMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var raw map[string]stateFileEntity
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	state := make(hass.StateMap, len(raw))
	for entityID, entry := range raw {
		state[entityID] = hass.State{
			EntityID:   entityID,
			State:      entry.State,
			Attributes: entry.Attributes,
		}
	}
	return state, nil
}
