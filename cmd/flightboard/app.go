package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mtilvans/flightboard/pkg/adsb"
	"github.com/mtilvans/flightboard/pkg/card"
	"github.com/mtilvans/flightboard/pkg/config"
	"github.com/mtilvans/flightboard/pkg/hass"
)

// AppConfig holds the application wiring
type AppConfig struct {
	Config     *config.Config
	ConfigPath string
	Card       *card.Card
	Feed       *adsb.Client
	Details    card.DetailSource
}

// App represents the main application
type App struct {
	// Configuration
	config     *config.Config
	configPath string

	// Pipeline
	flightCard *card.Card
	feed       *adsb.Client
	details    card.DetailSource

	// UI components
	tviewApp   *tview.Application
	pages      *tview.Pages
	flights    *tview.Table
	status     *tview.TextView
	logs       *tview.TextView
	rootLayout *tview.Flex

	// State
	aircraft  []card.Aircraft
	rendered  card.Table
	lastFetch time.Time

	// Synchronization
	mu          sync.RWMutex
	updateTimer *time.Ticker
	stopChan    chan struct{}
}

// NewApp creates a new application instance
func NewApp(cfg *AppConfig) *App {
	app := &App{
		config:     cfg.Config,
		configPath: cfg.ConfigPath,
		flightCard: cfg.Card,
		feed:       cfg.Feed,
		details:    cfg.Details,
		stopChan:   make(chan struct{}),
	}

	app.setupUI()
	return app
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.tviewApp = tview.NewApplication()

	a.createFlightTable()
	a.createStatusPanel()
	a.createLogsPanel()
	a.createLayout()

	a.tviewApp.SetInputCapture(a.handleKeyboard)
}

// createFlightTable creates the main flight table view
func (a *App) createFlightTable() {
	a.flights = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.flights.SetBorder(true).SetTitle(" Nearby Aircraft ")
	a.flights.SetSelectedFunc(func(row, column int) {
		a.showDetail(row)
	})
}

// createStatusPanel creates the status info panel
func (a *App) createStatusPanel() {
	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.status.SetBorder(true).SetTitle(" Status ")
	a.updateStatus()
}

// createLogsPanel creates the log viewer panel
func (a *App) createLogsPanel() {
	a.logs = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(100)
	a.logs.SetBorder(true).SetTitle(" Logs ")

	a.addLog("INFO", "Application started")
}

// createLayout creates the main layout
func (a *App) createLayout() {
	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.status, 0, 1, false).
		AddItem(a.logs, 0, 1, false)

	a.rootLayout = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.flights, 0, 7, true).
		AddItem(sidebar, 0, 3, false)

	a.pages = tview.NewPages().
		AddPage("main", a.rootLayout, true, true)

	a.tviewApp.SetRoot(a.pages, true)
}

// updateStatus updates the status panel content
func (a *App) updateStatus() {
	a.mu.RLock()
	defer a.mu.RUnlock()

	cfg := a.flightCard.Config()

	var text string
	text += fmt.Sprintf("[yellow]ZONE:[-] [white]%s[-]\n", a.config.Zone.Name)
	text += fmt.Sprintf("[gray]Pos:[-]  [white]%.4f°, %.4f°[-]\n",
		a.config.Zone.Latitude, a.config.Zone.Longitude)
	text += fmt.Sprintf("[gray]Radius:[-] [white]%.0f NM[-]\n", a.config.Feed.RadiusNM)
	text += "\n"
	text += fmt.Sprintf("[yellow]FEED:[-] [white]%d aircraft[-]\n", len(a.aircraft))
	if !a.lastFetch.IsZero() {
		text += fmt.Sprintf("[gray]Updated:[-] [white]%s[-]\n", a.lastFetch.Format("15:04:05"))
	}
	text += fmt.Sprintf("[gray]Units:[-] [white]%s[-]\n", cfg.Units)
	enrichment := "off"
	if a.details != nil {
		enrichment = "on"
	}
	text += fmt.Sprintf("[gray]Enrichment:[-] [white]%s[-]\n", enrichment)

	a.status.SetText(text)
}

// addLog adds a log message to the log panel
func (a *App) addLog(level, message string) {
	timestamp := time.Now().Format("15:04:05")
	var color string
	switch level {
	case "ERROR":
		color = "red"
	case "WARN":
		color = "yellow"
	case "INFO":
		color = "white"
	default:
		color = "gray"
	}

	fmt.Fprintf(a.logs, "[gray]%s[-] [%s]%-5s[-] %s\n", timestamp, color, level, message)
}

// handleKeyboard handles keyboard input
func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	// Let the popup page handle its own keys
	if name, _ := a.pages.GetFrontPage(); name == "detail" {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			a.pages.RemovePage("detail")
			return nil
		}
		return event
	}

	switch {
	case event.Key() == tcell.KeyEscape || event.Rune() == 'q':
		a.Stop()
		return nil
	case event.Rune() == 'u':
		a.toggleUnits()
		return nil
	case event.Rune() == 'j':
		return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	case event.Rune() == 'k':
		return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	}

	return event
}

// toggleUnits switches the distance unit and rebuilds the card.
// The card configuration is immutable, so a unit change means a new card.
func (a *App) toggleUnits() {
	opts := a.config.Card
	if a.flightCard.Config().Units == card.UnitMiles {
		opts.Units = string(card.UnitKilometers)
	} else {
		opts.Units = string(card.UnitMiles)
	}

	next, err := card.New(opts, nil)
	if err != nil {
		a.addLog("ERROR", fmt.Sprintf("Failed to switch units: %v", err))
		return
	}

	a.mu.Lock()
	a.config.Card = opts
	a.flightCard = next
	a.mu.Unlock()

	a.addLog("INFO", fmt.Sprintf("Units: %s", next.Config().Units))
	go a.fetchAircraftData()
}

// showDetail opens the popup for a table row. Row 0 is the header.
func (a *App) showDetail(row int) {
	a.mu.RLock()
	index := row - 1
	if index < 0 || index >= len(a.aircraft) {
		a.mu.RUnlock()
		return
	}
	ac := a.aircraft[index]
	a.mu.RUnlock()

	detail := card.Detail{Aircraft: ac}
	if a.details != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		enriched, err := a.details.AircraftDetail(ctx, ac.Hex)
		cancel()
		if err != nil {
			a.addLog("WARN", fmt.Sprintf("Detail lookup failed for %s: %v", ac.Hex, err))
		} else if enriched != nil {
			detail.Registration = enriched.Registration
			detail.TypeDescription = enriched.TypeDescription
			detail.Operator = enriched.Operator
			detail.Route = enriched.Route
		}
	}

	modal := tview.NewModal().
		SetText(formatDetail(detail)).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.pages.RemovePage("detail")
		})

	a.pages.AddPage("detail", modal, true, true)
}

// formatDetail renders the popup body text
func formatDetail(d card.Detail) string {
	ac := d.Aircraft

	var b strings.Builder
	fmt.Fprintf(&b, "Aircraft %s\n\n", strings.ToUpper(ac.Hex))
	if ac.Flight != "" {
		fmt.Fprintf(&b, "Flight:       %s\n", ac.Flight)
	}
	registration := d.Registration
	if registration == "" {
		registration = ac.Registration
	}
	if registration != "" {
		fmt.Fprintf(&b, "Registration: %s\n", registration)
	}
	if d.TypeDescription != "" {
		fmt.Fprintf(&b, "Type:         %s\n", d.TypeDescription)
	}
	if d.Operator != "" {
		fmt.Fprintf(&b, "Operator:     %s\n", d.Operator)
	}
	if d.Route != "" {
		fmt.Fprintf(&b, "Route:        %s\n", d.Route)
	}
	if ac.Altitude != nil {
		fmt.Fprintf(&b, "Altitude:     %.0f ft\n", *ac.Altitude)
	}
	if ac.Speed != nil {
		fmt.Fprintf(&b, "Speed:        %.0f kt\n", *ac.Speed)
	}
	if ac.Distance != nil {
		fmt.Fprintf(&b, "Distance:     %.1f\n", *ac.Distance)
	}
	return b.String()
}

// Run starts the application
func (a *App) Run() error {
	interval := time.Duration(a.config.UpdateIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	a.updateTimer = time.NewTicker(interval)
	go a.updateLoop()

	return a.tviewApp.Run()
}

// updateLoop periodically fetches and redraws aircraft data
func (a *App) updateLoop() {
	a.fetchAircraftData()

	for {
		select {
		case <-a.updateTimer.C:
			a.fetchAircraftData()
		case <-a.stopChan:
			return
		}
	}
}

// fetchAircraftData polls the feed, runs the card pipeline and redraws
func (a *App) fetchAircraftData() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var feedAircraft []adsb.Aircraft
	err := adsb.RetryWithBackoff(ctx, adsb.DefaultRetryConfig(), func() error {
		var fetchErr error
		feedAircraft, fetchErr = a.feed.GetAircraft(ctx,
			a.config.Zone.Latitude,
			a.config.Zone.Longitude,
			a.config.Feed.RadiusNM,
		)
		return fetchErr
	})
	if err != nil {
		a.addLog("ERROR", fmt.Sprintf("Failed to fetch aircraft: %v", err))
		return
	}

	a.mu.RLock()
	flightCard := a.flightCard
	a.mu.RUnlock()

	state := a.buildStateMap(flightCard.Config(), feedAircraft)

	a.mu.Lock()
	oldCount := len(a.aircraft)
	a.aircraft = flightCard.Aircraft(state)
	a.rendered = flightCard.Render(state)
	a.lastFetch = time.Now()
	newCount := len(a.aircraft)
	a.mu.Unlock()

	if oldCount != newCount {
		a.addLog("INFO", fmt.Sprintf("Aircraft count: %d", newCount))
	}

	a.tviewApp.QueueUpdateDraw(func() {
		a.drawTable()
		a.updateStatus()
	})
}

// buildStateMap packages the feed response and the configured zone as
// host entity state for the card pipeline
func (a *App) buildStateMap(cfg card.Config, aircraft []adsb.Aircraft) hass.StateMap {
	state := hass.StateMap{
		cfg.Entity: adsb.EntityState(cfg.Entity, cfg.Attribute, aircraft),
	}
	if cfg.Zone != "" {
		state[cfg.Zone] = hass.State{
			EntityID: cfg.Zone,
			State:    "0",
			Attributes: map[string]any{
				"friendly_name": a.config.Zone.Name,
				"latitude":      a.config.Zone.Latitude,
				"longitude":     a.config.Zone.Longitude,
			},
		}
	}
	return state
}

// drawTable rebuilds the tview table from the rendered card table.
// Caller must hold no locks; runs on the UI goroutine.
func (a *App) drawTable() {
	a.mu.RLock()
	rendered := a.rendered
	aircraft := a.aircraft
	a.mu.RUnlock()

	a.flights.Clear()

	for col, cell := range rendered.Header.Cells {
		a.flights.SetCell(0, col, tview.NewTableCell(cell.Content).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	for rowIndex, row := range rendered.Rows {
		var ac card.Aircraft
		if rowIndex < len(aircraft) {
			ac = aircraft[rowIndex]
		}
		for col, cell := range row.Cells {
			a.flights.SetCell(rowIndex+1, col,
				tview.NewTableCell(terminalCellText(cell, ac)))
		}
	}

	if len(rendered.Rows) > 0 {
		row, _ := a.flights.GetSelection()
		if row < 1 || row > len(rendered.Rows) {
			a.flights.Select(1, 0)
		}
	}
}

// terminalCellText converts one card cell to plain terminal text.
// Markup cells (flag image, icon span) carry HTML fragments, so their
// terminal form is derived from the aircraft record instead.
func terminalCellText(cell card.Cell, ac card.Aircraft) string {
	if !cell.Markup {
		return cell.Content
	}
	if strings.Contains(cell.Content, "<img") {
		return strings.ToUpper(flagCode(ac.Flag))
	}
	return ac.Icon
}

// flagCode extracts the country code from a flag asset path,
// "flags/nl.svg" -> "nl"
func flagCode(assetPath string) string {
	base := assetPath
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".svg")
}

// Stop stops the application
func (a *App) Stop() {
	a.addLog("INFO", "Shutting down...")

	if a.updateTimer != nil {
		a.updateTimer.Stop()
	}
	close(a.stopChan)

	a.tviewApp.Stop()
}
