package card

import (
	"context"
	"time"

	"github.com/mtilvans/flightboard/pkg/aircraftdb"
	"github.com/mtilvans/flightboard/pkg/hass"
)

// referenceSettleDelay gates the very first render after this card
// instance triggered the background load of the type reference, giving
// a fast load a chance to land before the initial table appears. The
// steady-state update path is never delayed.
const referenceSettleDelay = 50 * time.Millisecond

// Card runs the flight table pipeline for one widget instance. The
// configuration is validated once at construction and immutable
// afterwards; every host state push re-runs the full pipeline.
type Card struct {
	cfg      Config
	registry *Registry
	settle   time.Duration
}

// New validates the options against the registry and returns a card.
// Construction fails loudly on configuration errors; they are the
// caller's to surface and are never retried. Passing a nil registry
// uses the default catalog.
func New(opts Options, reg *Registry) (*Card, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	cfg, err := Validate(opts, reg)
	if err != nil {
		return nil, err
	}

	c := &Card{cfg: cfg, registry: reg}
	if aircraftdb.Preload() {
		c.settle = referenceSettleDelay
	}
	return c, nil
}

// Config returns the validated configuration.
func (c *Card) Config() Config {
	return c.cfg
}

// SettleDelay returns how long the host should wait before the first
// render, and zero on every later call. Only the constructor call that
// triggered the type reference load ever reports a delay.
func (c *Card) SettleDelay() time.Duration {
	d := c.settle
	c.settle = 0
	return d
}

// Aircraft runs the data half of the pipeline: normalize, filter, sort.
// A cycle whose host state lacks the configured entity yields an empty
// list; the next state push recovers on its own.
func (c *Card) Aircraft(state hass.StateMap) []Aircraft {
	entity, ok := state.Get(c.cfg.Entity)
	if !ok {
		return nil
	}

	dist := NewDistanceService(c.cfg.Zone, state, c.cfg.Units)
	list := NormalizeAll(entity.AircraftList(c.cfg.Attribute), dist)
	list = FilterVisible(list, c.cfg)
	return SortByDistance(list)
}

// Render runs the full pipeline for one host state push and returns the
// table structure for the content area. Per-cycle data problems degrade
// to an empty-bodied table rather than failing the widget: the host
// drives re-invocation, so the next good push heals the display.
func (c *Card) Render(state hass.StateMap) Table {
	dist := NewDistanceService(c.cfg.Zone, state, c.cfg.Units)
	cols := visibleColumns(c.cfg, c.registry, dist.Available())
	return BuildTable(c.cfg, cols, c.Aircraft(state))
}

// PreferredHeight is the layout hint handed to the host, in card rows.
func (c *Card) PreferredHeight(rowCount int) int {
	if rowCount < 1 {
		rowCount = 1
	}
	return 1 + (rowCount+1)/2
}

// Detail is the enriched record the popup surface shows for one row.
type Detail struct {
	Aircraft Aircraft

	// Registration, TypeDescription, Operator and Route come from the
	// enrichment source; any of them may be empty
	Registration    string
	TypeDescription string
	Operator        string
	Route           string
}

// DetailSource resolves a clicked row's hex address to an enriched
// detail record. Implementations return (nil, nil) when nothing is
// known about the address.
type DetailSource interface {
	AircraftDetail(ctx context.Context, hex string) (*Detail, error)
}
