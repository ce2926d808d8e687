// Package card implements the flight table pipeline: a validated column
// configuration is applied to raw aircraft records pushed by the
// dashboard host, producing a normalized, distance-annotated, sorted
// aircraft set and a semantic table structure ready for the host's
// content area.
package card

import "fmt"

// Column is one selectable table column in the catalog.
type Column struct {
	// Key uniquely identifies the column (e.g. "altitude")
	Key string

	// Weight is the column's cost against the rendering budget
	Weight int

	// Show determines whether the column may render at all.
	// Only the distance column is ever suppressed, and only as a
	// per-render decision when no reference point is configured.
	Show bool

	// Unit is an optional suffix appended to numeric cell values
	Unit string

	// Styles holds presentation hints (alignment, width) applied to
	// both the header cell and every body cell of the column
	Styles map[string]string
}

// Registry is the read-only catalog of selectable columns.
// A registry is never mutated after construction; visibility decisions
// that depend on runtime configuration are computed per render instead,
// so multiple card instances can safely share one catalog.
type Registry struct {
	columns map[string]Column
}

// UnknownColumnError reports a configured column key absent from the catalog.
type UnknownColumnError struct {
	Key string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Key)
}

// NewRegistry builds a registry from a column list.
// Later duplicates of a key overwrite earlier ones.
func NewRegistry(columns []Column) *Registry {
	m := make(map[string]Column, len(columns))
	for _, c := range columns {
		m[c.Key] = c
	}
	return &Registry{columns: m}
}

// Get returns the catalog entry for a key.
func (r *Registry) Get(key string) (Column, error) {
	c, ok := r.columns[key]
	if !ok {
		return Column{}, &UnknownColumnError{Key: key}
	}
	return c, nil
}

// DefaultRegistry returns the stock column catalog.
// The default column selection sums to exactly the weight budget.
func DefaultRegistry() *Registry {
	return NewRegistry([]Column{
		{Key: "icon", Weight: 1, Show: true,
			Styles: map[string]string{"text-align": "center", "width": "20px"}},
		{Key: "flag", Weight: 1, Show: true,
			Styles: map[string]string{"text-align": "center", "width": "20px"}},
		{Key: "registration", Weight: 3, Show: true},
		{Key: "flight", Weight: 3, Show: true},
		{Key: "altitude", Weight: 2, Show: true, Unit: "ft",
			Styles: map[string]string{"text-align": "right"}},
		{Key: "speed", Weight: 2, Show: true, Unit: "kt",
			Styles: map[string]string{"text-align": "right"}},
		{Key: "distance", Weight: 2, Show: true,
			Styles: map[string]string{"text-align": "right"}},
		{Key: "track", Weight: 2, Show: true, Unit: "°",
			Styles: map[string]string{"text-align": "right"}},
		{Key: "hex", Weight: 3, Show: true},
	})
}

// visibleColumns resolves the configured column keys against the catalog
// in display order, dropping columns whose effective visibility is off.
// The distance column is dropped when no reference point is available;
// this is a derived, per-render view, never a catalog mutation.
// Config validation has already established that every key exists.
func visibleColumns(cfg Config, reg *Registry, distanceAvailable bool) []Column {
	cols := make([]Column, 0, len(cfg.Columns))
	for _, key := range cfg.Columns {
		c, err := reg.Get(key)
		if err != nil {
			continue
		}
		if !c.Show {
			continue
		}
		if key == "distance" && !distanceAvailable {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}
