package card

import (
	"errors"
	"fmt"
)

// WeightBudget caps the summed weight of the selected columns.
// A selection weighing exactly the budget is accepted.
const WeightBudget = 15

// ErrMissingEntity reports a configuration without the mandatory entity.
var ErrMissingEntity = errors.New("card config: entity is required")

// WeightBudgetError reports a column selection exceeding the weight budget.
type WeightBudgetError struct {
	Total  int
	Budget int
}

func (e *WeightBudgetError) Error() string {
	return fmt.Sprintf("selected columns weigh %d, budget is %d", e.Total, e.Budget)
}

// HideOptions are the row visibility filters.
type HideOptions struct {
	// WithOutFlight hides aircraft with no known callsign
	WithOutFlight bool `json:"with_out_flight"`
}

// Options is the raw, user-supplied card configuration before
// validation. Zero values mean "use the default".
type Options struct {
	// Entity is the host entity carrying the aircraft list (mandatory)
	Entity string `json:"entity"`

	// Attribute is the entity attribute holding the list
	Attribute string `json:"attribute"`

	// Zone is the reference point entity for distance computation
	Zone string `json:"zone"`

	// Columns lists column keys in display order
	Columns []string `json:"columns"`

	// Hide holds row filters; nil means defaults
	Hide *HideOptions `json:"hide"`

	// Sort is the requested sort key. Only "distance" ordering is
	// implemented; see the Sorter contract.
	Sort string `json:"sort"`

	// Lang is the locale for header and popup text
	Lang string `json:"lang"`

	// Popup enables row click-through to the detail surface
	Popup bool `json:"popup"`

	// Units selects the distance unit: "km" or "mi"
	Units string `json:"units"`
}

// Config is a validated, immutable card configuration.
type Config struct {
	Entity    string
	Attribute string
	Zone      string
	Columns   []string
	Hide      HideOptions
	Sort      string
	Lang      string
	Popup     bool
	Units     Unit
}

// DefaultColumns is the column selection used when none is configured.
var DefaultColumns = []string{
	"flag", "registration", "flight", "altitude", "speed", "distance", "track",
}

// Validate merges the raw options over the documented defaults and checks
// them against the catalog. It is a pure function: it touches no host
// state and has no side effects. Violations are fatal at configuration
// time and are never retried.
func Validate(opts Options, reg *Registry) (Config, error) {
	if opts.Entity == "" {
		return Config{}, ErrMissingEntity
	}

	cfg := Config{
		Entity:    opts.Entity,
		Attribute: "aircraft",
		Zone:      opts.Zone,
		Columns:   DefaultColumns,
		Hide:      HideOptions{WithOutFlight: true},
		Sort:      "distance",
		Lang:      "en",
		Units:     UnitKilometers,
		Popup:     opts.Popup,
	}
	if opts.Attribute != "" {
		cfg.Attribute = opts.Attribute
	}
	if len(opts.Columns) > 0 {
		cfg.Columns = opts.Columns
	}
	if opts.Hide != nil {
		cfg.Hide = *opts.Hide
	}
	if opts.Sort != "" {
		cfg.Sort = opts.Sort
	}
	if opts.Lang != "" {
		cfg.Lang = opts.Lang
	}
	if opts.Units == string(UnitMiles) {
		cfg.Units = UnitMiles
	}

	total := 0
	for _, key := range cfg.Columns {
		col, err := reg.Get(key)
		if err != nil {
			return Config{}, err
		}
		total += col.Weight
	}
	if total > WeightBudget {
		return Config{}, &WeightBudgetError{Total: total, Budget: WeightBudget}
	}

	return cfg, nil
}
