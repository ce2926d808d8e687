package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtilvans/flightboard/pkg/hass"
)

// scenarioState builds host state with two raw records: KL123 with a
// position, and an anonymous aircraft without one.
func scenarioState(withZone bool) hass.StateMap {
	state := hass.StateMap{
		"sensor.planes": hass.State{
			EntityID: "sensor.planes",
			State:    "2",
			Attributes: map[string]any{
				"aircraft": []any{
					map[string]any{
						"hex":       "484aa3",
						"flight":    "KL123",
						"altitude":  3000.0,
						"latitude":  52.1,
						"longitude": 4.1,
					},
					map[string]any{
						"hex": "a12345",
					},
				},
			},
		},
	}
	if withZone {
		state["zone.home"] = hass.State{
			EntityID:   "zone.home",
			Attributes: map[string]any{"latitude": 52.0, "longitude": 4.0},
		}
	}
	return state
}

func TestScenarioHideWithoutFlight(t *testing.T) {
	c, err := New(Options{
		Entity:  "sensor.planes",
		Zone:    "zone.home",
		Columns: []string{"flight", "altitude", "distance"},
		Hide:    &HideOptions{WithOutFlight: true},
	}, nil)
	require.NoError(t, err)

	table := c.Render(scenarioState(true))

	require.Len(t, table.Header.Cells, 3)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "KL123", table.Rows[0].Cells[0].Content)
	// Distance cell must carry a computed value.
	assert.NotEmpty(t, table.Rows[0].Cells[2].Content)

	aircraft := c.Aircraft(scenarioState(true))
	require.Len(t, aircraft, 1)
	require.NotNil(t, aircraft[0].Distance)
	assert.Greater(t, *aircraft[0].Distance, 0.0)
}

func TestScenarioShowWithoutFlight(t *testing.T) {
	c, err := New(Options{
		Entity:  "sensor.planes",
		Zone:    "zone.home",
		Columns: []string{"flight", "altitude", "distance"},
		Hide:    &HideOptions{WithOutFlight: false},
	}, nil)
	require.NoError(t, err)

	table := c.Render(scenarioState(true))

	require.Len(t, table.Rows, 2)
	for _, row := range table.Rows {
		assert.Len(t, row.Cells, 3)
	}
	// The positionless aircraft sorts last and renders an empty distance cell.
	last := table.Rows[1]
	assert.Empty(t, last.Cells[0].Content)
	assert.Empty(t, last.Cells[2].Content)
}

func TestScenarioNoReferencePoint(t *testing.T) {
	c, err := New(Options{
		Entity:  "sensor.planes",
		Columns: []string{"flight", "altitude", "distance"},
		Hide:    &HideOptions{WithOutFlight: false},
	}, nil)
	require.NoError(t, err)

	table := c.Render(scenarioState(false))

	// Distance column suppressed in header and body alike.
	require.Len(t, table.Header.Cells, 2)
	for _, row := range table.Rows {
		assert.Len(t, row.Cells, 2)
	}
}

func TestRenderMissingEntityState(t *testing.T) {
	c, err := New(Options{Entity: "sensor.planes", Zone: "zone.home"}, nil)
	require.NoError(t, err)

	// The configured entity is absent this cycle: the render must not
	// fail, just produce an empty-bodied table.
	table := c.Render(hass.StateMap{})
	assert.NotEmpty(t, table.Header.Cells)
	assert.Empty(t, table.Rows)

	// The next good push recovers on its own.
	table = c.Render(scenarioState(true))
	assert.NotEmpty(t, table.Rows)
}

func TestRenderRebuildsEachCycle(t *testing.T) {
	c, err := New(Options{
		Entity: "sensor.planes",
		Zone:   "zone.home",
		Hide:   &HideOptions{WithOutFlight: false},
	}, nil)
	require.NoError(t, err)

	first := c.Render(scenarioState(true))
	second := c.Render(scenarioState(true))
	assert.Equal(t, first, second)
}

func TestSettleDelayOnlyOnce(t *testing.T) {
	c, err := New(Options{Entity: "sensor.planes"}, nil)
	require.NoError(t, err)

	// Whatever the first call reports, the second must be zero.
	c.SettleDelay()
	assert.Zero(t, c.SettleDelay())
}

func TestPreferredHeight(t *testing.T) {
	c, err := New(Options{Entity: "sensor.planes"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, c.PreferredHeight(0))
	assert.Equal(t, 2, c.PreferredHeight(1))
	assert.Equal(t, 4, c.PreferredHeight(5))
}
