package card

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/mtilvans/flightboard/pkg/lang"
)

// Cell is one semantic table cell.
type Cell struct {
	// Content is the cell text, or a markup fragment when Markup is set
	Content string

	// Markup marks Content as pre-built markup (flag/icon cells);
	// plain content is escaped when rendered to HTML
	Markup bool

	// Header distinguishes header cells from data cells
	Header bool

	// Styles holds the column's presentation hints
	Styles map[string]string
}

// Row is an ordered sequence of cells plus optional row attributes.
type Row struct {
	Cells []Cell

	// Attrs carries arbitrary string attributes; a body row gets a
	// "data-hex" attribute when the popup is enabled so the detail
	// surface can resolve a clicked row without re-traversing the list
	Attrs map[string]string
}

// Table is the built table structure: one header row and the body rows,
// with identical cell counts in every row.
type Table struct {
	Header Row
	Rows   []Row
}

// BuildTable produces the table for one render cycle in two passes over
// the same visible column sequence, so header and body cell counts
// always match. Aircraft are expected in final display order.
func BuildTable(cfg Config, cols []Column, aircraft []Aircraft) Table {
	t := Table{Rows: make([]Row, 0, len(aircraft))}

	header := Row{Cells: make([]Cell, 0, len(cols))}
	for _, col := range cols {
		header.Cells = append(header.Cells, Cell{
			Content: lang.Lookup(cfg.Lang, "table.head."+col.Key),
			Header:  true,
			Styles:  col.Styles,
		})
	}
	t.Header = header

	for _, ac := range aircraft {
		row := Row{Cells: make([]Cell, 0, len(cols))}
		for _, col := range cols {
			row.Cells = append(row.Cells, resolveCell(col, ac, cfg.Units))
		}
		if cfg.Popup {
			row.Attrs = map[string]string{"data-hex": ac.Hex}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// resolveCell produces one data cell for a column/aircraft pair.
// Missing values render as empty cells, never as placeholder errors.
func resolveCell(col Column, ac Aircraft, unit Unit) Cell {
	cell := Cell{Styles: col.Styles}

	switch col.Key {
	case "flag":
		if ac.Flag != "" {
			cell.Content = fmt.Sprintf(`<img src=%q width="20" alt="">`, ac.Flag)
			cell.Markup = true
		}
	case "icon":
		cell.Content = fmt.Sprintf(`<span class="icon icon-%s"></span>`, ac.Icon)
		cell.Markup = true
	case "registration":
		cell.Content = ac.Registration
	case "flight":
		cell.Content = ac.Flight
	case "hex":
		cell.Content = ac.Hex
	case "altitude":
		cell.Content = formatNumber(ac.Altitude, 0, col.Unit)
	case "speed":
		cell.Content = formatNumber(ac.Speed, 0, col.Unit)
	case "distance":
		cell.Content = formatNumber(ac.Distance, 1, string(unit))
	case "track":
		if ac.Track != nil {
			cell.Content = fmt.Sprintf("%s %.0f%s", TrackArrow(*ac.Track), *ac.Track, col.Unit)
		}
	}

	return cell
}

// trackArrows is indexed by 45-degree octant starting at north.
var trackArrows = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

// TrackArrow returns the arrow glyph pointing along a ground track.
// The track is expected in [0, 360).
func TrackArrow(track float64) string {
	octant := int((track+22.5)/45.0) % 8
	if octant < 0 {
		octant += 8
	}
	return trackArrows[octant]
}

func formatNumber(v *float64, decimals int, unit string) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%.*f", decimals, *v)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// HTML renders the table as a markup fragment for the host content area.
// Plain cell content is escaped; markup cells are emitted as-is.
func (t Table) HTML() string {
	var b strings.Builder
	b.WriteString("<table>\n<thead>\n")
	writeRow(&b, t.Header, "th")
	b.WriteString("</thead>\n<tbody>\n")
	for _, row := range t.Rows {
		writeRow(&b, row, "td")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

func writeRow(b *strings.Builder, row Row, tag string) {
	b.WriteString("<tr")
	for _, key := range sortedKeys(row.Attrs) {
		fmt.Fprintf(b, " %s=%q", key, row.Attrs[key])
	}
	b.WriteString(">")

	for _, cell := range row.Cells {
		b.WriteString("<" + tag)
		if style := styleAttr(cell.Styles); style != "" {
			fmt.Fprintf(b, " style=%q", style)
		}
		b.WriteString(">")
		if cell.Markup {
			b.WriteString(cell.Content)
		} else {
			b.WriteString(html.EscapeString(cell.Content))
		}
		b.WriteString("</" + tag + ">")
	}
	b.WriteString("</tr>\n")
}

// styleAttr flattens style hints into a deterministic inline style.
func styleAttr(styles map[string]string) string {
	if len(styles) == 0 {
		return ""
	}
	parts := make([]string, 0, len(styles))
	for _, key := range sortedKeys(styles) {
		parts = append(parts, key+": "+styles[key])
	}
	return strings.Join(parts, "; ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
