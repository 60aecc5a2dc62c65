// Package render implements the top-level Rendering Pipeline: compositing
// every mounted panel's own content onto a single goturbotui.Canvas
// according to the accordion layout's column/row geometry, plus a
// per-frame hit-table for title-bar mouse dispatch. It is distinct from
// internal/editor's own render.go, which only computes one editor's
// virtual-line/overlay model — this package is the thing that actually
// calls Canvas.DrawBoxWithTitle and Panel.Render for every panel in every
// group. Grounded on the teacher's Application.draw (desktop.Draw then
// modal stack on top of a MemoryCanvas — superseded here, see DESIGN.md)
// and internal/layout's Widths/PanelRowsInGroup/TitleBarStyle, which
// already compute the geometry this package only needs to walk.
package render

import (
	"github.com/termide/termide/internal/layout"
	"github.com/termide/termide/pkg/goturbotui"
)

// TitledPanel is the subset of app.Panel this package depends on, kept
// narrow so internal/render never imports internal/app (app already
// imports layout and modal; render sits alongside it, not underneath it).
type TitledPanel interface {
	Title() string
	Render(canvas goturbotui.Canvas, bounds goturbotui.Rect)
}

// HitEntry is one title-bar hot zone: clicking inside Bounds should focus
// GroupIndex and expand PanelIndex within it, per spec §4.9.3's "a
// rectangle table per frame; mouse dispatch resolves by point-in-rectangle
// lookup" design note.
type HitEntry struct {
	Bounds      goturbotui.Rect
	GroupIndex  int
	PanelIndex  int
}

// HitTable is rebuilt every frame by Frame. The runtime in cmd/termide
// discards it: mouse events are not resolved against it, and title-bar
// clicks go to the focused panel like any other mouse event.
type HitTable []HitEntry

// Resolve returns the group/panel a click at (x, y) landed on, if any.
func (t HitTable) Resolve(x, y int) (groupIndex, panelIndex int, ok bool) {
	for _, e := range t {
		if e.Bounds.Contains(x, y) {
			return e.GroupIndex, e.PanelIndex, true
		}
	}
	return 0, 0, false
}

// Theme is the minimal style set the pipeline needs; internal/theme.Theme
// satisfies this via its Base/Accented accessors.
type Theme interface {
	Base() goturbotui.Style
	Accented() goturbotui.Style
}

// Frame composites every group in m onto canvas within bounds, returning
// the hit-table for this frame's title bars. Each group gets a vertical
// slice of width from layout.Widths; within a group, each panel gets a
// horizontal slice of rows from layout.PanelRowsInGroup — one row for
// every collapsed panel's title bar, the remaining rows for the expanded
// panel's own content.
func Frame(canvas goturbotui.Canvas, bounds goturbotui.Rect, m *layout.Manager, panels [][]TitledPanel, theme Theme) HitTable {
	var hits HitTable
	widths := m.Widths(bounds.W)
	x := bounds.X
	for gi, g := range m.Groups {
		groupWidth := widths[gi]
		rows := layout.PanelRowsInGroup(g, bounds.H)

		y := bounds.Y
		for pi := range g.Panels {
			rowHeight := rows[pi]
			panelBounds := goturbotui.NewRect(x, y, groupWidth, rowHeight)
			titleBounds := goturbotui.NewRect(x, y, groupWidth, 1)

			focused := gi == m.Focus
			style := layout.TitleBarStyle(focused && pi == g.Expanded, theme.Base(), theme.Accented())

			var title string
			if gi < len(panels) && pi < len(panels[gi]) {
				title = panels[gi][pi].Title()
			}
			canvas.DrawBoxWithTitle(panelBounds, title, style)

			if pi == g.Expanded && gi < len(panels) && pi < len(panels[gi]) {
				inner := panelBounds.Inner(1)
				panels[gi][pi].Render(canvas, inner)
			}

			hits = append(hits, HitEntry{Bounds: titleBounds, GroupIndex: gi, PanelIndex: pi})
			y += rowHeight
		}

		x += groupWidth
	}
	return hits
}
