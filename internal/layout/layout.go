// Package layout implements the accordion-style Panel Group / Layout
// Manager: horizontal groups of vertically stacked panels, exactly one
// expanded per group, reflowing under a minimum-width invariant. It is
// grounded on pkg/goturbotui's Rect/View/Container composition model
// (BaseContainer's focus-tracking, Rect's geometry helpers), generalized
// from single-window MDI panes to the add/close/navigate/resize/stack
// rules of spec §4.9.
package layout

import "github.com/termide/termide/pkg/goturbotui"

// Panel is the minimal capability the layout manager needs from whatever
// content a group holds; internal/app's closed Panel variant satisfies
// this alongside its richer render/input contract.
type Panel interface {
	Title() string
}

// Group is an ordered, non-empty accordion of panels with exactly one
// expanded.
type Group struct {
	Panels   []Panel
	Expanded int // index into Panels
	Weight   int // horizontal_weight, positive
}

func newGroup(p Panel) *Group {
	return &Group{Panels: []Panel{p}, Expanded: 0, Weight: 1}
}

// AddPanel appends p to the group and expands it.
func (g *Group) AddPanel(p Panel) {
	g.Panels = append(g.Panels, p)
	g.Expanded = len(g.Panels) - 1
}

// RemovePanel removes the panel at index i, adjusting Expanded to
// min(previous, len-1). Reports whether the group is now empty.
func (g *Group) RemovePanel(i int) (empty bool) {
	if i < 0 || i >= len(g.Panels) {
		return len(g.Panels) == 0
	}
	g.Panels = append(g.Panels[:i], g.Panels[i+1:]...)
	if len(g.Panels) == 0 {
		return true
	}
	if g.Expanded > len(g.Panels)-1 {
		g.Expanded = len(g.Panels) - 1
	}
	return false
}

// ExpandNext/ExpandPrev cycle the expanded panel within the group,
// cyclically (Alt+Up/Down navigation).
func (g *Group) ExpandNext() {
	g.Expanded = (g.Expanded + 1) % len(g.Panels)
}
func (g *Group) ExpandPrev() {
	g.Expanded = (g.Expanded - 1 + len(g.Panels)) % len(g.Panels)
}

// Manager is the ordered list of groups plus the focused group index and
// the min_panel_width configuration.
type Manager struct {
	Groups        []*Group
	Focus         int
	MinPanelWidth int

	// NewWelcomePanel constructs the placeholder panel inserted when the
	// last group closes; internal/app supplies this since layout has no
	// knowledge of panel kinds.
	NewWelcomePanel func() Panel
}

// NewManager returns a manager seeded with a single welcome panel.
func NewManager(minPanelWidth int, newWelcome func() Panel) *Manager {
	m := &Manager{MinPanelWidth: minPanelWidth, NewWelcomePanel: newWelcome}
	m.Groups = []*Group{newGroup(newWelcome())}
	return m
}

// AvailableWidth is supplied by the caller (the terminal's current width)
// on every layout operation, since Manager has no notion of the terminal.

// AddPanel implements spec §4.9.2 add_panel: splits into a new group when
// there is enough width, otherwise stacks into the focused group.
func (m *Manager) AddPanel(p Panel, availableWidth int) {
	// Replace a lone welcome panel outright rather than stacking beside it.
	if len(m.Groups) == 1 && len(m.Groups[0].Panels) == 1 {
		if _, isWelcome := m.Groups[0].Panels[0].(welcomeMarker); isWelcome {
			m.Groups[0].Panels[0] = p
			return
		}
	}

	newWidthIfSplit := availableWidth / (len(m.Groups) + 1)
	if newWidthIfSplit < m.MinPanelWidth {
		m.Groups[m.Focus].AddPanel(p)
		return
	}
	m.Groups = append(m.Groups, newGroup(p))
	m.Focus = len(m.Groups) - 1
}

// welcomeMarker lets internal/app's welcome panel opt into the
// "replace me, don't stack beside me" rule without layout importing the
// concrete panel type.
type welcomeMarker interface {
	IsWelcomePanel() bool
}

// ClosePanel implements spec §4.9.2 close_panel.
func (m *Manager) ClosePanel() {
	if len(m.Groups) == 0 {
		m.ensureNonEmpty()
		return
	}
	g := m.Groups[m.Focus]
	if g.RemovePanel(g.Expanded) {
		m.Groups = append(m.Groups[:m.Focus], m.Groups[m.Focus+1:]...)
		m.redistributeWeight()
		if m.Focus >= len(m.Groups) {
			m.Focus = len(m.Groups) - 1
		}
		if m.Focus < 0 {
			m.Focus = 0
		}
	}
	m.ensureNonEmpty()
}

func (m *Manager) ensureNonEmpty() {
	if len(m.Groups) == 0 {
		m.Groups = []*Group{newGroup(m.NewWelcomePanel())}
		m.Focus = 0
	}
}

// redistributeWeight spreads the total weight evenly across remaining
// groups after one is removed, preserving the invariant that weights sum
// to a positive total proportional to group count.
func (m *Manager) redistributeWeight() {
	if len(m.Groups) == 0 {
		return
	}
	total := 0
	for _, g := range m.Groups {
		total += g.Weight
	}
	if total == 0 {
		total = len(m.Groups)
	}
	per := total / len(m.Groups)
	if per < 1 {
		per = 1
	}
	for _, g := range m.Groups {
		g.Weight = per
	}
}

// FocusNext/FocusPrev implement horizontal navigation (Alt+Left/Right);
// non-cyclic at the edges.
func (m *Manager) FocusNext() {
	if m.Focus < len(m.Groups)-1 {
		m.Focus++
	}
}
func (m *Manager) FocusPrev() {
	if m.Focus > 0 {
		m.Focus--
	}
}

// ExpandNextInFocused / ExpandPrevInFocused implement vertical navigation
// (Alt+Up/Down), cyclic within the focused group.
func (m *Manager) ExpandNextInFocused() {
	if len(m.Groups) == 0 {
		return
	}
	m.Groups[m.Focus].ExpandNext()
}
func (m *Manager) ExpandPrevInFocused() {
	if len(m.Groups) == 0 {
		return
	}
	m.Groups[m.Focus].ExpandPrev()
}

// MovePanel removes the expanded panel of the focused group and inserts it
// into the adjacent group in direction dir (+1 right/down, -1 left/up). If
// there is no adjacent group and splitting the available width would still
// satisfy min_panel_width, a new group is created at that end (first for
// dir<0, last otherwise); otherwise the panel merges into the nearest
// existing group.
func (m *Manager) MovePanel(dir int, availableWidth int) {
	if len(m.Groups) == 0 {
		return
	}
	src := m.Groups[m.Focus]
	if len(src.Panels) == 0 {
		return
	}
	p := src.Panels[src.Expanded]
	target := m.Focus + dir

	if target < 0 || target >= len(m.Groups) {
		newWidthIfSplit := availableWidth / (len(m.Groups) + 1)
		src.RemovePanel(src.Expanded)
		if newWidthIfSplit >= m.MinPanelWidth {
			if target < 0 {
				m.Groups = append([]*Group{newGroup(p)}, m.Groups...)
				m.Focus = 0
			} else {
				m.Groups = append(m.Groups, newGroup(p))
				m.Focus = len(m.Groups) - 1
			}
		} else {
			// Merge into the nearest existing group instead.
			nearest := m.Focus
			if nearest >= len(m.Groups) {
				nearest = len(m.Groups) - 1
			}
			if nearest >= 0 {
				m.Groups[nearest].AddPanel(p)
				m.Focus = nearest
			}
		}
	} else {
		src.RemovePanel(src.Expanded)
		m.Groups[target].AddPanel(p)
		m.Focus = target
	}

	m.pruneEmptyGroups()
}

func (m *Manager) pruneEmptyGroups() {
	kept := m.Groups[:0]
	focusedGroup := (*Group)(nil)
	if m.Focus >= 0 && m.Focus < len(m.Groups) {
		focusedGroup = m.Groups[m.Focus]
	}
	for _, g := range m.Groups {
		if len(g.Panels) > 0 {
			kept = append(kept, g)
		}
	}
	m.Groups = kept
	m.Focus = 0
	for i, g := range m.Groups {
		if g == focusedGroup {
			m.Focus = i
			break
		}
	}
	m.redistributeWeight()
	m.ensureNonEmpty()
}

// Resize implements Alt+Plus/Minus: shifts one weight unit to/from the
// focused group, compensating across the others by splitting the delta
// evenly between them (any remainder from the first ones), not in
// proportion to their weights. A no-op if it would push any group's
// weight below 1 or computed width below min_panel_width.
func (m *Manager) Resize(delta int, availableWidth int) {
	if len(m.Groups) < 2 {
		return
	}
	trial := make([]int, len(m.Groups))
	for i, g := range m.Groups {
		trial[i] = g.Weight
	}
	trial[m.Focus] += delta
	if trial[m.Focus] < 1 {
		return
	}
	// Compensate by removing the delta evenly from the others.
	others := len(m.Groups) - 1
	base := delta / others
	rem := delta % others
	j := 0
	for i := range trial {
		if i == m.Focus {
			continue
		}
		take := base
		if j < rem {
			take++
		}
		trial[i] -= take
		if trial[i] < 1 {
			return
		}
		j++
	}

	widths := widthsFor(trial, availableWidth, m.Focus)
	for _, w := range widths {
		if w < m.MinPanelWidth {
			return
		}
	}
	for i, g := range m.Groups {
		g.Weight = trial[i]
	}
}

// ToggleStacking implements Alt+Backspace.
func (m *Manager) ToggleStacking(availableWidth int) {
	if len(m.Groups) == 0 {
		return
	}
	g := m.Groups[m.Focus]
	if len(g.Panels) == 1 && len(m.Groups) > 1 {
		adjacent := m.Focus + 1
		if adjacent >= len(m.Groups) {
			adjacent = m.Focus - 1
		}
		p := g.Panels[0]
		m.Groups[adjacent].AddPanel(p)
		m.Groups = append(m.Groups[:m.Focus], m.Groups[m.Focus+1:]...)
		if m.Focus >= len(m.Groups) {
			m.Focus = len(m.Groups) - 1
		}
		m.redistributeWeight()
		return
	}
	if len(g.Panels) >= 2 {
		newWidthIfSplit := availableWidth / (len(m.Groups) + 1)
		if newWidthIfSplit >= m.MinPanelWidth {
			p := g.Panels[g.Expanded]
			g.RemovePanel(g.Expanded)
			m.Groups = append(m.Groups, newGroup(p))
			m.Focus = len(m.Groups) - 1
		}
	}
}

// Widths translates horizontal weights into integer column widths summing
// exactly to availableWidth, assigning the rounding remainder to the
// focused group. It does not itself enforce min_panel_width: AddPanel,
// MovePanel, Resize and ToggleStacking check the floor against the width
// they are given, but a later, narrower availableWidth can still yield
// widths below it.
func (m *Manager) Widths(availableWidth int) []int {
	weights := make([]int, len(m.Groups))
	for i, g := range m.Groups {
		weights[i] = g.Weight
	}
	return widthsFor(weights, availableWidth, m.Focus)
}

func widthsFor(weights []int, availableWidth int, focus int) []int {
	n := len(weights)
	if n == 0 {
		return nil
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		total = n
	}
	widths := make([]int, n)
	assigned := 0
	for i, w := range weights {
		widths[i] = availableWidth * w / total
		assigned += widths[i]
	}
	remainder := availableWidth - assigned
	if focus < 0 || focus >= n {
		focus = 0
	}
	widths[focus] += remainder
	return widths
}

// PanelRowsInGroup returns the row count given to each panel in the group
// when the group itself has totalHeight rows: the expanded panel gets the
// remainder after every collapsed panel takes exactly one title-bar row.
func PanelRowsInGroup(g *Group, totalHeight int) []int {
	rows := make([]int, len(g.Panels))
	collapsedRows := len(g.Panels) - 1
	expandedRows := totalHeight - collapsedRows
	if expandedRows < 1 {
		expandedRows = 1
	}
	for i := range rows {
		if i == g.Expanded {
			rows[i] = expandedRows
		} else {
			rows[i] = 1
		}
	}
	return rows
}

// TitleBarStyle picks the accented style for the focused group/panel,
// the base style otherwise, used by the rendering pipeline.
func TitleBarStyle(focused bool, base, accented goturbotui.Style) goturbotui.Style {
	if focused {
		return accented
	}
	return base
}
