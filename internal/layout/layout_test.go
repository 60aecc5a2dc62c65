package layout

import "testing"

type testPanel struct{ name string }

func (p testPanel) Title() string { return p.name }

type testWelcome struct{ testPanel }

func (testWelcome) IsWelcomePanel() bool { return true }

func newTestManager(minWidth int) *Manager {
	return NewManager(minWidth, func() Panel { return testWelcome{testPanel{"welcome"}} })
}

func sumWidths(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total
}

func TestAddPanel_SplitsWhenWidthAllows(t *testing.T) {
	m := newTestManager(80)
	m.AddPanel(testPanel{"editor"}, 200)
	if len(m.Groups) != 1 {
		t.Fatalf("expected welcome panel replaced in place, got %d groups", len(m.Groups))
	}

	m.AddPanel(testPanel{"second"}, 200)
	if len(m.Groups) != 2 {
		t.Fatalf("expected split into 2 groups, got %d", len(m.Groups))
	}
}

func TestAddPanel_StacksWhenWidthTooSmall(t *testing.T) {
	m := newTestManager(80)
	m.AddPanel(testPanel{"editor"}, 100)
	m.AddPanel(testPanel{"second"}, 100) // 100/2=50 < 80: stack

	if len(m.Groups) != 1 {
		t.Fatalf("expected stacking into 1 group, got %d", len(m.Groups))
	}
	if len(m.Groups[0].Panels) != 2 {
		t.Fatalf("expected 2 panels stacked, got %d", len(m.Groups[0].Panels))
	}
}

func TestClosePanel_LastPanel_YieldsWelcomeAtFocusZero(t *testing.T) {
	m := newTestManager(80)
	m.AddPanel(testPanel{"editor"}, 200)
	m.ClosePanel()

	if len(m.Groups) != 1 || m.Focus != 0 {
		t.Fatalf("expected single welcome group at focus 0, got %d groups, focus %d", len(m.Groups), m.Focus)
	}
	if !m.Groups[0].Panels[0].(testWelcome).IsWelcomePanel() {
		t.Error("expected welcome panel")
	}
}

func TestWidths_SumToAvailableWidth(t *testing.T) {
	m := newTestManager(80)
	m.AddPanel(testPanel{"a"}, 300)
	m.AddPanel(testPanel{"b"}, 300)
	m.AddPanel(testPanel{"c"}, 300)

	widths := m.Widths(301)
	if sumWidths(widths) != 301 {
		t.Errorf("expected widths to sum to 301, got %d (%v)", sumWidths(widths), widths)
	}
}

func TestWidths_RoundingRemainderGoesToFocusedGroup(t *testing.T) {
	m := newTestManager(10)
	m.AddPanel(testPanel{"a"}, 300)
	m.AddPanel(testPanel{"b"}, 300)
	m.AddPanel(testPanel{"c"}, 300)

	// Equal weights over a width not evenly divisible by 3 forces a
	// nonzero remainder; it must land on whichever group is focused.
	m.Focus = 2
	widths := m.Widths(100)
	if sumWidths(widths) != 100 {
		t.Fatalf("expected widths to sum to 100, got %d (%v)", sumWidths(widths), widths)
	}
	even := 100 / len(widths)
	for i, w := range widths {
		if i == m.Focus {
			if w <= even {
				t.Errorf("expected the focused group (%d) to absorb the rounding remainder, got %v", m.Focus, widths)
			}
			continue
		}
		if w != even {
			t.Errorf("expected unfocused group %d to get the unrounded share %d, got %d", i, even, w)
		}
	}
}

func TestResize_NeverDropsBelowMinWidth(t *testing.T) {
	m := newTestManager(80)
	m.AddPanel(testPanel{"a"}, 200)
	m.AddPanel(testPanel{"b"}, 200)

	before := append([]int(nil), m.Widths(200)...)
	m.Resize(100, 200) // absurdly large resize request

	widths := m.Widths(200)
	for _, w := range widths {
		if w < m.MinPanelWidth {
			t.Fatalf("resize violated min width: %v (was %v)", widths, before)
		}
	}
}

func TestFocusNavigation_NonCyclicAtEdges(t *testing.T) {
	m := newTestManager(80)
	m.AddPanel(testPanel{"a"}, 300)
	m.AddPanel(testPanel{"b"}, 300)

	m.FocusPrev()
	m.FocusPrev()
	if m.Focus != 0 {
		t.Errorf("expected focus clamped at 0, got %d", m.Focus)
	}
	m.FocusNext()
	m.FocusNext()
	m.FocusNext()
	if m.Focus != len(m.Groups)-1 {
		t.Errorf("expected focus clamped at last group, got %d", m.Focus)
	}
}
