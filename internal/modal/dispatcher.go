package modal

import "github.com/termide/termide/pkg/goturbotui"

// Action is a symbolic global command a hotkey resolves to; internal/app
// interprets these against its own Panel/layout state.
type Action string

// Chord is a (key, rune, modifiers) lookup key. Code is used for named keys
// (arrows, function keys); Rune is used for printable-character hotkeys
// (e.g. Alt+S), already passed through NormalizeHotkeyRune by the caller.
type Chord struct {
	Code goturbotui.KeyCode
	Rune rune
	Mods goturbotui.KeyMod
}

// Dispatcher is the global (KeyCode, Modifiers) → Action table, consulted
// after the modal stack and before layout navigation/focused-panel input,
// per spec §4.10's lookup precedence.
type Dispatcher struct {
	table map[Chord]Action
}

// NewDispatcher returns a dispatcher seeded with TermIDE's default global
// bindings.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{table: make(map[Chord]Action)}
	d.Bind(Chord{Code: goturbotui.KeyF10}, ActionQuit)
	d.Bind(Chord{Rune: 'o', Mods: goturbotui.ModAlt}, ActionOpenFile)
	d.Bind(Chord{Rune: 's', Mods: goturbotui.ModCtrl}, ActionSave)
	d.Bind(Chord{Rune: 'f', Mods: goturbotui.ModCtrl}, ActionSearch)
	d.Bind(Chord{Rune: 'h', Mods: goturbotui.ModCtrl}, ActionReplace)
	d.Bind(Chord{Rune: 't', Mods: goturbotui.ModAlt}, ActionNewTerminal)
	d.Bind(Chord{Code: goturbotui.KeyLeft, Mods: goturbotui.ModAlt}, ActionFocusGroupPrev)
	d.Bind(Chord{Code: goturbotui.KeyRight, Mods: goturbotui.ModAlt}, ActionFocusGroupNext)
	d.Bind(Chord{Code: goturbotui.KeyUp, Mods: goturbotui.ModAlt}, ActionExpandPrevInGroup)
	d.Bind(Chord{Code: goturbotui.KeyDown, Mods: goturbotui.ModAlt}, ActionExpandNextInGroup)
	d.Bind(Chord{Code: goturbotui.KeyBackspace, Mods: goturbotui.ModAlt}, ActionToggleStacking)
	return d
}

const (
	ActionQuit              Action = "quit"
	ActionOpenFile          Action = "open_file"
	ActionSave              Action = "save"
	ActionSearch            Action = "search"
	ActionReplace           Action = "replace"
	ActionNewTerminal       Action = "new_terminal"
	ActionFocusGroupPrev    Action = "focus_group_prev"
	ActionFocusGroupNext    Action = "focus_group_next"
	ActionExpandPrevInGroup Action = "expand_prev_in_group"
	ActionExpandNextInGroup Action = "expand_next_in_group"
	ActionToggleStacking    Action = "toggle_stacking"
)

// Bind registers (or overwrites) the action for a chord.
func (d *Dispatcher) Bind(c Chord, a Action) {
	d.table[c] = a
}

// Lookup resolves a key event to a global action, applying Cyrillic→Latin
// rune normalization first. The zero Action ("") means "no global binding;
// fall through to layout navigation or the focused panel".
func (d *Dispatcher) Lookup(event goturbotui.Event) (Action, bool) {
	if event.Type != goturbotui.EventKey {
		return "", false
	}
	r := NormalizeHotkeyRune(event.Rune)
	if a, ok := d.table[Chord{Rune: r, Mods: event.Key.Modifiers}]; ok {
		return a, true
	}
	if a, ok := d.table[Chord{Code: event.Key.Code, Mods: event.Key.Modifiers}]; ok {
		return a, true
	}
	return "", false
}
