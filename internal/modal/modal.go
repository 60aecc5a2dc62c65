// Package modal implements the Modal Stack & Hotkey Dispatcher: a LIFO
// stack of at-most-one-active-at-a-time dialogs plus the (KeyCode,
// Modifiers) → action lookup table that gates every other input route. It
// is grounded on the teacher's Application type's modalStack/ShowModal/
// CloseModal/GetTopModal (the teacher already threads a modal stack
// through its main Application type — superseded here, see DESIGN.md),
// generalized from free-form View dialogs into the closed set of modal
// kinds spec §4.10 names, with an owned Stack so internal/app can dispatch
// without pulling in the whole Application/Screen/Canvas machinery.
package modal

import (
	"golang.org/x/text/unicode/norm"

	"github.com/termide/termide/pkg/goturbotui"
)

// Kind is the closed set of modal variants named in spec §4.10.
type Kind int

const (
	KindInput Kind = iota
	KindConfirm
	KindSelect
	KindBatch
	KindSearch
	KindReplace
)

// ConfirmAnswer is the result of a Confirm modal.
type ConfirmAnswer int

const (
	ConfirmCancel ConfirmAnswer = iota
	ConfirmYes
	ConfirmNo
)

// BatchAnswer is one per-item decision from a Batch modal, plus the
// "apply to remaining items" flag.
type BatchAnswer struct {
	Action     string
	ApplyToAll bool
}

// Modal is one active dialog. Only one field group is meaningful per Kind;
// OnSubmit/OnCancel callbacks are invoked by Stack.Submit/Stack.Pop, never
// by the modal itself, keeping state mutation in the main loop per spec §4.11.
type Modal struct {
	Kind  Kind
	Title string
	Bounds goturbotui.Rect

	// Input
	InputValue string

	// Select / Batch
	Options      []string
	SelectedIdx  int
	BatchItem    string // current item's label, when Kind == KindBatch

	// Search / Replace
	SearchPattern     string
	ReplaceWith       string
	SearchCaseSensitive bool

	OnSubmit func(Modal)
	OnCancel func()
}

// Stack is the LIFO modal stack: at most the top entry is interactive, per
// spec §4.10 ("at any instant at most one modal is active").
type Stack struct {
	modals []*Modal
}

// Push opens m on top of the stack.
func (s *Stack) Push(m *Modal) {
	s.modals = append(s.modals, m)
}

// Pop closes the topmost modal, invoking its OnCancel if set. Use Submit
// instead when the modal is closing because the user confirmed it.
func (s *Stack) Pop() {
	if len(s.modals) == 0 {
		return
	}
	top := s.modals[len(s.modals)-1]
	s.modals = s.modals[:len(s.modals)-1]
	if top.OnCancel != nil {
		top.OnCancel()
	}
}

// Submit closes the topmost modal after running its OnSubmit callback with
// the final modal state.
func (s *Stack) Submit() {
	if len(s.modals) == 0 {
		return
	}
	top := s.modals[len(s.modals)-1]
	s.modals = s.modals[:len(s.modals)-1]
	if top.OnSubmit != nil {
		top.OnSubmit(*top)
	}
}

// Top returns the active (topmost) modal, or nil when the stack is empty.
func (s *Stack) Top() *Modal {
	if len(s.modals) == 0 {
		return nil
	}
	return s.modals[len(s.modals)-1]
}

// Active reports whether any modal is currently open.
func (s *Stack) Active() bool {
	return len(s.modals) > 0
}

// Depth returns how many modals are stacked (used by Batch modals nested
// under a confirmation, and by tests).
func (s *Stack) Depth() int {
	return len(s.modals)
}

// HandleKey implements the "Escape always closes the topmost modal; modals
// otherwise fully capture key input" rule. It returns true when the stack
// consumed the event (the caller must not fall through to the hotkey
// dispatcher or the focused panel).
func (s *Stack) HandleKey(key goturbotui.Key) bool {
	top := s.Top()
	if top == nil {
		return false
	}
	if key.Code == goturbotui.KeyEscape {
		s.Pop()
		return true
	}
	return true
}

// HandleMouseOutside implements "mouse clicks outside the modal rectangle
// do not dismiss": it never pops the stack, only reports whether (x, y)
// fell inside the active modal's bounds, so the caller knows whether to
// forward the click into the modal's own hit-testing.
func (s *Stack) HandleMouseOutside(x, y int) (insideModal bool) {
	top := s.Top()
	if top == nil {
		return false
	}
	return top.Bounds.Contains(x, y)
}

// normalizeKeyRune folds r to its NFC-composed form before Cyrillic→Latin
// lookup, so combining-mark variants of the same glyph (e.g. a precomposed
// vs. decomposed е) still hit the table.
func normalizeKeyRune(r rune) rune {
	buf := norm.NFC.String(string(r))
	for _, rr := range buf {
		return rr
	}
	return r
}

// cyrillicToLatin maps the ЙЦУКЕН physical key position of each lowercase
// Cyrillic letter to the QWERTY glyph at the same physical key, so
// Alt+<Cyrillic-glyph> hotkeys registered under their QWERTY equivalents
// still resolve when the OS delivers the Cyrillic rune.
var cyrillicToLatin = map[rune]rune{
	'й': 'q', 'ц': 'w', 'у': 'e', 'к': 'r', 'е': 't', 'н': 'y', 'г': 'u', 'ш': 'i', 'щ': 'o', 'з': 'p',
	'ф': 'a', 'ы': 's', 'в': 'd', 'а': 'f', 'п': 'g', 'р': 'h', 'о': 'j', 'л': 'k', 'д': 'l',
	'я': 'z', 'ч': 'x', 'с': 'c', 'м': 'v', 'и': 'b', 'т': 'n', 'ь': 'm',
	'Й': 'Q', 'Ц': 'W', 'У': 'E', 'К': 'R', 'Е': 'T', 'Н': 'Y', 'Г': 'U', 'Ш': 'I', 'Щ': 'O', 'З': 'P',
	'Ф': 'A', 'Ы': 'S', 'В': 'D', 'А': 'F', 'П': 'G', 'Р': 'H', 'О': 'J', 'Л': 'K', 'Д': 'L',
	'Я': 'Z', 'Ч': 'X', 'С': 'C', 'М': 'V', 'И': 'B', 'Т': 'N', 'Ь': 'M',
}

// NormalizeHotkeyRune applies Cyrillic→Latin translation to r before
// hotkey-table lookup, per spec §4.10. Runes outside the table pass
// through unchanged.
func NormalizeHotkeyRune(r rune) rune {
	r = normalizeKeyRune(r)
	if latin, ok := cyrillicToLatin[r]; ok {
		return latin
	}
	return r
}
