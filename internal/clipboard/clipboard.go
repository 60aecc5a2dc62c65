// Package clipboard wraps github.com/atotto/clipboard as the process-wide
// system clipboard singleton named in spec §5 "Shared resources": acquired
// lazily on first use and requiring no explicit release (the OS clipboard
// outlives the process), but kept behind a single point of access so
// teardown can be added uniformly if a platform ever needs it.
package clipboard

import "github.com/atotto/clipboard"

// Read returns the current system clipboard contents. An unavailable
// clipboard (headless environment, missing xclip/xsel) returns an error
// that callers should degrade gracefully on, not crash on.
func Read() (string, error) {
	return clipboard.ReadAll()
}

// Write replaces the system clipboard contents.
func Write(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility is present on this
// platform, used to decide whether to surface clipboard-dependent menu
// items at all.
func Available() bool {
	return !clipboard.Unsupported
}
