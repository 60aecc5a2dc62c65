// Package i18n loads the external internationalization collaborator named
// in spec §1: a string table keyed by symbolic name, selected by
// TERMIDE_LANG or derived from LANG/LC_ALL. It generalizes the teacher's
// internal/config.StringsConfig — a single hardcoded JSON-tagged struct of
// BBS UI strings — into a lookup table loaded from one TOML file per
// language, falling back to embedded English defaults for any missing key.
package i18n

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Table is a flat symbolic-key → localized string map for one language.
type Table map[string]string

var englishDefaults = Table{
	"status.saved":            "saved",
	"status.modified":         "modified",
	"status.read_only":        "read-only",
	"status.search_not_found": "pattern not found",
	"status.replaced_n":       "replaced %d occurrences",
	"modal.confirm_quit":      "quit without saving?",
	"modal.confirm_delete":    "delete selected items?",
	"modal.reload_or_keep":    "file changed on disk: reload or keep your edits?",
	"panel.welcome":           "welcome",
	"panel.file_manager":      "files",
	"panel.terminal":          "terminal",
	"panel.log":               "log",
}

// Strings is a loaded table with a fallback to English defaults.
type Strings struct {
	table Table
}

// Default returns the embedded English table.
func Default() *Strings {
	return &Strings{table: englishDefaults}
}

// Load reads a TOML string table from path, falling back to Default() on
// any read/parse error.
func Load(path string) (*Strings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	var t Table
	if err := toml.Unmarshal(data, &t); err != nil {
		return Default(), err
	}
	return &Strings{table: t}, nil
}

// ResolveLanguage determines the effective language code: TERMIDE_LANG, else
// derived from LANG/LC_ALL (stripping encoding/territory suffixes), else
// "en".
func ResolveLanguage() string {
	if v := os.Getenv("TERMIDE_LANG"); v != "" {
		return v
	}
	for _, envVar := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(envVar); v != "" {
			return normalizeLocale(v)
		}
	}
	return "en"
}

func normalizeLocale(v string) string {
	v = strings.SplitN(v, ".", 2)[0]
	v = strings.SplitN(v, "_", 2)[0]
	if v == "" || v == "C" || v == "POSIX" {
		return "en"
	}
	return v
}

// Get returns the localized string for key, falling back to the English
// default and finally to the bracketed key itself if nothing matches.
func (s *Strings) Get(key string) string {
	if v, ok := s.table[key]; ok {
		return v
	}
	if v, ok := englishDefaults[key]; ok {
		return v
	}
	return "[" + key + "]"
}
