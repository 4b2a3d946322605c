package pass

import (
	"strings"
)

// LocalizedString is one translation entry.
type LocalizedString struct {
	Key   string
	Value string
}

// Localization holds the translations for one language. Keys are compared
// case-insensitively; the first spelling of a key is kept when its value is
// replaced. Localisations are not part of pass.json: the packaging step writes
// them to <language>.lproj/pass.strings using Strings.
type Localization struct {
	Language string
	entries  []LocalizedString
}

// Set adds or replaces the translation for key.
func (l *Localization) Set(key, value string) {
	for i := range l.entries {
		if strings.EqualFold(l.entries[i].Key, key) {
			l.entries[i].Value = value
			return
		}
	}
	l.entries = append(l.entries, LocalizedString{Key: key, Value: value})
}

// Lookup returns the translation for key.
func (l *Localization) Lookup(key string) (string, bool) {
	for _, entry := range l.entries {
		if strings.EqualFold(entry.Key, key) {
			return entry.Value, true
		}
	}
	return "", false
}

// Entries returns the translations in insertion order.
func (l *Localization) Entries() []LocalizedString {
	return append([]LocalizedString(nil), l.entries...)
}

// Len reports the number of translations.
func (l *Localization) Len() int { return len(l.entries) }

// Strings renders the pass.strings body, one `"key" = "value";` line per
// entry in insertion order.
func (l *Localization) Strings() []byte {
	var b strings.Builder
	for _, entry := range l.entries {
		b.WriteString(quoteStrings(entry.Key))
		b.WriteString(" = ")
		b.WriteString(quoteStrings(entry.Value))
		b.WriteString(";\n")
	}
	return []byte(b.String())
}

var stringsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quoteStrings(s string) string {
	return `"` + stringsEscaper.Replace(s) + `"`
}
