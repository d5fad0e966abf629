package app

import "strings"

// LocationBase is the fixed document address the fragment is appended to.
const LocationBase = "fastdata://dashboard"

// Location mirrors the address bar: a base plus a replaceable fragment.
// It is written on every navigation and never read back at startup.
type Location struct {
	fragment string
	replaced int
}

// Replace swaps the fragment without adding history.
func (l *Location) Replace(sectionID string) {
	l.fragment = sectionID
	l.replaced++
}

// Fragment returns the current fragment without '#'.
func (l *Location) Fragment() string { return l.fragment }

// Replacements counts Replace calls.
func (l *Location) Replacements() int { return l.replaced }

func (l *Location) String() string {
	if l.fragment == "" {
		return LocationBase
	}
	var b strings.Builder
	b.WriteString(LocationBase)
	b.WriteByte('#')
	b.WriteString(l.fragment)
	return b.String()
}
