package hostsfile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidEntry is returned for an address or hostnames that would not be
// read back as the same entry once written.
var ErrInvalidEntry = errors.New("hostsfile: invalid entry")

// entryPattern matches an address token, whitespace, and the rest of the line.
// The second group absorbs internal whitespace so "a.com b.com" stays one field.
var entryPattern = regexp.MustCompile(`^\s*(\S+)\s+(.+?)\s*$`)

// Line is one physical line of a hosts file.
// It is either an entry (Address and Hostnames set) or a passthrough line
// (comment, blank, or anything that does not look like an entry).
type Line struct {
	// Address is the first field of an entry. Empty for passthrough lines.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// Hostnames is the rest of an entry, kept as one opaque string.
	Hostnames string `json:"hostnames,omitempty" yaml:"hostnames,omitempty"`

	// Raw is the line as read from the source, without the line terminator.
	// Empty for entries created in memory.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`

	// comment is the trailing comment of an entry, including the whitespace before '#'.
	comment string

	// dirty marks an entry that must be rendered from its fields instead of Raw.
	dirty bool
}

// NewEntry creates an entry line that renders as "address hostnames".
func NewEntry(address, hostnames string) Line {
	return Line{
		Address:   strings.TrimSpace(address),
		Hostnames: strings.TrimSpace(hostnames),
		dirty:     true,
	}
}

// ValidateEntry checks that "address hostnames" is written and parsed back
// as exactly this entry. Empty fields, whitespace inside the address, line
// breaks and '#' comments are rejected.
func ValidateEntry(address, hostnames string) error {
	address = strings.TrimSpace(address)
	hostnames = strings.TrimSpace(hostnames)
	if strings.ContainsAny(address+hostnames, "\r\n") {
		return fmt.Errorf("%w: line break in %q %q", ErrInvalidEntry, address, hostnames)
	}
	l := Parse(NewEntry(address, hostnames).String())
	if !l.IsEntry() || l.Address != address || l.Hostnames != hostnames || l.comment != "" {
		return fmt.Errorf("%w: %q %q", ErrInvalidEntry, address, hostnames)
	}
	return nil
}

// NewPassthrough creates a line that renders verbatim.
func NewPassthrough(raw string) Line {
	return Line{Raw: raw}
}

// Parse classifies a single line. It never fails: anything that is not an
// entry is returned as a passthrough line holding the original text.
func Parse(raw string) Line {
	body, comment := splitComment(raw)
	m := entryPattern.FindStringSubmatch(body)
	if m == nil {
		return NewPassthrough(raw)
	}
	return Line{
		Address:   m[1],
		Hostnames: m[2],
		Raw:       raw,
		comment:   trailingComment(body, comment),
	}
}

// IsEntry reports whether the line is an address/hostnames record.
func (l Line) IsEntry() bool {
	return l.Address != "" && l.Hostnames != ""
}

// IsBlank reports whether the line is a passthrough line with only whitespace.
func (l Line) IsBlank() bool {
	return !l.IsEntry() && strings.TrimSpace(l.Raw) == ""
}

// Comment returns the trailing comment text of an entry without the leading '#'.
func (l Line) Comment() string {
	_, c, _ := strings.Cut(l.comment, "#")
	return strings.TrimSpace(c)
}

// HasHost reports whether host is one of the entry's space-separated hostnames.
func (l Line) HasHost(host string) bool {
	if !l.IsEntry() {
		return false
	}
	for _, h := range strings.Fields(l.Hostnames) {
		if h == host {
			return true
		}
	}
	return false
}

// String renders the line as it will be written.
func (l Line) String() string {
	if !l.IsEntry() {
		return l.Raw
	}
	if !l.dirty && l.Raw != "" {
		return l.Raw
	}
	return l.Address + " " + l.Hostnames + l.comment
}

// setAddress replaces the entry's address. Returns false if nothing changed.
func (l *Line) setAddress(address string) bool {
	if l.Address == address {
		return false
	}
	l.Address = address
	l.dirty = true
	return true
}

// splitComment cuts raw at the first '#' that is not escaped with a backslash.
// The returned comment starts with that '#', or is empty.
func splitComment(raw string) (body, comment string) {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '#':
			return raw[:i], raw[i:]
		}
	}
	return raw, ""
}

// trailingComment keeps the whitespace between the hostnames and the comment
// so a rewritten entry keeps its alignment.
func trailingComment(body, comment string) string {
	if comment == "" {
		return ""
	}
	trimmed := strings.TrimRight(body, " \t")
	return body[len(trimmed):] + comment
}
