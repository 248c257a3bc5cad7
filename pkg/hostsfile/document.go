package hostsfile

import (
	"runtime"
	"strings"

	"github.com/samber/lo"
)

// DefaultEOL returns the line terminator of the host platform.
func DefaultEOL() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Document is the ordered set of lines of one hosts file.
// A Document is not safe for concurrent use; build one per operation.
type Document struct {
	// Lines holds every physical line in source order.
	Lines []Line

	// EOL is the line terminator used by Render.
	EOL string

	// Terminated records that the source ended with a line terminator.
	// Appending a new entry at the very end clears it, so the new entry
	// becomes the last line without a terminator.
	Terminated bool

	changed bool
}

// NewDocument returns an empty document using the platform EOL.
func NewDocument() *Document {
	return &Document{EOL: DefaultEOL()}
}

// ParseDocument splits data into lines and classifies each of them.
// Both "\n" and "\r\n" terminators are accepted.
func ParseDocument(data []byte) *Document {
	doc := NewDocument()
	text := string(data)
	if text == "" {
		return doc
	}

	parts := strings.Split(text, "\n")
	if parts[len(parts)-1] == "" {
		doc.Terminated = true
		parts = parts[:len(parts)-1]
	}

	doc.Lines = make([]Line, 0, len(parts))
	for _, p := range parts {
		doc.Lines = append(doc.Lines, Parse(strings.TrimSuffix(p, "\r")))
	}
	return doc
}

// Changed reports whether a mutation has modified the document since it was parsed.
func (d *Document) Changed() bool {
	return d.changed
}

// Query returns the entries of the document in order. Passthrough lines are
// included only when includeFormatting is true.
func (d *Document) Query(includeFormatting bool) []Line {
	if includeFormatting {
		return append([]Line(nil), d.Lines...)
	}
	return lo.Filter(d.Lines, func(l Line, _ int) bool {
		return l.IsEntry()
	})
}

// Lookup returns the entries that list host among their hostnames.
func (d *Document) Lookup(host string) []Line {
	return lo.Filter(d.Lines, func(l Line, _ int) bool {
		return l.HasHost(host)
	})
}

// Upsert points hostnames at address.
//
// Every entry whose hostnames equal the argument and whose address is in the
// same family as address gets the new address; entries of another family are
// left alone so an IPv4 and an IPv6 mapping for the same name can coexist.
// If nothing matched, a new entry is inserted before a trailing blank line,
// or appended at the end. Returns true if an existing entry matched.
// Input rejected by ValidateEntry leaves the document untouched.
func (d *Document) Upsert(address, hostnames string) (bool, error) {
	if err := ValidateEntry(address, hostnames); err != nil {
		return false, err
	}
	address = strings.TrimSpace(address)
	hostnames = strings.TrimSpace(hostnames)

	matched := false
	for i := range d.Lines {
		l := &d.Lines[i]
		if !l.IsEntry() || l.Hostnames != hostnames || !SameFamily(l.Address, address) {
			continue
		}
		matched = true
		if l.setAddress(address) {
			d.changed = true
		}
	}
	if matched {
		return true, nil
	}

	d.insert(NewEntry(address, hostnames))
	return false, nil
}

// insert adds a line at the end, keeping a trailing blank line last.
func (d *Document) insert(line Line) {
	d.changed = true
	n := len(d.Lines)
	if n > 0 && d.Lines[n-1].IsBlank() {
		d.Lines = append(d.Lines[:n-1], line, d.Lines[n-1])
		return
	}
	d.Lines = append(d.Lines, line)
	d.Terminated = false
}

// Delete removes every entry whose address and hostnames both equal the
// arguments exactly. Returns the number of removed lines; zero is not an error.
func (d *Document) Delete(address, hostnames string) int {
	address = strings.TrimSpace(address)
	hostnames = strings.TrimSpace(hostnames)
	return d.deleteWhere(func(l Line) bool {
		return l.Address == address && l.Hostnames == hostnames
	})
}

// DeleteHost removes every entry whose hostnames equal the argument exactly,
// whatever its address. Returns the number of removed lines.
func (d *Document) DeleteHost(hostnames string) int {
	hostnames = strings.TrimSpace(hostnames)
	return d.deleteWhere(func(l Line) bool {
		return l.Hostnames == hostnames
	})
}

func (d *Document) deleteWhere(match func(Line) bool) int {
	kept := lo.Reject(d.Lines, func(l Line, _ int) bool {
		return l.IsEntry() && match(l)
	})
	removed := len(d.Lines) - len(kept)
	if removed > 0 {
		d.Lines = kept
		d.changed = true
	}
	return removed
}

// Render returns the text of the document. Lines are joined with EOL; a
// terminator follows the last line only if the source had one.
func (d *Document) Render() string {
	eol := d.EOL
	if eol == "" {
		eol = DefaultEOL()
	}

	var b strings.Builder
	for i, l := range d.Lines {
		if i > 0 {
			b.WriteString(eol)
		}
		b.WriteString(l.String())
	}
	if d.Terminated && len(d.Lines) > 0 {
		b.WriteString(eol)
	}
	return b.String()
}
