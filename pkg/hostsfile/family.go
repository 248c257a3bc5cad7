package hostsfile

import (
	"net/netip"
	"strings"
)

// Family is the coarse address class of an entry's address field.
type Family int

const (
	// FamilyOther covers anything that is not an IP literal (placeholders, names).
	FamilyOther Family = iota
	FamilyIPv4
	FamilyIPv6
)

// String returns a human-readable representation of the family.
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	default:
		return "Other"
	}
}

// FamilyOf classifies an address-like token.
// IPv4-mapped IPv6 literals such as ::ffff:10.0.0.1 are written in IPv6 notation
// and are classified as IPv6.
func FamilyOf(address string) Family {
	addr, err := netip.ParseAddr(strings.TrimSpace(address))
	if err != nil {
		return FamilyOther
	}
	if addr.Is4() {
		return FamilyIPv4
	}
	return FamilyIPv6
}

// SameFamily reports whether a and b fall into the same address class.
func SameFamily(a, b string) bool {
	return FamilyOf(a) == FamilyOf(b)
}
