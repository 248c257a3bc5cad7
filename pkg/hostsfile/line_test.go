package hostsfile

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantEntry bool
		address   string
		hostnames string
	}{
		{"simple entry", "127.0.0.1 localhost", true, "127.0.0.1", "localhost"},
		{"tab separated", "127.0.0.1\tlocalhost", true, "127.0.0.1", "localhost"},
		{"leading whitespace", "   10.0.0.1   db.local", true, "10.0.0.1", "db.local"},
		{"multiple hostnames", "::1 localhost ip6-localhost  ip6-loopback", true, "::1", "localhost ip6-localhost  ip6-loopback"},
		{"trailing comment", "10.0.0.2 api.local # staging", true, "10.0.0.2", "api.local"},
		{"comment without space", "10.0.0.2 api.local#staging", true, "10.0.0.2", "api.local"},
		{"trailing whitespace", "10.0.0.3 web.local   ", true, "10.0.0.3", "web.local"},
		{"symbolic address", "localhost-placeholder foo.local", true, "localhost-placeholder", "foo.local"},
		{"comment only", "# The following lines are desirable", false, "", ""},
		{"indented comment", "   # indented", false, "", ""},
		{"blank", "", false, "", ""},
		{"whitespace only", " \t ", false, "", ""},
		{"single token", "127.0.0.1", false, "", ""},
		{"single token with comment", "127.0.0.1 # nothing", false, "", ""},
		{"commented out entry", "#127.0.0.1 old.local", false, "", ""},
		{"escaped hash", `10.0.0.4 weird\#name`, true, "10.0.0.4", `weird\#name`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Parse(tt.raw)
			if l.IsEntry() != tt.wantEntry {
				t.Fatalf("Parse(%q).IsEntry() = %v, want %v", tt.raw, l.IsEntry(), tt.wantEntry)
			}
			if l.Address != tt.address {
				t.Errorf("Address = %q, want %q", l.Address, tt.address)
			}
			if l.Hostnames != tt.hostnames {
				t.Errorf("Hostnames = %q, want %q", l.Hostnames, tt.hostnames)
			}
			if got := l.String(); got != tt.raw {
				t.Errorf("String() = %q, want original %q", got, tt.raw)
			}
		})
	}
}

func TestLine_SetAddressKeepsComment(t *testing.T) {
	l := Parse("10.0.0.2 api.local   # staging")
	if !l.setAddress("10.0.0.9") {
		t.Fatal("setAddress reported no change")
	}
	if got, want := l.String(), "10.0.0.9 api.local   # staging"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := l.Comment(); got != "staging" {
		t.Errorf("Comment() = %q, want staging", got)
	}
}

func TestLine_SetAddressNormalizesSeparator(t *testing.T) {
	l := Parse("  10.0.0.2\t\tapi.local")
	l.setAddress("10.0.0.3")
	if got, want := l.String(), "10.0.0.3 api.local"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLine_HasHost(t *testing.T) {
	l := Parse("127.0.0.1 a.local b.local")
	if !l.HasHost("b.local") {
		t.Error("HasHost(b.local) = false, want true")
	}
	if l.HasHost("local") {
		t.Error("HasHost(local) = true, want false")
	}
	if NewPassthrough("# a.local").HasHost("a.local") {
		t.Error("passthrough line should not match hosts")
	}
}

func TestNewEntry(t *testing.T) {
	l := NewEntry(" 127.0.0.1 ", " example.com ")
	if !l.IsEntry() {
		t.Fatal("NewEntry is not an entry")
	}
	if got := l.String(); got != "127.0.0.1 example.com" {
		t.Errorf("String() = %q", got)
	}
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		address string
		want    Family
	}{
		{"127.0.0.1", FamilyIPv4},
		{"255.255.255.255", FamilyIPv4},
		{"::1", FamilyIPv6},
		{"fe80::1%eth0", FamilyIPv6},
		{"::ffff:10.0.0.1", FamilyIPv6},
		{"256.0.0.1", FamilyOther},
		{"localhost", FamilyOther},
		{"", FamilyOther},
	}

	for _, tt := range tests {
		if got := FamilyOf(tt.address); got != tt.want {
			t.Errorf("FamilyOf(%q) = %v, want %v", tt.address, got, tt.want)
		}
	}
}

func TestSameFamily(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"127.0.0.1", "10.0.0.1", true},
		{"::1", "fe80::1", true},
		{"::1", "127.0.0.1", false},
		{"placeholder", "127.0.0.1", false},
		{"placeholder", "::1", false},
		{"placeholder", "other", true},
	}

	for _, tt := range tests {
		if got := SameFamily(tt.a, tt.b); got != tt.want {
			t.Errorf("SameFamily(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFamily_String(t *testing.T) {
	tests := []struct {
		family Family
		want   string
	}{
		{FamilyIPv4, "IPv4"},
		{FamilyIPv6, "IPv6"},
		{FamilyOther, "Other"},
		{Family(99), "Other"},
	}

	for _, tt := range tests {
		if got := tt.family.String(); got != tt.want {
			t.Errorf("Family(%d).String() = %s, want %s", tt.family, got, tt.want)
		}
	}
}
