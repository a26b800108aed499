package ident

import "testing"

func TestConfigKeyValidation(t *testing.T) {
	good := []string{"cache", "cache.dir", "a-b_c.d1"}
	for _, g := range good {
		if _, err := NewConfigKey(g); err != nil {
			t.Errorf("NewConfigKey(%q) = %v, want success", g, err)
		}
	}
	bad := []string{"", "1abc", "cache.", "cache..dir", "cache dir"}
	for _, b := range bad {
		if _, err := NewConfigKey(b); err == nil {
			t.Errorf("NewConfigKey(%q) succeeded, want error", b)
		}
	}
}

func TestConfigKeyEqualIsCaseInsensitive(t *testing.T) {
	a, _ := NewConfigKey("Cache.Dir")
	b, _ := NewConfigKey("cache.dir")
	if !a.Equal(b) {
		t.Fatal("expected case-insensitive equality")
	}
}

func TestJoinConfigKeys(t *testing.T) {
	base, _ := NewConfigKey("cache")
	child, _ := NewConfigKey("dir")
	joined, err := JoinConfigKeys(base, child)
	if err != nil {
		t.Fatal(err)
	}
	if joined.String() != "cache.dir" {
		t.Fatalf("joined = %q, want cache.dir", joined.String())
	}
}

func TestNameValidation(t *testing.T) {
	good := []string{"gates", "my-ip", "my_ip2"}
	for _, g := range good {
		if _, err := NewName(g); err != nil {
			t.Errorf("NewName(%q) = %v, want success", g, err)
		}
	}
	bad := []string{"", "2ip", "my.ip", "my ip"}
	for _, b := range bad {
		if _, err := NewName(b); err == nil {
			t.Errorf("NewName(%q) succeeded, want error", b)
		}
	}
}

// P3: equivalence is reflexive, symmetric, transitive, and invariant
// under '-'/'_' and case.
func TestNameEquivalenceIsAnEquivalenceRelation(t *testing.T) {
	forms := []string{"my-ip", "MY-IP", "my_ip", "My_Ip"}
	names := make([]Name, len(forms))
	for i, f := range forms {
		n, err := NewName(f)
		if err != nil {
			t.Fatal(err)
		}
		names[i] = n
	}
	for i := range names {
		if !names[i].Equivalent(names[i]) {
			t.Errorf("%q not reflexively equivalent to itself", forms[i])
		}
		for j := range names {
			if names[i].Equivalent(names[j]) != names[j].Equivalent(names[i]) {
				t.Errorf("equivalence not symmetric between %q and %q", forms[i], forms[j])
			}
			if !names[i].Equivalent(names[j]) {
				t.Errorf("%q and %q should be equivalent", forms[i], forms[j])
			}
		}
	}
	other, _ := NewName("other-ip")
	if names[0].Equivalent(other) {
		t.Fatal("unrelated names should not be equivalent")
	}
}

func TestParseQualified(t *testing.T) {
	q, err := ParseQualified("rary.gates.fulladder")
	if err != nil {
		t.Fatal(err)
	}
	if q.String() != "rary.gates.fulladder" {
		t.Fatalf("got %q", q.String())
	}
	if _, err := ParseQualified("rary.gates"); err == nil {
		t.Fatal("expected error for missing part")
	}
	if _, err := ParseQualified("rary..fulladder"); err == nil {
		t.Fatal("expected error for empty library part")
	}
}

func TestVersionParseAndFormat(t *testing.T) {
	v, err := ParseVersion("1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if v != (Version{Major: 1, Minor: 2, Patch: 3}) {
		t.Fatalf("got %+v", v)
	}
	if v.String() != "1.2.3" {
		t.Fatalf("format = %q", v.String())
	}
}

func TestVersionParseRejectsMalformed(t *testing.T) {
	bad := []string{"1.2", "1.2.3.4", "1.2.x", "", "1..3", "-1.2.3"}
	for _, b := range bad {
		if _, err := ParseVersion(b); err == nil {
			t.Errorf("ParseVersion(%q) succeeded, want error", b)
		}
	}
}

// P4: version ordering is a total order; parse ∘ format round-trips.
func TestVersionOrderingAndRoundTrip(t *testing.T) {
	cases := []string{"0.1.0", "0.1.1", "0.2.0", "1.0.0", "9.0.0", "9.0.1"}
	var versions []Version
	for _, c := range cases {
		v, err := ParseVersion(c)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != c {
			t.Errorf("round-trip: ParseVersion(%q).String() = %q", c, v.String())
		}
		versions = append(versions, v)
	}
	for i := 0; i < len(versions)-1; i++ {
		if !versions[i].Less(versions[i+1]) {
			t.Errorf("%s should sort before %s", versions[i], versions[i+1])
		}
		if versions[i+1].Less(versions[i]) {
			t.Errorf("%s should not sort before %s", versions[i+1], versions[i])
		}
	}
	a, _ := ParseVersion("1.0.0")
	b, _ := ParseVersion("1.0.0")
	if a.Compare(b) != 0 {
		t.Fatalf("equal versions should compare 0, got %d", a.Compare(b))
	}
}

func TestHDLIdentVHDLBasicIsCaseInsensitive(t *testing.T) {
	a := NewVHDLBasic("FullAdder")
	b := NewVHDLBasic("fulladder")
	if !a.Equal(b) {
		t.Fatal("expected case-insensitive equality for basic VHDL identifiers")
	}
}

func TestHDLIdentVHDLExtendedIsCaseSensitive(t *testing.T) {
	a, err := NewVHDLExtended(`\Signal\`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewVHDLExtended(`\signal\`)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Fatal("extended identifiers should be case-sensitive")
	}
}

func TestHDLIdentCrossKindNeverEqual(t *testing.T) {
	basic := NewVHDLBasic("fa")
	svBasic := NewSVBasic("fa")
	if basic.Equal(svBasic) {
		t.Fatal("identifiers of different kinds must never be equal")
	}
}

func TestHDLIdentExtendedEmptyIsError(t *testing.T) {
	if _, err := NewVHDLExtended(`\\`); err == nil {
		t.Fatal("expected error for empty extended identifier body")
	}
}

func TestHDLIdentAsKeyUsableInMap(t *testing.T) {
	m := map[Key]int{}
	m[NewVHDLBasic("FA").AsKey()] = 1
	if got := m[NewVHDLBasic("fa").AsKey()]; got != 1 {
		t.Fatalf("map lookup with differently-cased key = %d, want 1", got)
	}
}
