package resolver

import (
	"testing"

	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/position"
	"github.com/hdlpm/hdlpm/internal/units"
)

func mustName(t *testing.T, s string) ident.Name {
	t.Helper()
	n, err := ident.NewName(s)
	if err != nil {
		t.Fatalf("NewName(%q) error = %v", s, err)
	}
	return n
}

func unit(name string, refs ...string) *units.Unit {
	var outbound []ident.HDLIdent
	for _, r := range refs {
		outbound = append(outbound, ident.NewVHDLBasic(r))
	}
	return &units.Unit{
		Shape:        units.Entity,
		Name:         ident.NewVHDLBasic(name),
		SourcePath:   name + ".vhd",
		Position:     position.Position{Line: 1, Col: 0},
		OutboundRefs: outbound,
	}
}

func catalog(ip string, us ...*units.Unit) IPUnits {
	m := map[ident.Key]*units.Unit{}
	for _, u := range us {
		m[u.Name.AsKey()] = u
	}
	return IPUnits{IP: mustNameOf(ip), Units: m}
}

func mustNameOf(s string) ident.Name {
	n, err := ident.NewName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// TestScenario8Cycle covers spec §8 scenario 8: A -> B -> C -> A is a
// cycle naming all three participants.
func TestScenario8Cycle(t *testing.T) {
	a := unit("a", "b")
	b := unit("b", "c")
	c := unit("c", "a")
	ipUnits := []IPUnits{catalog("gates", a, b, c)}

	_, err := Resolve(ipUnits, Options{}, nil)
	if err == nil {
		t.Fatal("Resolve() error = nil, want cycle error")
	}
	cerr, ok := err.(*CycleError)
	if !ok {
		t.Fatalf("error type = %T, want *CycleError", err)
	}
	if len(cerr.Names) < 3 {
		t.Fatalf("CycleError.Names = %v, want at least 3 participants", cerr.Names)
	}
}

// TestScenario8Order covers scenario 8's second half: removing the
// C -> A edge yields topological order [C, B, A] (leaves first).
func TestScenario8Order(t *testing.T) {
	a := unit("a", "b")
	b := unit("b", "c")
	c := unit("c") // no outgoing edge now
	ipUnits := []IPUnits{catalog("gates", a, b, c)}

	res, err := Resolve(ipUnits, Options{}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := []string{"c", "b", "a"}
	if len(res.Order) != len(want) {
		t.Fatalf("Order = %v, want len %d", res.Order, len(want))
	}
	for i, n := range res.Order {
		if n.Unit.Name.String() != want[i] {
			t.Errorf("Order[%d] = %q, want %q", i, n.Unit.Name.String(), want[i])
		}
	}
}

func TestAmbiguousReference(t *testing.T) {
	consumer := unit("top", "shared")
	shared1 := unit("shared")
	shared2 := unit("shared")
	ipUnits := []IPUnits{
		catalog("vendor-a", consumer, shared1),
		catalog("vendor-b", shared2),
	}

	_, err := Resolve(ipUnits, Options{}, nil)
	if err == nil {
		t.Fatal("Resolve() error = nil, want ambiguity error")
	}
	if _, ok := err.(*AmbiguityError); !ok {
		t.Fatalf("error type = %T, want *AmbiguityError", err)
	}
}

func TestAmbiguousReference_ResolvedByPreferIP(t *testing.T) {
	consumer := unit("top", "shared")
	shared1 := unit("shared")
	shared2 := unit("shared")
	ipUnits := []IPUnits{
		catalog("vendor-a", consumer, shared1),
		catalog("vendor-b", shared2),
	}
	preferred := mustName(t, "vendor-a")

	res, err := Resolve(ipUnits, Options{PreferIP: &preferred}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	var sawTop, sawVendorAShared bool
	for _, n := range res.Order {
		if n.Unit.Name.String() == "top" {
			sawTop = true
		}
		if n.Unit.Name.String() == "shared" && n.IP.String() == "vendor-a" {
			sawVendorAShared = true
		}
	}
	if !sawTop || !sawVendorAShared {
		t.Fatalf("Order = %v, want top and vendor-a's shared resolved", res.Order)
	}
}

func TestBlackBoxReference(t *testing.T) {
	top := unit("top", "undefined_component")
	ipUnits := []IPUnits{catalog("gates", top)}

	res, err := Resolve(ipUnits, Options{}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(res.BlackBoxes) != 1 || res.BlackBoxes[0] != "undefined_component?" {
		t.Fatalf("BlackBoxes = %v, want [undefined_component?]", res.BlackBoxes)
	}
}

func TestTestbenchExcludedFromDefaultRoots(t *testing.T) {
	tb := unit("tb_top", "dut")
	tb.IsTestbench = true
	dut := unit("dut")
	ipUnits := []IPUnits{catalog("gates", tb, dut)}

	res, err := Resolve(ipUnits, Options{}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, n := range res.Order {
		if n.Unit.Name.String() == "tb_top" {
			t.Fatalf("Order = %v, testbench should be excluded from default-root resolution", res.Order)
		}
	}
}
