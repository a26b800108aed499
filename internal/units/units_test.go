package units

import (
	"testing"

	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/sv"
	"github.com/hdlpm/hdlpm/internal/vhdl"
)

func lexVHDL(src string) []vhdl.Token {
	l := vhdl.New(src, "t.vhd")
	return l.TokenizeAll()
}

func lexSV(src string) []sv.Token {
	l := sv.New(src, "t.sv")
	return l.TokenizeAll()
}

func TestExtractVHDLEntityNoPortsIsTestbench(t *testing.T) {
	toks := lexVHDL("entity fa is end entity;")
	us, err := ExtractVHDL(toks, "fa.vhd")
	if err != nil {
		t.Fatal(err)
	}
	if len(us) != 1 {
		t.Fatalf("got %d units, want 1", len(us))
	}
	u := us[0]
	if u.Shape != Entity {
		t.Fatalf("shape = %v, want Entity", u.Shape)
	}
	if !u.Name.Equal(ident.NewVHDLBasic("fa")) {
		t.Fatalf("name = %v, want fa", u.Name)
	}
	if !u.IsTestbench {
		t.Fatal("entity with no port clause should be classified as a testbench")
	}
}

func TestExtractVHDLEntityWithPortsIsNotTestbench(t *testing.T) {
	src := `entity fa is
		port ( a : in std_logic; b : in std_logic; s : out std_logic );
	end entity fa;`
	toks := lexVHDL(src)
	us, err := ExtractVHDL(toks, "fa.vhd")
	if err != nil {
		t.Fatal(err)
	}
	if us[0].IsTestbench {
		t.Fatal("entity with non-empty port clause should not be a testbench")
	}
	found := false
	for _, r := range us[0].OutboundRefs {
		if r.Equal(ident.NewVHDLBasic("std_logic")) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected std_logic among outbound refs, got %v", us[0].OutboundRefs)
	}
}

func TestExtractVHDLEntityWithEmptyPortsIsTestbench(t *testing.T) {
	toks := lexVHDL("entity tb is port ( ); end entity tb;")
	us, err := ExtractVHDL(toks, "tb.vhd")
	if err != nil {
		t.Fatal(err)
	}
	if !us[0].IsTestbench {
		t.Fatal("entity with empty port() clause should be a testbench")
	}
}

func TestExtractVHDLArchitectureReferencesEntity(t *testing.T) {
	src := `architecture rtl of fa is
	begin
	end architecture rtl;`
	toks := lexVHDL(src)
	us, err := ExtractVHDL(toks, "fa.vhd")
	if err != nil {
		t.Fatal(err)
	}
	if len(us) != 1 || us[0].Shape != Architecture {
		t.Fatalf("got %+v", us)
	}
	if us[0].Owner == nil || !us[0].Owner.Equal(ident.NewVHDLBasic("fa")) {
		t.Fatalf("owner = %v, want fa", us[0].Owner)
	}
}

func TestExtractVHDLArchitectureWithNestedProcessStatement(t *testing.T) {
	src := `architecture rtl of fa is
	begin
		process begin end process;
		u1: comp port map(a => x, b => y);
	end architecture rtl;`
	toks := lexVHDL(src)
	us, err := ExtractVHDL(toks, "fa.vhd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(us) != 1 || us[0].Shape != Architecture {
		t.Fatalf("got %+v", us)
	}
	found := false
	for _, r := range us[0].OutboundRefs {
		if r.Equal(ident.NewVHDLBasic("comp")) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected comp among outbound refs past the nested process, got %v", us[0].OutboundRefs)
	}
}

func TestExtractVHDLArchitectureWithIfCaseLoopGenerateBlock(t *testing.T) {
	src := `architecture rtl of fa is
	begin
		process begin
			if en = '1' then
				q <= d;
			end if;
			case sel is
				when others => null;
			end case;
			for i in 0 to 3 loop
				acc := acc + i;
			end loop;
		end process;

		gen_lbl: if true generate
			u2: comp2 port map(x => y);
		end generate;

		blk_lbl: block
			signal tmp : std_logic;
		begin
			tmp <= '0';
		end block;
	end architecture rtl;`
	toks := lexVHDL(src)
	us, err := ExtractVHDL(toks, "fa.vhd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(us) != 1 || us[0].Shape != Architecture {
		t.Fatalf("got %+v", us)
	}
	var names []string
	for _, r := range us[0].OutboundRefs {
		names = append(names, r.String())
	}
	for _, want := range []string{"comp2", "tmp"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %q among outbound refs %v", want, names)
		}
	}
}

func TestExtractVHDLPackageBodyOwnedByPackage(t *testing.T) {
	src := `package gates is
	end package gates;
	package body gates is
	end package body gates;`
	toks := lexVHDL(src)
	us, err := ExtractVHDL(toks, "gates.vhd")
	if err != nil {
		t.Fatal(err)
	}
	if len(us) != 2 {
		t.Fatalf("got %d units, want 2", len(us))
	}
	if us[0].Shape != Package {
		t.Fatalf("unit 0 shape = %v, want Package", us[0].Shape)
	}
	if us[1].Shape != PackageBody {
		t.Fatalf("unit 1 shape = %v, want PackageBody", us[1].Shape)
	}
	if us[1].Owner == nil || !us[1].Owner.Equal(ident.NewVHDLBasic("gates")) {
		t.Fatalf("package body owner = %v, want gates", us[1].Owner)
	}
}

func TestExtractSVModuleWithPortsIsNotTestbench(t *testing.T) {
	src := `module adder(input a, input b, output sum); endmodule`
	toks := lexSV(src)
	us, err := ExtractSV(toks, "adder.sv")
	if err != nil {
		t.Fatal(err)
	}
	if len(us) != 1 || us[0].Shape != Module {
		t.Fatalf("got %+v", us)
	}
	if us[0].IsTestbench {
		t.Fatal("module with non-empty port list should not be a testbench")
	}
}

func TestExtractSVModuleEmptyPortsIsTestbench(t *testing.T) {
	toks := lexSV("module adder_tb(); endmodule")
	us, err := ExtractSV(toks, "adder_tb.sv")
	if err != nil {
		t.Fatal(err)
	}
	if !us[0].IsTestbench {
		t.Fatal("module with empty () should be a testbench")
	}
}

func TestExtractSVModuleNoPortsAtAllIsTestbench(t *testing.T) {
	toks := lexSV("module tb; endmodule")
	us, err := ExtractSV(toks, "tb.sv")
	if err != nil {
		t.Fatal(err)
	}
	if !us[0].IsTestbench {
		t.Fatal("module declared with no port-list parens at all should be a testbench")
	}
}

func TestExtractSVModuleWithParameterPortList(t *testing.T) {
	src := `module counter #(parameter WIDTH = 8) (input clk, output [WIDTH-1:0] q); endmodule`
	toks := lexSV(src)
	us, err := ExtractSV(toks, "counter.sv")
	if err != nil {
		t.Fatal(err)
	}
	if us[0].IsTestbench {
		t.Fatal("module with a parameter list followed by real ports should not be a testbench")
	}
}

func TestMergeUnitsFirstFileWins(t *testing.T) {
	fileA := []*Unit{{Name: ident.NewVHDLBasic("fa"), SourcePath: "a.vhd", Shape: Entity}}
	fileB := []*Unit{{Name: ident.NewVHDLBasic("FA"), SourcePath: "b.vhd", Shape: Entity}}

	merged, dups := MergeUnits([][]*Unit{fileA, fileB})
	if len(merged) != 1 {
		t.Fatalf("got %d merged units, want 1", len(merged))
	}
	k := ident.NewVHDLBasic("fa").AsKey()
	if merged[k].SourcePath != "a.vhd" {
		t.Fatalf("merged unit came from %q, want first file a.vhd", merged[k].SourcePath)
	}
	if len(dups) != 1 || len(dups[0].Files) != 2 {
		t.Fatalf("dups = %+v, want one duplicate across 2 files", dups)
	}
}

func TestUsableComponentsExcludesTestbenches(t *testing.T) {
	us := []*Unit{
		{Name: ident.NewVHDLBasic("fa"), IsTestbench: false},
		{Name: ident.NewVHDLBasic("fa_tb"), IsTestbench: true},
	}
	usable := UsableComponents(us)
	if len(usable) != 1 || usable[0].Name.String() != "fa" {
		t.Fatalf("usable = %+v, want just fa", usable)
	}
}
