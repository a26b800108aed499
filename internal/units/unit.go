// Package units extracts primary units (entities, architectures,
// configurations, packages, package bodies, modules) from VHDL and SV
// token streams, recording each unit's coarse outbound references.
// This is not an elaborator: it names declarations and the
// identifiers mentioned inside them, nothing more (spec §1 Non-goals).
package units

import (
	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/position"
)

// Shape is the kind of primary unit.
type Shape int

const (
	Entity Shape = iota
	Architecture
	Configuration
	Package
	PackageBody
	Module
)

func (s Shape) String() string {
	switch s {
	case Entity:
		return "entity"
	case Architecture:
		return "architecture"
	case Configuration:
		return "configuration"
	case Package:
		return "package"
	case PackageBody:
		return "package_body"
	case Module:
		return "module"
	default:
		return "unknown"
	}
}

// Unit is one recognized primary unit.
type Unit struct {
	Shape       Shape
	Name        ident.HDLIdent
	SourcePath  string
	Position    position.Position
	Owner       *ident.HDLIdent
	OutboundRefs []ident.HDLIdent
	IsTestbench bool
}

// outboundSet accumulates unique outbound references in first-seen
// order, keyed by their equivalence-aware Key so "FA" and "fa" dedupe
// for VHDL basic identifiers but distinct SV identifiers never do.
type outboundSet struct {
	order []ident.HDLIdent
	seen  map[ident.Key]bool
}

func newOutboundSet() *outboundSet {
	return &outboundSet{seen: map[ident.Key]bool{}}
}

func (s *outboundSet) add(id ident.HDLIdent) {
	k := id.AsKey()
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	s.order = append(s.order, id)
}

// DuplicateName records a primary-unit name seen in more than one
// source file within the same IP's merged unit set.
type DuplicateName struct {
	Name  ident.HDLIdent
	Files []string
}

// MergeUnits combines per-file unit lists into a single per-IP map
// keyed by unit name, applying first-file-wins semantics per spec
// §4.E's "within one IP, if two files define the same primary unit
// name, only the first wins" rule. perFile units are merged in the
// order given; duplicate names are reported but do not fail the merge.
func MergeUnits(perFile [][]*Unit) (map[ident.Key]*Unit, []DuplicateName) {
	merged := map[ident.Key]*Unit{}
	seenFiles := map[ident.Key][]string{}
	var dups []DuplicateName

	for _, file := range perFile {
		for _, u := range file {
			k := u.Name.AsKey()
			seenFiles[k] = append(seenFiles[k], u.SourcePath)
			if _, exists := merged[k]; exists {
				continue
			}
			merged[k] = u
		}
	}

	for k, files := range seenFiles {
		if len(files) > 1 {
			dups = append(dups, DuplicateName{Name: merged[k].Name, Files: files})
		}
	}

	return merged, dups
}

// UsableComponents filters out testbenches (modules/entities with an
// empty port list), per spec §4.E and the Testbench glossary entry.
func UsableComponents(us []*Unit) []*Unit {
	var out []*Unit
	for _, u := range us {
		if !u.IsTestbench {
			out = append(out, u)
		}
	}
	return out
}
