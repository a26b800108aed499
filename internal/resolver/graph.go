// Package resolver composes the per-IP primary-unit catalogs built by
// internal/units into a single dependency graph, and emits an ordered
// build list by topological sort over outbound references (spec §4.H).
package resolver

import (
	"sort"

	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/units"
)

// Node is one primary unit placed in the graph, tagged with the IP
// that owns it — the same unit name can recur across IPs, which is
// exactly the ambiguity case Resolve must detect.
type Node struct {
	IP   ident.Name
	Unit *units.Unit
}

func (n *Node) key() ident.Key {
	return n.Unit.Name.AsKey()
}

// less implements the spec §4.H tie-break: (IP name, file path,
// position), used wherever the topological sort has more than one
// legal next node so that output order is deterministic.
func (n *Node) less(other *Node) bool {
	if n.IP.String() != other.IP.String() {
		return n.IP.String() < other.IP.String()
	}
	if n.Unit.SourcePath != other.Unit.SourcePath {
		return n.Unit.SourcePath < other.Unit.SourcePath
	}
	if n.Unit.Position.Line != other.Unit.Position.Line {
		return n.Unit.Position.Line < other.Unit.Position.Line
	}
	return n.Unit.Position.Col < other.Unit.Position.Col
}

// IPUnits is one IP's merged per-file unit catalog (the output of
// units.MergeUnits), ready to be folded into a Graph.
type IPUnits struct {
	IP    ident.Name
	Units map[ident.Key]*units.Unit
}

// Graph is a directed graph over primary units across one or more
// IPs, with edges derived from each unit's outbound reference set.
type Graph struct {
	nodes []*Node
	byKey map[ident.Key][]*Node
}

// BuildGraph flattens a set of per-IP unit catalogs into a Graph.
// Nodes are sorted into the tie-break order up front so that every
// pass over g.nodes iterates deterministically.
func BuildGraph(ipUnits []IPUnits) *Graph {
	g := &Graph{byKey: map[ident.Key][]*Node{}}
	for _, ip := range ipUnits {
		for _, u := range ip.Units {
			n := &Node{IP: ip.IP, Unit: u}
			g.nodes = append(g.nodes, n)
			g.byKey[n.key()] = append(g.byKey[n.key()], n)
		}
	}
	sort.Slice(g.nodes, func(i, j int) bool { return g.nodes[i].less(g.nodes[j]) })
	return g
}

// edgeResult is the outcome of resolving one node's outbound
// references against the graph.
type edgeResult struct {
	deps      []*Node  // successfully resolved, in tie-break order
	blackBoxes []string // unresolved reference names, each with a trailing "?"
}

// resolveEdges returns, for every node in the graph, which other nodes
// it depends on. An outbound reference matching no node becomes a
// black-box leaf (spec §4.H: "do not fail resolution"). A reference
// matching more than one node is an ambiguity unless preferIP names
// the owning IP of exactly one candidate.
func (g *Graph) resolveEdges(preferIP *ident.Name) (map[*Node]edgeResult, error) {
	out := make(map[*Node]edgeResult, len(g.nodes))
	for _, n := range g.nodes {
		var res edgeResult
		for _, ref := range n.Unit.OutboundRefs {
			candidates := g.byKey[ref.AsKey()]
			switch len(candidates) {
			case 0:
				res.blackBoxes = append(res.blackBoxes, ref.String()+"?")
			case 1:
				res.deps = append(res.deps, candidates[0])
			default:
				picked, err := disambiguate(ref, candidates, preferIP)
				if err != nil {
					return nil, err
				}
				res.deps = append(res.deps, picked)
			}
		}
		sort.Slice(res.deps, func(i, j int) bool { return res.deps[i].less(res.deps[j]) })
		out[n] = res
	}
	return out, nil
}

func disambiguate(ref ident.HDLIdent, candidates []*Node, preferIP *ident.Name) (*Node, error) {
	if preferIP != nil {
		var match *Node
		count := 0
		for _, c := range candidates {
			if c.IP.Equivalent(*preferIP) {
				match = c
				count++
			}
		}
		if count == 1 {
			return match, nil
		}
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.IP.String())
	}
	return nil, &AmbiguityError{Name: ref.String(), IPCandidates: names}
}
