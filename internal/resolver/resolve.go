package resolver

import (
	"github.com/hdlpm/hdlpm/internal/ident"
)

// Options configures one Resolve call.
type Options struct {
	// Root, if set, prunes the graph to the reflexive-transitive
	// closure of the single unit it names, instead of auto-selecting
	// roots (spec §4.H step 4).
	Root *ident.HDLIdent
	// PreferIP names the IP to prefer when an outbound reference or
	// Root is ambiguous across IPs.
	PreferIP *ident.Name
}

// Result is the outcome of a successful Resolve: the ordered build
// list plus any unresolved ("black box") references encountered along
// the way, which do not fail resolution (spec §4.H).
type Result struct {
	Order      []*Node
	BlackBoxes []string
}

// Resolve unions the per-IP unit catalogs into a graph, resolves
// outbound references into edges, prunes to the relevant root set, and
// emits a deterministic, dependency-ordered (leaves-first) build list.
func Resolve(ipUnits []IPUnits, opts Options, pub *Publisher) (*Result, error) {
	g := BuildGraph(ipUnits)
	edges, err := g.resolveEdges(opts.PreferIP)
	if err != nil {
		return nil, err
	}

	roots, err := selectRoots(g, edges, opts)
	if err != nil {
		return nil, err
	}
	closure := forwardClosure(roots, edges)

	order, err := topoSort(closure, edges, pub)
	if err != nil {
		return nil, err
	}

	var blackBoxes []string
	for _, n := range closure {
		blackBoxes = append(blackBoxes, edges[n].blackBoxes...)
	}

	pub.publishGraphReady(len(order))
	return &Result{Order: order, BlackBoxes: blackBoxes}, nil
}

// selectRoots finds the node(s) resolution starts from: the explicit
// Root when given, otherwise every node with no incoming edge that is
// not a testbench. If no node at all has zero incoming edges (every
// node sits on a cycle), it falls back to the whole graph so cycles
// with no natural entry point are still detected; if the only
// zero-incoming nodes are testbenches, the root set is empty.
func selectRoots(g *Graph, edges map[*Node]edgeResult, opts Options) ([]*Node, error) {
	if opts.Root != nil {
		candidates := g.byKey[opts.Root.AsKey()]
		if len(candidates) == 0 {
			return nil, &MissingIPError{IP: opts.Root.String()}
		}
		if len(candidates) == 1 {
			return candidates, nil
		}
		picked, err := disambiguate(*opts.Root, candidates, opts.PreferIP)
		if err != nil {
			return nil, err
		}
		return []*Node{picked}, nil
	}

	incoming := map[*Node]int{}
	for _, n := range g.nodes {
		incoming[n] = 0
	}
	for _, res := range edges {
		for _, dep := range res.deps {
			incoming[dep]++
		}
	}

	var roots []*Node
	hasZeroIncoming := false
	for _, n := range g.nodes {
		if incoming[n] == 0 {
			hasZeroIncoming = true
			if !n.Unit.IsTestbench {
				roots = append(roots, n)
			}
		}
	}
	if len(roots) == 0 && !hasZeroIncoming {
		// Nothing at all has zero incoming edges: the whole graph sits
		// on a cycle with no entry point. Fall back to the full node
		// set so that cycle detection still fires (spec §4.H).
		return g.nodes, nil
	}
	return roots, nil
}

// forwardClosure returns the reflexive-transitive closure of roots
// over the dependency edges, deduplicated, in tie-break order.
func forwardClosure(roots []*Node, edges map[*Node]edgeResult) []*Node {
	seen := map[*Node]bool{}
	var order []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		order = append(order, n)
		for _, dep := range edges[n].deps {
			walk(dep)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return order
}
