package resolver

type visitState int

const (
	unvisited visitState = iota
	visiting
	done
)

// topoSort emits nodes (restricted to the given closure set) in
// dependency order, leaves first: a node is only emitted once every
// node it depends on has been emitted. This is a DFS postorder
// topological sort, which naturally yields the "leaves first" order
// spec §8 scenario 8 expects. Nodes, and each node's dependency list,
// are walked in the graph's tie-break order (spec §4.H) so the result
// is deterministic whenever more than one valid order exists. A cycle
// is reported with every node on it, named in the order the DFS
// revisited the cycle's start.
func topoSort(closure []*Node, edges map[*Node]edgeResult, pub *Publisher) ([]*Node, error) {
	state := make(map[*Node]visitState, len(closure))
	var order []*Node
	var stack []*Node

	var visit func(n *Node) error
	visit = func(n *Node) error {
		switch state[n] {
		case done:
			return nil
		case visiting:
			return &CycleError{Names: cycleNames(stack, n)}
		}
		state[n] = visiting
		stack = append(stack, n)
		for _, dep := range edges[n].deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		order = append(order, n)
		pub.publishUnitResolved(n)
		return nil
	}

	for _, n := range closure {
		if state[n] == unvisited {
			if err := visit(n); err != nil {
				pub.publishCycleDetected(err.(*CycleError))
				return nil, err
			}
		}
	}
	return order, nil
}

// cycleNames returns the unit names from the point start reappears on
// stack through the end of stack, plus start again, so the reported
// cycle reads as a closed loop (A -> B -> C -> A).
func cycleNames(stack []*Node, start *Node) []string {
	begin := 0
	for i, n := range stack {
		if n == start {
			begin = i
			break
		}
	}
	var names []string
	for _, n := range stack[begin:] {
		names = append(names, n.Unit.Name.String())
	}
	names = append(names, start.Unit.Name.String())
	return names
}
