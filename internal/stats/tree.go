package stats

import "sort"

// Node is one sibling in the aggregation tree. Children is empty at the
// deepest active dimension. A non-leaf node's metrics are always the
// component-wise sum of its children's, by construction.
type Node struct {
	Value    GroupValue
	Metrics  MetricSet
	Children []Node
}

// buildTree turns flat full-granularity rows into the nested sibling list
// for the active dimensions. Rows are grouped by their first dimension
// value; each group's subtree is built recursively from the remaining
// values, and the group's own metrics are recomputed as the sum of its
// children rather than read from any upstream group total. A dimension
// value with no rows at all is simply absent, never emitted as a zero row.
func buildTree(set rowSet) []Node {
	return buildLevel(set.rows, len(set.active))
}

func buildLevel(rows []Row, depth int) []Node {
	if depth == 0 {
		return nil
	}

	// Group rows by their leading dimension value, keeping first-seen order
	// so the result is independent of map iteration.
	var order []GroupValue
	groups := make(map[GroupValue][]Row)
	for _, row := range rows {
		head := row.Values[0]
		if _, seen := groups[head]; !seen {
			order = append(order, head)
		}
		groups[head] = append(groups[head], Row{Values: row.Values[1:], Metrics: row.Metrics})
	}

	nodes := make([]Node, 0, len(order))
	for _, value := range order {
		group := groups[value]
		node := Node{Value: value}

		if depth == 1 {
			// Leaf level: duplicate tuples are merged additively.
			for _, row := range group {
				node.Metrics = node.Metrics.Add(row.Metrics)
			}
		} else {
			node.Children = buildLevel(group, depth-1)
			for _, child := range node.Children {
				node.Metrics = node.Metrics.Add(child.Metrics)
			}
		}

		nodes = append(nodes, node)
	}

	return nodes
}

// sortTree orders siblings at every level by active_specimens descending.
// Ties break on label ascending (case-sensitive byte order), then on id, so
// the output is deterministic regardless of collaborator row order.
func sortTree(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Metrics.ActiveSpecimens != b.Metrics.ActiveSpecimens {
			return a.Metrics.ActiveSpecimens > b.Metrics.ActiveSpecimens
		}
		if a.Value.Label != b.Value.Label {
			return a.Value.Label < b.Value.Label
		}
		return a.Value.ID < b.Value.ID
	})
	for i := range nodes {
		sortTree(nodes[i].Children)
	}
}
