// Package criticalpath finds the heaviest dependency chain of a DAG.
package criticalpath

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// Path is a chain of vertices from a root to a leaf and its total weight.
type Path[K comparable] struct {
	Vertices []K
	Weight   int
}

// Longest returns the chain whose summed vertex weights is the largest. less
// orders vertices so that ties always resolve the same way.
func Longest[K comparable, T any](g graph.Graph[K, T], weight func(T) int, less func(a, b K) bool) (Path[K], error) {
	order, err := graph.StableTopologicalSort(g, less)
	if err != nil {
		return Path[K]{}, errors.Wrap(err, "unable to sort graph")
	}
	if len(order) == 0 {
		return Path[K]{}, nil
	}

	predecessors, err := g.PredecessorMap()
	if err != nil {
		return Path[K]{}, errors.Wrap(err, "unable to get predecessor map")
	}

	rank := make(map[K]int, len(order))
	for i, k := range order {
		rank[k] = i
	}

	dist := make(map[K]int, len(order))
	prev := make(map[K]K, len(order))
	hasPrev := make(map[K]bool, len(order))

	for _, k := range order {
		value, err := g.Vertex(k)
		if err != nil {
			return Path[K]{}, errors.Wrapf(err, "unable to get vertex %v", k)
		}

		best, found := 0, false
		var bestPred K
		for pred := range predecessors[k] {
			d := dist[pred]
			if !found || d > best || (d == best && rank[pred] < rank[bestPred]) {
				best, bestPred, found = d, pred, true
			}
		}

		dist[k] = best + weight(value)
		if found {
			prev[k] = bestPred
			hasPrev[k] = true
		}
	}

	end := order[0]
	for _, k := range order[1:] {
		if dist[k] > dist[end] {
			end = k
		}
	}

	path := []K{end}
	for cur := end; hasPrev[cur]; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return Path[K]{Vertices: path, Weight: dist[end]}, nil
}
