// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import "sort"

// CompileMaterialGraph traverses graph depth-first from each configured
// result parameter, emitting GLSL expressions for every reachable node
// exactly once (memoized by node id) and substituting each result
// parameter's default expression when it was never connected. It returns
// the cycle error from the graph's first detected back-edge before
// emitting anything, matching the "no cycles" invariant.
func CompileMaterialGraph(graph *Graph) (map[string]string, error) {
	if err := graph.detectCycle(); err != nil {
		return nil, err
	}

	emitted := make(map[NodeID][]string)
	var emit func(id NodeID) ([]string, error)
	emit = func(id NodeID) ([]string, error) {
		if outs, ok := emitted[id]; ok {
			return outs, nil
		}
		n := graph.nodes[id]
		inputExprs := make([]string, len(n.Inputs))
		for i, sock := range n.Inputs {
			if ref, ok := graph.inputs[inputKey{id, i}]; ok {
				outs, err := emit(ref.Node)
				if err != nil {
					return nil, err
				}
				inputExprs[i] = outs[ref.Output]
				continue
			}
			def, ok := graph.defaults[inputKey{id, i}]
			if !ok {
				return nil, &UnconnectedInputError{Node: id, Socket: sock.Name}
			}
			inputExprs[i] = def
		}
		outs, err := n.Build(inputExprs)
		if err != nil {
			return nil, err
		}
		emitted[id] = outs
		return outs, nil
	}

	names := make([]string, 0, len(graph.results)+len(graph.resultDefaults))
	seen := make(map[string]bool)
	for name := range graph.results {
		names = append(names, name)
		seen[name] = true
	}
	for name := range graph.resultDefaults {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make(map[string]string, len(names))
	for _, name := range names {
		if ref, ok := graph.results[name]; ok {
			outs, err := emit(ref.Node)
			if err != nil {
				return nil, err
			}
			out[name] = outs[ref.Output]
			continue
		}
		out[name] = graph.resultDefaults[name]
	}
	return out, nil
}
