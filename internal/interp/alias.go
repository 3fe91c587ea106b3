package interp

// AliasTable tracks which by-reference parameter names are aliases of one
// another within a single active call, as an undirected adjacency graph.
// Binding a by-ref argument "x" to a parameter "y" adds the edge x<->y; a
// write to either name is propagated to every name in its connected
// component via Closure.
//
// Brew has no teacher analogue for this (DWScript passes by reference
// through the host language's own pointer semantics, never needing an
// explicit alias graph). Grounded directly on
// original_source/Brewin/interpreterv4.py's ref_mapping: a dict of
// name -> set[name] built per call and consulted by do_assignment to
// propagate writes to every other name sharing the same storage.
type AliasTable struct {
	edges map[string]map[string]bool
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{edges: make(map[string]map[string]bool)}
}

// AddEdge records that a and b refer to the same underlying storage.
func (t *AliasTable) AddEdge(a, b string) {
	if a == b {
		return
	}
	t.link(a, b)
	t.link(b, a)
}

func (t *AliasTable) link(from, to string) {
	set, ok := t.edges[from]
	if !ok {
		set = make(map[string]bool)
		t.edges[from] = set
	}
	set[to] = true
}

// Closure returns every name transitively aliased to name (excluding name
// itself), via breadth-first search over the adjacency graph.
func (t *AliasTable) Closure(name string) []string {
	visited := map[string]bool{name: true}
	queue := []string{name}
	var out []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for neighbor := range t.edges[cur] {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			out = append(out, neighbor)
			queue = append(queue, neighbor)
		}
	}
	return out
}

// Empty reports whether the table has no edges at all.
func (t *AliasTable) Empty() bool {
	return len(t.edges) == 0
}
