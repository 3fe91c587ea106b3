package interp

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasClosureTransitive(t *testing.T) {
	table := NewAliasTable()
	table.AddEdge("x", "n")
	table.AddEdge("n", "m") // m aliases n transitively through the caller's chain

	closure := table.Closure("x")
	sort.Strings(closure)
	assert.Equal(t, []string{"m", "n"}, closure)
}

func TestAliasClosureEmptyForUnrelatedName(t *testing.T) {
	table := NewAliasTable()
	table.AddEdge("x", "n")

	assert.Empty(t, table.Closure("y"))
	assert.True(t, table.Empty() == false)
}

func TestAliasSelfEdgeIgnored(t *testing.T) {
	table := NewAliasTable()
	table.AddEdge("x", "x")
	assert.True(t, table.Empty())
}
