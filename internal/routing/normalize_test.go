package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// allAssignments enumerates every truth assignment over leaf indices
// 0..n-1 and reports whether a and b agree on every one of them.
func equivalentOver(a, b *Node, n int) bool {
	for bits := 0; bits < 1<<uint(n); bits++ {
		assignment := make(map[int]bool, n)
		for i := 0; i < n; i++ {
			assignment[i] = bits&(1<<uint(i)) != 0
		}
		if a.Eval(assignment) != b.Eval(assignment) {
			return false
		}
	}
	return true
}

func orOf(leaves ...int) *Node {
	n := NewNode(OpOr)
	for _, l := range leaves {
		n.AddLeaf(l)
	}
	return n
}

func andOf(leaves ...int) *Node {
	n := NewNode(OpAnd)
	for _, l := range leaves {
		n.AddLeaf(l)
	}
	return n
}

// Test_ExchangeOrder_preservesMeaning builds AND{OR(A,B), OR(C,D)} — the
// product of two sums — and checks the exchanged OR-of-ANDs form evaluates
// identically across every assignment of its four variables.
func Test_ExchangeOrder_preservesMeaning(t *testing.T) {
	outer := NewNode(OpAnd)
	outer.AddBranch(orOf(0, 1))
	outer.AddBranch(orOf(2, 3))

	exchanged := outer.ExchangeOrder()
	assert.Equal(t, OpOr, exchanged.Op)
	assert.True(t, equivalentOver(outer, exchanged, 4))
}

func Test_ExchangeOrder_withSharedLeaf(t *testing.T) {
	// AND{ OR(A,B), OR(A,C) } = A | (B & C), the "public" leaf case.
	outer := NewNode(OpAnd)
	outer.AddBranch(orOf(0, 1))
	outer.AddBranch(orOf(0, 2))

	exchanged := outer.ExchangeOrder()
	assert.True(t, equivalentOver(outer, exchanged, 3))
}

func Test_ExchangeOrder_withDirectLeafOnOuter(t *testing.T) {
	// AND{ leaf 2, OR(A,B) } = C & (A|B).
	outer := NewNode(OpAnd)
	outer.AddLeaf(2)
	outer.AddBranch(orOf(0, 1))

	exchanged := outer.ExchangeOrder()
	assert.True(t, equivalentOver(outer, exchanged, 3))
}

func Test_Standardize_rootOrBecomesAndOfOrs(t *testing.T) {
	// OR{ AND(A,B), AND(C,D) } standardizes to AND-outer/OR-inner form,
	// preserving meaning.
	root := NewNode(OpOr)
	root.AddBranch(andOf(0, 1))
	root.AddBranch(andOf(2, 3))

	before := NewNode(OpOr)
	before.AddBranch(andOf(0, 1))
	before.AddBranch(andOf(2, 3))

	root.Standardize()

	assert.Equal(t, OpAnd, root.Op)
	assert.LessOrEqual(t, root.Depth(), 2)
	assert.True(t, equivalentOver(before, root, 4))
}

func Test_Standardize_foldsSingleLeafBranch(t *testing.T) {
	n := NewNode(OpAnd)
	single := NewNode(OpOr)
	single.AddLeaf(7)
	n.Branches = append(n.Branches, single)

	n.Standardize()

	assert.Empty(t, n.Branches)
	assert.True(t, n.HasLeaf(7))
}

func Test_ReduceLayers_capsDepthAtTwo(t *testing.T) {
	// AND{ OR{ AND(A,B), AND(C,D) } } is depth 3; reducing should collapse
	// it to depth <= 2 while preserving meaning.
	inner := NewNode(OpOr)
	inner.AddBranch(andOf(0, 1))
	inner.AddBranch(andOf(2, 3))

	outer := NewNode(OpAnd)
	outer.AddLeaf(4)
	outer.AddBranch(inner)

	before := NewNode(OpAnd)
	before.AddLeaf(4)
	beforeInner := NewNode(OpOr)
	beforeInner.AddBranch(andOf(0, 1))
	beforeInner.AddBranch(andOf(2, 3))
	before.AddBranch(beforeInner)

	outer.ReduceLayers()

	assert.LessOrEqual(t, outer.Depth(), 2)
	assert.True(t, equivalentOver(before, outer, 5))
}
