package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Node_HasLeafAndAddLeaf(t *testing.T) {
	n := NewNode(OpOr)
	assert.False(t, n.HasLeaf(3))
	n.AddLeaf(3)
	assert.True(t, n.HasLeaf(3))
	assert.Equal(t, 1, n.LeafCount())
}

func Test_Node_Equal(t *testing.T) {
	a := NewNode(OpAnd)
	a.AddLeaf(0)
	a.AddLeaf(1)

	b := NewNode(OpAnd)
	b.AddLeaf(0)
	b.AddLeaf(1)

	c := NewNode(OpAnd)
	c.AddLeaf(0)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func Test_Node_Depth(t *testing.T) {
	leaf := NewNode(OpOr)
	leaf.AddLeaf(0)
	assert.Equal(t, 1, leaf.Depth())

	outer := NewNode(OpAnd)
	outer.AddLeaf(1)
	outer.AddBranch(leaf)
	assert.Equal(t, 2, outer.Depth())
}

func Test_Node_IsOneLeaf(t *testing.T) {
	single := NewNode(OpOr)
	single.AddLeaf(5)
	idx, ok := single.IsOneLeaf()
	assert.True(t, ok)
	assert.Equal(t, 5, idx)

	wrapped := NewNode(OpAnd)
	wrapped.AddBranch(single)
	idx, ok = wrapped.IsOneLeaf()
	assert.True(t, ok)
	assert.Equal(t, 5, idx)

	multi := NewNode(OpOr)
	multi.AddLeaf(1)
	multi.AddLeaf(2)
	_, ok = multi.IsOneLeaf()
	assert.False(t, ok)
}

func Test_Node_AddBranch_dropsLeafSubsetOfParent(t *testing.T) {
	parent := NewNode(OpAnd)
	parent.AddLeaf(0)

	candidate := NewNode(OpOr)
	candidate.AddLeaf(0)

	added := parent.AddBranch(candidate)
	assert.False(t, added)
	assert.Empty(t, parent.Branches)
}

func Test_Node_AddBranch_dropsDuplicateBranch(t *testing.T) {
	parent := NewNode(OpAnd)

	b1 := NewNode(OpOr)
	b1.AddLeaf(2)
	b1.AddLeaf(3)

	b2 := NewNode(OpOr)
	b2.AddLeaf(2)
	b2.AddLeaf(3)

	assert.True(t, parent.AddBranch(b1))
	assert.False(t, parent.AddBranch(b2))
	assert.Len(t, parent.Branches, 1)
}

func Test_Node_AddBranch_dropsSubsumedSibling(t *testing.T) {
	parent := NewNode(OpAnd)

	small := NewNode(OpOr)
	small.AddLeaf(2)

	big := NewNode(OpOr)
	big.AddLeaf(2)
	big.AddLeaf(3)

	assert.True(t, parent.AddBranch(big))
	assert.True(t, parent.AddBranch(small))
	// big is a leaf-superset of small, so under AND it is redundant
	// (2 & (2 | 3) == 2) and should have been dropped.
	assert.Len(t, parent.Branches, 1)
	assert.True(t, parent.Branches[0].Equal(small))
}

func Test_Node_DeleteBranch(t *testing.T) {
	n := NewNode(OpAnd)
	b0 := NewNode(OpOr)
	b0.AddLeaf(0)
	b1 := NewNode(OpOr)
	b1.AddLeaf(1)
	b1.AddLeaf(9)
	n.AddBranch(b0)
	n.AddBranch(b1)
	before := len(n.Branches)
	n.DeleteBranch(0)
	assert.Len(t, n.Branches, before-1)
	assert.True(t, n.Branches[0].Equal(b1))
}
