package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Eval_orOfLeaves(t *testing.T) {
	n := orOf(0, 1)
	assert.True(t, n.Eval(map[int]bool{0: true, 1: false}))
	assert.False(t, n.Eval(map[int]bool{0: false, 1: false}))
}

func Test_Eval_andOfLeaves(t *testing.T) {
	n := andOf(0, 1)
	assert.True(t, n.Eval(map[int]bool{0: true, 1: true}))
	assert.False(t, n.Eval(map[int]bool{0: true, 1: false}))
}

func Test_Eval_andWithOrBranch(t *testing.T) {
	n := NewNode(OpAnd)
	n.AddLeaf(0)
	n.AddBranch(orOf(1, 2))

	// A & (B | C)
	assert.True(t, n.Eval(map[int]bool{0: true, 1: true, 2: false}))
	assert.False(t, n.Eval(map[int]bool{0: true, 1: false, 2: false}))
	assert.False(t, n.Eval(map[int]bool{0: false, 1: true, 2: true}))
}

func Test_Eval_unassignedLeafIsFalse(t *testing.T) {
	n := orOf(5)
	assert.False(t, n.Eval(map[int]bool{}))
}
