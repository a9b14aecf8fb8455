package routing

// ExchangeOrder rewrites a depth-2 node (outer n.Op, inner dual(n.Op)) into
// an equivalent depth-2 node with the operators swapped — the algebraic
// distributivity law generalized to arbitrary arity. n must have at least
// one branch and every branch must itself be depth 1 (the shape every
// caller here guarantees before invoking it).
//
// The returned node accumulates "public" leaves shared by every branch seen
// so far, and a cross-product expansion of what differs; both steps apply
// add-branch/add-leaf's subsumption invariants automatically.
func (n *Node) ExchangeOrder() *Node {
	resultOp := n.Op.dual()
	innerOp := n.Op

	public := n.Branches[0].Leaves
	prev := NewNode(resultOp)

	for _, branch := range n.Branches[1:] {
		newPublic := public & branch.Leaves
		prev.AddLeaves(public &^ newPublic)
		residual := branch.Leaves &^ newPublic

		temp := NewNode(resultOp)
		for i := 0; i < MaxLeaves; i++ {
			if residual&(1<<uint(i)) == 0 {
				continue
			}
			for _, pb := range prev.Branches {
				nb := NewNode(innerOp)
				nb.AddLeaves(pb.Leaves)
				nb.AddLeaf(i)
				temp.AddBranch(nb)
			}
			for j := 0; j < MaxLeaves; j++ {
				if prev.Leaves&(1<<uint(j)) == 0 {
					continue
				}
				nb := NewNode(innerOp)
				nb.AddLeaf(i)
				nb.AddLeaf(j)
				temp.AddBranch(nb)
			}
		}
		prev = temp
		public = newPublic
	}

	for i := 0; i < MaxLeaves; i++ {
		if n.Leaves&(1<<uint(i)) == 0 {
			continue
		}
		if public&(1<<uint(i)) == 0 {
			prev.AddLeaves(public)
			temp := NewNode(resultOp)
			for _, pb := range prev.Branches {
				nb := NewNode(innerOp)
				nb.AddLeaves(pb.Leaves)
				nb.AddLeaf(i)
				temp.AddBranch(nb)
			}
			for j := 0; j < MaxLeaves; j++ {
				if prev.Leaves&(1<<uint(j)) == 0 {
					continue
				}
				nb := NewNode(innerOp)
				nb.AddLeaf(i)
				nb.AddLeaf(j)
				temp.AddBranch(nb)
			}
			prev = temp
			public = 0
		} else {
			public = 1 << uint(i)
			prev = NewNode(resultOp)
		}
	}

	prev.AddLeaves(public)
	return prev
}

// ReduceLayers iteratively brings n's depth down to at most 2: branches are
// reduced first (recursively), then each depth-2 branch is exchanged into
// the dual operator order and its (depth-1) resulting branches are adopted
// directly as branches of n, dropping one layer at a time.
func (n *Node) ReduceLayers() {
	if n.Depth() <= 2 {
		return
	}
	for _, b := range n.Branches {
		b.ReduceLayers()
	}

	changed := true
	for changed {
		changed = false
		for i, b := range n.Branches {
			if b.Depth() != 2 {
				continue
			}
			exchanged := b.ExchangeOrder()
			n.DeleteBranch(i)
			for _, nb := range exchanged.Branches {
				n.AddBranch(nb)
			}
			changed = true
			break
		}
	}
}

// Standardize re-establishes every invariant of spec section 4.5: depth
// reduction to at most 2, product-of-sums canonicalization at the root
// (AND outer, OR branches), and single-leaf branch folding. It is applied
// independently to the master tree and to each downscale forest root.
func (n *Node) Standardize() {
	n.ReduceLayers()

	if n.Depth() == 2 && n.Op == OpOr {
		exchanged := n.ExchangeOrder()
		n.Branches = nil
		n.Op = exchanged.Op
		n.Leaves = exchanged.Leaves
		for _, b := range exchanged.Branches {
			n.AddBranch(b)
		}
	}

	changed := true
	for changed {
		changed = false
		for i, b := range n.Branches {
			if leaf, ok := b.IsOneLeaf(); ok {
				n.AddLeaf(leaf)
				n.DeleteBranch(i)
				changed = true
				break
			}
		}
	}
}
