package routing

import "strconv"

// GenerateGate resolves node to a global source address, recursively
// resolving every branch first (at the dual layer — an AND gate's branches
// are OR terms and vice versa, the same family of layers throughout a
// normalized tree, since Standardize never leaves depth above 2) and every
// divider/front-IO/clock leaf, then looks up or allocates a pool slot for
// the resulting gate at l. l == layerLeaf means node itself is the whole
// source (the caller is generating a single-term "op null" assignment) and
// no gate is allocated — the one resolved address is returned directly.
//
// Grounded on config_parser.cpp's GenerateGate; the original's extra
// "tree->Depth(branch) >= 4" branch-layer check does not correspond to any
// method that exists on the tree or node types it names, so it is treated
// as a distillation artifact and dropped — normalization already caps
// every tree at depth 2, so recursing at l.dual() throughout is sufficient.
func GenerateGate(tree *DownscaleTree, node *Node, l layer, isScaler bool, plan *Plan) (int, bool) {
	var gate Gate

	for _, branch := range node.Branches {
		idx, ok := GenerateGate(tree, branch, l.dual(), isScaler, plan)
		if !ok {
			return -1, false
		}
		gate.Set(idx)
	}

	for i := 2; i < tree.Vars.Size(); i++ {
		if !node.HasLeaf(i) {
			continue
		}
		name := tree.Vars.Name(i)

		switch {
		case IsDivider(name):
			divisorIndex, _ := strconv.Atoi(name[2:])
			fe := tree.Forest[divisorIndex]
			gateIndex, ok := GenerateDivider(tree, fe.Root, fe.Divisor, isScaler, plan)
			if !ok {
				return -1, false
			}
			if l == layerLeaf {
				return gateIndex, true
			}
			gate.Set(gateIndex)

		case IsFrontIo(name):
			idIndex := frontIoIndex(name)
			if !isScaler {
				plan.frontInUse |= 1 << uint(idIndex)
			}
			if IsLemoIo(name) {
				plan.frontUseLemo |= 1 << uint(idIndex)
			}
			if l == layerLeaf {
				return idIndex, true
			}
			gate.Set(idIndex)

		case IsClock(name):
			if l != layerLeaf {
				return -1, false
			}
			return GenerateClock(name, plan)
		}
	}

	return poolIndex(plan, l, gate)
}

// poolIndex deduplicates gate against l's pool, allocating a new slot only
// if no existing gate has the identical source set.
func poolIndex(plan *Plan, l layer, gate Gate) (int, bool) {
	pool := plan.gates[l-1]
	for i, g := range pool {
		if g.Equal(gate) {
			return l.offset() + i, true
		}
	}
	if len(pool) >= plan.capacity(l) {
		return -1, false
	}
	plan.gates[l-1] = append(pool, gate)
	return l.offset() + len(pool), true
}

// GenerateDivider resolves a divided subtree's own source, then looks up
// or allocates a divider pool slot for (source, divisor).
func GenerateDivider(tree *DownscaleTree, node *Node, divisor int, isScaler bool, plan *Plan) (int, bool) {
	if divisor <= 0 {
		return -1, false
	}

	sourceLayer := layerLeaf
	switch node.Op {
	case OpOr:
		sourceLayer = layerOr
	case OpAnd:
		sourceLayer = layerAnd
	}
	sourceIndex, ok := GenerateGate(tree, node, sourceLayer, isScaler, plan)
	if !ok {
		return -1, false
	}

	for i, d := range plan.Dividers {
		if d.Source == sourceIndex && d.Divisor == divisor {
			return DividersOffset + i, true
		}
	}
	if len(plan.Dividers) >= plan.dividerCapacity() {
		return -1, false
	}
	plan.Dividers = append(plan.Dividers, DividerInfo{Source: sourceIndex, Divisor: divisor})
	return DividersOffset + len(plan.Dividers) - 1, true
}

// GenerateClock looks up or allocates a clock pool slot for the frequency
// named clock encodes.
func GenerateClock(clock string, plan *Plan) (int, bool) {
	freq := ParseFrequency(clock)
	for i, f := range plan.Clocks {
		if f == freq {
			return ClocksOffset + i, true
		}
	}
	if len(plan.Clocks) >= plan.clockCapacity() {
		return -1, false
	}
	plan.Clocks = append(plan.Clocks, freq)
	return ClocksOffset + len(plan.Clocks) - 1, true
}
