package routing

import (
	"fmt"

	"github.com/kinstaky/logicroute/internal/diag"
	"github.com/kinstaky/logicroute/internal/lex"
)

// VarTable interns the leaf names of a single downscale tree. Index 0 and 1
// are always the literal constants "0" and "1" — a name-based redesign of
// the original's pointer-identity interning, chosen so that the literal
// special-casing in generate (root Leaf(0)/Leaf(1)) is a plain index
// comparison rather than a pointer comparison against a global singleton.
type VarTable struct {
	names []string
	index map[string]int
}

// NewVarTable returns a table pre-seeded with "0" at index 0 and "1" at
// index 1.
func NewVarTable() *VarTable {
	t := &VarTable{index: make(map[string]int)}
	t.intern("0")
	t.intern("1")
	return t
}

func (t *VarTable) intern(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = i
	return i
}

// Name returns the interned name at index i.
func (t *VarTable) Name(i int) string {
	return t.names[i]
}

// Size returns the number of interned names.
func (t *VarTable) Size() int {
	return len(t.names)
}

// ForestEntry is one divided subtree: the root of the divided expression
// together with its divisor. The forest is one-to-one with every "/ N"
// occurring anywhere in the expression, addressed from the master tree (or
// from another forest entry, though nested downscale is rejected earlier)
// through a synthetic "_Dk" leaf.
type ForestEntry struct {
	Divisor int
	Root    *Node
}

// DownscaleTree is the normalized output of C4/C5: a master tree plus the
// forest of divided subtrees it references, sharing one variable table.
// Grounded on standard_logic_downscale_tree.cpp's StandardLogicDownscaleTree
// constructor (ParseE/ParseT/ParseF followed by Standardize on every root).
type DownscaleTree struct {
	Vars   *VarTable
	Master *Node
	Forest []ForestEntry
}

type downscaleBuilder struct {
	tokens []lex.Token
	pos    int
	vars   *VarTable
	forest []ForestEntry
}

// buildDownscaleTree parses rhs (the tokens of an expression's right-hand
// side, after macro expansion) into a DownscaleTree. vars is the table the
// tree's leaf indices refer to; Compiler.Parse passes a fresh table for
// every line, so leaf indices are local to one tree.
func buildDownscaleTree(rhs []lex.Token, vars *VarTable) (*DownscaleTree, diag.Result) {
	b := &downscaleBuilder{tokens: rhs, vars: vars}

	root, res := b.parseE()
	if !res.Ok() {
		return nil, res
	}
	if b.pos != len(b.tokens) {
		tok := b.tokens[b.pos]
		return nil, diag.At(diag.StatusUnexpectedKind, tok.Pos, tok.Len)
	}

	root.Standardize()
	for _, fe := range b.forest {
		fe.Root.Standardize()
	}

	return &DownscaleTree{Vars: vars, Master: root, Forest: b.forest}, diag.Result{}
}

func (b *downscaleBuilder) peek() (lex.Token, bool) {
	if b.pos >= len(b.tokens) {
		return lex.Token{}, false
	}
	return b.tokens[b.pos], true
}

// parseE implements E -> E | T | E & T | T, left-associative. combine keeps
// the node model's same-operator-flattens/different-operator-boxes
// invariant exactly as standard_logic_downscale_tree.cpp's ParseE does when
// walking its concrete parse tree top-down; here it is driven by an
// iterative left-to-right scan of the token stream instead, which for a
// left-associative grammar produces the identical tree.
func (b *downscaleBuilder) parseE() (*Node, diag.Result) {
	left, res := b.parseT()
	if !res.Ok() {
		return nil, res
	}

	for {
		tok, ok := b.peek()
		if !ok || (tok.Kind != lex.KindOr && tok.Kind != lex.KindAnd) {
			break
		}
		op := OpOr
		if tok.Kind == lex.KindAnd {
			op = OpAnd
		}
		b.pos++

		right, res := b.parseT()
		if !res.Ok() {
			return nil, res
		}
		left = combineNodes(left, op, right)
	}

	return left, diag.Result{}
}

// combineNodes folds right into left under op, following the same
// same-operator/different-operator rule AddBranch already enforces at the
// leaf level: operators that match flatten together, operators that differ
// nest as a branch.
func combineNodes(left *Node, op OpType, right *Node) *Node {
	if left.Op == OpNull && len(left.Branches) == 0 {
		left.Op = op
		mergeInto(left, right)
		return left
	}
	if left.Op == op {
		mergeInto(left, right)
		return left
	}
	boxed := NewNode(op)
	boxed.AddBranch(left)
	mergeInto(boxed, right)
	return boxed
}

func mergeInto(dst *Node, src *Node) {
	if src.Op == OpNull && len(src.Branches) == 0 {
		dst.AddLeaves(src.Leaves)
		return
	}
	if src.Op == dst.Op {
		dst.AddLeaves(src.Leaves)
		for _, br := range src.Branches {
			dst.AddBranch(br)
		}
		return
	}
	dst.AddBranch(src)
}

// parseT implements T -> F / number | F. A division introduces a fresh
// forest entry for the divided operand and returns, in its place, a leaf
// node carrying the synthetic "_Dk" placeholder — the divisor itself is
// validated later, during allocation (GenerateDivider), matching the
// original's deferred divisor<=0 check.
func (b *downscaleBuilder) parseT() (*Node, diag.Result) {
	f, res := b.parseF()
	if !res.Ok() {
		return nil, res
	}

	tok, ok := b.peek()
	if !ok || tok.Kind != lex.KindSlash {
		return f, diag.Result{}
	}
	b.pos++

	numTok, ok := b.peek()
	if !ok || numTok.Kind != lex.KindNumber {
		if !ok {
			return nil, diag.New(diag.StatusBadRHSForm)
		}
		return nil, diag.At(diag.StatusBadRHSForm, numTok.Pos, numTok.Len)
	}
	b.pos++

	name := fmt.Sprintf("_D%d", len(b.forest))
	idx := b.vars.intern(name)
	b.forest = append(b.forest, ForestEntry{Divisor: numTok.NumValue, Root: f})

	leaf := NewNode(OpNull)
	leaf.AddLeaf(idx)
	return leaf, diag.Result{}
}

// parseF implements F -> id | literal | ( E ). A variable or a "0"/"1"
// literal becomes a single leaf; a parenthesized expression is parsed
// directly, matching ParseF's pass-through of the same accumulating node.
func (b *downscaleBuilder) parseF() (*Node, diag.Result) {
	tok, ok := b.peek()
	if !ok {
		return nil, diag.New(diag.StatusBadRHSForm)
	}

	switch tok.Kind {
	case lex.KindVariable, lex.KindNumber:
		b.pos++
		idx := b.vars.intern(tok.Text)
		leaf := NewNode(OpNull)
		leaf.AddLeaf(idx)
		return leaf, diag.Result{}
	case lex.KindLParen:
		b.pos++
		inner, res := b.parseE()
		if !res.Ok() {
			return nil, res
		}
		closeTok, ok := b.peek()
		if !ok || closeTok.Kind != lex.KindRParen {
			if !ok {
				return nil, diag.New(diag.StatusBadRHSForm)
			}
			return nil, diag.At(diag.StatusBadRHSForm, closeTok.Pos, closeTok.Len)
		}
		b.pos++
		return inner, diag.Result{}
	default:
		return nil, diag.At(diag.StatusBadRHSForm, tok.Pos, tok.Len)
	}
}
