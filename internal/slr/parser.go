package slr

import (
	"fmt"

	"github.com/kinstaky/logicroute/internal/util"
)

// ErrorKind classifies why Parse failed, independent of any particular
// caller's diagnostic numbering scheme.
type ErrorKind int

const (
	// ErrNoAction: no action is defined for the current (state, token) pair.
	ErrNoAction ErrorKind = iota
	// ErrCannotShift: a shift action exists in the grammar's terminal set but
	// GOTO has no transition recorded (table/automaton inconsistency).
	ErrCannotShift
	// ErrUnexpectedKind: the token's class is not a terminal this grammar
	// was built over.
	ErrUnexpectedKind
	// ErrTableCorrupt: an action cell holds a value outside {shift, reduce,
	// accept, error} — should not occur given grammar completeness.
	ErrTableCorrupt
)

// ParseError reports where in the token stream parsing failed and why.
type ParseError struct {
	Kind  ErrorKind
	Token Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%d) at %q", e.Kind, e.Token.Lexeme())
}

// endToken is the synthetic end-of-input marker pushed after the last real
// token so the driver can recognize $.
type endToken struct{ pos int }

func (endToken) Class() string    { return EndOfInput }
func (endToken) Lexeme() string   { return "" }
func (e endToken) Position() int  { return e.pos }
func (endToken) Length() int      { return 0 }

// Parser drives the shift-reduce algorithm over a fixed Table.
type Parser struct {
	table *Table
}

// NewParser wraps a built Table in a driver.
func NewParser(t *Table) *Parser {
	return &Parser{table: t}
}

// Parse runs Algorithm 4.44 (the LR-parsing algorithm) over tokens, building
// a concrete Tree bottom-up. On success it also returns the evaluated
// semantic value of the accepted parse (the grammar's int-valued action
// applied recursively).
func (p *Parser) Parse(tokens []Token) (*Tree, int, error) {
	states := util.Stack[string]{Of: []string{p.table.Initial()}}
	tokBuf := util.Stack[Token]{}
	treeRoots := util.Stack[*Tree]{}
	valueRoots := util.Stack[int]{}

	idx := 0
	next := func() Token {
		if idx < len(tokens) {
			t := tokens[idx]
			idx++
			return t
		}
		return endToken{pos: endOfLinePosition(tokens)}
	}

	a := next()

	for {
		s := states.Peek()

		known := a.Class() == EndOfInput
		for _, term := range p.table.terms {
			if term == a.Class() {
				known = true
				break
			}
		}
		if !known {
			return nil, 0, &ParseError{Kind: ErrUnexpectedKind, Token: a}
		}

		act := p.table.Action(s, a.Class())

		switch act.Type {
		case ActionShift:
			tokBuf.Push(a)
			states.Push(act.State)
			a = next()

		case ActionReduce:
			prod := act.Production
			children := make([]*Tree, len(prod.Symbols))
			childVals := make([]int, len(prod.Symbols))
			for i := len(prod.Symbols) - 1; i >= 0; i-- {
				sym := prod.Symbols[i]
				states.Pop()
				if p.table.aug.IsTerminal(sym) {
					tok := tokBuf.Pop()
					children[i] = &Tree{Terminal: true, Symbol: sym, Source: tok}
					childVals[i] = 0
				} else {
					children[i] = treeRoots.Pop()
					childVals[i] = valueRoots.Pop()
				}
			}

			node := &Tree{Symbol: act.Symbol, Production: prod, Children: children}
			treeRoots.Push(node)

			value := 0
			if prod.Action != nil {
				value = prod.Action(childVals)
			}
			valueRoots.Push(value)

			t := states.Peek()
			gotoState, ok := p.table.Goto(t, act.Symbol)
			if !ok {
				return nil, 0, &ParseError{Kind: ErrCannotShift, Token: a}
			}
			states.Push(gotoState)

		case ActionAccept:
			return treeRoots.Pop(), valueRoots.Pop(), nil

		default:
			return nil, 0, &ParseError{Kind: ErrNoAction, Token: a}
		}
	}
}

func endOfLinePosition(tokens []Token) int {
	if len(tokens) == 0 {
		return 0
	}
	last := tokens[len(tokens)-1]
	return last.Position() + last.Length()
}
