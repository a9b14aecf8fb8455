package slr

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// ActionType is the kind of entry in an SLR ACTION table cell.
type ActionType int

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one ACTION table cell: a shift to State, a reduce of Production
// (with left-hand side Symbol), an accept, or (the zero value) an error.
type Action struct {
	Type       ActionType
	State      string
	Symbol     string
	Production Production
}

func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("shift %s", a.State)
	case ActionReduce:
		return fmt.Sprintf("reduce %s -> %s", a.Symbol, a.Production.String())
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Table is a constructed SLR(1) ACTION/GOTO table, built once per grammar
// and immutable thereafter (spec section 4.2's concurrency note: a Table may
// be shared read-only across parser instances).
type Table struct {
	grammar  *Grammar
	aug      *Grammar
	auto     *automaton
	follow   map[string]map[string]bool
	terms    []string
	nonTerms []string
}

// Build constructs the SLR(1) ACTION/GOTO table for g (Purple Dragon Book
// Algorithm 4.46). It returns an error if g is not SLR(1) — a state has a
// shift/reduce or reduce/reduce conflict on some lookahead.
func Build(g *Grammar) (*Table, error) {
	aug := g.Augmented()
	auto := aug.buildAutomaton()

	follow := map[string]map[string]bool{}
	for _, nt := range aug.NonTerminals() {
		set := aug.Follow(nt)
		follow[nt] = map[string]bool{}
		for s := range set {
			follow[nt][s] = true
		}
	}

	t := &Table{
		grammar:  g,
		aug:      aug,
		auto:     auto,
		follow:   follow,
		terms:    g.Terminals(),
		nonTerms: g.NonTerminals(),
	}

	if err := t.checkConflictFree(); err != nil {
		return nil, err
	}
	return t, nil
}

// checkConflictFree computes the ACTION entry of every state for every
// terminal and for end of input through actionFor, which returns an error
// when two different actions apply to the same cell.
func (t *Table) checkConflictFree() error {
	for state := range t.auto.states {
		for _, term := range append(append([]string{}, t.terms...), EndOfInput) {
			if _, err := t.actionFor(state, term); err != nil {
				return err
			}
		}
	}
	return nil
}

// Initial returns the name of the automaton's start state.
func (t *Table) Initial() string {
	return t.auto.start
}

// Goto maps a state and grammar symbol to the successor state.
func (t *Table) Goto(state, symbol string) (string, bool) {
	next, ok := t.auto.trans[state][symbol]
	return next, ok
}

// Action returns the ACTION table entry for (state, terminal). Call only
// after Build has returned successfully (conflicts already rejected).
func (t *Table) Action(state, terminal string) Action {
	act, _ := t.actionFor(state, terminal)
	return act
}

// actionFor computes ACTION[state, terminal] per Algorithm 4.46 step 2,
// returning an error if two distinct, non-equal actions apply (a genuine
// SLR(1) conflict).
func (t *Table) actionFor(state, terminal string) (Action, error) {
	set := t.auto.states[state]
	var found bool
	var act Action

	for _, item := range set {
		A := item.NonTerminal
		beta := item.Right

		// (a) [A -> α.aβ] in Ii, GOTO(Ii, a) = Ij: shift j.
		if t.aug.IsTerminal(terminal) && len(beta) > 0 && beta[0] == terminal {
			if next, ok := t.Goto(state, terminal); ok {
				cand := Action{Type: ActionShift, State: next}
				if found && !actionsEqual(act, cand) {
					return Action{}, conflictError(state, terminal, act, cand)
				}
				act, found = cand, true
			}
		}

		// (b) [A -> α.] in Ii, A != S': reduce A -> α for all a in FOLLOW(A).
		if len(beta) == 0 && A != augmentedStart && t.follow[A][terminal] {
			prod := Production{Symbols: item.Left}
			for _, p := range t.aug.rules[A] {
				if p.String() == prod.String() {
					prod = p
					break
				}
			}
			cand := Action{Type: ActionReduce, Symbol: A, Production: prod}
			if found && !actionsEqual(act, cand) {
				return Action{}, conflictError(state, terminal, act, cand)
			}
			act, found = cand, true
		}

		// (c) [S' -> S.] in Ii: accept on $.
		if terminal == EndOfInput && A == augmentedStart && len(item.Left) == 1 && len(beta) == 0 {
			cand := Action{Type: ActionAccept}
			if found && !actionsEqual(act, cand) {
				return Action{}, conflictError(state, terminal, act, cand)
			}
			act, found = cand, true
		}
	}

	if !found {
		act.Type = ActionError
	}
	return act, nil
}

func actionsEqual(a, b Action) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ActionShift:
		return a.State == b.State
	case ActionReduce:
		return a.Symbol == b.Symbol && a.Production.String() == b.Production.String()
	default:
		return true
	}
}

func conflictError(state, terminal string, a, b Action) error {
	return fmt.Errorf("grammar is not SLR(1): conflict in state %q on %q between %q and %q", state, terminal, a, b)
}

// String renders the ACTION/GOTO table as a fixed-width grid, in the same
// spirit as a hand-drawn parser table dump: one row per state, one column
// per terminal/non-terminal.
func (t *Table) String() string {
	stateOrder := t.auto.orderedStates()
	stateIdx := map[string]int{}
	for i, s := range stateOrder {
		stateIdx[s] = i
	}

	allTerms := append(append([]string{}, t.terms...), EndOfInput)

	headers := []string{"state"}
	for _, term := range allTerms {
		headers = append(headers, "A:"+term)
	}
	for _, nt := range t.nonTerms {
		headers = append(headers, "G:"+nt)
	}

	data := [][]string{headers}
	for i, state := range stateOrder {
		row := []string{fmt.Sprintf("%d", i)}
		for _, term := range allTerms {
			act := t.Action(state, term)
			cell := ""
			switch act.Type {
			case ActionShift:
				cell = fmt.Sprintf("s%d", stateIdx[act.State])
			case ActionReduce:
				cell = fmt.Sprintf("r(%s)", act.Symbol)
			case ActionAccept:
				cell = "acc"
			}
			row = append(row, cell)
		}
		for _, nt := range t.nonTerms {
			cell := ""
			if next, ok := t.Goto(state, nt); ok {
				cell = fmt.Sprintf("%d", stateIdx[next])
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 8, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
