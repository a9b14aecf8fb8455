package slr

import (
	"fmt"
	"sort"
	"strings"
)

// LR0Item is a production together with the position of a dot marking how
// much of the right-hand side has been recognized so far.
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

func (item LR0Item) String() string {
	left := strings.Join(item.Left, " ")
	right := strings.Join(item.Right, " ")
	if left != "" {
		left += " "
	}
	if right != "" {
		right = " " + right
	}
	return fmt.Sprintf("%s -> %s.%s", item.NonTerminal, left, right)
}

// next returns the symbol immediately after the dot, or "" if the dot is at
// the end (a complete item).
func (item LR0Item) next() string {
	if len(item.Right) == 0 {
		return ""
	}
	return item.Right[0]
}

// advanced returns the item with the dot moved one symbol to the right.
func (item LR0Item) advanced() LR0Item {
	return LR0Item{
		NonTerminal: item.NonTerminal,
		Left:        append(append([]string{}, item.Left...), item.Right[0]),
		Right:       item.Right[1:],
	}
}

// itemSet is an unordered collection of LR0 items, keyed by their string
// form for set semantics.
type itemSet map[string]LR0Item

func newItemSet(items ...LR0Item) itemSet {
	s := itemSet{}
	for _, it := range items {
		s[it.String()] = it
	}
	return s
}

func (s itemSet) add(it LR0Item) bool {
	key := it.String()
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = it
	return true
}

// key returns a canonical, order-independent identifier for the set,
// used as the DFA state name.
func (s itemSet) key() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, " | ")
}

// closure computes the LR(0) closure of s: repeatedly add, for every item
// [A -> α.Bβ] in the set, every production of B as [B -> .γ], until no
// further item can be added.
func (g *Grammar) closure(s itemSet) itemSet {
	result := itemSet{}
	for k, it := range s {
		result[k] = it
	}

	changed := true
	for changed {
		changed = false
		for _, it := range result {
			sym := it.next()
			if sym == "" || !g.IsNonTerminal(sym) {
				continue
			}
			for _, p := range g.rules[sym] {
				newItem := LR0Item{NonTerminal: sym, Left: nil, Right: append([]string{}, p.Symbols...)}
				if result.add(newItem) {
					changed = true
				}
			}
		}
	}
	return result
}

// gotoSet computes goto(s, sym): advance the dot past sym in every item of
// s that has sym immediately after its dot, then take the closure.
func (g *Grammar) gotoSet(s itemSet, sym string) itemSet {
	moved := itemSet{}
	for _, it := range s {
		if it.next() == sym {
			moved.add(it.advanced())
		}
	}
	if len(moved) == 0 {
		return nil
	}
	return g.closure(moved)
}

// automaton is the canonical collection of LR(0) item sets (the
// viable-prefix DFA) for an augmented grammar, built by subset construction:
// start from the closure of the augmented start item and repeatedly apply
// goto over every grammar symbol until no new state appears.
type automaton struct {
	start string
	// states maps a state name (its itemSet key) to the set of items it
	// holds.
	states map[string]itemSet
	// trans maps (state, symbol) to the destination state name.
	trans map[string]map[string]string
}

func (g *Grammar) buildAutomaton() *automaton {
	startProd := g.rules[g.start][0]
	startItem := LR0Item{NonTerminal: g.start, Right: append([]string{}, startProd.Symbols...)}
	startSet := g.closure(newItemSet(startItem))
	startKey := startSet.key()

	a := &automaton{
		start:  startKey,
		states: map[string]itemSet{startKey: startSet},
		trans:  map[string]map[string]string{},
	}

	symbols := append(append([]string{}, g.Terminals()...), g.NonTerminals()...)

	worklist := []string{startKey}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		curSet := a.states[cur]

		for _, sym := range symbols {
			next := g.gotoSet(curSet, sym)
			if next == nil {
				continue
			}
			nextKey := next.key()
			if _, ok := a.states[nextKey]; !ok {
				a.states[nextKey] = next
				worklist = append(worklist, nextKey)
			}
			if a.trans[cur] == nil {
				a.trans[cur] = map[string]string{}
			}
			a.trans[cur][sym] = nextKey
		}
	}

	return a
}

// orderedStates returns state names in deterministic order with the start
// state first, used for table rendering.
func (a *automaton) orderedStates() []string {
	names := make([]string, 0, len(a.states))
	for name := range a.states {
		if name != a.start {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{a.start}, names...)
}
