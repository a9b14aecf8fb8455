package slr

import "github.com/kinstaky/logicroute/internal/util"

// First computes FIRST(sym) by fixed-point iteration over the grammar's
// productions. For a terminal, FIRST is the singleton {sym}.
func (g *Grammar) First(sym string) util.KeySet[string] {
	memo := map[string]util.KeySet[string]{}
	return g.firstMemo(sym, memo, util.NewKeySet[string]())
}

func (g *Grammar) firstMemo(sym string, memo map[string]util.KeySet[string], visiting util.KeySet[string]) util.KeySet[string] {
	if sym == Epsilon {
		return util.NewKeySet(Epsilon)
	}
	if cached, ok := memo[sym]; ok {
		return cached
	}
	if g.IsTerminal(sym) {
		set := util.NewKeySet(sym)
		memo[sym] = set
		return set
	}
	if visiting.Has(sym) {
		return util.NewKeySet[string]()
	}
	visiting.Add(sym)

	result := util.NewKeySet[string]()
	for _, p := range g.rules[sym] {
		result.AddAll(g.firstOfSequence(p.Symbols, memo, visiting))
	}
	memo[sym] = result
	return result
}

// firstOfSequence computes FIRST of a symbol sequence, accounting for
// symbols that can derive epsilon.
func (g *Grammar) firstOfSequence(seq []string, memo map[string]util.KeySet[string], visiting util.KeySet[string]) util.KeySet[string] {
	result := util.NewKeySet[string]()
	if len(seq) == 0 {
		result.Add(Epsilon)
		return result
	}
	for i, sym := range seq {
		firstSym := g.firstMemo(sym, memo, visiting)
		for s := range firstSym {
			if s != Epsilon {
				result.Add(s)
			}
		}
		if !firstSym.Has(Epsilon) {
			return result
		}
		if i == len(seq)-1 {
			result.Add(Epsilon)
		}
	}
	return result
}

// Follow computes FOLLOW(nt) by fixed-point iteration over the augmented
// grammar's productions (call on an Augmented() grammar so FOLLOW(start)
// includes EndOfInput).
func (g *Grammar) Follow(nt string) util.KeySet[string] {
	all := map[string]util.KeySet[string]{}
	for _, lhs := range g.order {
		all[lhs] = util.NewKeySet[string]()
	}
	all[g.start].Add(EndOfInput)

	changed := true
	for changed {
		changed = false
		for _, lhs := range g.order {
			for _, p := range g.rules[lhs] {
				for i, sym := range p.Symbols {
					if !g.IsNonTerminal(sym) {
						continue
					}
					rest := p.Symbols[i+1:]
					firstRest := g.firstOfSequence(rest, map[string]util.KeySet[string]{}, util.NewKeySet[string]())

					before := all[sym].Len()
					for s := range firstRest {
						if s != Epsilon {
							all[sym].Add(s)
						}
					}
					if firstRest.Has(Epsilon) {
						all[sym].AddAll(all[lhs])
					}
					if all[sym].Len() != before {
						changed = true
					}
				}
			}
		}
	}

	if set, ok := all[nt]; ok {
		return set
	}
	return util.NewKeySet[string]()
}
