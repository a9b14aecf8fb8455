package routing

import (
	"github.com/kinstaky/logicroute/internal/lex"
	"github.com/kinstaky/logicroute/internal/slr"
)

// downscaleGrammar wires the ten productions of the right-hand-side
// expression grammar (spec section 4.2) into internal/slr. Its semantic
// value is not the expression's meaning but its downscale nesting depth:
// every division bumps depth by one, and the two binary operators and the
// parenthesized-subexpression rule simply propagate the maximum depth seen
// among their operands. A compiled line is rejected (status 208) when the
// root expression's depth is 2 or more, since dividing an already-divided
// signal is not representable as a single forest entry.
//
// This mirrors the two-pass structure of the original: a grammar-level
// pass validates nesting depth before a second, hand-written pass (see
// buildDownscaleTree in downscale.go) actually constructs the tree.
func downscaleGrammar() *slr.Grammar {
	g := slr.NewGrammar("S")

	g.AddProduction("S", slr.Production{
		Symbols: []string{"L"},
		Action:  func(c []int) int { return c[0] },
	})
	g.AddProduction("L", slr.Production{
		Symbols: []string{string(lex.KindVariable), string(lex.KindEquals), "E"},
		Action:  func(c []int) int { return c[2] },
	})
	g.AddProduction("E", slr.Production{
		Symbols: []string{"E", string(lex.KindOr), "T"},
		Action:  func(c []int) int { return maxInt(c[0], c[2]) },
	})
	g.AddProduction("E", slr.Production{
		Symbols: []string{"E", string(lex.KindAnd), "T"},
		Action:  func(c []int) int { return maxInt(c[0], c[2]) },
	})
	g.AddProduction("E", slr.Production{
		Symbols: []string{"T"},
		Action:  func(c []int) int { return c[0] },
	})
	g.AddProduction("T", slr.Production{
		Symbols: []string{"F", string(lex.KindSlash), string(lex.KindNumber)},
		Action:  func(c []int) int { return c[0] + 1 },
	})
	g.AddProduction("T", slr.Production{
		Symbols: []string{"F"},
		Action:  func(c []int) int { return c[0] },
	})
	g.AddProduction("F", slr.Production{
		Symbols: []string{string(lex.KindVariable)},
		Action:  func(c []int) int { return 0 },
	})
	g.AddProduction("F", slr.Production{
		Symbols: []string{string(lex.KindNumber)},
		Action:  func(c []int) int { return 0 },
	})
	g.AddProduction("F", slr.Production{
		Symbols: []string{string(lex.KindLParen), "E", string(lex.KindRParen)},
		Action:  func(c []int) int { return c[1] },
	})

	return g
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// downscaleTable is built once and reused by every Compiler: the grammar
// is fixed, so there is no reason to reconstruct the SLR automaton per
// parse.
var downscaleTable = func() *slr.Table {
	t, err := slr.Build(downscaleGrammar())
	if err != nil {
		panic(err)
	}
	return t
}()
