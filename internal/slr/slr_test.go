package slr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleToken is a minimal Token implementation for tests.
type simpleToken struct {
	class  string
	lexeme string
	pos    int
}

func (t simpleToken) Class() string  { return t.class }
func (t simpleToken) Lexeme() string { return t.lexeme }
func (t simpleToken) Position() int  { return t.pos }
func (t simpleToken) Length() int    { return len(t.lexeme) }

// sumGrammar builds E -> E + T | T, T -> id, a textbook example known to be
// SLR(1), used to exercise table construction and the driver independent of
// the routing package's downscale grammar.
func sumGrammar() *Grammar {
	g := NewGrammar("E")
	g.AddProduction("E", Production{
		Symbols: []string{"E", "+", "T"},
		Action:  func(c []int) int { return c[0] + c[2] },
	})
	g.AddProduction("E", Production{
		Symbols: []string{"T"},
		Action:  func(c []int) int { return c[0] },
	})
	g.AddProduction("T", Production{
		Symbols: []string{"id"},
		Action:  func(c []int) int { return 1 },
	})
	return g
}

func Test_Build_conflictFree(t *testing.T) {
	g := sumGrammar()
	table, err := Build(g)
	require.NoError(t, err)
	require.NotNil(t, table)
}

func Test_Parser_acceptsAndCountsIds(t *testing.T) {
	g := sumGrammar()
	table, err := Build(g)
	require.NoError(t, err)

	p := NewParser(table)
	tokens := []Token{
		simpleToken{class: "id", lexeme: "a", pos: 0},
		simpleToken{class: "+", lexeme: "+", pos: 1},
		simpleToken{class: "id", lexeme: "b", pos: 2},
		simpleToken{class: "+", lexeme: "+", pos: 3},
		simpleToken{class: "id", lexeme: "c", pos: 4},
	}

	tree, value, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, 3, value)

	leaves := tree.Leaves()
	require.Len(t, leaves, 5)
	assert.Equal(t, "a", leaves[0].Lexeme())
	assert.Equal(t, "c", leaves[4].Lexeme())
}

func Test_Parser_rejectsUnexpectedToken(t *testing.T) {
	g := sumGrammar()
	table, err := Build(g)
	require.NoError(t, err)

	p := NewParser(table)
	tokens := []Token{
		simpleToken{class: "+", lexeme: "+", pos: 0},
	}

	_, _, err = p.Parse(tokens)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func Test_FirstFollow_sumGrammar(t *testing.T) {
	g := sumGrammar()
	first := g.First("E")
	assert.True(t, first.Has("id"))

	aug := g.Augmented()
	follow := aug.Follow("E")
	assert.True(t, follow.Has("+"))
	assert.True(t, follow.Has(EndOfInput))
}
